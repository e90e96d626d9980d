// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"github.com/meshintel/salary-engine/pkg/types"
)

// Scenarios derives the four pricing scenarios from the distribution, in
// fixed order: conservative {P25,P50}, market {P40,P60}, competitive
// {P50,P75}, premium {P75,P90}. The market band is recomputed from the
// weighted multiset rather than interpolated from the five named points, so
// it carries no compounded interpolation error. Bands may be zero-width in
// the degenerate single-observation case.
func Scenarios(m Multiset, dist types.PercentileDistribution) []types.Scenario {
	return []types.Scenario{
		{Name: types.ScenarioConservative, Low: dist.P25, High: dist.P50},
		{Name: types.ScenarioMarket, Low: m.Quantile(0.40), High: m.Quantile(0.60)},
		{Name: types.ScenarioCompetitive, Low: dist.P50, High: dist.P75},
		{Name: types.ScenarioPremium, Low: dist.P75, High: dist.P90},
	}
}
