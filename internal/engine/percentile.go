// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/meshintel/salary-engine/pkg/types"
)

var (
	// ErrInsufficientData means zero valid observations survived; no
	// distribution can be computed and the run fails.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInternalConsistency means an engine invariant was violated
	// (percentile monotonicity or weight conservation). Indicates a bug.
	ErrInternalConsistency = errors.New("internal consistency violation")
)

// weightTolerance bounds the acceptable drift of the contribution weight sum
// from 1.0.
const weightTolerance = 1e-9

// weightedValue is one observation's value with its share of the blended
// distribution.
type weightedValue struct {
	value  decimal.Decimal
	weight float64
}

// Multiset is the weighted, ascending-sorted set of observation values the
// percentile computation runs over. Each observation carries weight
// sourceWeight / sourceSampleSize, so a source's capped share holds at
// the individual-value level.
type Multiset struct {
	points []weightedValue
	total  float64
}

// BuildMultiset combines normalized observations with their sources'
// contribution weights into a sorted weighted multiset. Fails with
// ErrInsufficientData on an empty batch and ErrInternalConsistency when the
// contribution weights do not conserve to 1.0 or an observation references
// an unknown source.
func BuildMultiset(observations []types.NormalizedObservation, contribs []types.SourceContribution) (Multiset, error) {
	if len(observations) == 0 {
		return Multiset{}, fmt.Errorf("%w: no observations", ErrInsufficientData)
	}
	if sum := WeightSum(contribs); math.Abs(sum-1.0) > weightTolerance {
		return Multiset{}, fmt.Errorf("%w: contribution weights sum to %v", ErrInternalConsistency, sum)
	}

	perObs := make(map[string]float64, len(contribs))
	for _, c := range contribs {
		if c.SampleSize > 0 {
			perObs[c.Source] = c.Weight / float64(c.SampleSize)
		}
	}

	points := make([]weightedValue, 0, len(observations))
	total := 0.0
	for _, obs := range observations {
		w, ok := perObs[obs.Source]
		if !ok {
			return Multiset{}, fmt.Errorf("%w: observation from %q has no contribution", ErrInternalConsistency, obs.Source)
		}
		points = append(points, weightedValue{value: obs.Value, weight: w})
		total += w
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].value.LessThan(points[j].value)
	})

	return Multiset{points: points, total: total}, nil
}

// Quantile returns the weighted q-quantile (q in [0,1]) by linear
// interpolation on the cumulative weight midpoints. Targets before the first
// midpoint or past the last clamp to the boundary value.
func (m Multiset) Quantile(q float64) decimal.Decimal {
	n := len(m.points)
	if n == 0 {
		return decimal.Zero
	}
	if n == 1 {
		return m.points[0].value
	}

	positions := make([]float64, n)
	cum := 0.0
	for i, p := range m.points {
		positions[i] = (cum + p.weight/2) / m.total
		cum += p.weight
	}

	if q <= positions[0] {
		return m.points[0].value
	}
	if q >= positions[n-1] {
		return m.points[n-1].value
	}

	i := sort.SearchFloat64s(positions, q)
	lo, hi := m.points[i-1].value, m.points[i].value
	span := positions[i] - positions[i-1]
	if span <= 0 {
		return lo
	}
	t := (q - positions[i-1]) / span
	return lo.Add(hi.Sub(lo).Mul(decimal.NewFromFloat(t)))
}

// Distribution computes the five named percentiles from the multiset and
// verifies they are non-decreasing.
func Distribution(m Multiset) (types.PercentileDistribution, error) {
	if len(m.points) == 0 {
		return types.PercentileDistribution{}, fmt.Errorf("%w: empty multiset", ErrInsufficientData)
	}

	dist := types.PercentileDistribution{
		P10: m.Quantile(0.10),
		P25: m.Quantile(0.25),
		P50: m.Quantile(0.50),
		P75: m.Quantile(0.75),
		P90: m.Quantile(0.90),
	}

	ordered := []decimal.Decimal{dist.P10, dist.P25, dist.P50, dist.P75, dist.P90}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].LessThan(ordered[i-1]) {
			return types.PercentileDistribution{}, fmt.Errorf("%w: percentiles not monotonic", ErrInternalConsistency)
		}
	}

	return dist, nil
}
