// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"sort"

	"github.com/meshintel/salary-engine/pkg/types"
)

// Aggregate partitions normalized observations by source and computes each
// source's sample size, mean age, mean match quality, and contribution
// weight. Weights are proportional to sample size, capped at maxShare when
// two or more sources are present, and renormalized to sum to 1.0.
// An empty input yields an empty slice. Pure function.
func Aggregate(observations []types.NormalizedObservation, maxShare float64) []types.SourceContribution {
	if len(observations) == 0 {
		return nil
	}

	type group struct {
		count    int
		ageSum   float64
		matchSum float64
	}
	groups := make(map[string]*group)
	for _, obs := range observations {
		g := groups[obs.Source]
		if g == nil {
			g = &group{}
			groups[obs.Source] = g
		}
		g.count++
		g.ageSum += obs.AgeDays
		g.matchSum += obs.Match
	}

	contribs := make([]types.SourceContribution, 0, len(groups))
	for source, g := range groups {
		contribs = append(contribs, types.SourceContribution{
			Source:      source,
			SampleSize:  g.count,
			MeanAgeDays: g.ageSum / float64(g.count),
			MeanMatch:   g.matchSum / float64(g.count),
		})
	}

	// Deterministic order: largest sample first, then by name.
	sort.Slice(contribs, func(i, j int) bool {
		if contribs[i].SampleSize != contribs[j].SampleSize {
			return contribs[i].SampleSize > contribs[j].SampleSize
		}
		return contribs[i].Source < contribs[j].Source
	})

	assignWeights(contribs, maxShare)
	return contribs
}

// assignWeights sets each contribution's weight proportional to its sample
// size, then enforces the single-source cap. A lone source always gets 1.0.
// Capping redistributes the excess among uncapped sources proportionally and
// repeats until no source exceeds the cap, so the final weights sum to 1.0
// with no source above maxShare.
func assignWeights(contribs []types.SourceContribution, maxShare float64) {
	if len(contribs) == 0 {
		return
	}
	if len(contribs) == 1 {
		contribs[0].Weight = 1.0
		return
	}
	if maxShare <= 0 || maxShare >= 1 {
		maxShare = 0.70
	}
	// A cap below 1/n cannot coexist with weights summing to 1.
	if floor := 1.0 / float64(len(contribs)); maxShare < floor {
		maxShare = floor
	}

	active := make([]int, 0, len(contribs))
	for i := range contribs {
		active = append(active, i)
	}
	remaining := 1.0

	for len(active) > 0 {
		totalSize := 0
		for _, i := range active {
			totalSize += contribs[i].SampleSize
		}

		capped := false
		next := active[:0]
		for _, i := range active {
			w := remaining * float64(contribs[i].SampleSize) / float64(totalSize)
			if w > maxShare {
				contribs[i].Weight = maxShare
				remaining -= maxShare
				capped = true
				continue
			}
			next = append(next, i)
		}
		active = next

		if !capped {
			for _, i := range active {
				contribs[i].Weight = remaining * float64(contribs[i].SampleSize) / float64(totalSize)
			}
			return
		}
	}
}

// WeightSum returns the sum of contribution weights. The engine asserts the
// sum is 1.0 within tolerance before computing the distribution.
func WeightSum(contribs []types.SourceContribution) float64 {
	sum := 0.0
	for _, c := range contribs {
		sum += c.Weight
	}
	return sum
}
