// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"github.com/meshintel/salary-engine/pkg/types"
)

// Score combines four independent signals into a 0-100 confidence rating:
// source coverage (max 30), sample size (max 30), recency (max 20), and
// match quality (max 20). An empty contribution list short-circuits to a
// zero score with the low band.
func Score(contribs []types.SourceContribution, totalObservations int, cfg types.ConfidenceConfig) types.ConfidenceScore {
	if len(contribs) == 0 {
		return types.ConfidenceScore{Band: types.BandLow}
	}

	obsTotal := 0
	ageWeighted := 0.0
	matchWeighted := 0.0
	for _, c := range contribs {
		obsTotal += c.SampleSize
		ageWeighted += c.MeanAgeDays * float64(c.SampleSize)
		matchWeighted += c.MeanMatch * float64(c.SampleSize)
	}
	if totalObservations <= 0 {
		totalObservations = obsTotal
	}
	meanAge := ageWeighted / float64(obsTotal)
	meanMatch := matchWeighted / float64(obsTotal)

	score := types.ConfidenceScore{
		Coverage:     CoverageScore(len(contribs), cfg),
		SampleSize:   SampleSizeScore(totalObservations, cfg),
		Recency:      RecencyScore(meanAge, cfg),
		MatchQuality: MatchQualityScore(meanMatch),
	}

	total := score.Coverage + score.SampleSize + score.Recency + score.MatchQuality
	if total < 0 {
		total = 0
	} else if total > 100 {
		total = 100
	}
	score.Total = total
	score.Band = BandFor(total)
	return score
}

// CoverageScore awards points for distinct sources, stepping up to 30.
// Non-decreasing in sourceCount.
func CoverageScore(sourceCount int, cfg types.ConfidenceConfig) float64 {
	steps := cfg.CoverageSteps
	if len(steps) == 0 {
		steps = types.DefaultConfidenceConfig().CoverageSteps
	}
	if sourceCount <= 0 {
		return 0
	}
	if sourceCount > len(steps) {
		sourceCount = len(steps)
	}
	return steps[sourceCount-1]
}

// SampleSizeScore awards points for total observation volume with
// diminishing returns, capped at 30. Non-decreasing in totalObservations.
func SampleSizeScore(totalObservations int, cfg types.ConfidenceConfig) float64 {
	steps := cfg.SampleSteps
	if len(steps) == 0 {
		steps = types.DefaultConfidenceConfig().SampleSteps
	}
	points := 0.0
	for _, step := range steps {
		if totalObservations >= step.MinObservations {
			points = step.Points
		}
	}
	if points > 30 {
		points = 30
	}
	return points
}

// RecencyScore awards the full 20 points at mean age zero, decaying linearly
// to zero at the staleness horizon. Non-increasing in meanAgeDays.
func RecencyScore(meanAgeDays float64, cfg types.ConfidenceConfig) float64 {
	horizon := cfg.StalenessHorizonDays
	if horizon <= 0 {
		horizon = types.DefaultConfidenceConfig().StalenessHorizonDays
	}
	if meanAgeDays <= 0 {
		return 20
	}
	if meanAgeDays >= horizon {
		return 0
	}
	return 20 * (1 - meanAgeDays/horizon)
}

// MatchQualityScore is linear in the mean match score: 0 -> 0, 1.0 -> 20.
func MatchQualityScore(meanMatch float64) float64 {
	if meanMatch < 0 {
		meanMatch = 0
	} else if meanMatch > 1 {
		meanMatch = 1
	}
	return 20 * meanMatch
}

// BandFor maps a total score to its discrete confidence band.
func BandFor(total float64) types.ConfidenceBand {
	switch {
	case total >= 75:
		return types.BandHigh
	case total >= 50:
		return types.BandMedium
	default:
		return types.BandLow
	}
}
