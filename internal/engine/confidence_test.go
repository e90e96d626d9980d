// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meshintel/salary-engine/pkg/types"
)

func refCfg() types.ConfidenceConfig {
	return types.DefaultConfidenceConfig()
}

func TestScoreEmptyContributionsShortCircuits(t *testing.T) {
	score := Score(nil, 0, refCfg())
	assert.Equal(t, 0.0, score.Total)
	assert.Equal(t, types.BandLow, score.Band)
	assert.Equal(t, 0.0, score.Coverage)
	assert.Equal(t, 0.0, score.SampleSize)
	assert.Equal(t, 0.0, score.Recency)
	assert.Equal(t, 0.0, score.MatchQuality)
}

func TestCoverageScoreReferenceSteps(t *testing.T) {
	tests := []struct {
		sources int
		want    float64
	}{
		{0, 0}, {1, 7.5}, {2, 18}, {3, 25}, {4, 30}, {10, 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CoverageScore(tt.sources, refCfg()), "sources=%d", tt.sources)
	}
}

func TestCoverageScoreMonotonic(t *testing.T) {
	prev := 0.0
	for n := 1; n <= 12; n++ {
		got := CoverageScore(n, refCfg())
		assert.GreaterOrEqual(t, got, prev, "n=%d", n)
		assert.LessOrEqual(t, got, 30.0)
		prev = got
	}
}

func TestSampleSizeScoreDiminishingSteps(t *testing.T) {
	tests := []struct {
		observations int
		want         float64
	}{
		{0, 0}, {1, 3}, {4, 3}, {5, 6}, {9, 6}, {10, 12}, {25, 18}, {50, 24}, {100, 30}, {100000, 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SampleSizeScore(tt.observations, refCfg()), "n=%d", tt.observations)
	}
}

func TestSampleSizeScoreMonotonic(t *testing.T) {
	prev := 0.0
	for n := 0; n <= 200; n++ {
		got := SampleSizeScore(n, refCfg())
		assert.GreaterOrEqual(t, got, prev, "n=%d", n)
		assert.LessOrEqual(t, got, 30.0)
		prev = got
	}
}

func TestRecencyScoreDecay(t *testing.T) {
	cfg := refCfg()
	assert.Equal(t, 20.0, RecencyScore(0, cfg))
	assert.InDelta(t, 10.0, RecencyScore(90, cfg), 1e-9)
	assert.Equal(t, 0.0, RecencyScore(180, cfg))
	assert.Equal(t, 0.0, RecencyScore(5000, cfg))
}

func TestRecencyScoreNonIncreasing(t *testing.T) {
	cfg := refCfg()
	prev := 21.0
	for age := 0.0; age <= 400; age += 10 {
		got := RecencyScore(age, cfg)
		assert.LessOrEqual(t, got, prev, "age=%f", age)
		prev = got
	}
}

func TestMatchQualityScoreLinear(t *testing.T) {
	assert.Equal(t, 0.0, MatchQualityScore(0))
	assert.Equal(t, 10.0, MatchQualityScore(0.5))
	assert.Equal(t, 20.0, MatchQualityScore(1.0))
	// Out-of-range inputs clamp.
	assert.Equal(t, 0.0, MatchQualityScore(-1))
	assert.Equal(t, 20.0, MatchQualityScore(3))
}

func TestBandBoundaries(t *testing.T) {
	assert.Equal(t, types.BandLow, BandFor(0))
	assert.Equal(t, types.BandLow, BandFor(49.9))
	assert.Equal(t, types.BandMedium, BandFor(50))
	assert.Equal(t, types.BandMedium, BandFor(74.9))
	assert.Equal(t, types.BandHigh, BandFor(75))
	assert.Equal(t, types.BandHigh, BandFor(100))
}

// Single fresh well-matched source with a handful of observations stays in
// the low band: breadth of evidence is missing.
func TestScoreSingleSourceStaysLow(t *testing.T) {
	contribs := []types.SourceContribution{
		{Source: "a", SampleSize: 6, MeanAgeDays: 1, MeanMatch: 0.8, Weight: 1.0},
	}

	score := Score(contribs, 6, refCfg())

	assert.Equal(t, 7.5, score.Coverage)
	assert.Equal(t, 6.0, score.SampleSize)
	assert.InDelta(t, 19.89, score.Recency, 0.01)
	assert.InDelta(t, 16.0, score.MatchQuality, 1e-9)
	assert.Less(t, score.Total, 50.0)
	assert.Equal(t, types.BandLow, score.Band)
}

func TestScoreBroadFreshEvidenceScoresHigh(t *testing.T) {
	contribs := []types.SourceContribution{
		{Source: "a", SampleSize: 40, MeanAgeDays: 5, MeanMatch: 0.9, Weight: 0.4},
		{Source: "b", SampleSize: 30, MeanAgeDays: 10, MeanMatch: 0.85, Weight: 0.3},
		{Source: "c", SampleSize: 20, MeanAgeDays: 2, MeanMatch: 0.95, Weight: 0.2},
		{Source: "d", SampleSize: 10, MeanAgeDays: 8, MeanMatch: 0.8, Weight: 0.1},
	}

	score := Score(contribs, 100, refCfg())

	assert.Equal(t, 30.0, score.Coverage)
	assert.Equal(t, 30.0, score.SampleSize)
	assert.Equal(t, types.BandHigh, score.Band)
}

func TestScoreMeanAgeWeightedBySampleSize(t *testing.T) {
	// 9 fresh observations and 1 stale one: mean age 18.1, not 90.5.
	contribs := []types.SourceContribution{
		{Source: "a", SampleSize: 9, MeanAgeDays: 1, MeanMatch: 0.5, Weight: 0.7},
		{Source: "b", SampleSize: 1, MeanAgeDays: 172, MeanMatch: 0.5, Weight: 0.3},
	}

	score := Score(contribs, 10, refCfg())
	wantRecency := RecencyScore((9*1+1*172)/10.0, refCfg())
	assert.InDelta(t, wantRecency, score.Recency, 1e-9)
}

func TestScoreTotalClamped(t *testing.T) {
	cfg := types.ConfidenceConfig{
		CoverageSteps:        []float64{90},
		SampleSteps:          []types.SampleStep{{MinObservations: 1, Points: 30}},
		StalenessHorizonDays: 180,
	}
	contribs := []types.SourceContribution{
		{Source: "a", SampleSize: 10, MeanAgeDays: 0, MeanMatch: 1.0, Weight: 1.0},
	}

	score := Score(contribs, 10, cfg)
	assert.Equal(t, 100.0, score.Total)
}
