// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceContribution summarizes one provider's evidence for a recommendation
// run: how many observations it supplied, how fresh and how well-matched they
// were, and the weight it carries in the blended distribution. Contribution
// weights across one run sum to 1.0.
type SourceContribution struct {
	// Source identifies the provider.
	Source string `json:"source" yaml:"source"`

	// SampleSize is the number of observations from this source.
	SampleSize int `json:"sample_size" yaml:"sample_size"`

	// MeanAgeDays is the mean observation age in days.
	MeanAgeDays float64 `json:"mean_age_days" yaml:"mean_age_days"`

	// MeanMatch is the mean title-match quality in [0,1].
	MeanMatch float64 `json:"mean_match" yaml:"mean_match"`

	// Weight is this source's share of the blended distribution, in [0,1].
	Weight float64 `json:"weight" yaml:"weight"`
}

// PercentileDistribution holds the five named percentiles of the blended
// salary distribution. Non-decreasing in order: P10 <= P25 <= P50 <= P75 <= P90.
type PercentileDistribution struct {
	P10 decimal.Decimal `json:"p10" yaml:"p10"`
	P25 decimal.Decimal `json:"p25" yaml:"p25"`
	P50 decimal.Decimal `json:"p50" yaml:"p50"`
	P75 decimal.Decimal `json:"p75" yaml:"p75"`
	P90 decimal.Decimal `json:"p90" yaml:"p90"`
}

// ConfidenceBand is the discrete trust rating derived from the total score.
type ConfidenceBand string

const (
	BandLow    ConfidenceBand = "low"    // total < 50
	BandMedium ConfidenceBand = "medium" // 50 <= total < 75
	BandHigh   ConfidenceBand = "high"   // total >= 75
)

// ConfidenceScore rates how trustworthy a recommendation is, out of 100.
// The four sub-scores are budgeted 30/30/20/20.
type ConfidenceScore struct {
	// Coverage rewards the number of distinct sources (max 30).
	Coverage float64 `json:"coverage" yaml:"coverage"`

	// SampleSize rewards total observation volume with diminishing
	// returns (max 30).
	SampleSize float64 `json:"sample_size" yaml:"sample_size"`

	// Recency rewards fresh observations (max 20).
	Recency float64 `json:"recency" yaml:"recency"`

	// MatchQuality rewards title similarity (max 20).
	MatchQuality float64 `json:"match_quality" yaml:"match_quality"`

	// Total is the clamped sum of the four sub-scores, in [0,100].
	Total float64 `json:"total" yaml:"total"`

	// Band is the discrete rating derived from Total.
	Band ConfidenceBand `json:"band" yaml:"band"`
}

// ScenarioName labels one of the four pricing strategies.
type ScenarioName string

const (
	ScenarioConservative ScenarioName = "conservative"
	ScenarioMarket       ScenarioName = "market"
	ScenarioCompetitive  ScenarioName = "competitive"
	ScenarioPremium      ScenarioName = "premium"
)

// Scenario is a named salary band for one pricing strategy.
type Scenario struct {
	Name ScenarioName    `json:"name" yaml:"name"`
	Low  decimal.Decimal `json:"low" yaml:"low"`
	High decimal.Decimal `json:"high" yaml:"high"`
}

// SalaryBand is a {low, high} pair of monetary amounts.
type SalaryBand struct {
	Low  decimal.Decimal `json:"low" yaml:"low"`
	High decimal.Decimal `json:"high" yaml:"high"`
}

// RecommendationResult is the complete outcome of one recommendation run.
// Immutable once constructed; it is an auditable record of why a salary was
// recommended, and the caller owns its storage.
type RecommendationResult struct {
	// ID uniquely identifies the run.
	ID string `json:"id" yaml:"id"`

	// Query echoes the job query the run was evaluated for.
	Query JobQuery `json:"query" yaml:"query"`

	// Target is the recommended salary, equal to the distribution's P50.
	Target decimal.Decimal `json:"target" yaml:"target"`

	// Range is the recommended band, {P25, P75}.
	Range SalaryBand `json:"range" yaml:"range"`

	// Distribution holds the five named percentiles.
	Distribution PercentileDistribution `json:"distribution" yaml:"distribution"`

	// Confidence rates the recommendation's trustworthiness.
	Confidence ConfidenceScore `json:"confidence" yaml:"confidence"`

	// Scenarios lists the four pricing strategies, conservative first.
	Scenarios []Scenario `json:"scenarios" yaml:"scenarios"`

	// Contributions attributes the result to its sources.
	Contributions []SourceContribution `json:"contributions" yaml:"contributions"`

	// SourceCount is the number of distinct sources that contributed.
	SourceCount int `json:"source_count" yaml:"source_count"`

	// ObservationCount is the number of observations used.
	ObservationCount int `json:"observation_count" yaml:"observation_count"`

	// Currency is the ISO 4217 code shared by all monetary fields.
	Currency string `json:"currency" yaml:"currency"`

	// EvaluatedAt is when the run was evaluated.
	EvaluatedAt time.Time `json:"evaluated_at" yaml:"evaluated_at"`
}

// RunDiagnostics accumulates the non-fatal drops of one recommendation run.
// Not part of the recommendation record itself; exposed for observability.
type RunDiagnostics struct {
	// FailedSources names adapters that errored or timed out.
	FailedSources []string `json:"failed_sources,omitempty" yaml:"failed_sources,omitempty"`

	// InvalidDropped counts observations rejected during normalization.
	InvalidDropped int `json:"invalid_dropped" yaml:"invalid_dropped"`

	// CurrencyDropped counts observations dropped for a mismatched currency.
	CurrencyDropped int `json:"currency_dropped" yaml:"currency_dropped"`
}
