// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for adapters that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "salary-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EndpointConfig describes one HTTP observation endpoint. Endpoints share a
// common JSON response shape, so adding a provider is configuration only.
type EndpointConfig struct {
	// Name is the source identifier attached to every observation the
	// endpoint yields (e.g. "levels_catalog").
	Name string `json:"name" yaml:"name"`

	// URL is the endpoint base URL.
	URL string `json:"url" yaml:"url"`

	// APIKeyHeader is the header name the key is sent under, when set
	// (e.g. "X-Api-Key").
	APIKeyHeader string `json:"api_key_header,omitempty" yaml:"api_key_header,omitempty"`

	// APIKey is the key value. Usually loaded from .secrets/ rather than
	// written into the config file.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// SourceConfig holds settings for the observation source adapters.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoints lists the HTTP observation endpoints to query.
	Endpoints []EndpointConfig `json:"endpoints" yaml:"endpoints"`

	// ObservationsDir is a directory of YAML/JSON observation batch files
	// (survey catalogs delivered as files). Empty disables the file adapter.
	ObservationsDir string `json:"observations_dir,omitempty" yaml:"observations_dir,omitempty"`
}

// SampleStep is one step of the sample-size scoring curve: batches of at
// least MinObservations earn Points.
type SampleStep struct {
	MinObservations int     `json:"min_observations" yaml:"min_observations"`
	Points          float64 `json:"points" yaml:"points"`
}

// ConfidenceConfig calibrates the confidence scorer. The defaults are a
// reference calibration; deployments may tune them, but each curve must stay
// monotone and within its point budget.
type ConfidenceConfig struct {
	// CoverageSteps awards coverage points by distinct source count:
	// index 0 is one source, index 1 two sources, and so on. Counts past
	// the last step earn the last step's points.
	CoverageSteps []float64 `json:"coverage_steps" yaml:"coverage_steps"`

	// SampleSteps awards sample-size points, ascending by MinObservations.
	SampleSteps []SampleStep `json:"sample_steps" yaml:"sample_steps"`

	// StalenessHorizonDays is the mean age at which the recency score
	// reaches zero.
	StalenessHorizonDays float64 `json:"staleness_horizon_days" yaml:"staleness_horizon_days"`
}

// DefaultConfidenceConfig returns the reference calibration.
func DefaultConfidenceConfig() ConfidenceConfig {
	return ConfidenceConfig{
		CoverageSteps: []float64{7.5, 18, 25, 30},
		SampleSteps: []SampleStep{
			{MinObservations: 1, Points: 3},
			{MinObservations: 5, Points: 6},
			{MinObservations: 10, Points: 12},
			{MinObservations: 25, Points: 18},
			{MinObservations: 50, Points: 24},
			{MinObservations: 100, Points: 30},
		},
		StalenessHorizonDays: 180,
	}
}

// EngineConfig holds settings for the recommendation engine.
type EngineConfig struct {
	// AdapterTimeout bounds each source adapter call; a call that exceeds
	// it is treated as an unavailable source (default 10s).
	AdapterTimeout time.Duration `json:"adapter_timeout" yaml:"adapter_timeout"`

	// MaxSourceShare caps one source's weight when two or more sources are
	// present (default 0.70).
	MaxSourceShare float64 `json:"max_source_share" yaml:"max_source_share"`

	// Confidence calibrates the confidence scorer.
	Confidence ConfidenceConfig `json:"confidence" yaml:"confidence"`
}

// DefaultEngineConfig returns the engine defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		AdapterTimeout: 10 * time.Second,
		MaxSourceShare: 0.70,
		Confidence:     DefaultConfidenceConfig(),
	}
}

// StoreConfig holds settings for the recommendation history store.
type StoreConfig struct {
	// DataDir is the directory holding history.db and exports.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}
