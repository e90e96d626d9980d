// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/meshintel/salary-engine/pkg/types"
)

// yamlTags decodes config keys against the yaml tags on pkg/types structs,
// so the config file and the store export share one spelling of each field.
func yamlTags(dc *mapstructure.DecoderConfig) {
	dc.TagName = "yaml"
}

// sourceConfig builds the adapter configuration from viper, with defaults
// where the config file is silent.
func sourceConfig() types.SourceConfig {
	cfg := types.SourceConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "salary-engine/" + version,
		},
		ObservationsDir: viper.GetString("sources.observations_dir"),
	}

	if d := viper.GetDuration("sources.timeout"); d > 0 {
		cfg.Timeout = d
	}
	if ua := viper.GetString("sources.user_agent"); ua != "" {
		cfg.UserAgent = ua
	}
	_ = viper.UnmarshalKey("sources.endpoints", &cfg.Endpoints, yamlTags)

	return cfg
}

// engineConfig builds the engine configuration from viper over the defaults.
func engineConfig() types.EngineConfig {
	cfg := types.DefaultEngineConfig()

	if d := viper.GetDuration("engine.adapter_timeout"); d > 0 {
		cfg.AdapterTimeout = d
	}
	if share := viper.GetFloat64("engine.max_source_share"); share > 0 && share < 1 {
		cfg.MaxSourceShare = share
	}

	var confidence types.ConfidenceConfig
	if err := viper.UnmarshalKey("engine.confidence", &confidence, yamlTags); err == nil {
		if len(confidence.CoverageSteps) > 0 {
			cfg.Confidence.CoverageSteps = confidence.CoverageSteps
		}
		if len(confidence.SampleSteps) > 0 {
			cfg.Confidence.SampleSteps = confidence.SampleSteps
		}
		if confidence.StalenessHorizonDays > 0 {
			cfg.Confidence.StalenessHorizonDays = confidence.StalenessHorizonDays
		}
	}

	return cfg
}

// storeConfig builds the history store configuration from viper.
func storeConfig() types.StoreConfig {
	cfg := types.StoreConfig{DataDir: "data"}
	if dir := viper.GetString("store.data_dir"); dir != "" {
		cfg.DataDir = dir
	}
	return cfg
}
