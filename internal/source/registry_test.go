// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/salary-engine/pkg/types"
)

func TestBuildAdaptersFromConfig(t *testing.T) {
	cfg := types.SourceConfig{
		Endpoints: []types.EndpointConfig{
			{Name: "levels_catalog", URL: "https://levels.example.com/api"},
			{Name: "boards", URL: "https://boards.example.com/api"},
		},
		ObservationsDir: "observations",
	}

	adapters := Build(cfg, nil, nil)
	require.Len(t, adapters, 3)
	assert.Equal(t, "levels_catalog", adapters[0].Name())
	assert.Equal(t, "boards", adapters[1].Name())
	assert.Equal(t, "survey_files", adapters[2].Name())
}

func TestBuildSkipsIncompleteEndpoints(t *testing.T) {
	cfg := types.SourceConfig{
		Endpoints: []types.EndpointConfig{
			{Name: "no_url"},
			{URL: "https://nameless.example.com"},
			{Name: "good", URL: "https://good.example.com"},
		},
	}

	adapters := Build(cfg, nil, nil)
	require.Len(t, adapters, 1)
	assert.Equal(t, "good", adapters[0].Name())
}

func TestBuildFillsAPIKeyFromSecrets(t *testing.T) {
	cfg := types.SourceConfig{
		Endpoints: []types.EndpointConfig{
			{Name: "levels_catalog", URL: "https://levels.example.com", APIKeyHeader: "X-Api-Key"},
			{Name: "boards", URL: "https://boards.example.com", APIKeyHeader: "X-Api-Key", APIKey: "explicit"},
		},
	}
	secrets := map[string]string{
		"levels_catalog-api-key": "from_secret",
		"boards-api-key":         "ignored_when_explicit",
	}

	adapters := Build(cfg, secrets, nil)
	require.Len(t, adapters, 2)

	levels := adapters[0].(*HTTPAdapter)
	assert.Equal(t, "from_secret", levels.Endpoint.APIKey)

	boards := adapters[1].(*HTTPAdapter)
	assert.Equal(t, "explicit", boards.Endpoint.APIKey)
}

func TestBuildEmptyConfig(t *testing.T) {
	assert.Empty(t, Build(types.SourceConfig{}, nil, nil))
}
