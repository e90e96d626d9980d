// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"net/http"

	"github.com/meshintel/salary-engine/pkg/types"
)

// Build assembles the adapter set from configuration: one HTTP adapter per
// configured endpoint plus the file adapter when an observations directory
// is set. Endpoints without an explicit API key fall back to the secret
// named "<endpoint-name>-api-key".
func Build(cfg types.SourceConfig, secrets map[string]string, client *http.Client) []Adapter {
	adapters := make([]Adapter, 0, len(cfg.Endpoints)+1)

	for _, ep := range cfg.Endpoints {
		if ep.URL == "" || ep.Name == "" {
			continue
		}
		if ep.APIKey == "" {
			if key, ok := secrets[ep.Name+"-api-key"]; ok {
				ep.APIKey = key
			}
		}
		adapters = append(adapters, &HTTPAdapter{
			Client:   client,
			Endpoint: ep,
			HTTP:     cfg.HTTPConfig,
		})
	}

	if cfg.ObservationsDir != "" {
		adapters = append(adapters, &FileAdapter{Dir: cfg.ObservationsDir})
	}

	return adapters
}
