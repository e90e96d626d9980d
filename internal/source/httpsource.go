// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meshintel/salary-engine/internal/httputil"
	"github.com/meshintel/salary-engine/pkg/types"
)

// HTTPAdapter queries one HTTP observation endpoint. Endpoints share a
// common JSON response shape (see wireResponse), so any provider that can be
// proxied into that shape is wired through configuration alone.
type HTTPAdapter struct {
	Client   *http.Client
	Endpoint types.EndpointConfig
	HTTP     types.HTTPConfig
}

// wireResponse is the JSON document an observation endpoint returns.
type wireResponse struct {
	Observations []wireObservation `json:"observations"`
}

// wireObservation is one data point on the wire. Either salary, or
// salary_min and salary_max, must be present.
type wireObservation struct {
	Salary     *decimal.Decimal `json:"salary,omitempty"`
	SalaryMin  *decimal.Decimal `json:"salary_min,omitempty"`
	SalaryMax  *decimal.Decimal `json:"salary_max,omitempty"`
	Currency   string           `json:"currency"`
	ObservedAt time.Time        `json:"observed_at"`
	TitleMatch *float64         `json:"title_match,omitempty"`
}

// Name returns the source identifier from the endpoint configuration.
func (a *HTTPAdapter) Name() string { return a.Endpoint.Name }

// Fetch queries the endpoint for observations matching the job query.
// Rate-limit responses are retried with backoff; any other failure is
// reported as an unavailable source.
func (a *HTTPAdapter) Fetch(ctx context.Context, query types.JobQuery) ([]types.RawObservation, error) {
	params := url.Values{"title": {query.Title}}
	if query.Location != "" {
		params.Set("location", query.Location)
	}
	if query.Grade != "" {
		params.Set("grade", query.Grade)
	}

	reqURL := a.Endpoint.URL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: creating request: %v", ErrSourceUnavailable, a.Name(), err)
	}
	req.Header.Set("User-Agent", a.HTTP.UserAgent)
	if a.Endpoint.APIKey != "" && a.Endpoint.APIKeyHeader != "" {
		req.Header.Set(a.Endpoint.APIKeyHeader, a.Endpoint.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, a.client(), req, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, a.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned HTTP %d", ErrSourceUnavailable, a.Name(), resp.StatusCode)
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %s: parsing response: %v", ErrSourceUnavailable, a.Name(), err)
	}

	observations := make([]types.RawObservation, 0, len(wire.Observations))
	for _, w := range wire.Observations {
		obs := types.RawObservation{
			Source:     a.Name(),
			Currency:   w.Currency,
			ObservedAt: w.ObservedAt,
			TitleMatch: w.TitleMatch,
		}
		switch {
		case w.Salary != nil:
			obs.Value = types.Single(*w.Salary)
		case w.SalaryMin != nil && w.SalaryMax != nil:
			obs.Value = types.Range(*w.SalaryMin, *w.SalaryMax)
		default:
			// Malformed point; the normalizer would reject it anyway,
			// skip it here to keep the batch clean.
			continue
		}
		observations = append(observations, obs)
	}

	return observations, nil
}

func (a *HTTPAdapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	timeout := a.HTTP.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
