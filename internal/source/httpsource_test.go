// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/salary-engine/internal/httputil"
	"github.com/meshintel/salary-engine/pkg/types"
)

func init() {
	// Use a tiny base delay so retry tests finish quickly.
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func testHTTPCfg() types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:   5 * time.Second,
		UserAgent: "salary-engine-test/0.1",
	}
}

const observationsBody = `{
	"observations": [
		{"salary": "85000", "currency": "USD", "observed_at": "2026-08-01T00:00:00Z", "title_match": 0.9},
		{"salary_min": "60000", "salary_max": "80000", "currency": "USD", "observed_at": "2026-07-15T00:00:00Z"},
		{"currency": "USD", "observed_at": "2026-07-01T00:00:00Z"}
	]
}`

func TestHTTPAdapterFetch(t *testing.T) {
	var gotQuery, gotAgent, gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("title")
		gotAgent = r.Header.Get("User-Agent")
		gotKey = r.Header.Get("X-Api-Key")
		fmt.Fprint(w, observationsBody)
	}))
	defer ts.Close()

	a := &HTTPAdapter{
		Client: ts.Client(),
		Endpoint: types.EndpointConfig{
			Name:         "levels_catalog",
			URL:          ts.URL,
			APIKeyHeader: "X-Api-Key",
			APIKey:       "pk_test",
		},
		HTTP: testHTTPCfg(),
	}

	observations, err := a.Fetch(context.Background(), types.JobQuery{Title: "Backend Engineer"})
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", gotQuery)
	assert.Equal(t, "salary-engine-test/0.1", gotAgent)
	assert.Equal(t, "pk_test", gotKey)

	// The third wire point has no salary fields and is skipped.
	require.Len(t, observations, 2)

	assert.Equal(t, "levels_catalog", observations[0].Source)
	assert.Equal(t, types.ValueSingle, observations[0].Value.Kind)
	assert.Equal(t, "85000", observations[0].Value.Amount.String())
	assert.Equal(t, "USD", observations[0].Currency)
	require.NotNil(t, observations[0].TitleMatch)
	assert.Equal(t, 0.9, *observations[0].TitleMatch)

	assert.Equal(t, types.ValueRange, observations[1].Value.Kind)
	assert.Equal(t, "60000", observations[1].Value.Min.String())
	assert.Equal(t, "80000", observations[1].Value.Max.String())
	assert.Nil(t, observations[1].TitleMatch)
}

func TestHTTPAdapterSendsLocationAndGrade(t *testing.T) {
	var gotLocation, gotGrade string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocation = r.URL.Query().Get("location")
		gotGrade = r.URL.Query().Get("grade")
		fmt.Fprint(w, `{"observations": []}`)
	}))
	defer ts.Close()

	a := &HTTPAdapter{
		Client:   ts.Client(),
		Endpoint: types.EndpointConfig{Name: "boards", URL: ts.URL},
		HTTP:     testHTTPCfg(),
	}

	observations, err := a.Fetch(context.Background(), types.JobQuery{
		Title:    "Backend Engineer",
		Location: "Singapore",
		Grade:    "L5",
	})
	require.NoError(t, err)
	assert.Empty(t, observations)
	assert.Equal(t, "Singapore", gotLocation)
	assert.Equal(t, "L5", gotGrade)
}

func TestHTTPAdapterServerErrorIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	a := &HTTPAdapter{
		Client:   ts.Client(),
		Endpoint: types.EndpointConfig{Name: "boards", URL: ts.URL},
		HTTP:     testHTTPCfg(),
	}

	_, err := a.Fetch(context.Background(), types.JobQuery{Title: "Analyst"})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestHTTPAdapterMalformedBodyIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	defer ts.Close()

	a := &HTTPAdapter{
		Client:   ts.Client(),
		Endpoint: types.EndpointConfig{Name: "boards", URL: ts.URL},
		HTTP:     testHTTPCfg(),
	}

	_, err := a.Fetch(context.Background(), types.JobQuery{Title: "Analyst"})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestHTTPAdapterRetriesRateLimit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"observations": []}`)
	}))
	defer ts.Close()

	a := &HTTPAdapter{
		Client:   ts.Client(),
		Endpoint: types.EndpointConfig{Name: "boards", URL: ts.URL},
		HTTP:     testHTTPCfg(),
	}

	_, err := a.Fetch(context.Background(), types.JobQuery{Title: "Analyst"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPAdapterUnreachableHostIsUnavailable(t *testing.T) {
	a := &HTTPAdapter{
		Endpoint: types.EndpointConfig{Name: "boards", URL: "http://127.0.0.1:1"},
		HTTP:     types.HTTPConfig{Timeout: 200 * time.Millisecond},
	}

	_, err := a.Fetch(context.Background(), types.JobQuery{Title: "Analyst"})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
