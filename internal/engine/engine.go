// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meshintel/salary-engine/internal/source"
	"github.com/meshintel/salary-engine/pkg/types"
)

// Recommend runs one recommendation: it fans the query out to every adapter
// concurrently, normalizes and weights the surviving observations, derives
// the percentile distribution, scores confidence, and assembles the result.
//
// Each adapter call is bounded by cfg.AdapterTimeout; a failed or timed-out
// adapter contributes zero observations and is recorded on the diagnostics,
// never aborting the run. The fan-out waits for every adapter to resolve
// before merging. Progress and warnings are written to w.
//
// Fails with ErrInsufficientData when no valid observations survive, and
// ErrInternalConsistency on an invariant violation. The engine persists
// nothing; the returned result is the caller's to store.
func Recommend(ctx context.Context, query types.JobQuery, adapters []source.Adapter, cfg types.EngineConfig, w io.Writer) (types.RecommendationResult, types.RunDiagnostics, error) {
	var diag types.RunDiagnostics

	if query.IsEmpty() {
		return types.RecommendationResult{}, diag, fmt.Errorf("query has no job title")
	}

	timeout := cfg.AdapterTimeout
	if timeout <= 0 {
		timeout = types.DefaultEngineConfig().AdapterTimeout
	}

	type adapterResult struct {
		name         string
		observations []types.RawObservation
		err          error
	}

	ch := make(chan adapterResult, len(adapters))
	var wg sync.WaitGroup

	for _, a := range adapters {
		wg.Add(1)
		go func(a source.Adapter) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			observations, err := a.Fetch(callCtx, query)
			ch <- adapterResult{name: a.Name(), observations: observations, err: err}
		}(a)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	// Merge only after every source has resolved or timed out.
	var raws []types.RawObservation
	for r := range ch {
		if r.err != nil {
			diag.FailedSources = append(diag.FailedSources, r.name)
			fmt.Fprintf(w, "warning: source %s unavailable: %v\n", r.name, r.err)
			continue
		}
		raws = append(raws, r.observations...)
	}

	asOf := time.Now()
	observations, currency := NormalizeBatch(raws, asOf, &diag)
	if len(observations) == 0 {
		return types.RecommendationResult{}, diag, fmt.Errorf("%w: no valid observations for %q", ErrInsufficientData, query.Title)
	}

	contribs := Aggregate(observations, cfg.MaxSourceShare)

	multiset, err := BuildMultiset(observations, contribs)
	if err != nil {
		return types.RecommendationResult{}, diag, err
	}
	dist, err := Distribution(multiset)
	if err != nil {
		return types.RecommendationResult{}, diag, err
	}

	confidence := Score(contribs, len(observations), cfg.Confidence)
	scenarios := Scenarios(multiset, dist)

	result := types.RecommendationResult{
		ID:               uuid.NewString(),
		Query:            query,
		Target:           dist.P50,
		Range:            types.SalaryBand{Low: dist.P25, High: dist.P75},
		Distribution:     dist,
		Confidence:       confidence,
		Scenarios:        scenarios,
		Contributions:    contribs,
		SourceCount:      len(contribs),
		ObservationCount: len(observations),
		Currency:         currency,
		EvaluatedAt:      asOf,
	}

	return result, diag, nil
}
