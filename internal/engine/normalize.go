// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine blends salary observations from independent market-data
// sources into a single recommendation: it normalizes raw observations,
// weights each source's contribution, derives a weighted percentile
// distribution, scores confidence, and emits named pricing scenarios.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meshintel/salary-engine/pkg/types"
)

var (
	// ErrInvalidObservation marks a single observation that failed
	// normalization. Dropped from the batch, never fatal to the run.
	ErrInvalidObservation = errors.New("invalid observation")

	// ErrCurrencyMismatch marks an observation in a currency other than
	// the run's established one. Dropped, never fatal.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// defaultMatch is the match quality assigned when an adapter supplies no
// title-similarity score: neither penalized nor rewarded.
const defaultMatch = 0.5

// Normalize converts one raw observation into its engine-internal form,
// evaluated as of asOf. A range becomes its midpoint (min and max swapped
// first if reversed), a non-positive value is rejected with
// ErrInvalidObservation, and a future-dated observation gets age zero.
func Normalize(raw types.RawObservation, asOf time.Time) (types.NormalizedObservation, error) {
	var value decimal.Decimal
	switch raw.Value.Kind {
	case types.ValueSingle:
		value = raw.Value.Amount
	case types.ValueRange:
		min, max := raw.Value.Min, raw.Value.Max
		if min.GreaterThan(max) {
			min, max = max, min
		}
		value = min.Add(max).Div(decimal.NewFromInt(2))
	default:
		return types.NormalizedObservation{}, fmt.Errorf("%w: unknown value kind %q", ErrInvalidObservation, raw.Value.Kind)
	}

	if !value.IsPositive() {
		return types.NormalizedObservation{}, fmt.Errorf("%w: non-positive value %s from %s", ErrInvalidObservation, value, raw.Source)
	}

	age := asOf.Sub(raw.ObservedAt).Hours() / 24
	if age < 0 {
		age = 0
	}

	match := defaultMatch
	if raw.TitleMatch != nil {
		match = *raw.TitleMatch
		if match < 0 {
			match = 0
		} else if match > 1 {
			match = 1
		}
	}

	return types.NormalizedObservation{
		Source:  raw.Source,
		Value:   value,
		AgeDays: age,
		Match:   match,
	}, nil
}

// NormalizeBatch normalizes a batch of raw observations, dropping invalid
// values and currency mismatches without failing. The first normalizable
// observation establishes the batch currency; later observations in another
// currency are dropped and counted on diag. Returns the surviving
// observations and the batch currency ("" when nothing survived).
func NormalizeBatch(raws []types.RawObservation, asOf time.Time, diag *types.RunDiagnostics) ([]types.NormalizedObservation, string) {
	var out []types.NormalizedObservation
	currency := ""

	for _, raw := range raws {
		obs, err := Normalize(raw, asOf)
		if err == nil && currency != "" && raw.Currency != currency {
			err = fmt.Errorf("%w: %s from %s, batch is %s", ErrCurrencyMismatch, raw.Currency, raw.Source, currency)
		}
		switch {
		case errors.Is(err, ErrCurrencyMismatch):
			diag.CurrencyDropped++
			continue
		case err != nil:
			diag.InvalidDropped++
			continue
		}
		if currency == "" {
			currency = raw.Currency
		}
		out = append(out, obs)
	}

	return out, currency
}
