// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the salary recommendation
// pipeline: the job query, raw and normalized market observations, and the
// recommendation record the engine hands to callers.
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobQuery identifies the job a recommendation is requested for. It is used
// only as a lookup key passed to source adapters and carries no mutable state.
type JobQuery struct {
	// Title is the job title. Required; a recommendation run fails if empty.
	Title string `json:"title" yaml:"title"`

	// Description is an optional free-text job description.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Location is an optional location filter (e.g. "Singapore", "Remote").
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	// Grade is an optional internal job grade (e.g. "L5").
	Grade string `json:"grade,omitempty" yaml:"grade,omitempty"`
}

// IsEmpty reports whether the query lacks the required title.
func (q JobQuery) IsEmpty() bool {
	return q.Title == ""
}

// ValueKind distinguishes the two shapes a reported salary can take.
type ValueKind string

const (
	// ValueSingle is a single reported figure.
	ValueSingle ValueKind = "single"

	// ValueRange is a reported {min, max} band.
	ValueRange ValueKind = "range"
)

// SalaryValue holds one reported salary figure, either a single amount or a
// {min, max} band. Kind selects which fields are meaningful.
type SalaryValue struct {
	Kind ValueKind `json:"kind" yaml:"kind"`

	// Amount is the reported figure when Kind is single.
	Amount decimal.Decimal `json:"amount,omitempty" yaml:"amount,omitempty"`

	// Min and Max bound the reported band when Kind is range.
	Min decimal.Decimal `json:"min,omitempty" yaml:"min,omitempty"`
	Max decimal.Decimal `json:"max,omitempty" yaml:"max,omitempty"`
}

// Single returns a SalaryValue for one reported figure.
func Single(amount decimal.Decimal) SalaryValue {
	return SalaryValue{Kind: ValueSingle, Amount: amount}
}

// Range returns a SalaryValue for a reported {min, max} band.
func Range(min, max decimal.Decimal) SalaryValue {
	return SalaryValue{Kind: ValueRange, Min: min, Max: max}
}

// RawObservation is one market data point as returned by a source adapter.
// Immutable once produced.
type RawObservation struct {
	// Source identifies the market-data provider that reported this point.
	Source string `json:"source" yaml:"source"`

	// Value is the reported salary, a single figure or a band.
	Value SalaryValue `json:"value" yaml:"value"`

	// Currency is the ISO 4217 currency code of the reported value.
	Currency string `json:"currency" yaml:"currency"`

	// ObservedAt is when the data point was observed or published.
	ObservedAt time.Time `json:"observed_at" yaml:"observed_at"`

	// TitleMatch is the adapter's title-similarity score in [0,1], or nil
	// when the adapter does not provide one.
	TitleMatch *float64 `json:"title_match,omitempty" yaml:"title_match,omitempty"`
}

// NormalizedObservation is the engine-internal form of one observation:
// a single representative value, an age, and a match quality. Derived from
// exactly one RawObservation.
type NormalizedObservation struct {
	// Source identifies the originating provider.
	Source string `json:"source" yaml:"source"`

	// Value is the representative salary figure (band midpoint for ranges).
	Value decimal.Decimal `json:"value" yaml:"value"`

	// AgeDays is the observation age at evaluation time, clamped to >= 0.
	AgeDays float64 `json:"age_days" yaml:"age_days"`

	// Match is the title-match quality in [0,1]; 0.5 when unknown.
	Match float64 `json:"match" yaml:"match"`
}
