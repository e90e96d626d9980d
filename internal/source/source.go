// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source fetches raw salary observations from market-data providers.
// Each provider implements the Adapter interface per the Strategy pattern;
// the engine never branches on provider type, so adding a source means
// adding an adapter, nothing else.
package source

import (
	"context"
	"errors"

	"github.com/meshintel/salary-engine/pkg/types"
)

// ErrSourceUnavailable marks an adapter failure or timeout. The engine
// treats a source wrapped in it as contributing zero observations, never as
// a fatal condition for the recommendation.
var ErrSourceUnavailable = errors.New("source unavailable")

// Adapter fetches observations from one market-data provider. An empty
// result is valid ("no data found"); errors should wrap
// ErrSourceUnavailable. Retry policy, if any, belongs inside the adapter.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, query types.JobQuery) ([]types.RawObservation, error)
}
