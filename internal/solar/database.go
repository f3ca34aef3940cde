package solar

import (
	"context"
	"time"
)

// Database is the data-access contract the simulator implements. A real
// data-backed implementation is a drop-in substitute; methods take a context
// so such a backend can honor cancellation.
type Database interface {
	// GetPredictedSolarYieldsForLocation returns the predicted yield series
	// for a location over the forecast window, ordered by time ascending.
	GetPredictedSolarYieldsForLocation(ctx context.Context, location string) ([]PredictedYield, error)

	// GetActualSolarYieldsForLocation returns the realized yield series for
	// a location from the window start up to (but not including) now.
	GetActualSolarYieldsForLocation(ctx context.Context, location string) ([]PredictedYield, error)
}

// Store is the contract the in-memory snapshot store (and any future
// persistent store) must satisfy.
type Store interface {
	SaveSnapshot(location string, snapshot YieldSnapshot)
	GetLatest(location string) (YieldSnapshot, error)
	GetRange(location string, from, to time.Time) ([]YieldSnapshot, error)
}
