// Package source provides a synthetic implementation of the solar.Database
// contract, so downstream consumers can run against a database-shaped API
// without a real data source.
package source

import (
	"context"
	"time"

	"github.com/i474232898/solar-yield-simulation/internal/solar"
)

// DummyDatabase implements solar.Database with curve-generated series.
// Every call recomputes its window from the clock; it holds no state beyond
// the configured curve.
type DummyDatabase struct {
	curve *solar.Curve
	now   func() time.Time
}

// Option configures a DummyDatabase.
type Option func(*DummyDatabase)

// WithCurve replaces the default curve.
func WithCurve(curve *solar.Curve) Option {
	return func(d *DummyDatabase) {
		d.curve = curve
	}
}

// WithClock overrides the database's clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(d *DummyDatabase) {
		d.now = now
	}
}

// NewDummyDatabase creates a DummyDatabase with a default curve and the real
// clock.
func NewDummyDatabase(opts ...Option) *DummyDatabase {
	d := &DummyDatabase{
		curve: solar.NewCurve(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// GetPredictedSolarYieldsForLocation generates the predicted series over the
// full forecast window.
//
// The location parameter is accepted but does not affect the output: the
// generator is location-agnostic, and the parameter is a placeholder for
// future per-location modelling.
func (d *DummyDatabase) GetPredictedSolarYieldsForLocation(_ context.Context, location string) ([]solar.PredictedYield, error) {
	_ = location
	start, end := solar.ForecastWindow(d.now())
	return d.series(start, end), nil
}

// GetActualSolarYieldsForLocation generates the realized series from the
// window start up to now; actuals only exist for the past. The same curve
// drives it with independent noise draws, so actuals plausibly disagree with
// the prediction. Location is ignored, as for predictions.
func (d *DummyDatabase) GetActualSolarYieldsForLocation(_ context.Context, location string) ([]solar.PredictedYield, error) {
	_ = location
	now := d.now()
	start, _ := solar.ForecastWindow(now)
	return d.series(start, now), nil
}

// series steps through [start, end) at the fixed interval and evaluates the
// curve at each step. A degenerate window produces an empty series, never an
// error.
func (d *DummyDatabase) series(start, end time.Time) []solar.PredictedYield {
	steps := int(end.Sub(start) / solar.Step)
	yields := make([]solar.PredictedYield, 0, max(steps, 0))

	for i := 0; i < steps; i++ {
		t := start.Add(time.Duration(i) * solar.Step)
		est := d.curve.At(t.Unix())
		yields = append(yields, solar.PredictedYield{
			TimeUnix: t.Unix(),
			YieldKW:  int(est.YieldKW),
			ErrLow:   int(est.ErrLow),
			ErrHigh:  int(est.ErrHigh),
		})
	}
	return yields
}
