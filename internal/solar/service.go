package solar

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Service fronts the yield database and the live snapshot store for the API
// and the sampling scheduler.
type Service struct {
	db    Database
	store Store
	curve *Curve
	now   func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceClock overrides the service's clock, for tests.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new Service.
func NewService(db Database, store Store, curve *Curve, opts ...ServiceOption) *Service {
	s := &Service{
		db:    db,
		store: store,
		curve: curve,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PredictedYields delegates to the underlying database.
func (s *Service) PredictedYields(ctx context.Context, location string) ([]PredictedYield, error) {
	return s.db.GetPredictedSolarYieldsForLocation(ctx, location)
}

// ActualYields delegates to the underlying database.
func (s *Service) ActualYields(ctx context.Context, location string) ([]PredictedYield, error) {
	return s.db.GetActualSolarYieldsForLocation(ctx, location)
}

// SampleAndStore draws the instantaneous yield for a location from the curve
// and appends it to the snapshot store. It emulates a live telemetry feed;
// the context is accepted for interface symmetry with a real feed but the
// draw itself cannot block.
func (s *Service) SampleAndStore(_ context.Context, location string) error {
	now := s.now().UTC()
	est := s.curve.At(now.Unix())

	snapshot := YieldSnapshot{
		Location:  location,
		Timestamp: now,
		YieldKW:   est.YieldKW,
		ErrLow:    est.ErrLow,
		ErrHigh:   est.ErrHigh,
	}
	s.store.SaveSnapshot(location, snapshot)

	log.Debug().
		Str("location", location).
		Float64("yieldKW", est.YieldKW).
		Time("sampledAt", now).
		Msg("stored live yield sample")
	return nil
}

// LatestSnapshot delegates to the underlying store.
func (s *Service) LatestSnapshot(location string) (YieldSnapshot, error) {
	return s.store.GetLatest(location)
}

// SnapshotRange delegates to the underlying store.
func (s *Service) SnapshotRange(location string, from, to time.Time) ([]YieldSnapshot, error) {
	return s.store.GetRange(location, from, to)
}
