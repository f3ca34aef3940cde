package solar_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/solar-yield-simulation/internal/solar"
	"github.com/i474232898/solar-yield-simulation/internal/source"
	"github.com/i474232898/solar-yield-simulation/internal/store"
)

func TestSampleAndStoreRoundTrips(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	curve := solar.NewCurve(solar.WithSeed(1))
	memStore := store.NewMemoryStore(10, 0)
	svc := solar.NewService(
		source.NewDummyDatabase(source.WithCurve(curve)),
		memStore,
		curve,
		solar.WithServiceClock(func() time.Time { return now }),
	)

	require.NoError(t, svc.SampleAndStore(context.Background(), "didcot"))

	snap, err := svc.LatestSnapshot("didcot")
	require.NoError(t, err)
	assert.Equal(t, "didcot", snap.Location)
	assert.Equal(t, now, snap.Timestamp)
	assert.GreaterOrEqual(t, snap.YieldKW, 0.0)

	snaps, err := svc.SnapshotRange("didcot", now.Add(-time.Minute), now.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

func TestServiceDelegatesToDatabase(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	db := source.NewDummyDatabase(source.WithClock(func() time.Time { return now }))
	svc := solar.NewService(db, store.NewMemoryStore(10, 0), solar.NewCurve())

	predicted, err := svc.PredictedYields(context.Background(), "didcot")
	require.NoError(t, err)
	assert.Len(t, predicted, 4*24*12)

	actual, err := svc.ActualYields(context.Background(), "didcot")
	require.NoError(t, err)
	assert.NotEmpty(t, actual)
	assert.Less(t, len(actual), len(predicted))
}
