package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/solar-yield-simulation/internal/solar"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestPredictedSeriesCoversWindow(t *testing.T) {
	now := time.Date(2026, time.June, 15, 9, 30, 0, 0, time.UTC)
	db := NewDummyDatabase(
		WithClock(fixedClock(now)),
		WithCurve(solar.NewCurve(solar.WithSeed(1))),
	)

	yields, err := db.GetPredictedSolarYieldsForLocation(context.Background(), "didcot")
	require.NoError(t, err)

	// Four days at a 5-minute step.
	require.Len(t, yields, 4*24*12)

	start, _ := solar.ForecastWindow(now)
	assert.Equal(t, start.Unix(), yields[0].TimeUnix)

	for i := 1; i < len(yields); i++ {
		assert.Equal(t, int64(300), yields[i].TimeUnix-yields[i-1].TimeUnix, "spacing at index %d", i)
	}
}

func TestPredictedSeriesValueBounds(t *testing.T) {
	now := time.Date(2026, time.June, 15, 9, 30, 0, 0, time.UTC)
	db := NewDummyDatabase(
		WithClock(fixedClock(now)),
		WithCurve(solar.NewCurve(solar.WithSeed(2))),
	)

	yields, err := db.GetPredictedSolarYieldsForLocation(context.Background(), "didcot")
	require.NoError(t, err)

	for _, y := range yields {
		assert.GreaterOrEqual(t, y.YieldKW, 0)
		assert.LessOrEqual(t, y.ErrLow, y.YieldKW)
		assert.GreaterOrEqual(t, y.ErrHigh, y.YieldKW)
	}
}

func TestLocationDoesNotAffectSeriesShape(t *testing.T) {
	now := time.Date(2026, time.June, 15, 9, 30, 0, 0, time.UTC)
	db := NewDummyDatabase(WithClock(fixedClock(now)))

	a, err := db.GetPredictedSolarYieldsForLocation(context.Background(), "didcot")
	require.NoError(t, err)
	b, err := db.GetPredictedSolarYieldsForLocation(context.Background(), "lowestoft")
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].TimeUnix, b[i].TimeUnix, "timestamp at index %d", i)
	}
}

func TestActualSeriesEndsBeforeNow(t *testing.T) {
	now := time.Date(2026, time.June, 15, 9, 30, 0, 0, time.UTC)
	db := NewDummyDatabase(
		WithClock(fixedClock(now)),
		WithCurve(solar.NewCurve(solar.WithSeed(3))),
	)

	yields, err := db.GetActualSolarYieldsForLocation(context.Background(), "didcot")
	require.NoError(t, err)

	start, _ := solar.ForecastWindow(now)
	wantSteps := int(now.Sub(start) / solar.Step)
	require.Len(t, yields, wantSteps)

	assert.Less(t, yields[len(yields)-1].TimeUnix, now.Unix())
}
