package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/solar-yield-simulation/internal/solar"
)

func snapshotAt(ts time.Time, kw float64) solar.YieldSnapshot {
	return solar.YieldSnapshot{
		Location:  "didcot",
		Timestamp: ts,
		YieldKW:   kw,
	}
}

func TestGetLatestEmpty(t *testing.T) {
	s := NewMemoryStore(10, time.Hour)

	_, err := s.GetLatest("didcot")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveAndGetLatest(t *testing.T) {
	s := NewMemoryStore(10, 0)
	now := time.Now().UTC()

	s.SaveSnapshot("didcot", snapshotAt(now.Add(-time.Minute), 1))
	s.SaveSnapshot("didcot", snapshotAt(now, 2))

	latest, err := s.GetLatest("didcot")
	require.NoError(t, err)
	assert.Equal(t, 2.0, latest.YieldKW)
}

func TestCountRetention(t *testing.T) {
	s := NewMemoryStore(2, 0)
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		s.SaveSnapshot("didcot", snapshotAt(now.Add(time.Duration(i)*time.Minute), float64(i)))
	}

	snaps, err := s.GetRange("didcot", now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 3.0, snaps[0].YieldKW)
	assert.Equal(t, 4.0, snaps[1].YieldKW)
}

func TestAgeRetention(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)
	now := time.Now().UTC()

	s.SaveSnapshot("didcot", snapshotAt(now.Add(-2*time.Hour), 1))
	s.SaveSnapshot("didcot", snapshotAt(now, 2))

	snaps, err := s.GetRange("didcot", now.Add(-24*time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, 2.0, snaps[0].YieldKW)
}

func TestGetRangeBounds(t *testing.T) {
	s := NewMemoryStore(0, 0)
	base := time.Now().UTC().Truncate(time.Minute)

	for i := 0; i < 4; i++ {
		s.SaveSnapshot("didcot", snapshotAt(base.Add(time.Duration(i)*time.Minute), float64(i)))
	}

	// Bounds are inclusive on both ends.
	snaps, err := s.GetRange("didcot", base.Add(time.Minute), base.Add(2*time.Minute))
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 1.0, snaps[0].YieldKW)
	assert.Equal(t, 2.0, snaps[1].YieldKW)

	_, err = s.GetRange("didcot", base.Add(time.Hour), base.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocationsAreIsolated(t *testing.T) {
	s := NewMemoryStore(10, 0)
	now := time.Now().UTC()

	s.SaveSnapshot("didcot", snapshotAt(now, 1))

	_, err := s.GetLatest("lowestoft")
	assert.ErrorIs(t, err, ErrNotFound)
}
