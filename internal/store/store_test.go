package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"headway/internal/domain"
)

func routes(durations ...float64) []Route {
	out := make([]Route, 0, len(durations))
	for _, d := range durations {
		out = append(out, Route{
			Summary: domain.RouteSummary{DurationSeconds: d},
			Trip:    domain.Trip{Summary: domain.TripSummary{Time: d}},
		})
	}
	return out
}

func TestSaveAndGet(t *testing.T) {
	s := New(time.Hour)

	searchID, saved := s.Save(routes(60, 120))
	require.NotEmpty(t, searchID)
	require.Len(t, saved, 2)
	assert.NotEmpty(t, saved[0].Summary.ID)
	assert.NotEqual(t, saved[0].Summary.ID, saved[1].Summary.ID)
	assert.Equal(t, 60.0, saved[0].Summary.DurationSeconds)
	assert.Equal(t, 120.0, saved[1].Summary.DurationSeconds)

	got, err := s.Get(saved[1].Summary.ID)
	require.NoError(t, err)
	assert.Equal(t, saved[1], got)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 2, s.Count())
	assert.Equal(t, 1, s.SearchCount())
	found, err := s.Search(searchID)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, saved, found)

	_, err = s.Search("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveEmpty(t *testing.T) {
	s := New(time.Hour)

	searchID, saved := s.Save(nil)
	assert.NotEmpty(t, searchID)
	assert.Empty(t, saved)
	assert.Equal(t, 0, s.Count())

	found, err := s.Search(searchID)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDiscard(t *testing.T) {
	s := New(time.Hour)

	first, firstRoutes := s.Save(routes(60, 120))
	second, _ := s.Save(routes(30))

	assert.Equal(t, 2, s.Discard(first))
	assert.Equal(t, 0, s.Discard(first))
	assert.Equal(t, 1, s.Count())

	_, err := s.Get(firstRoutes[0].Summary.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	found, err := s.Search(second)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = s.Search(first)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPruneStale(t *testing.T) {
	s := New(10 * time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Save(routes(60, 120))

	now = now.Add(5 * time.Minute)
	_, fresh := s.Save(routes(30))

	now = now.Add(6 * time.Minute)
	assert.Equal(t, 2, s.PruneStale())
	assert.Equal(t, 1, s.Count())

	_, err := s.Get(fresh[0].Summary.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, s.SearchCount())
}

func TestPruneStaleDropsEmptySearches(t *testing.T) {
	s := New(time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	searchID, _ := s.Save(nil)
	require.Equal(t, 1, s.SearchCount())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 0, s.PruneStale())
	assert.Equal(t, 0, s.SearchCount())

	_, err := s.Search(searchID)
	assert.ErrorIs(t, err, ErrNotFound)
}
