package routing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"headway/internal/domain"
	"headway/internal/i18n"
	"headway/internal/store"
	"headway/pkg/valhalla"
)

type fakeFetcher struct {
	mu    sync.Mutex
	trips []domain.Trip
	err   error
	calls []valhalla.RouteRequest
}

func (f *fakeFetcher) Route(ctx context.Context, req valhalla.RouteRequest) ([]domain.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.trips, f.err
}

type memCache struct {
	data map[string][]domain.Trip
}

func (m *memCache) GetTrips(ctx context.Context, key string) ([]domain.Trip, bool, error) {
	trips, ok := m.data[key]
	return trips, ok, nil
}

func (m *memCache) SetTrips(ctx context.Context, key string, trips []domain.Trip, ttl time.Duration) error {
	m.data[key] = trips
	return nil
}

type countingObserver struct {
	hits, misses int
}

func (o *countingObserver) IncCacheHits()   { o.hits++ }
func (o *countingObserver) IncCacheMisses() { o.misses++ }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLocalizer(t *testing.T) i18n.Localizer {
	t.Helper()
	c, err := i18n.NewCatalog("en")
	require.NoError(t, err)
	return c.Localizer("en")
}

func testTrips() []domain.Trip {
	return []domain.Trip{
		{
			Legs: []domain.Leg{{Maneuvers: []domain.Maneuver{
				{StreetNames: []string{"A"}, Length: 100},
				{StreetNames: []string{"B"}, Length: 5},
			}}},
			Summary: domain.TripSummary{Time: 3600, Length: 105},
			Units:   "kilometers",
		},
		{Summary: domain.TripSummary{Time: 4000, Length: 110}, Units: "kilometers"},
	}
}

func testQuery() Query {
	miles := domain.Miles
	return Query{
		From:  &domain.LatLon{Lat: 47.6, Lon: -122.3},
		To:    &domain.LatLon{Lat: 47.7, Lon: -122.4},
		Mode:  domain.TravelModeBicycle,
		Units: &miles,
	}
}

func TestFetchBest(t *testing.T) {
	fetcher := &fakeFetcher{trips: testTrips()}
	st := store.New(time.Hour)
	svc := NewService(fetcher, st, Options{Alternates: 3}, testLogger())

	res, err := svc.FetchBest(context.Background(), testLocalizer(t), testQuery())
	require.NoError(t, err)

	require.Len(t, res.Routes, 2)
	summaries := res.Summaries()
	assert.Equal(t, "A", summaries[0].ViaRoadsFormatted)
	assert.Equal(t, "1 hr", summaries[0].DurationFormatted)
	assert.Equal(t, "105.0 km", summaries[0].LengthFormatted)
	assert.NotEmpty(t, summaries[0].ID)
	assert.Equal(t, 2, st.Count())

	require.Len(t, fetcher.calls, 1)
	req := fetcher.calls[0]
	assert.Equal(t, "bicycle", req.Costing)
	assert.Equal(t, 3, req.Alternates)
	assert.Equal(t, "miles", req.Units)
	assert.Equal(t, valhalla.Location{Lat: 47.6, Lon: -122.3}, req.Locations[0])

	assert.Equal(t, 2, svc.Discard(res.SearchID))
	assert.Equal(t, 0, st.Count())
}

func TestFetchBestUpstreamFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	svc := NewService(fetcher, store.New(time.Hour), Options{}, testLogger())

	res, err := svc.FetchBest(context.Background(), testLocalizer(t), testQuery())
	require.NoError(t, err)
	assert.Empty(t, res.Routes)
	assert.NotEmpty(t, res.SearchID)
}

func TestFetchBestInvalidQuery(t *testing.T) {
	svc := NewService(&fakeFetcher{}, store.New(time.Hour), Options{}, testLogger())
	loc := testLocalizer(t)

	q := testQuery()
	q.To = nil
	_, err := svc.FetchBest(context.Background(), loc, q)
	assert.Error(t, err)

	q = testQuery()
	q.Mode = "teleport"
	_, err = svc.FetchBest(context.Background(), loc, q)
	assert.Error(t, err)
}

func TestQueryValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.LatLon
		to      domain.LatLon
		wantErr bool
	}{
		{"valid", domain.LatLon{Lat: 47.6, Lon: -122.3}, domain.LatLon{Lat: -33.9, Lon: 151.2}, false},
		{"edges", domain.LatLon{Lat: -90, Lon: -180}, domain.LatLon{Lat: 90, Lon: 180}, false},
		{"latitude too high", domain.LatLon{Lat: 91, Lon: 0}, domain.LatLon{}, true},
		{"longitude too low", domain.LatLon{}, domain.LatLon{Lat: 0, Lon: -180.5}, true},
		{"not a number", domain.LatLon{Lat: math.NaN(), Lon: 0}, domain.LatLon{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := testQuery()
			q.From, q.To = &tt.from, &tt.to
			err := q.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFetchBestRejectsOutOfRange(t *testing.T) {
	fetcher := &fakeFetcher{trips: testTrips()}
	svc := NewService(fetcher, store.New(time.Hour), Options{}, testLogger())

	q := testQuery()
	q.To = &domain.LatLon{Lat: 120, Lon: 0}
	_, err := svc.FetchBest(context.Background(), testLocalizer(t), q)
	assert.ErrorContains(t, err, "out of range")
	assert.Empty(t, fetcher.calls)
}

func TestFetchBestUsesCache(t *testing.T) {
	fetcher := &fakeFetcher{trips: testTrips()}
	observer := &countingObserver{}
	svc := NewService(fetcher, store.New(time.Hour), Options{
		Cache:    &memCache{data: map[string][]domain.Trip{}},
		CacheTTL: time.Minute,
		Observer: observer,
	}, testLogger())
	loc := testLocalizer(t)

	first, err := svc.FetchBest(context.Background(), loc, testQuery())
	require.NoError(t, err)
	second, err := svc.FetchBest(context.Background(), loc, testQuery())
	require.NoError(t, err)

	assert.Len(t, fetcher.calls, 1)
	assert.Equal(t, 1, observer.hits)
	assert.Equal(t, 1, observer.misses)
	assert.Len(t, second.Routes, 2)
	assert.NotEqual(t, first.SearchID, second.SearchID)
	assert.NotEqual(t, first.Routes[0].Summary.ID, second.Routes[0].Summary.ID)
}

func TestFetchBestDoesNotCacheEmpty(t *testing.T) {
	fetcher := &fakeFetcher{}
	cache := &memCache{data: map[string][]domain.Trip{}}
	svc := NewService(fetcher, store.New(time.Hour), Options{Cache: cache}, testLogger())

	_, err := svc.FetchBest(context.Background(), testLocalizer(t), testQuery())
	require.NoError(t, err)
	assert.Empty(t, cache.data)
}
