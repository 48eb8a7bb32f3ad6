package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"headway/internal/cache"
	"headway/internal/domain"
	"headway/internal/i18n"
	"headway/internal/store"
	"headway/internal/summary"
	"headway/pkg/valhalla"
)

// Fetcher is the routing engine call the service depends on.
type Fetcher interface {
	Route(ctx context.Context, req valhalla.RouteRequest) ([]domain.Trip, error)
}

// TripCache caches routing engine responses. A nil TripCache disables caching.
type TripCache interface {
	GetTrips(ctx context.Context, key string) ([]domain.Trip, bool, error)
	SetTrips(ctx context.Context, key string, trips []domain.Trip, ttl time.Duration) error
}

// CacheObserver is told about every cache lookup.
type CacheObserver interface {
	IncCacheHits()
	IncCacheMisses()
}

// Query describes one route search.
type Query struct {
	From  *domain.LatLon
	To    *domain.LatLon
	Mode  domain.TravelMode
	Units *domain.DistanceUnit
}

func (q Query) Validate() error {
	if q.From == nil || q.To == nil {
		return fmt.Errorf("both endpoints are required")
	}
	if !q.From.Valid() {
		return fmt.Errorf("origin %v,%v is out of range", q.From.Lat, q.From.Lon)
	}
	if !q.To.Valid() {
		return fmt.Errorf("destination %v,%v is out of range", q.To.Lat, q.To.Lon)
	}
	if !q.Mode.Valid() {
		return fmt.Errorf("unknown travel mode %q", q.Mode)
	}
	return nil
}

// Result is the outcome of a search. Routes is empty when the routing
// engine failed or found nothing.
type Result struct {
	SearchID string
	Routes   []store.Route
}

func (r Result) Summaries() []domain.RouteSummary {
	out := make([]domain.RouteSummary, 0, len(r.Routes))
	for _, route := range r.Routes {
		out = append(out, route.Summary)
	}
	return out
}

type Service struct {
	fetcher    Fetcher
	cache      TripCache
	cacheTTL   time.Duration
	observer   CacheObserver
	store      *store.Store
	alternates int
	logger     *slog.Logger
}

type Options struct {
	Cache      TripCache
	CacheTTL   time.Duration
	Observer   CacheObserver
	Alternates int
}

func NewService(fetcher Fetcher, s *store.Store, opts Options, logger *slog.Logger) *Service {
	return &Service{
		fetcher:    fetcher,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		observer:   opts.Observer,
		store:      s,
		alternates: opts.Alternates,
		logger:     logger.With("component", "routing"),
	}
}

// FetchBest asks the routing engine for the best route and its alternates
// and stores one summary per candidate. Upstream failures are logged and
// yield an empty result; the error return is only for invalid queries.
func (s *Service) FetchBest(ctx context.Context, loc i18n.Localizer, q Query) (Result, error) {
	if err := q.Validate(); err != nil {
		return Result{}, err
	}

	start := time.Now()
	req := s.buildRequest(q)
	trips := s.trips(ctx, req)

	routes := make([]store.Route, 0, len(trips))
	for i, sum := range summary.BuildAll(loc, trips) {
		routes = append(routes, store.Route{Summary: sum, Trip: trips[i]})
	}

	searchID, saved := s.store.Save(routes)

	s.logger.Debug("route search completed",
		"search_id", searchID,
		"mode", q.Mode,
		"routes", len(saved),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return Result{SearchID: searchID, Routes: saved}, nil
}

// Discard drops the routes of an earlier search.
func (s *Service) Discard(searchID string) int {
	return s.store.Discard(searchID)
}

func (s *Service) buildRequest(q Query) valhalla.RouteRequest {
	req := valhalla.RouteRequest{
		Locations: []valhalla.Location{
			{Lat: q.From.Lat, Lon: q.From.Lon},
			{Lat: q.To.Lat, Lon: q.To.Lon},
		},
		Costing:    q.Mode.CostingModel(),
		Alternates: s.alternates,
	}
	if q.Units != nil {
		req.Units = q.Units.String()
	}
	return req
}

func (s *Service) trips(ctx context.Context, req valhalla.RouteRequest) []domain.Trip {
	var key string
	if s.cache != nil {
		body, err := json.Marshal(req)
		if err == nil {
			key = cache.KeyRoute(body)
			trips, ok, err := s.cache.GetTrips(ctx, key)
			if err != nil {
				s.logger.Warn("route cache lookup failed", "error", err)
			}
			if ok {
				s.observe(true)
				return trips
			}
			s.observe(false)
		}
	}

	trips, err := s.fetcher.Route(ctx, req)
	if err != nil {
		s.logger.Error("routing engine request failed", "costing", req.Costing, "error", err)
		return nil
	}

	if key != "" && len(trips) > 0 {
		if err := s.cache.SetTrips(ctx, key, trips, s.cacheTTL); err != nil {
			s.logger.Warn("route cache store failed", "error", err)
		}
	}
	return trips
}

func (s *Service) observe(hit bool) {
	if s.observer == nil {
		return
	}
	if hit {
		s.observer.IncCacheHits()
	} else {
		s.observer.IncCacheMisses()
	}
}
