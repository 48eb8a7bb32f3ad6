package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"headway/internal/domain"
)

var ErrNotFound = errors.New("route not found")

// Route is a stored summary together with the trip it was built from.
type Route struct {
	Summary domain.RouteSummary
	Trip    domain.Trip
}

type search struct {
	ids       []string
	createdAt time.Time
}

// Store keeps route summaries in memory so their geometry, steps and map
// layer can be fetched after the search that produced them.
type Store struct {
	mu       sync.RWMutex
	routes   map[string]Route
	searches map[string]*search

	staleAfter time.Duration
	now        func() time.Time
}

func New(staleAfter time.Duration) *Store {
	return &Store{
		routes:     make(map[string]Route),
		searches:   make(map[string]*search),
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// Save stores the routes of one search, assigning a search ID and an ID to
// every summary. The returned routes carry their IDs, in input order.
func (s *Store) Save(routes []Route) (string, []Route) {
	s.mu.Lock()
	defer s.mu.Unlock()

	searchID := uuid.New().String()
	saved := make([]Route, 0, len(routes))
	ids := make([]string, 0, len(routes))

	for _, r := range routes {
		r.Summary.ID = uuid.New().String()
		s.routes[r.Summary.ID] = r
		ids = append(ids, r.Summary.ID)
		saved = append(saved, r)
	}
	s.searches[searchID] = &search{ids: ids, createdAt: s.now()}

	return searchID, saved
}

func (s *Store) Get(id string) (Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.routes[id]
	if !ok {
		return Route{}, ErrNotFound
	}
	return r, nil
}

// Search returns the routes of one search in the order they were saved.
// A search that found nothing is still known and yields an empty slice.
func (s *Store) Search(searchID string) ([]Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sr, ok := s.searches[searchID]
	if !ok {
		return nil, ErrNotFound
	}
	result := make([]Route, 0, len(sr.ids))
	for _, id := range sr.ids {
		result = append(result, s.routes[id])
	}
	return result, nil
}

// Discard drops every route of a search and returns how many were removed.
func (s *Store) Discard(searchID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discardLocked(searchID)
}

func (s *Store) discardLocked(searchID string) int {
	sr, ok := s.searches[searchID]
	if !ok {
		return 0
	}
	for _, id := range sr.ids {
		delete(s.routes, id)
	}
	delete(s.searches, searchID)
	return len(sr.ids)
}

// PruneStale drops searches older than the stale duration, including
// searches that found no routes, and returns how many routes went.
func (s *Store) PruneStale() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.staleAfter)
	pruned := 0
	for searchID, sr := range s.searches {
		if sr.createdAt.Before(cutoff) {
			pruned += s.discardLocked(searchID)
		}
	}
	return pruned
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.routes)
}

func (s *Store) SearchCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.searches)
}

// Run prunes stale searches every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.PruneStale(); n > 0 {
				logger.Info("pruned stale routes", "count", n, "remaining", s.Count())
			}
		}
	}
}
