package handler

import (
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"headway/internal/store"
)

// Stats tracks server-wide metrics
type Stats struct {
	startTime     time.Time
	requestCount  atomic.Int64
	searches      atomic.Int64
	wsConnections atomic.Int64
	wsMessagesIn  atomic.Int64
	wsMessagesOut atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
}

// Global stats instance
var ServerStats = &Stats{
	startTime: time.Now(),
}

func (s *Stats) IncRequests()      { s.requestCount.Add(1) }
func (s *Stats) IncSearches()      { s.searches.Add(1) }
func (s *Stats) IncWSConnections() { s.wsConnections.Add(1) }
func (s *Stats) DecWSConnections() { s.wsConnections.Add(-1) }
func (s *Stats) IncWSMessagesIn()  { s.wsMessagesIn.Add(1) }
func (s *Stats) IncWSMessagesOut() { s.wsMessagesOut.Add(1) }
func (s *Stats) IncCacheHits()     { s.cacheHits.Add(1) }
func (s *Stats) IncCacheMisses()   { s.cacheMisses.Add(1) }

// LimiterStats is implemented by the rate limiter.
type LimiterStats interface {
	Stats() map[string]interface{}
}

type StatsHandler struct {
	store   *store.Store
	limiter LimiterStats
	locales []string
	version string
}

func NewStatsHandler(s *store.Store, limiter LimiterStats, locales []string, version string) *StatsHandler {
	return &StatsHandler{
		store:   s,
		limiter: limiter,
		locales: locales,
		version: version,
	}
}

type StatsResponse struct {
	Server    ServerStatsResponse    `json:"server"`
	Routes    RouteStatsResponse     `json:"routes"`
	WebSocket WebSocketStatsResponse `json:"websocket"`
	Cache     CacheStatsResponse     `json:"cache"`
	RateLimit map[string]interface{} `json:"rate_limit,omitempty"`
	Go        GoStatsResponse        `json:"go"`
}

type ServerStatsResponse struct {
	Uptime        string    `json:"uptime"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	StartTime     time.Time `json:"start_time"`
	RequestCount  int64     `json:"request_count"`
	Version       string    `json:"version"`
	Locales       []string  `json:"supported_locales"`
}

type RouteStatsResponse struct {
	Searches       int64 `json:"searches"`
	StoredRoutes   int   `json:"stored_routes"`
	StoredSearches int   `json:"stored_searches"`
}

type WebSocketStatsResponse struct {
	Connections int64 `json:"connections"`
	MessagesIn  int64 `json:"messages_in"`
	MessagesOut int64 `json:"messages_out"`
}

type CacheStatsResponse struct {
	Hits   int64   `json:"hits"`
	Misses int64   `json:"misses"`
	Ratio  float64 `json:"hit_ratio"`
}

type GoStatsResponse struct {
	Goroutines  int     `json:"goroutines"`
	HeapAlloc   uint64  `json:"heap_alloc_bytes"`
	HeapAllocMB float64 `json:"heap_alloc_mb"`
	NumGC       uint32  `json:"num_gc"`
	GoVersion   string  `json:"go_version"`
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()

	uptime := time.Since(ServerStats.startTime)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	hits := ServerStats.cacheHits.Load()
	misses := ServerStats.cacheMisses.Load()
	var ratio float64
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}

	response := StatsResponse{
		Server: ServerStatsResponse{
			Uptime:        uptime.Round(time.Second).String(),
			UptimeSeconds: uptime.Seconds(),
			StartTime:     ServerStats.startTime,
			RequestCount:  ServerStats.requestCount.Load(),
			Version:       h.version,
			Locales:       h.locales,
		},
		Routes: RouteStatsResponse{
			Searches:       ServerStats.searches.Load(),
			StoredRoutes:   h.store.Count(),
			StoredSearches: h.store.SearchCount(),
		},
		WebSocket: WebSocketStatsResponse{
			Connections: ServerStats.wsConnections.Load(),
			MessagesIn:  ServerStats.wsMessagesIn.Load(),
			MessagesOut: ServerStats.wsMessagesOut.Load(),
		},
		Cache: CacheStatsResponse{
			Hits:   hits,
			Misses: misses,
			Ratio:  ratio,
		},
		Go: GoStatsResponse{
			Goroutines:  runtime.NumGoroutine(),
			HeapAlloc:   mem.HeapAlloc,
			HeapAllocMB: float64(mem.HeapAlloc) / 1024 / 1024,
			NumGC:       mem.NumGC,
			GoVersion:   runtime.Version(),
		},
	}
	if h.limiter != nil {
		response.RateLimit = h.limiter.Stats()
	}

	w.Header().Set("Cache-Control", "no-cache")
	respondJSON(w, http.StatusOK, response)
}
