package handler

import (
	"context"
	"net/http"
	"time"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]Check
	counter interface{ Count() int }
	timeout time.Duration
}

func NewHealthHandler(counter interface{ Count() int }, checks map[string]Check) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		counter: counter,
		timeout: 3 * time.Second,
	}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type ReadyResponse struct {
	Ready      bool              `json:"ready"`
	Checks     map[string]string `json:"checks"`
	RouteCount int               `json:"routeCount"`
	ServerTime time.Time         `json:"serverTime"`
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ready := true
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			ready = false
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, ReadyResponse{
		Ready:      ready,
		Checks:     results,
		RouteCount: h.counter.Count(),
		ServerTime: time.Now(),
	})
}
