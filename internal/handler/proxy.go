package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
)

// NewValhallaProxy forwards /valhalla/* to the routing engine unchanged,
// for clients that talk to it directly.
func NewValhallaProxy(baseURL string, logger *slog.Logger) (http.Handler, error) {
	target, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing routing engine url: %w", err)
	}

	logger = logger.With("handler", "valhalla_proxy")
	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Warn("routing engine proxy error", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusBadGateway, "routing engine unavailable")
	}

	return http.StripPrefix("/valhalla", proxy), nil
}
