package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"headway/internal/domain"
	"headway/internal/i18n"
	"headway/internal/maplayer"
	"headway/internal/routing"
	"headway/internal/store"
	"headway/internal/summary"
)

const maxPrefetchTiles = 64

type RouteHandler struct {
	service  *routing.Service
	store    *store.Store
	catalog  *i18n.Catalog
	tileZoom int
	logger   *slog.Logger
}

func NewRouteHandler(service *routing.Service, s *store.Store, catalog *i18n.Catalog, tileZoom int, logger *slog.Logger) *RouteHandler {
	return &RouteHandler{
		service:  service,
		store:    s,
		catalog:  catalog,
		tileZoom: tileZoom,
		logger:   logger.With("handler", "routes"),
	}
}

type SearchResponse struct {
	SearchID   string                `json:"searchId"`
	Routes     []domain.RouteSummary `json:"routes"`
	Count      int                   `json:"count"`
	ServerTime time.Time             `json:"serverTime"`
}

// Search handles GET /v1/routes?from=lat,lon&to=lat,lon&mode=car&units=miles
func (h *RouteHandler) Search(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()
	start := time.Now()

	q, err := parseQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ServerStats.IncSearches()
	res, err := h.service.FetchBest(r.Context(), localizerFor(h.catalog, r), q)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	summaries := res.Summaries()
	h.logger.Debug("Search response",
		"search_id", res.SearchID,
		"count", len(summaries),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	respondJSON(w, http.StatusOK, SearchResponse{
		SearchID:   res.SearchID,
		Routes:     summaries,
		Count:      len(summaries),
		ServerTime: time.Now(),
	})
}

func parseQuery(r *http.Request) (routing.Query, error) {
	values := r.URL.Query()

	from, err := parseLatLon(values.Get("from"))
	if err != nil {
		return routing.Query{}, errors.New("invalid from parameter: " + err.Error())
	}
	to, err := parseLatLon(values.Get("to"))
	if err != nil {
		return routing.Query{}, errors.New("invalid to parameter: " + err.Error())
	}

	mode := domain.TravelMode(values.Get("mode"))
	if mode == "" {
		mode = domain.TravelModeCar
	}
	if !mode.Valid() {
		return routing.Query{}, errors.New("invalid mode parameter: must be walk, bicycle or car")
	}

	units, err := parseUnits(values.Get("units"))
	if err != nil {
		return routing.Query{}, errors.New("invalid units parameter: " + err.Error())
	}

	return routing.Query{From: from, To: to, Mode: mode, Units: units}, nil
}

// GetSearch handles GET /v1/searches/{id}: the summaries of an earlier
// search, best route first.
func (h *RouteHandler) GetSearch(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()

	searchID := r.PathValue("id")
	routes, err := h.store.Search(searchID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "search not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res := routing.Result{SearchID: searchID, Routes: routes}
	summaries := res.Summaries()
	respondJSON(w, http.StatusOK, SearchResponse{
		SearchID:   searchID,
		Routes:     summaries,
		Count:      len(summaries),
		ServerTime: time.Now(),
	})
}

// GetRoute handles GET /v1/routes/{id}
func (h *RouteHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	route, ok := h.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, route.Summary)
}

// GetGeometry handles GET /v1/routes/{id}/geometry. The shape is decoded
// on every request.
func (h *RouteHandler) GetGeometry(w http.ResponseWriter, r *http.Request) {
	route, ok := h.lookup(w, r)
	if !ok {
		return
	}

	feature, err := summary.DecodeGeometry(route.Summary)
	if err != nil {
		h.logger.Warn("GetGeometry decode failed", "route_id", route.Summary.ID, "error", err)
		respondError(w, http.StatusUnprocessableEntity, "route shape could not be decoded")
		return
	}

	if err := respondGeoJSON(w, http.StatusOK, feature); err != nil {
		h.logger.Error("GetGeometry write failed", "route_id", route.Summary.ID, "error", err)
	}
}

type StepsResponse struct {
	Steps []domain.Step `json:"steps"`
	Count int           `json:"count"`
}

// GetSteps handles GET /v1/routes/{id}/steps
func (h *RouteHandler) GetSteps(w http.ResponseWriter, r *http.Request) {
	route, ok := h.lookup(w, r)
	if !ok {
		return
	}

	steps := summary.Steps(localizerFor(h.catalog, r), route.Trip)
	respondJSON(w, http.StatusOK, StepsResponse{Steps: steps, Count: len(steps)})
}

type LayerResponse struct {
	maplayer.RouteLayer
	Bounds domain.Bounds `json:"bounds"`
	Tiles  []string      `json:"tiles,omitempty"`
}

// GetLayer handles GET /v1/routes/{id}/layer?active=true
func (h *RouteHandler) GetLayer(w http.ResponseWriter, r *http.Request) {
	route, ok := h.lookup(w, r)
	if !ok {
		return
	}

	feature, err := summary.DecodeGeometry(route.Summary)
	if err != nil {
		h.logger.Warn("GetLayer decode failed", "route_id", route.Summary.ID, "error", err)
		respondError(w, http.StatusUnprocessableEntity, "route shape could not be decoded")
		return
	}

	paint := maplayer.AlternativePaint
	if active, _ := strconv.ParseBool(r.URL.Query().Get("active")); active {
		paint = maplayer.ActivePaint
	}

	respondJSON(w, http.StatusOK, LayerResponse{
		RouteLayer: maplayer.BuildRouteLayer(route.Summary.ID, feature, paint),
		Bounds:     route.Summary.Bounds,
		Tiles:      maplayer.TilesForBounds(route.Summary.Bounds, h.tileZoom, maxPrefetchTiles),
	})
}

func (h *RouteHandler) lookup(w http.ResponseWriter, r *http.Request) (store.Route, bool) {
	ServerStats.IncRequests()

	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing route id")
		return store.Route{}, false
	}

	route, err := h.store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "route not found")
		return store.Route{}, false
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return store.Route{}, false
	}
	return route, true
}
