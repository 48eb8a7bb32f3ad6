package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"headway/internal/domain"
	"headway/internal/i18n"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondGeoJSON encodes v before sending any header, so an encoding
// failure still turns into a 500 with an error body.
func respondGeoJSON(w http.ResponseWriter, status int, v json.Marshaler) error {
	data, err := v.MarshalJSON()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "geometry could not be encoded")
		return err
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(status)
	_, err = w.Write(data)
	return err
}

// parseLatLon parses "lat,lon". Range checks happen in routing.Query.Validate.
func parseLatLon(s string) (*domain.LatLon, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected lat,lon")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, err
	}
	return &domain.LatLon{Lat: lat, Lon: lon}, nil
}

func parseUnits(s string) (*domain.DistanceUnit, error) {
	if s == "" {
		return nil, nil
	}
	u, err := domain.ParseDistanceUnit(s)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// localizerFor picks the locale from ?lang=, then Accept-Language.
func localizerFor(catalog *i18n.Catalog, r *http.Request) i18n.Localizer {
	var tags []string
	if lang := r.URL.Query().Get("lang"); lang != "" {
		tags = append(tags, lang)
	}
	tags = append(tags, i18n.AcceptLanguage(r.Header.Get("Accept-Language"))...)
	return catalog.Localizer(tags...)
}
