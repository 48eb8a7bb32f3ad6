package maplayer

import (
	"github.com/paulmach/orb/geojson"
)

const sourcePrefix = "headway_route_"

// Source is a map style GeoJSON source.
type Source struct {
	Type string           `json:"type"`
	Data *geojson.Feature `json:"data"`
}

// LineLayout is the layout block of a line layer.
type LineLayout struct {
	LineJoin string `json:"line-join"`
	LineCap  string `json:"line-cap"`
}

// LinePaint is the paint block of a line layer. Zero fields are omitted.
type LinePaint struct {
	LineColor   string  `json:"line-color,omitempty"`
	LineWidth   float64 `json:"line-width,omitempty"`
	LineOpacity float64 `json:"line-opacity,omitempty"`
}

// Layer is a map style line layer.
type Layer struct {
	ID     string     `json:"id"`
	Type   string     `json:"type"`
	Source string     `json:"source"`
	Layout LineLayout `json:"layout"`
	Paint  LinePaint  `json:"paint"`
}

// RouteLayer is a source/layer pair that draws one route.
type RouteLayer struct {
	SourceID       string `json:"sourceId"`
	Source         Source `json:"sourceSpec"`
	Layer          Layer  `json:"layerSpec"`
	AboveLayerType string `json:"aboveLayerType,omitempty"`
}

// Paint presets for the selected route and its alternates.
var (
	ActivePaint      = LinePaint{LineColor: "#1976D2", LineWidth: 6}
	AlternativePaint = LinePaint{LineColor: "#777777", LineWidth: 4, LineOpacity: 0.6}
)

// BuildRouteLayer wraps a route geometry into a line layer drawn under the
// map's labels. Source and layer share the ID headway_route_<routeID>.
func BuildRouteLayer(routeID string, feature *geojson.Feature, paint LinePaint) RouteLayer {
	sourceID := sourcePrefix + routeID
	return RouteLayer{
		SourceID: sourceID,
		Source: Source{
			Type: "geojson",
			Data: feature,
		},
		Layer: Layer{
			ID:     sourceID,
			Type:   "line",
			Source: sourceID,
			Layout: LineLayout{
				LineJoin: "round",
				LineCap:  "round",
			},
			Paint: paint,
		},
		AboveLayerType: "symbol",
	}
}
