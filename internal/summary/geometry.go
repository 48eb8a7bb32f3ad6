package summary

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"

	"headway/internal/domain"
)

// shapeCodec decodes the routing engine's polylines, which use six
// decimal digits instead of Google's five.
var shapeCodec = polyline.Codec{Dim: 2, Scale: 1e6}

// DecodeGeometry decodes the summary's shape into a GeoJSON LineString
// feature with empty properties and (lon, lat) coordinates.
// It is a pure function of the shape and does no caching.
func DecodeGeometry(s domain.RouteSummary) (*geojson.Feature, error) {
	line, err := DecodeShape(s.Shape)
	if err != nil {
		return nil, err
	}
	return geojson.NewFeature(line), nil
}

// DecodeShape decodes an encoded (lat, lon) polyline into a line string.
func DecodeShape(shape string) (orb.LineString, error) {
	line := orb.LineString{}
	if shape == "" {
		return line, nil
	}

	coords, rest, err := shapeCodec.DecodeCoords([]byte(shape))
	if err != nil {
		return nil, fmt.Errorf("decoding shape: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("decoding shape: %d trailing bytes", len(rest))
	}

	for _, c := range coords {
		line = append(line, orb.Point{c[1], c[0]})
	}
	return line, nil
}
