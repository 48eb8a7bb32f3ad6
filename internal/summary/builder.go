package summary

import (
	"strconv"
	"strings"

	"headway/internal/domain"
	"headway/internal/format"
	"headway/internal/i18n"
)

const (
	viaRoadsLimit   = 3
	lengthPrecision = 1
)

// Build turns one routing engine trip into its display summary.
//
// Only the first leg contributes via roads and geometry. A trip without
// legs or maneuvers still gets duration, length and bounds from its
// summary totals. Bounds are copied from the trip extrema as-is; callers
// must pass consistent extrema.
func Build(loc i18n.Localizer, trip domain.Trip) domain.RouteSummary {
	var viaRoads []string
	var shape string
	if leg, ok := trip.FirstLeg(); ok {
		viaRoads = SubstantialRoadNames(leg.Maneuvers, viaRoadsLimit)
		shape = leg.Shape
	}

	return domain.RouteSummary{
		DurationSeconds:   trip.Summary.Time,
		DurationFormatted: format.FormatDuration(loc, trip.Summary.Time, format.Shortform),
		ViaRoadsFormatted: strings.Join(viaRoads, loc.Text(i18n.KeyListSeparator)),
		LengthFormatted:   formatLength(loc, trip.Summary.Length, trip.Units),
		Bounds: domain.Bounds{
			Southwest: domain.LatLon{Lat: trip.Summary.MinLat, Lon: trip.Summary.MinLon},
			Northeast: domain.LatLon{Lat: trip.Summary.MaxLat, Lon: trip.Summary.MaxLon},
		},
		Shape: shape,
	}
}

// BuildAll builds one summary per trip, preserving order.
func BuildAll(loc i18n.Localizer, trips []domain.Trip) []domain.RouteSummary {
	summaries := make([]domain.RouteSummary, 0, len(trips))
	for _, trip := range trips {
		summaries = append(summaries, Build(loc, trip))
	}
	return summaries
}

// formatLength labels the trip length with its own unit. Units the
// formatter does not know are appended verbatim.
func formatLength(loc i18n.Localizer, length float64, units string) string {
	unit, err := domain.ParseDistanceUnit(units)
	if err != nil {
		value := strconv.FormatFloat(length, 'f', lengthPrecision, 64)
		if units == "" {
			return value
		}
		return value + " " + units
	}
	return format.FormatDistance(loc, length, unit, lengthPrecision)
}
