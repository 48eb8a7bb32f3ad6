package domain

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// DistanceUnit is the unit system a distance is expressed in
type DistanceUnit int

const (
	Kilometers DistanceUnit = iota
	Miles
)

func (u DistanceUnit) String() string {
	switch u {
	case Kilometers:
		return "kilometers"
	case Miles:
		return "miles"
	default:
		return "unknown"
	}
}

// ParseDistanceUnit accepts the routing engine's unit names and their abbreviations
func ParseDistanceUnit(s string) (DistanceUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kilometers", "kilometres", "km":
		return Kilometers, nil
	case "miles", "mi":
		return Miles, nil
	default:
		return 0, fmt.Errorf("unknown distance unit %q", s)
	}
}

// LatLon is a geographic position
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the position is a finite WGS84 coordinate.
func (p LatLon) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Bounds is a geographic rectangle given by its southwest and northeast corners
type Bounds struct {
	Southwest LatLon `json:"southwest"`
	Northeast LatLon `json:"northeast"`
}

// Bound converts the bounds to an orb.Bound in (lon, lat) order
func (b Bounds) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.Southwest.Lon, b.Southwest.Lat},
		Max: orb.Point{b.Northeast.Lon, b.Northeast.Lat},
	}
}

// RouteSummary is the display model of one candidate route.
// Shape holds the first leg's encoded polyline; it is decoded on demand.
type RouteSummary struct {
	ID                string  `json:"id,omitempty"`
	DurationSeconds   float64 `json:"durationSeconds"`
	DurationFormatted string  `json:"durationFormatted"`
	ViaRoadsFormatted string  `json:"viaRoadsFormatted"`
	LengthFormatted   string  `json:"lengthFormatted"`
	Bounds            Bounds  `json:"bounds"`
	Shape             string  `json:"-"`
}

// Step is a single display-ready turn instruction
type Step struct {
	Icon              string `json:"icon"`
	Instruction       string `json:"instruction"`
	StreetName        string `json:"streetName,omitempty"`
	DistanceFormatted string `json:"distanceFormatted"`
	DurationFormatted string `json:"durationFormatted"`
}
