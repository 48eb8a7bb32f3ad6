package domain

import "strings"

// TravelMode is the way the user wants to travel
type TravelMode string

const (
	TravelModeWalk    TravelMode = "walk"
	TravelModeBicycle TravelMode = "bicycle"
	TravelModeCar     TravelMode = "car"
)

// CostingModel maps a travel mode to the routing engine's costing model
func (m TravelMode) CostingModel() string {
	switch m {
	case TravelModeWalk:
		return "pedestrian"
	case TravelModeBicycle:
		return "bicycle"
	case TravelModeCar:
		return "auto"
	default:
		return ""
	}
}

func (m TravelMode) Valid() bool {
	return m.CostingModel() != ""
}

// Maneuver is one directed segment of a route leg
type Maneuver struct {
	Type            int      `json:"type"`
	Instruction     string   `json:"instruction"`
	Time            float64  `json:"time"`
	Cost            float64  `json:"cost"`
	Length          float64  `json:"length"`
	StreetNames     []string `json:"street_names,omitempty"`
	BeginShapeIndex int      `json:"begin_shape_index"`
	EndShapeIndex   int      `json:"end_shape_index"`

	VerbalPostTransitionInstruction string `json:"verbal_post_transition_instruction,omitempty"`
}

// StreetName returns the first street name, or "" if the maneuver has none
func (m Maneuver) StreetName() string {
	if len(m.StreetNames) == 0 {
		return ""
	}
	return strings.TrimSpace(m.StreetNames[0])
}

// Leg is the portion of a trip between two waypoints
type Leg struct {
	Maneuvers []Maneuver `json:"maneuvers"`
	Shape     string     `json:"shape"`
}

// TripSummary holds the aggregate totals of a trip
type TripSummary struct {
	Time   float64 `json:"time"`
	Length float64 `json:"length"`
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Trip is one candidate route as returned by the routing engine
type Trip struct {
	Legs    []Leg       `json:"legs"`
	Summary TripSummary `json:"summary"`
	Units   string      `json:"units"`
}

// FirstLeg returns the first leg of the trip, if any
func (t Trip) FirstLeg() (Leg, bool) {
	if len(t.Legs) == 0 {
		return Leg{}, false
	}
	return t.Legs[0], true
}
