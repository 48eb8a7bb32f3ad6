package summary

import (
	"sort"

	"headway/internal/domain"
)

type roadLength struct {
	name   string
	length float64
}

// SubstantialRoadNames picks up to limit street names that make up a
// large share of the route, longest first.
//
// A name is kept when its segment is longer than the total route length
// divided by limit+1. Maneuvers without a name still count towards the
// total. If no name clears the threshold, the longest named segment is
// returned on its own.
func SubstantialRoadNames(maneuvers []domain.Maneuver, limit int) []string {
	if limit < 1 {
		limit = 1
	}

	var total float64
	roads := make([]roadLength, 0, len(maneuvers))
	for _, m := range maneuvers {
		total += m.Length
		if name := m.StreetName(); name != "" {
			roads = append(roads, roadLength{name: name, length: m.Length})
		}
	}
	if len(roads) == 0 {
		return []string{}
	}

	sort.SliceStable(roads, func(i, j int) bool {
		return roads[i].length > roads[j].length
	})
	if len(roads) > limit {
		roads = roads[:limit]
	}

	threshold := total / float64(limit+1)
	names := make([]string, 0, len(roads))
	for _, r := range roads {
		if r.length > threshold {
			names = append(names, r.name)
		}
	}

	if len(names) == 0 {
		return []string{roads[0].name}
	}
	return names
}
