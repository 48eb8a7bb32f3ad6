package summary

import (
	"headway/internal/domain"
	"headway/internal/format"
	"headway/internal/i18n"
)

// Steps lists the first leg's maneuvers as turn-by-turn instructions.
// Distances keep the trip's own unit; an unknown unit falls back to kilometers.
func Steps(loc i18n.Localizer, trip domain.Trip) []domain.Step {
	leg, ok := trip.FirstLeg()
	if !ok {
		return []domain.Step{}
	}

	unit, err := domain.ParseDistanceUnit(trip.Units)
	if err != nil {
		unit = domain.Kilometers
	}

	steps := make([]domain.Step, 0, len(leg.Maneuvers))
	for _, m := range leg.Maneuvers {
		steps = append(steps, domain.Step{
			Icon:              format.ManeuverIcon(m.Type),
			Instruction:       m.Instruction,
			StreetName:        m.StreetName(),
			DistanceFormatted: format.FormatDistance(loc, m.Length, unit, lengthPrecision),
			DurationFormatted: format.FormatDuration(loc, m.Time, format.Long),
		})
	}
	return steps
}
