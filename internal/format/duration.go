package format

import (
	"math"
	"strings"

	"headway/internal/i18n"
)

// Style selects how a duration is rendered.
type Style int

const (
	// Long joins components with the locale's list separator ("1 day, 2 hours").
	Long Style = iota
	// Shortform joins abbreviated components with a space ("1 day 2 hrs").
	Shortform
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// FormatDuration renders a non-negative number of seconds as a localized duration.
//
// Durations under half a minute are given in seconds, under an hour in whole
// minutes, and longer durations as days, hours and minutes with zero
// components left out.
func FormatDuration(loc i18n.Localizer, seconds float64, style Style) string {
	shortform := style == Shortform

	totalMinutes := math.Round(seconds / 60)
	if totalMinutes < 1 {
		return countComponent(loc, shortform, "second", math.Round(seconds))
	}
	if totalMinutes < minutesPerHour {
		return countComponent(loc, shortform, "minute", totalMinutes)
	}

	days := math.Floor(totalMinutes / minutesPerDay)
	hours := math.Floor((totalMinutes - days*minutesPerDay) / minutesPerHour)
	minutes := math.Round(totalMinutes - days*minutesPerDay - hours*minutesPerHour)

	components := make([]string, 0, 3)
	if days > 0 {
		components = append(components, countComponent(loc, shortform, "day", days))
	}
	if hours > 0 {
		components = append(components, countComponent(loc, shortform, "hour", hours))
	}
	if minutes > 0 {
		components = append(components, countComponent(loc, shortform, "minute", minutes))
	}

	if shortform {
		return strings.Join(components, " ")
	}
	return strings.Join(components, loc.Text(i18n.KeyListSeparator))
}

// countComponent picks the singular key for a count of exactly one and the
// plural key otherwise.
func countComponent(loc i18n.Localizer, shortform bool, unit string, n float64) string {
	if n != 1 {
		unit += "s"
	}
	return loc.Count(i18n.TimeKey(shortform, unit), n)
}
