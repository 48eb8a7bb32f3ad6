package i18n

// Localizer looks up display strings by dotted key.
// Implementations must be safe for concurrent use and must not mutate state on lookup.
type Localizer interface {
	// Text returns the message for key, or key itself if there is none.
	Text(key string) string
	// Count returns the message for key with n substituted as its count.
	// Plural forms are chosen by the locale's rules.
	Count(key string, n float64) string
}

// Message keys shared by the formatters.
const (
	KeyListSeparator     = "punctuation_list_separator"
	KeyKilometersShort   = "shortened_distances.kilometers"
	KeyMilesShort        = "shortened_distances.miles"
	timesPrefix          = "times"
	timesShortformPrefix = "times_shortform"
)

// TimeKey builds a duration key such as "times.n_minutes" or "times_shortform.n_hour".
func TimeKey(shortform bool, unit string) string {
	if shortform {
		return timesShortformPrefix + ".n_" + unit
	}
	return timesPrefix + ".n_" + unit
}
