package i18n

// message is either a plain text or a cardinal pair; {0} is the count.
type message struct {
	text  string
	one   string
	other string
}

func plain(text string) message { return message{text: text} }

func plural(one, other string) message { return message{one: one, other: other} }

var messagesEN = map[string]message{
	KeyListSeparator:   plain(", "),
	KeyKilometersShort: plain("km"),
	KeyMilesShort:      plain("mi"),

	"times.n_second":  plain("{0} second"),
	"times.n_seconds": plural("{0} second", "{0} seconds"),
	"times.n_minute":  plain("{0} minute"),
	"times.n_minutes": plural("{0} minute", "{0} minutes"),
	"times.n_hour":    plain("{0} hour"),
	"times.n_hours":   plural("{0} hour", "{0} hours"),
	"times.n_day":     plain("{0} day"),
	"times.n_days":    plural("{0} day", "{0} days"),

	"times_shortform.n_second":  plain("{0} sec"),
	"times_shortform.n_seconds": plural("{0} sec", "{0} sec"),
	"times_shortform.n_minute":  plain("{0} min"),
	"times_shortform.n_minutes": plural("{0} min", "{0} min"),
	"times_shortform.n_hour":    plain("{0} hr"),
	"times_shortform.n_hours":   plural("{0} hr", "{0} hrs"),
	"times_shortform.n_day":     plain("{0} day"),
	"times_shortform.n_days":    plural("{0} day", "{0} days"),
}

var messagesDE = map[string]message{
	KeyListSeparator:   plain(", "),
	KeyKilometersShort: plain("km"),
	KeyMilesShort:      plain("mi"),

	"times.n_second":  plain("{0} Sekunde"),
	"times.n_seconds": plural("{0} Sekunde", "{0} Sekunden"),
	"times.n_minute":  plain("{0} Minute"),
	"times.n_minutes": plural("{0} Minute", "{0} Minuten"),
	"times.n_hour":    plain("{0} Stunde"),
	"times.n_hours":   plural("{0} Stunde", "{0} Stunden"),
	"times.n_day":     plain("{0} Tag"),
	"times.n_days":    plural("{0} Tag", "{0} Tage"),

	"times_shortform.n_second":  plain("{0} Sek."),
	"times_shortform.n_seconds": plural("{0} Sek.", "{0} Sek."),
	"times_shortform.n_minute":  plain("{0} Min."),
	"times_shortform.n_minutes": plural("{0} Min.", "{0} Min."),
	"times_shortform.n_hour":    plain("{0} Std."),
	"times_shortform.n_hours":   plural("{0} Std.", "{0} Std."),
	"times_shortform.n_day":     plain("{0} Tag"),
	"times_shortform.n_days":    plural("{0} Tag", "{0} Tage"),
}
