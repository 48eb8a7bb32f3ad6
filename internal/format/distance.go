package format

import (
	"github.com/shopspring/decimal"

	"headway/internal/domain"
	"headway/internal/i18n"
)

const milesPerKilometer = 0.62137119

// KilometersToMiles converts a distance in kilometers to miles.
func KilometersToMiles(km float64) float64 {
	return km * milesPerKilometer
}

// FormatDistance rounds value to precision decimal digits and appends the
// localized abbreviation of unit. No conversion is done.
func FormatDistance(loc i18n.Localizer, value float64, unit domain.DistanceUnit, precision int) string {
	return roundFixed(value, precision) + " " + UnitLabel(loc, unit)
}

// UnitLabel returns the localized abbreviation of unit.
func UnitLabel(loc i18n.Localizer, unit domain.DistanceUnit) string {
	if unit == domain.Miles {
		return loc.Text(i18n.KeyMilesShort)
	}
	return loc.Text(i18n.KeyKilometersShort)
}

// roundFixed rounds half away from zero on the shortest decimal form of
// value, so 1.255 becomes "1.26" even though its binary value sits below
// the midpoint.
func roundFixed(value float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return decimal.NewFromFloat(value).StringFixed(int32(precision))
}
