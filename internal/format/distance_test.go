package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"headway/internal/domain"
)

func TestFormatDistance(t *testing.T) {
	loc := newLocalizer(t, "en")

	tests := []struct {
		name      string
		value     float64
		unit      domain.DistanceUnit
		precision int
		want      string
	}{
		{"rounds half up", 5.55, domain.Kilometers, 1, "5.6 km"},
		{"zero miles", 0, domain.Miles, 1, "0.0 mi"},
		{"two digits", 12.346, domain.Kilometers, 2, "12.35 km"},
		{"two digits at midpoint", 1.255, domain.Kilometers, 2, "1.26 km"},
		{"two digits below one", 0.145, domain.Miles, 2, "0.15 mi"},
		{"two digits carries", 2.135, domain.Kilometers, 2, "2.14 km"},
		{"three digits at midpoint", 1.0005, domain.Kilometers, 3, "1.001 km"},
		{"no digits", 2.5, domain.Miles, 0, "3 mi"},
		{"negative rounds away from zero", -1.25, domain.Kilometers, 1, "-1.3 km"},
		{"negative zero", -0.01, domain.Kilometers, 1, "0.0 km"},
		{"negative precision", 7.7, domain.Kilometers, -1, "8 km"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDistance(loc, tc.value, tc.unit, tc.precision))
		})
	}
}

func TestKilometersToMiles(t *testing.T) {
	assert.InDelta(t, 6.2137119, KilometersToMiles(10), 1e-9)
	assert.Equal(t, 0.0, KilometersToMiles(0))
}

func TestUnitLabelGerman(t *testing.T) {
	loc := newLocalizer(t, "de")
	assert.Equal(t, "km", UnitLabel(loc, domain.Kilometers))
	assert.Equal(t, "mi", UnitLabel(loc, domain.Miles))
}
