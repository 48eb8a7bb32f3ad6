package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"headway/internal/i18n"
)

func newLocalizer(t *testing.T, locale string) i18n.Localizer {
	t.Helper()
	c, err := i18n.NewCatalog("en")
	require.NoError(t, err)
	return c.Localizer(locale)
}
