package i18n

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

// Catalog holds the message tables for every supported locale.
type Catalog struct {
	uni           *ut.UniversalTranslator
	defaultLocale string
	locales       []string
}

// NewCatalog loads the built-in tables. defaultLocale is used when a
// request names no supported locale.
func NewCatalog(defaultLocale string) (*Catalog, error) {
	tables := map[string]map[string]message{
		"en": messagesEN,
		"de": messagesDE,
	}

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, de.New())

	supported := make([]string, 0, len(tables))
	for locale, table := range tables {
		trans, ok := uni.GetTranslator(locale)
		if !ok {
			return nil, fmt.Errorf("no translator for locale %q", locale)
		}
		if err := register(trans, table); err != nil {
			return nil, fmt.Errorf("locale %s: %w", locale, err)
		}
		supported = append(supported, locale)
	}

	if err := uni.VerifyTranslations(); err != nil {
		return nil, fmt.Errorf("verifying translations: %w", err)
	}

	sort.Strings(supported)

	if _, ok := tables[defaultLocale]; !ok {
		return nil, fmt.Errorf("unsupported default locale %q", defaultLocale)
	}

	return &Catalog{
		uni:           uni,
		defaultLocale: defaultLocale,
		locales:       supported,
	}, nil
}

func register(trans ut.Translator, table map[string]message) error {
	for key, msg := range table {
		if msg.text != "" {
			if err := trans.Add(key, msg.text, false); err != nil {
				return err
			}
			continue
		}
		if err := trans.AddCardinal(key, msg.one, locales.PluralRuleOne, false); err != nil {
			return err
		}
		if err := trans.AddCardinal(key, msg.other, locales.PluralRuleOther, false); err != nil {
			return err
		}
	}
	return nil
}

// Locales lists the supported locale names in sorted order.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.locales))
	copy(out, c.locales)
	return out
}

// Localizer returns the localizer for the first supported tag,
// falling back to the catalog's default locale.
func (c *Catalog) Localizer(tags ...string) Localizer {
	for _, tag := range tags {
		base := baseLanguage(tag)
		if base == "" {
			continue
		}
		if trans, ok := c.uni.GetTranslator(base); ok {
			return translator{trans: trans}
		}
	}
	trans, _ := c.uni.GetTranslator(c.defaultLocale)
	return translator{trans: trans}
}

// AcceptLanguage parses an Accept-Language header into base language
// names ordered by preference.
func AcceptLanguage(header string) []string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		base, _ := tag.Base()
		out = append(out, base.String())
	}
	return out
}

func baseLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return tag
}

type translator struct {
	trans ut.Translator
}

func (t translator) Text(key string) string {
	s, err := t.trans.T(key)
	if err != nil {
		return key
	}
	return s
}

func (t translator) Count(key string, n float64) string {
	num := strconv.FormatFloat(n, 'f', 0, 64)
	if s, err := t.trans.C(key, n, 0, num); err == nil {
		return s
	}
	if s, err := t.trans.T(key, num); err == nil {
		return s
	}
	return key
}
