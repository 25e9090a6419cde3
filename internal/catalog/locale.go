// internal/catalog/locale.go
package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale identifies one regional storefront of the catalog.
type Locale string

const (
	LocalePolish Locale = "pl"
	LocaleCzech  Locale = "cz"
)

// Field names a labeled row of the detail table.
type Field string

const (
	FieldNarrator  Field = "narrator"
	FieldDuration  Field = "duration"
	FieldPublisher Field = "publisher"
	FieldType      Field = "type"
	FieldGenres    Field = "genres"
)

// Profile is everything locale-specific the extractor needs: where to
// search, which language to ask for and how the detail rows are labeled.
type Profile struct {
	Locale       Locale
	Tag          language.Tag
	SearchPath   string
	LanguageName string
	Labels       map[Field]string
	// HourUnits lists unit words (lowercase, without a trailing dot) that
	// denote hours in duration cells.
	HourUnits []string
}

// Profiles is the locale table consumed by the extractor.
var Profiles = map[Locale]Profile{
	LocalePolish: {
		Locale:       LocalePolish,
		Tag:          language.MustParse("pl-PL"),
		SearchPath:   "/pl/szukaj",
		LanguageName: "polish",
		Labels: map[Field]string{
			FieldNarrator:  "Głosy",
			FieldDuration:  "Długość",
			FieldPublisher: "Wydawca",
			FieldType:      "Typ",
			FieldGenres:    "Kategoria",
		},
		HourUnits: []string{"godz", "godzina", "godziny", "godzin", "h", "hour", "hours", "hr", "hrs"},
	},
	LocaleCzech: {
		Locale:       LocaleCzech,
		Tag:          language.MustParse("cs-CZ"),
		SearchPath:   "/cz/vyhledavani",
		LanguageName: "czech",
		Labels: map[Field]string{
			FieldNarrator:  "Interpret",
			FieldDuration:  "Délka",
			FieldPublisher: "Vydavatel",
			FieldType:      "Typ",
			FieldGenres:    "Kategorie",
		},
		HourUnits: []string{"hod", "hodina", "hodiny", "hodin", "h", "hour", "hours", "hr", "hrs"},
	},
}

// LookupProfile returns the profile for a locale code such as "pl".
func LookupProfile(code string) (Profile, error) {
	p, ok := Profiles[Locale(strings.ToLower(strings.TrimSpace(code)))]
	if !ok {
		return Profile{}, fmt.Errorf("unsupported catalog language %q", code)
	}
	return p, nil
}

// AcceptLanguage renders the Accept-Language header value, e.g. "pl-PL".
func (p Profile) AcceptLanguage() string {
	return p.Tag.String()
}

// Label returns the row label for a field.
func (p Profile) Label(f Field) string {
	return p.Labels[f]
}
