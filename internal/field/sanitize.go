package field

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/verte-zerg/fieldmask/internal/locale"
)

// stripHidden trims s and drops everything except letters, digits,
// whitespace and punctuation. An en dash becomes a hyphen.
func stripHidden(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '–':
			return '-'
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r), unicode.IsPunct(r):
			return r
		default:
			return -1
		}
	}, s)
	return s
}

// stripAccents removes combining marks and spells out the ampersand.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ReplaceAll(out, "&", "e")
}

func upper(s string, loc locale.Locale) string {
	return cases.Upper(loc.Tag).String(s)
}
