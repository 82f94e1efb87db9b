// Package locale provides the culture data used by masks and validators.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale holds the separators and date layouts for one culture.
type Locale struct {
	Tag         language.Tag
	DecimalSep  rune
	GroupSep    rune
	TimeSep     rune
	DateSep     rune
	Currency    string
	DateLayouts []string
}

// Default is the culture used when nothing else is requested.
var Default = BrazilianPortuguese

// BrazilianPortuguese is the pt-BR culture.
var BrazilianPortuguese = Locale{
	Tag:         language.BrazilianPortuguese,
	DecimalSep:  ',',
	GroupSep:    '.',
	TimeSep:     ':',
	DateSep:     '/',
	Currency:    "R$",
	DateLayouts: []string{"2/1/2006", "2/1/06", "2006-01-02"},
}

// AmericanEnglish is the en-US culture.
var AmericanEnglish = Locale{
	Tag:         language.AmericanEnglish,
	DecimalSep:  '.',
	GroupSep:    ',',
	TimeSep:     ':',
	DateSep:     '/',
	Currency:    "$",
	DateLayouts: []string{"1/2/2006", "1/2/06", "2006-01-02"},
}

// BritishEnglish is the en-GB culture.
var BritishEnglish = Locale{
	Tag:         language.BritishEnglish,
	DecimalSep:  '.',
	GroupSep:    ',',
	TimeSep:     ':',
	DateSep:     '/',
	Currency:    "£",
	DateLayouts: []string{"2/1/2006", "2/1/06", "2006-01-02"},
}

// German is the de-DE culture.
var German = Locale{
	Tag:         language.MustParse("de-DE"),
	DecimalSep:  ',',
	GroupSep:    '.',
	TimeSep:     ':',
	DateSep:     '.',
	Currency:    "€",
	DateLayouts: []string{"2.1.2006", "2.1.06", "2006-01-02"},
}

var supported = []Locale{BrazilianPortuguese, AmericanEnglish, BritishEnglish, German}

var matcher = language.NewMatcher(tags())

func tags() []language.Tag {
	out := make([]language.Tag, 0, len(supported))
	for _, loc := range supported {
		out = append(out, loc.Tag)
	}
	return out
}

// Lookup returns the supported locale closest to the given BCP 47 name.
// Empty or unparseable names yield Default.
func Lookup(name string) Locale {
	name = strings.TrimSpace(name)
	if name == "" {
		return Default
	}
	tag, err := language.Parse(name)
	if err != nil {
		return Default
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default
	}
	return supported[idx]
}

// Supported lists the names of the built-in locales.
func Supported() []string {
	out := make([]string, 0, len(supported))
	for _, loc := range supported {
		out = append(out, loc.Tag.String())
	}
	return out
}

// String returns the BCP 47 name of the locale.
func (l Locale) String() string {
	return l.Tag.String()
}
