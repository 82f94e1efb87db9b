package validate

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/verte-zerg/fieldmask/internal/locale"
)

// Integer reports whether s parses as a signed 64-bit integer.
func Integer(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}

// Decimal reports whether s parses as a decimal number in loc.
func Decimal(s string, loc locale.Locale) bool {
	_, ok := ParseDecimal(s, loc)
	return ok
}

// ParseDecimal parses s using the separators of loc. Group separators are
// ignored wherever they appear; one decimal separator is allowed.
func ParseDecimal(s string, loc locale.Locale) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	var b strings.Builder
	seenDigit, seenSep := false, false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			b.WriteRune(r)
		case (r == '-' || r == '+') && i == 0:
			b.WriteRune(r)
		case r == loc.DecimalSep && !seenSep:
			seenSep = true
			b.WriteByte('.')
		case r == loc.GroupSep && !seenSep:
		default:
			return decimal.Zero, false
		}
	}
	if !seenDigit {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// FormatDecimal renders v rounded to two fraction digits with the decimal
// separator of loc.
func FormatDecimal(v decimal.Decimal, loc locale.Locale) string {
	out := v.StringFixed(2)
	return strings.Replace(out, ".", string(loc.DecimalSep), 1)
}

// Date reports whether s is a calendar date in one of the layouts of loc.
func Date(s string, loc locale.Locale) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, layout := range loc.DateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
