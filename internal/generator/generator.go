// Package generator builds random values that pass the field validators.
package generator

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/verte-zerg/fieldmask/internal/field"
	"github.com/verte-zerg/fieldmask/internal/locale"
	"github.com/verte-zerg/fieldmask/internal/mask"
	"github.com/verte-zerg/fieldmask/internal/validate"
)

const (
	hexDigits   = "0123456789ABCDEF"
	alnum       = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	accountTail = "0123456789XP"
)

var words = []string{
	"paulista", "centro", "jardim", "aurora", "bela", "vista", "lagoa",
	"serra", "praia", "norte", "sul", "campo", "ribeira", "matriz",
}

var domains = []string{"example.com", "example.com.br", "mail.test", "empresa.net"}

// Generator produces randomized field values.
type Generator struct {
	rnd *rand.Rand
	loc locale.Locale
}

// New returns a Generator seeded with the current time.
func New(loc locale.Locale) *Generator {
	return NewSeeded(time.Now().UnixNano(), loc)
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64, loc locale.Locale) *Generator {
	if loc.DecimalSep == 0 {
		loc = locale.Default
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed)), loc: loc}
}

// Generate returns count values of type t.
func (g *Generator) Generate(t field.FieldType, count int) ([]string, error) {
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		v, err := g.Sample(t)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

// Sample returns one value of type t, formatted the way the field's mask
// renders it.
func (g *Generator) Sample(t field.FieldType) (string, error) {
	switch t {
	case field.Normal:
		return applyCaps(g.rnd, g.word(), 0.5) + " " + g.word(), nil
	case field.Numero:
		return strconv.Itoa(g.rnd.Intn(100000)), nil
	case field.Data:
		return g.masked(t, g.date())
	case field.Valor:
		return validate.FormatDecimal(decimal.New(int64(g.rnd.Intn(1000000)), -2), g.loc), nil
	case field.Email:
		return g.word() + "." + g.word() + "@" + domains[g.rnd.Intn(len(domains))], nil
	case field.IP:
		return fmt.Sprintf("%d.%d.%d.%d", 1+g.rnd.Intn(223), g.rnd.Intn(256), g.rnd.Intn(256), 1+g.rnd.Intn(254)), nil
	case field.MAC:
		return g.masked(t, g.pick(hexDigits, 12))
	case field.CPF:
		return g.masked(t, g.document(9, validate.CPFCheckDigits))
	case field.CNPJ:
		return g.masked(t, g.document(12, validate.CNPJCheckDigits))
	case field.CEP:
		return g.masked(t, g.digits(8))
	case field.Senha:
		return g.pick(alnum, 8+g.rnd.Intn(5)), nil
	case field.Telefone:
		return g.masked(t, g.digits(2)+"9"+g.digits(8))
	case field.Conta:
		return g.masked(t, g.digits(8)+g.pick(accountTail, 1))
	case field.Hora:
		return g.masked(t, fmt.Sprintf("%02d%02d", g.rnd.Intn(24), g.rnd.Intn(60)))
	case field.UF:
		codes := validate.UFCodes()
		return codes[g.rnd.Intn(len(codes))], nil
	case field.IPv6:
		groups := make([]string, 8)
		for i := range groups {
			groups[i] = g.pick(hexDigits, 4)
		}
		return strings.Join(groups, ":"), nil
	default:
		return "", fmt.Errorf("unknown field type %s", t)
	}
}

// masked feeds raw through the preset mask of t and returns the real value.
func (g *Generator) masked(t field.FieldType, raw string) (string, error) {
	p, err := mask.New(field.PresetFor(t).Mask, mask.WithLocale(g.loc))
	if err != nil {
		return "", fmt.Errorf("failed to compile %s mask: %w", t, err)
	}
	if !p.Set(raw) {
		return "", fmt.Errorf("failed to fit %q into %s mask", raw, t)
	}
	return p.String(), nil
}

func (g *Generator) word() string {
	return words[g.rnd.Intn(len(words))]
}

func (g *Generator) digits(n int) string {
	return g.pick("0123456789", n)
}

func (g *Generator) pick(set string, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(set[g.rnd.Intn(len(set))])
	}
	return b.String()
}

// document draws a base that is not a single repeated digit and appends its
// check digits.
func (g *Generator) document(n int, check func(string) (string, bool)) string {
	for {
		base := g.digits(n)
		if strings.Count(base, base[:1]) == n {
			continue
		}
		if dv, ok := check(base); ok {
			return base + dv
		}
	}
}

// date renders a random date with zero-padded day and month in the order of
// the locale's first layout.
func (g *Generator) date() string {
	start := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	d := start.AddDate(0, 0, g.rnd.Intn(365*75))
	layout := "02/01/2006"
	if len(g.loc.DateLayouts) > 0 {
		layout = strings.NewReplacer("2006", "2006", "2", "02", "1", "01").Replace(g.loc.DateLayouts[0])
	}
	return d.Format(layout)
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
