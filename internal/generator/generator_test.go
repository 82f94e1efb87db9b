package generator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/fieldmask/internal/field"
	"github.com/verte-zerg/fieldmask/internal/locale"
)

func TestSamplesPassValidators(t *testing.T) {
	for _, loc := range []locale.Locale{locale.BrazilianPortuguese, locale.AmericanEnglish, locale.German} {
		g := NewSeeded(42, loc)
		for _, ft := range field.FieldTypes() {
			values, err := g.Generate(ft, 25)
			if err != nil {
				t.Fatalf("%s/%s: %v", loc, ft, err)
			}
			validator := field.PresetFor(ft).Validate
			for _, v := range values {
				if !validator(v, loc) {
					t.Fatalf("%s/%s: generated value %q does not validate", loc, ft, v)
				}
			}
		}
	}
}

func TestSamplesFitField(t *testing.T) {
	g := NewSeeded(7, locale.Default)
	for _, ft := range field.FieldTypes() {
		v, err := g.Sample(ft)
		if err != nil {
			t.Fatalf("%s: %v", ft, err)
		}
		cfg := field.DefaultConfig()
		cfg.Type = ft
		f, err := field.New(cfg)
		if err != nil {
			t.Fatalf("%s: new field: %v", ft, err)
		}
		if !f.SetText(v) {
			t.Fatalf("%s: sample %q rejected by field", ft, v)
		}
		if res := f.OnFocusLost(); !res.Valid {
			t.Fatalf("%s: sample %q invalid after focus loss", ft, v)
		}
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a, err := NewSeeded(99, locale.Default).Generate(field.CPF, 5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := NewSeeded(99, locale.Default).Generate(field.CPF, 5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("seeded output differs (-first +second):\n%s", diff)
	}
}

func TestUnknownTypeFails(t *testing.T) {
	if _, err := NewSeeded(1, locale.Default).Sample(field.FieldType(99)); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestZeroLocaleFallsBack(t *testing.T) {
	g := NewSeeded(3, locale.Locale{})
	v, err := g.Sample(field.Valor)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if !field.PresetFor(field.Valor).Validate(v, locale.Default) {
		t.Fatalf("expected default-locale value, got %q", v)
	}
}
