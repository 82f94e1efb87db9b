package field

import (
	"testing"

	"github.com/verte-zerg/fieldmask/internal/locale"
)

func TestStripHidden(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  abc  ", "abc"},
		{"a\u200bb", "ab"},
		{"10–20", "10-20"},
		{"R$ 5", "R 5"},
		{"(11) 1234-5678", "(11) 1234-5678"},
		{"x\x07y", "xy"},
	}
	for _, tc := range cases {
		if got := stripHidden(tc.in); got != tc.want {
			t.Fatalf("stripHidden(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestStripAccents(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ação", "acao"},
		{"Pão & Café", "Pao e Cafe"},
		{"ÁÉÍÓÚ ç", "AEIOU c"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := stripAccents(tc.in); got != tc.want {
			t.Fatalf("stripAccents(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestUpper(t *testing.T) {
	if got := upper("rj", locale.BrazilianPortuguese); got != "RJ" {
		t.Fatalf("expected RJ, got %q", got)
	}
}
