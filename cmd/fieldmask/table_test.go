package main

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Type", "Mask", "Max"}
	rows := [][]string{
		{"CEP", "00000-000", "9"},
		{"UF", "-", "2"},
		{"São", "x", "10"},
	}
	rightAlign := map[int]bool{2: true}

	lines := formatTable(headers, rows, rightAlign)
	want := []string{
		"Type Mask      Max",
		"CEP  00000-000   9",
		"UF   -           2",
		"São  x          10",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Name", "Value"}, [][]string{{"日本", "1"}}, nil)
	if lines[0] != "Name Value" || lines[1] != "日本 1" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %q", lines)
	}
}
