package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/fieldmask/internal/config"
	"github.com/verte-zerg/fieldmask/internal/field"
	"github.com/verte-zerg/fieldmask/internal/locale"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestFormatValue(t *testing.T) {
	got, err := formatValue("CEP", "", "pt-BR", "01310100")
	if err != nil || got != "01310-100" {
		t.Fatalf("expected 01310-100, got %q (%v)", got, err)
	}
	got, err = formatValue("", "LL-000", "", "ab123")
	if err != nil || got != "ab-123" {
		t.Fatalf("expected ab-123, got %q (%v)", got, err)
	}
	for _, tc := range []struct{ typ, mask, value string }{
		{"", "", "1"},
		{"CEP", "00", "1"},
		{"Email", "", "a@b.c"},
		{"CEP", "", "abc"},
		{"", `00\`, "1"},
	} {
		if _, err := formatValue(tc.typ, tc.mask, "", tc.value); err == nil {
			t.Fatalf("expected error for %+v", tc)
		}
	}
}

func TestCheckValue(t *testing.T) {
	cfg := field.DefaultConfig()
	cfg.Type = field.CEP
	text, ok := checkValue(cfg, "01310100")
	if !ok || text != "01310-100" {
		t.Fatalf("expected valid CEP, got %q %v", text, ok)
	}

	cfg.Type = field.UF
	if _, ok := checkValue(cfg, "SPX"); ok {
		t.Fatalf("expected over-long UF to be invalid")
	}
	if text, ok := checkValue(cfg, "rj"); !ok || text != "RJ" {
		t.Fatalf("expected RJ, got %q %v", text, ok)
	}

	cfg.Type = field.CPF
	if _, ok := checkValue(cfg, "111.111.111-11"); ok {
		t.Fatalf("expected repeated CPF to be invalid")
	}

	cfg.Type = field.CEP
	cfg.AllowEmpty = false
	if _, ok := checkValue(cfg, ""); ok {
		t.Fatalf("expected empty value to be rejected")
	}
}

func TestTypesTable(t *testing.T) {
	lines := typesTable()
	if len(lines) != len(field.FieldTypes())+1 {
		t.Fatalf("expected one line per type plus header, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Type") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	found := false
	for _, line := range lines {
		if strings.HasPrefix(line, "CEP ") && strings.Contains(line, "00000-000") && strings.HasSuffix(line, " 9") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing CEP row:\n%s", strings.Join(lines, "\n"))
	}
}

func TestReadLines(t *testing.T) {
	lines, err := readLines(strings.NewReader("a\n\n  b  \n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestWriteResultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.toml")
	if err := writeResultFile(path, []byte("valid = true\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "valid = true\n" {
		t.Fatalf("unexpected contents %q", data)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected only the result file, got %v (%v)", entries, err)
	}
}

func TestDefaultConfigTemplateKeys(t *testing.T) {
	tpl := defaultConfigTemplate()
	for _, key := range []string{"locale", "overwrite", "prompt", "format"} {
		tpl = strings.ReplaceAll(tpl, "# "+key+" =", key+" =")
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(tpl), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Field.Locale == nil || *cfg.Field.Locale != locale.Default.String() {
		t.Fatalf("unexpected locale %v", cfg.Field.Locale)
	}
	if cfg.Field.Overwrite == nil || *cfg.Field.Overwrite {
		t.Fatalf("expected overwrite false")
	}
	if cfg.Field.Prompt == nil || *cfg.Field.Prompt != "_" {
		t.Fatalf("unexpected prompt %v", cfg.Field.Prompt)
	}
	if cfg.Output.Format == nil || *cfg.Output.Format != config.FormatTOML {
		t.Fatalf("unexpected format %v", cfg.Output.Format)
	}
}

func TestValidatePrompt(t *testing.T) {
	if err := validatePrompt(""); err != nil {
		t.Fatalf("expected empty prompt to pass: %v", err)
	}
	if err := validatePrompt("#"); err != nil {
		t.Fatalf("expected single rune to pass: %v", err)
	}
	if err := validatePrompt("ab"); err == nil {
		t.Fatalf("expected error for two runes")
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := runRoot(t, "validate", "--type", "CEP", "01310-100", "123")
	if err == nil {
		t.Fatalf("expected error when a value is invalid")
	}
	if !strings.Contains(out, "ok\t01310-100") || !strings.Contains(out, "invalid\t") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := runRoot(t, "validate", "--type", "UF", "SP", "mg"); err != nil {
		t.Fatalf("expected valid UFs: %v", err)
	}
}

func TestFormatCommand(t *testing.T) {
	out, err := runRoot(t, "format", "--type", "cep", "01310100")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if out != "01310-100\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSampleCommand(t *testing.T) {
	out, err := runRoot(t, "sample", "--type", "CPF", "-n", "3", "--seed", "7")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 values, got %q", lines)
	}
	cfg := field.DefaultConfig()
	cfg.Type = field.CPF
	for _, line := range lines {
		if _, ok := checkValue(cfg, line); !ok {
			t.Fatalf("generated CPF %q is invalid", line)
		}
	}
	if _, err := runRoot(t, "sample", "--type", "CPF", "-n", "0"); err == nil {
		t.Fatalf("expected error for zero count")
	}
}

func TestLocalesCommand(t *testing.T) {
	out, err := runRoot(t, "locales")
	if err != nil {
		t.Fatalf("locales: %v", err)
	}
	if !strings.Contains(out, "pt-BR") || !strings.Contains(out, "en-US") {
		t.Fatalf("unexpected output %q", out)
	}
}
