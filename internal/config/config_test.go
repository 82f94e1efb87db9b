package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/fieldmask/internal/field"
	"github.com/verte-zerg/fieldmask/internal/input"
	"github.com/verte-zerg/fieldmask/internal/locale"
	"github.com/verte-zerg/fieldmask/internal/model"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Field.Locale != nil || cfg.Output.Format != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[field]
locale = "en-US"
overwrite = true
prompt = "#"

[output]
format = "yaml"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Field.Locale == nil || *cfg.Field.Locale != "en-US" {
		t.Fatalf("unexpected locale %v", cfg.Field.Locale)
	}
	if cfg.Field.Overwrite == nil || !*cfg.Field.Overwrite {
		t.Fatalf("expected overwrite true")
	}
	if cfg.Field.Prompt == nil || *cfg.Field.Prompt != "#" {
		t.Fatalf("unexpected prompt %v", cfg.Field.Prompt)
	}
	if cfg.Output.Format == nil || *cfg.Output.Format != "yaml" {
		t.Fatalf("unexpected format %v", cfg.Output.Format)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[field]\ncolour = \"red\"\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

const tomlForm = `
title = "Cadastro"
locale = "pt-BR"

[[fields]]
name = "cpf"
caption = "CPF"
type = "CPF"
allow_empty = false

[[fields]]
name = "cep"
caption = "CEP"
type = "cep"
value = "01310-100"
`

const yamlForm = `
title: Cadastro
locale: pt-BR
fields:
  - name: cpf
    caption: CPF
    type: CPF
    allow_empty: false
  - name: cep
    caption: CEP
    type: cep
    value: 01310-100
`

func TestLoadFormTOMLAndYAMLAgree(t *testing.T) {
	dir := t.TempDir()
	fromTOML, err := LoadForm(writeFile(t, dir, "cadastro.toml", tomlForm))
	if err != nil {
		t.Fatalf("load toml: %v", err)
	}
	fromYAML, err := LoadForm(writeFile(t, dir, "cadastro.yaml", yamlForm))
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if diff := cmp.Diff(fromTOML, fromYAML); diff != "" {
		t.Fatalf("forms differ (-toml +yaml):\n%s", diff)
	}
	if len(fromTOML.Fields) != 2 || fromTOML.Fields[1].Value != "01310-100" {
		t.Fatalf("unexpected fields %+v", fromTOML.Fields)
	}
	if fromTOML.Fields[0].AllowEmpty == nil || *fromTOML.Fields[0].AllowEmpty {
		t.Fatalf("expected allow_empty false")
	}
}

func TestLoadFormRejectsBadForms(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"empty.toml":     `title = "x"`,
		"unknown.toml":   "[[fields]]\nname = \"a\"\ntype = \"passport\"\n",
		"duplicate.toml": "[[fields]]\nname = \"a\"\n[[fields]]\nname = \"a\"\n",
		"noname.toml":    "[[fields]]\ntype = \"CPF\"\n",
		"extra.yaml":     "fields:\n  - name: a\n    colour: red\n",
		"typo.toml":      "[[fields]]\nname = \"a\"\ntype = \"CEP\"\nallow_emtpy = false\n",
		"typo.yaml":      "fields:\n  - name: a\n    type: CEP\n    allow_emtpy: false\n",
	}
	for name, contents := range cases {
		if _, err := LoadForm(writeFile(t, dir, name, contents)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestResolveFormPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cadastro.yml", yamlForm)
	got, err := ResolveFormPath("cadastro", dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != path {
		t.Fatalf("expected %s, got %s", path, got)
	}
	if got, err := ResolveFormPath(path, "/nonexistent"); err != nil || got != path {
		t.Fatalf("expected direct path, got %q %v", got, err)
	}
	if _, err := ResolveFormPath("missing", dir); err == nil {
		t.Fatalf("expected error for missing form")
	}
}

func TestFieldConfig(t *testing.T) {
	no := false
	spec := model.FieldSpec{Name: "uf", Type: "UF", AllowAccents: &no, ReadOnly: true}
	cfg, err := FieldConfig(spec, model.Settings{Locale: "en-US", Overwrite: true, Prompt: "#"})
	if err != nil {
		t.Fatalf("field config: %v", err)
	}
	if cfg.Type != field.UF || cfg.AllowAccents || !cfg.AllowEmpty || !cfg.ReadOnly {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Mode != input.ModeOverwrite || cfg.Prompt != '#' {
		t.Fatalf("unexpected mode or prompt %+v", cfg)
	}
	if cfg.Locale.Tag != locale.AmericanEnglish.Tag {
		t.Fatalf("expected en-US locale, got %s", cfg.Locale)
	}
	if _, err := FieldConfig(model.FieldSpec{Name: "x", Type: "bogus"}, model.Settings{}); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestEncodeResult(t *testing.T) {
	result := model.FormResult{
		Title: "Cadastro",
		Valid: true,
		Fields: []model.FieldResult{
			{Name: "cep", Type: "CEP", Value: "01310-100", Valid: true},
		},
	}
	var tomlOut bytes.Buffer
	if err := EncodeResult(&tomlOut, result, FormatTOML); err != nil {
		t.Fatalf("encode toml: %v", err)
	}
	if !strings.Contains(tomlOut.String(), `value = "01310-100"`) {
		t.Fatalf("unexpected toml output:\n%s", tomlOut.String())
	}
	var yamlOut bytes.Buffer
	if err := EncodeResult(&yamlOut, result, FormatYAML); err != nil {
		t.Fatalf("encode yaml: %v", err)
	}
	if !strings.Contains(yamlOut.String(), "01310-100") || !strings.Contains(yamlOut.String(), "valid: true") {
		t.Fatalf("unexpected yaml output:\n%s", yamlOut.String())
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]string{"": FormatTOML, "TOML": FormatTOML, "yml": FormatYAML, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q): expected %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := ParseFormat("json"); err == nil {
		t.Fatalf("expected error for json")
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/xdg", "fieldmask", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultFormDir(); got != filepath.Join("/tmp/xdg", "fieldmask", "forms") {
		t.Fatalf("unexpected form dir %s", got)
	}
}
