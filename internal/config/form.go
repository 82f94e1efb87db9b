package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/fieldmask/internal/field"
	"github.com/verte-zerg/fieldmask/internal/input"
	"github.com/verte-zerg/fieldmask/internal/locale"
	"github.com/verte-zerg/fieldmask/internal/model"
)

// Output formats for results.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

var formExtensions = []string{".toml", ".yaml", ".yml"}

// ResolveFormPath returns name as-is when it points to a file, otherwise
// looks it up in the form directory with each known extension.
func ResolveFormPath(name, dir string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("form name is empty")
	}
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	if strings.ContainsRune(name, filepath.Separator) || filepath.Ext(name) != "" {
		return "", fmt.Errorf("form file not found: %s", name)
	}
	for _, ext := range formExtensions {
		candidate := filepath.Join(dir, name+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("form %q not found in %s", name, dir)
}

// LoadForm reads a form definition. Files ending in .yaml or .yml are YAML,
// everything else is TOML.
func LoadForm(path string) (model.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Form{}, fmt.Errorf("failed to read form: %w", err)
	}
	var form model.Form
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&form); err != nil && err != io.EOF {
			return model.Form{}, fmt.Errorf("failed to decode form: %w", err)
		}
	default:
		md, err := toml.Decode(string(data), &form)
		if err != nil {
			return model.Form{}, fmt.Errorf("failed to decode form: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return model.Form{}, fmt.Errorf("unknown form key %q", undecoded[0].String())
		}
	}
	if err := ValidateForm(form); err != nil {
		return model.Form{}, err
	}
	return form, nil
}

// ValidateForm checks names and types of every field.
func ValidateForm(form model.Form) error {
	if len(form.Fields) == 0 {
		return fmt.Errorf("form has no fields")
	}
	seen := make(map[string]struct{}, len(form.Fields))
	for i, spec := range form.Fields {
		if strings.TrimSpace(spec.Name) == "" {
			return fmt.Errorf("field %d has no name", i+1)
		}
		if _, ok := seen[spec.Name]; ok {
			return fmt.Errorf("duplicate field name %q", spec.Name)
		}
		seen[spec.Name] = struct{}{}
		if _, err := field.ParseFieldType(spec.Type); err != nil {
			return fmt.Errorf("field %q: %w", spec.Name, err)
		}
		if spec.MaxLength < 0 {
			return fmt.Errorf("field %q: max_length must be >= 0", spec.Name)
		}
	}
	return nil
}

// FieldConfig turns a field spec into a field configuration on top of the
// shared settings.
func FieldConfig(spec model.FieldSpec, settings model.Settings) (field.Config, error) {
	cfg := field.DefaultConfig()
	ft, err := field.ParseFieldType(spec.Type)
	if err != nil {
		return cfg, fmt.Errorf("field %q: %w", spec.Name, err)
	}
	cfg.Type = ft
	cfg.Mask = spec.Mask
	cfg.MaxLength = spec.MaxLength
	cfg.ReadOnly = spec.ReadOnly
	cfg.Locale = locale.Lookup(settings.Locale)
	if settings.Overwrite {
		cfg.Mode = input.ModeOverwrite
	}
	if prompt := []rune(settings.Prompt); len(prompt) == 1 {
		cfg.Prompt = prompt[0]
	}
	if spec.AllowEmpty != nil {
		cfg.AllowEmpty = *spec.AllowEmpty
	}
	if spec.AllowShorter != nil {
		cfg.AllowShorter = *spec.AllowShorter
	}
	if spec.AllowAccents != nil {
		cfg.AllowAccents = *spec.AllowAccents
	}
	return cfg, nil
}

// ParseFormat normalises an output format name.
func ParseFormat(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatTOML:
		return FormatTOML, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use toml or yaml)", name)
	}
}

// EncodeResult writes result to w in the given format.
func EncodeResult(w io.Writer, result model.FormResult, format string) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	default:
		if err := toml.NewEncoder(w).Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}
	return nil
}
