// Package model defines shared data structures.
package model

import "time"

// Settings holds the field defaults applied to every form.
type Settings struct {
	Locale    string
	Overwrite bool
	Prompt    string
}

// FieldSpec describes one field of a form file.
type FieldSpec struct {
	Name         string `toml:"name" yaml:"name"`
	Caption      string `toml:"caption" yaml:"caption"`
	Type         string `toml:"type" yaml:"type"`
	Mask         string `toml:"mask,omitempty" yaml:"mask,omitempty"`
	MaxLength    int    `toml:"max_length,omitempty" yaml:"max_length,omitempty"`
	AllowEmpty   *bool  `toml:"allow_empty,omitempty" yaml:"allow_empty,omitempty"`
	AllowShorter *bool  `toml:"allow_shorter,omitempty" yaml:"allow_shorter,omitempty"`
	AllowAccents *bool  `toml:"allow_accents,omitempty" yaml:"allow_accents,omitempty"`
	ReadOnly     bool   `toml:"read_only,omitempty" yaml:"read_only,omitempty"`
	Button       string `toml:"button,omitempty" yaml:"button,omitempty"`
	Value        string `toml:"value,omitempty" yaml:"value,omitempty"`
}

// Form is a titled list of fields.
type Form struct {
	Title  string      `toml:"title" yaml:"title"`
	Locale string      `toml:"locale,omitempty" yaml:"locale,omitempty"`
	Fields []FieldSpec `toml:"fields" yaml:"fields"`
}

// FieldResult is the outcome of one field after submission.
type FieldResult struct {
	Name  string `toml:"name" yaml:"name"`
	Type  string `toml:"type" yaml:"type"`
	Value string `toml:"value" yaml:"value"`
	Valid bool   `toml:"valid" yaml:"valid"`
}

// FormResult captures a submitted form.
type FormResult struct {
	Title       string        `toml:"title" yaml:"title"`
	SubmittedAt time.Time     `toml:"submitted_at" yaml:"submitted_at"`
	Valid       bool          `toml:"valid" yaml:"valid"`
	Fields      []FieldResult `toml:"fields" yaml:"fields"`
}

// ButtonPress records a click on a field's side button.
type ButtonPress struct {
	Field string
	Value string
}
