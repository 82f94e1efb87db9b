package field

import (
	"strings"

	"github.com/verte-zerg/fieldmask/internal/locale"
	"github.com/verte-zerg/fieldmask/internal/validate"
)

// PasswordMaxLength bounds Senha fields.
const PasswordMaxLength = 50

// Validator checks a normalised real value.
type Validator func(text string, loc locale.Locale) bool

// Preset is the data attached to a field type.
type Preset struct {
	// Mask is the preset pattern; empty leaves the field unmasked unless a
	// custom mask is configured.
	Mask         string
	MaxLength    int
	PasswordChar rune
	Validate     Validator
}

// HasMask reports whether the preset carries its own mask.
func (p Preset) HasMask() bool {
	return p.Mask != ""
}

func plain(fn func(string) bool) Validator {
	return func(text string, _ locale.Locale) bool {
		return fn(text)
	}
}

var presets = [fieldTypeCount]Preset{
	Normal:   {Validate: plain(validate.Always)},
	Numero:   {Validate: plain(validate.Integer)},
	Data:     {Mask: "&0/00/0000", Validate: validate.Date},
	Valor:    {Validate: validate.Decimal},
	Email:    {Validate: plain(validate.Email)},
	IP:       {Validate: plain(validate.IPv4)},
	MAC:      {Mask: "AA:AA:AA:AA:AA:AA", Validate: plain(validate.MAC)},
	CPF:      {Mask: "000,000,000-00", Validate: plain(validate.CPF)},
	CNPJ:     {Mask: "00,000,000/0000-00", Validate: plain(validate.CNPJ)},
	CEP:      {Mask: "00000-000", Validate: plain(validate.CEP)},
	Senha:    {Mask: strings.Repeat("&", PasswordMaxLength), MaxLength: PasswordMaxLength, PasswordChar: '*', Validate: plain(validate.Always)},
	Telefone: {Mask: "(00)&0000-0000", Validate: plain(validate.Phone)},
	Conta:    {Mask: "00,000,000-A", Validate: plain(validate.Account)},
	Hora:     {Mask: "00:00", Validate: plain(validate.Time)},
	UF:       {MaxLength: 2, Validate: plain(validate.UF)},
	IPv6:     {Validate: plain(validate.IPv6)},
}

// PresetFor returns the preset of t. Unknown types get the Normal preset.
func PresetFor(t FieldType) Preset {
	if !t.Valid() {
		return presets[Normal]
	}
	return presets[t]
}
