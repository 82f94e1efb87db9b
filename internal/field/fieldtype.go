// Package field ties the mask engine, the input controller and the
// validators together behind the calls a host control makes.
package field

import (
	"fmt"
	"strings"
)

// FieldType selects a mask preset and a validator.
type FieldType int

const (
	Normal FieldType = iota
	Numero
	Data
	Valor
	Email
	IP
	MAC
	CPF
	CNPJ
	CEP
	Senha
	Telefone
	Conta
	Hora
	UF
	IPv6
	fieldTypeCount
)

var fieldTypeNames = [fieldTypeCount]string{
	Normal:   "Normal",
	Numero:   "Numero",
	Data:     "Data",
	Valor:    "Valor",
	Email:    "Email",
	IP:       "IP",
	MAC:      "MAC",
	CPF:      "CPF",
	CNPJ:     "CNPJ",
	CEP:      "CEP",
	Senha:    "Senha",
	Telefone: "Telefone",
	Conta:    "Conta",
	Hora:     "Hora",
	UF:       "UF",
	IPv6:     "IPv6",
}

// FieldTypes returns every field type in declaration order.
func FieldTypes() []FieldType {
	out := make([]FieldType, 0, fieldTypeCount)
	for t := Normal; t < fieldTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

func (t FieldType) String() string {
	if t < 0 || t >= fieldTypeCount {
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
	return fieldTypeNames[t]
}

// Valid reports whether t is one of the declared field types.
func (t FieldType) Valid() bool {
	return t >= 0 && t < fieldTypeCount
}

// ParseFieldType resolves a type name, ignoring case. "E-mail" is accepted
// for Email and an empty name means Normal.
func ParseFieldType(name string) (FieldType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Normal, nil
	}
	if strings.EqualFold(name, "E-mail") {
		return Email, nil
	}
	for t, known := range fieldTypeNames {
		if strings.EqualFold(name, known) {
			return FieldType(t), nil
		}
	}
	return Normal, fmt.Errorf("unknown field type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t FieldType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid field type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *FieldType) UnmarshalText(text []byte) error {
	parsed, err := ParseFieldType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
