// Package validate holds the field validators. Every validator is total:
// malformed input yields false, never a panic or an error.
package validate

import (
	"strings"
)

var (
	cpfWeights1  = []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	cpfWeights2  = []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

var documentPunct = strings.NewReplacer(".", "", "-", "", "/", "", ",", "")

// CPF reports whether s is a Brazilian individual taxpayer number with
// valid check digits. Formatting punctuation is ignored.
func CPF(s string) bool {
	digits := documentPunct.Replace(strings.TrimSpace(s))
	if len(digits) != 11 || !allDigits(digits) || repeated(digits) {
		return false
	}
	check, ok := CPFCheckDigits(digits[:9])
	return ok && strings.HasSuffix(digits, check)
}

// CNPJ reports whether s is a Brazilian company taxpayer number with valid
// check digits. Formatting punctuation is ignored.
func CNPJ(s string) bool {
	digits := documentPunct.Replace(strings.TrimSpace(s))
	if len(digits) != 14 || !allDigits(digits) {
		return false
	}
	check, ok := CNPJCheckDigits(digits[:12])
	return ok && strings.HasSuffix(digits, check)
}

// CPFCheckDigits computes the two check digits for a 9-digit CPF base.
func CPFCheckDigits(base string) (string, bool) {
	return checkDigits(base, cpfWeights1, cpfWeights2)
}

// CNPJCheckDigits computes the two check digits for a 12-digit CNPJ base.
func CNPJCheckDigits(base string) (string, bool) {
	return checkDigits(base, cnpjWeights1, cnpjWeights2)
}

func checkDigits(base string, first, second []int) (string, bool) {
	if len(base) != len(first) || !allDigits(base) {
		return "", false
	}
	d1 := mod11(base, first)
	d2 := mod11(base+string(d1), second)
	return string([]byte{d1, d2}), true
}

func mod11(digits string, weights []int) byte {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + 11 - rest)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func repeated(s string) bool {
	return strings.Count(s, s[:1]) == len(s)
}

const ufCodes = "SPMGRJRSSCPRESDFMTMSGOTOBASEALPBPEMARNCEPIPAAMAPFNACRRRO"

// UF reports whether s is a Brazilian state code. The upper-cased code must
// start on an even offset of the concatenated code list.
func UF(s string) bool {
	code := strings.ToUpper(strings.TrimSpace(s))
	if len(code) != 2 {
		return false
	}
	idx := strings.Index(ufCodes, code)
	return idx >= 0 && idx%2 == 0
}

// UFCodes returns the state codes in list order.
func UFCodes() []string {
	out := make([]string, 0, len(ufCodes)/2)
	for i := 0; i+1 < len(ufCodes); i += 2 {
		out = append(out, ufCodes[i:i+2])
	}
	return out
}

// Always accepts any input.
func Always(string) bool {
	return true
}
