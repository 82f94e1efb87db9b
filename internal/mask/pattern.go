// Package mask implements the input-mask engine: a pattern of literal and
// editable slots, the characters assigned to them, and the strings derived
// from that state.
package mask

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/verte-zerg/fieldmask/internal/locale"
)

// ErrDanglingEscape is reported when a pattern ends with an unpaired escape.
var ErrDanglingEscape = errors.New("pattern ends with a dangling escape")

// CompileError describes a malformed mask pattern.
type CompileError struct {
	Pattern string
	Offset  int
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid mask %q at offset %d: %v", e.Pattern, e.Offset, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Kind classifies a mask slot.
type Kind int

const (
	Literal Kind = iota
	Digit
	DigitOptional
	DigitOrSign
	Letter
	LetterOptional
	Any
	AnyOptional
	Alnum
	AlnumOptional
)

var kindNames = [...]string{
	Literal:        "literal",
	Digit:          "digit",
	DigitOptional:  "digit?",
	DigitOrSign:    "digit/sign",
	Letter:         "letter",
	LetterOptional: "letter?",
	Any:            "any",
	AnyOptional:    "any?",
	Alnum:          "alnum",
	AlnumOptional:  "alnum?",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Position is one slot of a compiled mask.
type Position struct {
	Kind     Kind
	Literal  rune
	Assigned rune
	set      bool
}

// Editable reports whether the slot accepts input.
func (p Position) Editable() bool {
	return p.Kind != Literal
}

// Required reports whether the slot must be filled for the mask to be complete.
func (p Position) Required() bool {
	switch p.Kind {
	case Digit, Letter, Any, Alnum:
		return true
	default:
		return false
	}
}

// IsSet reports whether an editable slot holds a character.
func (p Position) IsSet() bool {
	return p.set
}

// PromptShown reports whether the slot renders the prompt character.
func (p Position) PromptShown() bool {
	return p.Editable() && !p.set
}

// Accepts reports whether r satisfies the slot's character class.
func (p Position) Accepts(r rune) bool {
	switch p.Kind {
	case Digit:
		return isDigit(r)
	case DigitOptional:
		return isDigit(r) || r == ' '
	case DigitOrSign:
		return isDigit(r) || r == '+' || r == '-' || r == ' '
	case Letter, LetterOptional:
		return isASCIILetter(r)
	case Any, AnyOptional:
		return unicode.IsPrint(r)
	case Alnum, AlnumOptional:
		return isDigit(r) || unicode.IsLetter(r)
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Compile turns a pattern string into its slots. Separator tokens are
// replaced with the separators of loc.
func Compile(pattern string, loc locale.Locale) ([]Position, error) {
	src := []rune(pattern)
	out := make([]Position, 0, len(src))
	for i := 0; i < len(src); i++ {
		r := src[i]
		switch r {
		case '\\':
			if i+1 >= len(src) {
				return nil, &CompileError{Pattern: pattern, Offset: i, Err: ErrDanglingEscape}
			}
			i++
			out = append(out, Position{Kind: Literal, Literal: src[i]})
		case '0':
			out = append(out, Position{Kind: Digit})
		case '9':
			out = append(out, Position{Kind: DigitOptional})
		case '#':
			out = append(out, Position{Kind: DigitOrSign})
		case 'L':
			out = append(out, Position{Kind: Letter})
		case '?':
			out = append(out, Position{Kind: LetterOptional})
		case '&':
			out = append(out, Position{Kind: Any})
		case 'C':
			out = append(out, Position{Kind: AnyOptional})
		case 'A':
			out = append(out, Position{Kind: Alnum})
		case 'a':
			out = append(out, Position{Kind: AlnumOptional})
		case '.':
			out = append(out, Position{Kind: Literal, Literal: loc.DecimalSep})
		case ',':
			out = append(out, Position{Kind: Literal, Literal: loc.GroupSep})
		case ':':
			out = append(out, Position{Kind: Literal, Literal: loc.TimeSep})
		case '/':
			out = append(out, Position{Kind: Literal, Literal: loc.DateSep})
		case '$':
			for _, c := range loc.Currency {
				out = append(out, Position{Kind: Literal, Literal: c})
			}
		default:
			out = append(out, Position{Kind: Literal, Literal: r})
		}
	}
	return out, nil
}
