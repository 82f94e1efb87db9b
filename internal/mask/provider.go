package mask

import (
	"strings"

	"github.com/verte-zerg/fieldmask/internal/locale"
)

// DefaultPromptChar marks unset editable slots in the display string.
const DefaultPromptChar = '_'

// Provider owns a compiled mask and the characters assigned to it.
type Provider struct {
	pattern      string
	positions    []Position
	promptChar   rune
	passwordChar rune
	resetOnSpace bool
	loc          locale.Locale
}

// Option configures a Provider.
type Option func(*Provider)

// WithPromptChar sets the character shown in unset slots.
func WithPromptChar(r rune) Option {
	return func(p *Provider) {
		p.promptChar = r
	}
}

// WithPasswordChar sets the character that hides assigned slots. Zero disables it.
func WithPasswordChar(r rune) Option {
	return func(p *Provider) {
		p.passwordChar = r
	}
}

// WithLocale sets the culture used for separator tokens.
func WithLocale(loc locale.Locale) Option {
	return func(p *Provider) {
		p.loc = loc
	}
}

// New compiles pattern into an empty Provider.
func New(pattern string, opts ...Option) (*Provider, error) {
	p := &Provider{
		pattern:    pattern,
		promptChar: DefaultPromptChar,
		loc:        locale.Default,
	}
	for _, opt := range opts {
		opt(p)
	}
	positions, err := Compile(pattern, p.loc)
	if err != nil {
		return nil, err
	}
	p.positions = positions
	return p, nil
}

// Pattern returns the source pattern.
func (p *Provider) Pattern() string {
	return p.pattern
}

// Len returns the number of slots.
func (p *Provider) Len() int {
	return len(p.positions)
}

// Positions returns a copy of the slots.
func (p *Provider) Positions() []Position {
	out := make([]Position, len(p.positions))
	copy(out, p.positions)
	return out
}

// PromptChar returns the prompt character.
func (p *Provider) PromptChar() rune {
	return p.promptChar
}

// SetPromptChar changes the prompt character.
func (p *Provider) SetPromptChar(r rune) {
	p.promptChar = r
}

// PasswordChar returns the password character, zero when disabled.
func (p *Provider) PasswordChar() rune {
	return p.passwordChar
}

// SetPasswordChar changes the password character. Zero disables it.
func (p *Provider) SetPasswordChar(r rune) {
	p.passwordChar = r
}

// ResetOnSpace reports whether a space clears a slot. Always false.
func (p *Provider) ResetOnSpace() bool {
	return p.resetOnSpace
}

func (p *Provider) inRange(pos int) bool {
	return pos >= 0 && pos < len(p.positions)
}

// IsEditPosition reports whether pos is an editable slot.
func (p *Provider) IsEditPosition(pos int) bool {
	return p.inRange(pos) && p.positions[pos].Editable()
}

// FindEditPositionFrom scans from start in the given direction and returns
// the first editable slot, or -1 when the scan runs off either end.
func (p *Provider) FindEditPositionFrom(start int, forward bool) int {
	step := 1
	if !forward {
		step = -1
	}
	for pos := start; p.inRange(pos); pos += step {
		if p.positions[pos].Editable() {
			return pos
		}
	}
	return -1
}

// VerifyChar reports whether r may be stored at pos.
func (p *Provider) VerifyChar(r rune, pos int) bool {
	if !p.IsEditPosition(pos) {
		return false
	}
	return p.positions[pos].Accepts(r)
}

// InsertAt stores text into consecutive editable slots starting at pos,
// passing over literal slots. It returns the slot following the last
// character written. Nothing is kept when any character is rejected.
func (p *Provider) InsertAt(text string, pos int) (int, bool) {
	return p.write(text, pos, false)
}

// Replace overwrites consecutive editable slots starting at pos. The first
// target slot must already hold a character.
func (p *Provider) Replace(text string, pos int) (int, bool) {
	return p.write(text, pos, true)
}

func (p *Provider) write(text string, pos int, overwrite bool) (int, bool) {
	if !p.inRange(pos) || text == "" {
		return pos, false
	}
	saved := p.snapshot()
	cursor := pos
	first := true
	for _, r := range text {
		slot := p.FindEditPositionFrom(cursor, true)
		if slot < 0 || !p.positions[slot].Accepts(r) {
			p.restore(saved)
			return pos, false
		}
		if first && overwrite && !p.positions[slot].set {
			p.restore(saved)
			return pos, false
		}
		first = false
		p.positions[slot].Assigned = r
		p.positions[slot].set = true
		cursor = slot + 1
	}
	return cursor, true
}

// RemoveAt clears the slot at pos.
func (p *Provider) RemoveAt(pos int) bool {
	return p.RemoveRange(pos, pos)
}

// RemoveRange clears every editable slot in [start, end]. Literal slots in
// the range are left as they are.
func (p *Provider) RemoveRange(start, end int) bool {
	if start > end || !p.inRange(start) || !p.inRange(end) {
		return false
	}
	for pos := start; pos <= end; pos++ {
		if p.positions[pos].Editable() {
			p.positions[pos].Assigned = 0
			p.positions[pos].set = false
		}
	}
	return true
}

// Clear unsets every editable slot.
func (p *Provider) Clear() {
	for i := range p.positions {
		p.positions[i].Assigned = 0
		p.positions[i].set = false
	}
}

// Set replaces the content with text, which may be formatted (literals in
// place) or raw. Prompt characters and spaces leave a slot unset. The
// previous content is kept when text does not fit the mask.
func (p *Provider) Set(text string) bool {
	saved := p.snapshot()
	p.Clear()
	pos := 0
	for _, r := range text {
		for p.inRange(pos) && !p.positions[pos].Editable() {
			if p.positions[pos].Literal == r {
				break
			}
			pos++
		}
		if !p.inRange(pos) {
			p.restore(saved)
			return false
		}
		slot := p.positions[pos]
		switch {
		case !slot.Editable():
			// literal consumed as-is
		case r == p.promptChar || r == ' ':
			// left unset
		case slot.Accepts(r):
			p.positions[pos].Assigned = r
			p.positions[pos].set = true
		default:
			p.restore(saved)
			return false
		}
		pos++
	}
	return true
}

// MaskCompleted reports whether every required slot is set.
func (p *Provider) MaskCompleted() bool {
	for _, pos := range p.positions {
		if pos.Required() && !pos.set {
			return false
		}
	}
	return true
}

// EditPositionCount returns the number of editable slots.
func (p *Provider) EditPositionCount() int {
	n := 0
	for _, pos := range p.positions {
		if pos.Editable() {
			n++
		}
	}
	return n
}

// AssignedEditPositionCount returns the number of set slots.
func (p *Provider) AssignedEditPositionCount() int {
	n := 0
	for _, pos := range p.positions {
		if pos.set {
			n++
		}
	}
	return n
}

// ToDisplayString renders the editing view: prompt in unset slots and the
// password character over assigned slots when enabled.
func (p *Provider) ToDisplayString() string {
	return p.Text(true, true)
}

// Text renders the content. Unset slots show the prompt when includePrompt
// is true and a space otherwise, so the result always has Len runes.
func (p *Provider) Text(includePrompt, includePassword bool) string {
	var b strings.Builder
	for _, pos := range p.positions {
		switch {
		case !pos.Editable():
			b.WriteRune(pos.Literal)
		case !pos.set && includePrompt:
			b.WriteRune(p.promptChar)
		case !pos.set:
			b.WriteRune(' ')
		case includePassword && p.passwordChar != 0:
			b.WriteRune(p.passwordChar)
		default:
			b.WriteRune(pos.Assigned)
		}
	}
	return b.String()
}

// Assigned returns the characters held by set slots, in slot order, without
// literals or blanks.
func (p *Provider) Assigned() string {
	var b strings.Builder
	for _, pos := range p.positions {
		if pos.set {
			b.WriteRune(pos.Assigned)
		}
	}
	return b.String()
}

// String returns the real value without prompt or password substitution.
func (p *Provider) String() string {
	return p.Text(false, false)
}

func (p *Provider) snapshot() []Position {
	saved := make([]Position, len(p.positions))
	copy(saved, p.positions)
	return saved
}

func (p *Provider) restore(saved []Position) {
	copy(p.positions, saved)
}
