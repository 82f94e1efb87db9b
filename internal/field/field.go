package field

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/verte-zerg/fieldmask/internal/input"
	"github.com/verte-zerg/fieldmask/internal/locale"
	"github.com/verte-zerg/fieldmask/internal/mask"
	"github.com/verte-zerg/fieldmask/internal/validate"
)

// Config is the complete configuration of a field. Any change goes through
// Configure so the mask is rebuilt in one step.
type Config struct {
	Type FieldType
	// Mask is used by types without a preset mask.
	Mask string
	// MaxLength limits unmasked input; presets may override it.
	MaxLength    int
	AllowEmpty   bool
	AllowShorter bool
	AllowAccents bool
	ReadOnly     bool
	// Prompt overrides the prompt character; zero picks one from the mask.
	Prompt rune
	Locale locale.Locale
	Mode   input.Mode
}

// DefaultConfig returns the configuration of a plain Normal field.
func DefaultConfig() Config {
	return Config{
		Type:         Normal,
		AllowEmpty:   true,
		AllowShorter: true,
		AllowAccents: true,
		Locale:       locale.Default,
	}
}

// FocusResult is what the host gets back when the field loses focus.
type FocusResult struct {
	Valid bool
	Text  string
}

// Field is the state behind one labeled input control.
type Field struct {
	cfg      Config
	preset   Preset
	provider *mask.Provider
	ctrl     *input.Controller
	text     string
	focused  bool
	valid    bool
	maskErr  error
}

// ErrValueDropped is returned when the content does not fit the new mask
// and the field is cleared.
var ErrValueDropped = errors.New("value does not fit the mask")

// New builds a field. A mask compile error is returned alongside a usable,
// unmasked field.
func New(cfg Config) (*Field, error) {
	f := &Field{valid: true}
	err := f.Configure(cfg)
	return f, err
}

// Config returns the active configuration.
func (f *Field) Config() Config {
	return f.cfg
}

// Configure replaces the configuration and rebuilds the field. Content that
// fits neither formatted nor as typed characters is dropped with
// ErrValueDropped.
func (f *Field) Configure(cfg Config) error {
	f.cfg = cfg
	return f.applyConfiguration()
}

// SetFieldType switches the field type.
func (f *Field) SetFieldType(t FieldType) error {
	cfg := f.cfg
	cfg.Type = t
	return f.Configure(cfg)
}

// SetMaskPattern sets the custom mask.
func (f *Field) SetMaskPattern(pattern string) error {
	cfg := f.cfg
	cfg.Mask = pattern
	return f.Configure(cfg)
}

func (f *Field) applyConfiguration() error {
	if f.cfg.Locale.DecimalSep == 0 {
		f.cfg.Locale = locale.Default
	}
	seed, raw := f.seedValue()
	var reseedErr error
	f.preset = PresetFor(f.cfg.Type)
	f.provider = nil
	f.maskErr = nil

	pattern := f.preset.Mask
	if pattern == "" {
		pattern = f.cfg.Mask
	}
	if pattern != "" {
		prompt := f.cfg.Prompt
		if prompt == 0 {
			prompt = promptFor(pattern)
		}
		p, err := mask.New(pattern,
			mask.WithLocale(f.cfg.Locale),
			mask.WithPromptChar(prompt),
			mask.WithPasswordChar(f.preset.PasswordChar),
		)
		if err != nil {
			f.maskErr = err
		} else {
			if !p.Set(seed) && !p.Set(raw) {
				reseedErr = fmt.Errorf("%w: %q", ErrValueDropped, seed)
			}
			f.provider = p
		}
	}

	if f.provider != nil {
		f.text = ""
		f.ctrl = input.New(f.provider)
	} else {
		f.text = truncate(strings.TrimSpace(seed), f.MaxLength())
		f.ctrl = input.New(nil)
	}
	f.ctrl.SetMode(f.cfg.Mode)
	if f.maskErr != nil {
		return f.maskErr
	}
	return reseedErr
}

// seedValue returns the current content for the next configuration: the
// formatted value when every slot is set, otherwise only the assigned
// characters. raw is always the assigned characters.
func (f *Field) seedValue() (seed, raw string) {
	if f.provider == nil {
		return f.text, f.text
	}
	raw = f.provider.Assigned()
	if f.provider.AssignedEditPositionCount() < f.provider.EditPositionCount() {
		return raw, raw
	}
	return f.provider.String(), raw
}

// promptFor picks a blank prompt for masks made only of any-character slots.
func promptFor(pattern string) rune {
	if strings.ReplaceAll(pattern, "&", "") == "" {
		return ' '
	}
	return mask.DefaultPromptChar
}

func truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// MaskError returns the error of the last mask compilation, if any.
func (f *Field) MaskError() error {
	return f.maskErr
}

// Masked reports whether a mask is active.
func (f *Field) Masked() bool {
	return f.provider != nil
}

// Positions returns the mask slots, nil when unmasked.
func (f *Field) Positions() []mask.Position {
	if f.provider == nil {
		return nil
	}
	return f.provider.Positions()
}

// Type returns the field type.
func (f *Field) Type() FieldType {
	return f.cfg.Type
}

// MaxLength returns the effective length limit, zero for none.
func (f *Field) MaxLength() int {
	if f.provider != nil {
		return f.provider.Len()
	}
	if f.preset.MaxLength > 0 {
		return f.preset.MaxLength
	}
	return f.cfg.MaxLength
}

// PasswordChar returns the character hiding the content, zero when none.
func (f *Field) PasswordChar() rune {
	return f.preset.PasswordChar
}

// Mode returns the edit mode.
func (f *Field) Mode() input.Mode {
	return f.ctrl.Mode()
}

// ToggleMode flips between insert and overwrite.
func (f *Field) ToggleMode() input.Mode {
	f.cfg.Mode = f.ctrl.ToggleMode()
	return f.cfg.Mode
}

// Valid reports the result of the last validation.
func (f *Field) Valid() bool {
	return f.valid
}

// Focused reports whether the field has focus.
func (f *Field) Focused() bool {
	return f.focused
}

// RealValue returns the underlying content, never obscured.
func (f *Field) RealValue() string {
	if f.provider != nil {
		return f.provider.String()
	}
	return f.text
}

// Text returns the string the host renders.
func (f *Field) Text() string {
	if f.provider == nil {
		return f.text
	}
	if f.focused {
		return f.provider.ToDisplayString()
	}
	return f.provider.Text(true, true)
}

// SetText replaces the content. Unmasked fields use it to report edits
// made by the host.
func (f *Field) SetText(s string) bool {
	if f.provider != nil {
		return f.provider.Set(s)
	}
	f.text = truncate(s, f.MaxLength())
	return true
}

// Focus marks the field focused and returns the selection the host should
// apply: everything when there is content.
func (f *Field) Focus() (int, int) {
	f.focused = true
	if f.empty() {
		return 0, 0
	}
	return 0, utf8.RuneCountInString(f.Text())
}

// OnKeyDown handles a key press. Enter always asks for the next field.
func (f *Field) OnKeyDown(key input.Key, r rune, selStart, selLen int) input.Result {
	if f.cfg.ReadOnly && key != input.KeyEnter && key != input.KeyOther {
		return input.Result{Handled: f.provider != nil, Cursor: selStart}
	}
	return f.ctrl.KeyDown(input.EditCommand{
		Key:             key,
		Rune:            r,
		Anchor:          selStart,
		SelectionLength: selLen,
	})
}

// OnTextInput writes typed text and returns the new display and cursor.
func (f *Field) OnTextInput(text string, selStart int) (string, int) {
	if f.cfg.ReadOnly {
		return f.Text(), selStart
	}
	res := f.ctrl.TextInput(text, selStart)
	return f.Text(), res.Cursor
}

// OnFocusLost normalises the content and validates it.
func (f *Field) OnFocusLost() FocusResult {
	f.focused = false
	text := f.normalize()
	f.valid = f.check(text)

	if f.cfg.Type == Valor {
		v, ok := validate.ParseDecimal(text, f.cfg.Locale)
		if !ok {
			v = decimal.Zero
		}
		text = validate.FormatDecimal(v, f.cfg.Locale)
		f.SetText(text)
	}
	return FocusResult{Valid: f.valid, Text: text}
}

func (f *Field) normalize() string {
	if f.provider != nil {
		if !f.cfg.AllowAccents {
			f.provider.Set(stripAccents(f.provider.String()))
		}
		if f.cfg.Type == UF {
			f.provider.Set(upper(f.provider.String(), f.cfg.Locale))
		}
		return stripHidden(f.provider.String())
	}
	text := f.text
	if !f.cfg.AllowAccents {
		text = stripAccents(text)
	}
	text = stripHidden(text)
	if f.cfg.Type == UF {
		text = upper(text, f.cfg.Locale)
	}
	f.text = text
	return text
}

func (f *Field) empty() bool {
	if f.provider != nil {
		return f.provider.AssignedEditPositionCount() == 0
	}
	return strings.TrimSpace(f.text) == ""
}

func (f *Field) check(text string) bool {
	if f.empty() {
		return f.cfg.AllowEmpty
	}
	if !f.cfg.AllowShorter {
		n := utf8.RuneCountInString(strings.TrimSpace(strings.ReplaceAll(text, "_", "")))
		if required := f.requiredLength(); n < required {
			return false
		}
	}
	validator := f.preset.Validate
	if validator == nil {
		return true
	}
	return validator(text, f.cfg.Locale)
}

func (f *Field) requiredLength() int {
	if f.provider != nil {
		return f.provider.Len()
	}
	return f.MaxLength()
}
