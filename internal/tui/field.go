package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/fieldmask/internal/config"
	"github.com/verte-zerg/fieldmask/internal/field"
	"github.com/verte-zerg/fieldmask/internal/input"
	"github.com/verte-zerg/fieldmask/internal/model"
)

const minBoxWidth = 12

// fieldWidget hosts one field: masked fields are edited through the field
// core slot by slot, unmasked ones through a bubbles text input.
type fieldWidget struct {
	spec  model.FieldSpec
	field *field.Field

	input  textinput.Model
	cursor cursor.Model

	pos       int
	selAnchor int
	selStart  int
	selLen    int

	checked bool
	text    string
}

func newFieldWidget(spec model.FieldSpec, settings model.Settings) (*fieldWidget, error) {
	cfg, err := config.FieldConfig(spec, settings)
	if err != nil {
		return nil, err
	}
	f, err := field.New(cfg)
	if err != nil {
		logErrf("field %q: %v; editing without mask\n", spec.Name, err)
	}
	if spec.Value != "" && !f.SetText(spec.Value) {
		return nil, fmt.Errorf("field %q: value %q does not fit the mask", spec.Name, spec.Value)
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = f.MaxLength()
	ti.Cursor.SetMode(cursor.CursorBlink)
	if pc := f.PasswordChar(); pc != 0 {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = pc
	}
	ti.SetValue(f.RealValue())

	return &fieldWidget{
		spec:   spec,
		field:  f,
		input:  ti,
		cursor: cursor.New(),
	}, nil
}

func (w *fieldWidget) caption() string {
	if w.spec.Caption != "" {
		return w.spec.Caption
	}
	return w.spec.Name
}

func (w *fieldWidget) slots() int {
	return len([]rune(w.field.Text()))
}

func (w *fieldWidget) focus() tea.Cmd {
	start, length := w.field.Focus()
	if !w.field.Masked() {
		w.input.SetValue(w.field.RealValue())
		w.input.CursorEnd()
		return w.input.Focus()
	}
	w.selAnchor = start
	w.selStart = start
	w.selLen = length
	w.pos = start + length
	return w.cursor.Focus()
}

func (w *fieldWidget) blur() field.FocusResult {
	if w.field.Masked() {
		w.cursor.Blur()
	} else {
		w.field.SetText(w.input.Value())
		w.input.Blur()
	}
	w.selLen = 0
	res := w.field.OnFocusLost()
	w.checked = true
	w.text = res.Text
	if !w.field.Masked() {
		w.input.SetValue(w.field.RealValue())
	}
	return res
}

// update handles a message for the focused field. The boolean asks the form
// to move focus to the next field.
func (w *fieldWidget) update(msg tea.Msg) (tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		if w.field.Masked() {
			w.cursor, cmd = w.cursor.Update(msg)
		} else {
			w.input, cmd = w.input.Update(msg)
		}
		return cmd, false
	}
	if km.Type == tea.KeyEnter {
		res := w.field.OnKeyDown(input.KeyEnter, 0, w.anchor(), w.selLen)
		return nil, res.AdvanceFocus
	}
	if w.field.Masked() {
		w.updateMasked(km)
		return nil, false
	}
	return w.updateUnmasked(km), false
}

func (w *fieldWidget) updateUnmasked(km tea.KeyMsg) tea.Cmd {
	if w.field.Config().ReadOnly {
		switch km.Type {
		case tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd:
		default:
			return nil
		}
	}
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(km)
	w.field.SetText(w.input.Value())
	return cmd
}

func (w *fieldWidget) updateMasked(km tea.KeyMsg) {
	end := w.slots()
	switch km.Type {
	case tea.KeyLeft:
		w.moveCaret(w.pos-1, false)
	case tea.KeyRight:
		w.moveCaret(w.pos+1, false)
	case tea.KeyHome:
		w.moveCaret(0, false)
	case tea.KeyEnd:
		w.moveCaret(end, false)
	case tea.KeyShiftLeft:
		w.moveCaret(w.pos-1, true)
	case tea.KeyShiftRight:
		w.moveCaret(w.pos+1, true)
	case tea.KeyShiftHome:
		w.moveCaret(0, true)
	case tea.KeyShiftEnd:
		w.moveCaret(end, true)
	case tea.KeyBackspace:
		w.applyKey(input.KeyBackspace, 0)
	case tea.KeyDelete:
		w.applyKey(input.KeyDelete, 0)
	case tea.KeySpace:
		w.typeRune(' ')
	case tea.KeyRunes:
		for _, r := range km.Runes {
			w.typeRune(r)
		}
	}
}

func (w *fieldWidget) anchor() int {
	if w.selLen > 0 {
		return w.selStart
	}
	return w.pos
}

func (w *fieldWidget) applyKey(key input.Key, r rune) input.Result {
	res := w.field.OnKeyDown(key, r, w.anchor(), w.selLen)
	if res.Handled {
		w.setCaret(res.Cursor)
	}
	return res
}

func (w *fieldWidget) typeRune(r rune) {
	key := input.KeyRune
	if r == ' ' {
		key = input.KeySpace
	}
	res := w.applyKey(key, r)
	if res.Handled {
		return
	}
	start := w.anchor()
	if res.Changed {
		start = res.Cursor
	}
	_, pos := w.field.OnTextInput(string(r), start)
	w.setCaret(pos)
}

func (w *fieldWidget) setCaret(pos int) {
	w.pos = clamp(pos, 0, w.slots())
	w.selLen = 0
}

func (w *fieldWidget) moveCaret(pos int, extend bool) {
	pos = clamp(pos, 0, w.slots())
	if !extend {
		w.setCaret(pos)
		return
	}
	if w.selLen == 0 {
		w.selAnchor = w.pos
	}
	w.pos = pos
	w.selStart = minInt(w.selAnchor, pos)
	w.selLen = maxInt(w.selAnchor, pos) - w.selStart
}

func (w *fieldWidget) toggleMode() input.Mode {
	return w.field.ToggleMode()
}

func (w *fieldWidget) valid() bool {
	return !w.checked || w.field.Valid()
}

func (w *fieldWidget) fill(focused bool) lipgloss.Color {
	switch {
	case focused:
		return focusedFill
	case !w.valid():
		return invalidFill
	default:
		return validFill
	}
}

func (w *fieldWidget) boxWidth() int {
	width := w.field.MaxLength() + 1
	if width < minBoxWidth {
		width = minBoxWidth
	}
	return width
}

func (w *fieldWidget) view(focused bool, captionWidth, maxWidth int) string {
	caption := runewidth.FillRight(w.caption(), captionWidth)
	if focused {
		caption = activeCaptionStyle.Render(caption)
	} else {
		caption = captionStyle.Render(caption)
	}

	width := w.boxWidth()
	if maxWidth > 0 && width > maxWidth-captionWidth-4 {
		width = maxInt(minBoxWidth, maxWidth-captionWidth-4)
	}
	fill := w.fill(focused)
	var content string
	if w.field.Masked() {
		content = w.maskedView(focused, fill)
	} else {
		content = w.unmaskedView(focused, fill)
	}
	box := boxStyle
	switch {
	case focused:
		box = focusedBoxStyle
	case !w.valid():
		box = invalidBoxStyle
	}
	content = box.Width(width).Background(fill).Render(content)

	parts := []string{caption, " ", content}
	if w.spec.Button != "" {
		parts = append(parts, " ", buttonStyle.Render(w.spec.Button))
	}
	if !w.valid() {
		parts = append(parts, " ", errorStyle.Render("invalid"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (w *fieldWidget) maskedView(focused bool, fill lipgloss.Color) string {
	display := []rune(w.field.Text())
	selLen := 0
	if focused {
		selLen = w.selLen
	}
	runes := buildSlotRunes(w.field.Positions(), display, fill, w.selStart, selLen)
	if !focused {
		return renderStyledRunes(runes)
	}
	base := textStyle.Background(fill)
	char := " "
	if w.pos < len(runes) {
		base = runes[w.pos].style
		char = string(runes[w.pos].r)
	}
	w.cursor.Style = base
	w.cursor.TextStyle = base
	w.cursor.SetChar(char)
	caret := styledRune{r: []rune(char)[0], s: w.cursor.View(), style: base, width: runewidth.StringWidth(char)}
	if w.pos < len(runes) {
		runes[w.pos] = caret
	} else {
		runes = append(runes, caret)
	}
	return renderStyledRunes(runes)
}

func (w *fieldWidget) unmaskedView(focused bool, fill lipgloss.Color) string {
	w.input.TextStyle = textStyle.Background(fill)
	w.input.Cursor.Style = textStyle.Background(fill)
	w.input.Cursor.TextStyle = textStyle.Background(fill)
	if focused {
		return w.input.View()
	}
	text := w.field.Text()
	if pc := w.field.PasswordChar(); pc != 0 {
		text = strings.Repeat(string(pc), utf8.RuneCountInString(w.field.RealValue()))
	}
	return textStyle.Background(fill).Render(text)
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
