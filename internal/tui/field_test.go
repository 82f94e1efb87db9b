package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/fieldmask/internal/input"
	"github.com/verte-zerg/fieldmask/internal/model"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newWidget(t *testing.T, spec model.FieldSpec) *fieldWidget {
	t.Helper()
	w, err := newFieldWidget(spec, model.Settings{})
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	w.focus()
	return w
}

func TestMaskedWidgetTyping(t *testing.T) {
	w := newWidget(t, model.FieldSpec{Name: "cep", Type: "CEP"})
	w.update(runes("01310100"))
	if got := w.field.RealValue(); got != "01310-100" {
		t.Fatalf("expected 01310-100, got %q", got)
	}
	if w.pos != 9 {
		t.Fatalf("expected caret at end, got %d", w.pos)
	}
	res := w.blur()
	if !res.Valid || !w.valid() {
		t.Fatalf("expected valid CEP")
	}
}

func TestMaskedWidgetBackspace(t *testing.T) {
	w := newWidget(t, model.FieldSpec{Name: "cep", Type: "CEP"})
	w.update(runes("013101"))
	w.update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := w.field.RealValue(); got != "01310-   " {
		t.Fatalf("unexpected value %q", got)
	}
	if w.pos != 6 {
		t.Fatalf("expected caret on removed slot, got %d", w.pos)
	}
}

func TestMaskedWidgetSelectAllOnFocus(t *testing.T) {
	w := newWidget(t, model.FieldSpec{Name: "cep", Type: "CEP", Value: "01310-100"})
	if w.selStart != 0 || w.selLen != 9 {
		t.Fatalf("expected full selection, got %d+%d", w.selStart, w.selLen)
	}
	w.update(runes("2"))
	if got := w.field.RealValue(); got != "2    -   " {
		t.Fatalf("expected selection replaced, got %q", got)
	}
	if w.selLen != 0 || w.pos != 1 {
		t.Fatalf("expected caret after typed rune, got pos %d sel %d", w.pos, w.selLen)
	}
}

func TestMaskedWidgetShiftSelection(t *testing.T) {
	w := newWidget(t, model.FieldSpec{Name: "hora", Type: "Hora", Value: "12:30"})
	w.update(tea.KeyMsg{Type: tea.KeyHome})
	w.update(tea.KeyMsg{Type: tea.KeyShiftRight})
	w.update(tea.KeyMsg{Type: tea.KeyShiftRight})
	if w.selStart != 0 || w.selLen != 2 {
		t.Fatalf("expected selection 0+2, got %d+%d", w.selStart, w.selLen)
	}
	w.update(tea.KeyMsg{Type: tea.KeyDelete})
	if got := w.field.RealValue(); got != "  :30" {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestMaskedWidgetEnterAdvances(t *testing.T) {
	w := newWidget(t, model.FieldSpec{Name: "cep", Type: "CEP"})
	if _, advance := w.update(tea.KeyMsg{Type: tea.KeyEnter}); !advance {
		t.Fatalf("expected enter to advance focus")
	}
}

func TestUnmaskedWidgetTyping(t *testing.T) {
	w := newWidget(t, model.FieldSpec{Name: "uf", Type: "UF"})
	w.update(runes("spx"))
	if got := w.field.RealValue(); got != "sp" {
		t.Fatalf("expected char limit to apply, got %q", got)
	}
	res := w.blur()
	if res.Text != "SP" || !res.Valid {
		t.Fatalf("unexpected focus result %+v", res)
	}
	if w.input.Value() != "SP" {
		t.Fatalf("expected input to show normalised value, got %q", w.input.Value())
	}
	if _, advance := w.update(tea.KeyMsg{Type: tea.KeyEnter}); !advance {
		t.Fatalf("expected enter to advance focus")
	}
}

func TestReadOnlyWidget(t *testing.T) {
	w := newWidget(t, model.FieldSpec{Name: "n", Type: "Normal", Value: "fixo", ReadOnly: true})
	w.update(runes("abc"))
	if got := w.field.RealValue(); got != "fixo" {
		t.Fatalf("expected read-only value, got %q", got)
	}
}

func TestWidgetRejectsValueOutsideMask(t *testing.T) {
	if _, err := newFieldWidget(model.FieldSpec{Name: "cep", Type: "CEP", Value: "abc"}, model.Settings{}); err == nil {
		t.Fatalf("expected error for value outside mask")
	}
}

func TestWidgetBadMaskFallsBack(t *testing.T) {
	w, err := newFieldWidget(model.FieldSpec{Name: "x", Mask: `0\`}, model.Settings{})
	if err != nil {
		t.Fatalf("expected fallback, got %v", err)
	}
	if w.field.Masked() {
		t.Fatalf("expected unmasked field")
	}
}

func TestWidgetToggleMode(t *testing.T) {
	w := newWidget(t, model.FieldSpec{Name: "hora", Type: "Hora", Value: "12:30"})
	if w.toggleMode() != input.ModeOverwrite {
		t.Fatalf("expected overwrite mode")
	}
	w.update(tea.KeyMsg{Type: tea.KeyHome})
	w.update(runes("9"))
	if got := w.field.RealValue(); got != "92:30" {
		t.Fatalf("expected overwrite, got %q", got)
	}
}
