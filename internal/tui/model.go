// Package tui provides the Bubble Tea form interface.
package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/fieldmask/internal/model"
)

const (
	focusedFill = lipgloss.Color("#DCECF9")
	invalidFill = lipgloss.Color("#FFE4E1")
	validFill   = lipgloss.Color("#FFFFFF")
)

var (
	titleStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	captionStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	activeCaptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	textStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#1F1F1F"))
	literalStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	promptStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	boxStyle           = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	focusedBoxStyle = boxStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	invalidBoxStyle = boxStyle.BorderForeground(lipgloss.Color("#FF4D4F"))
	buttonStyle     = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#8C8C8C"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea form UI.
type Model struct {
	form     model.Form
	fields   []*fieldWidget
	active   int
	keys     keyMap
	help     help.Model
	viewport viewport.Model

	width  int
	height int

	status    string
	submitted bool
	cancelled bool
	result    model.FormResult
	presses   []model.ButtonPress
	now       func() time.Time
}

// NewModel constructs a form model. Settings supply the defaults every field
// starts from.
func NewModel(form model.Form, settings model.Settings) (*Model, error) {
	if len(form.Fields) == 0 {
		return nil, fmt.Errorf("form has no fields")
	}
	m := &Model{
		form:     form,
		keys:     defaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(0, 0),
		now:      time.Now,
	}
	for _, spec := range form.Fields {
		w, err := newFieldWidget(spec, settings)
		if err != nil {
			return nil, err
		}
		m.fields = append(m.fields, w)
	}
	m.fields[0].focus()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return cursor.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Next):
			return m, m.moveFocus(1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.moveFocus(-1)
		case key.Matches(msg, m.keys.Mode):
			mode := m.fields[m.active].toggleMode()
			m.status = "mode " + mode.String()
			return m, nil
		case key.Matches(msg, m.keys.Button):
			m.pressButton()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.updateLayout()
			return m, nil
		}
		m.status = ""
		cmd, advance := m.fields[m.active].update(msg)
		if advance {
			return m, tea.Batch(cmd, m.moveFocus(1))
		}
		return m, cmd
	default:
		cmd, _ := m.fields[m.active].update(msg)
		return m, cmd
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	header := titleStyle.Render(m.title())
	body := m.renderFields()
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{header, body, footer}, "\n")
	}
	m.viewport.SetContent(body)
	m.scrollToActive()
	return strings.Join([]string{header, m.viewport.View(), footer}, "\n")
}

// Result returns the submitted form. The boolean is false when the form was
// cancelled or is still being edited.
func (m *Model) Result() (model.FormResult, bool) {
	return m.result, m.submitted
}

// Cancelled reports whether the user left without submitting.
func (m *Model) Cancelled() bool {
	return m.cancelled
}

// Presses returns the field buttons pressed during the session.
func (m *Model) Presses() []model.ButtonPress {
	return m.presses
}

func (m *Model) title() string {
	if m.form.Title != "" {
		return m.form.Title
	}
	return "Form"
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	count := len(m.fields)
	m.fields[m.active].blur()
	next := m.active + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.active = next
	return m.fields[m.active].focus()
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	result := model.FormResult{
		Title:       m.title(),
		SubmittedAt: m.now(),
		Valid:       true,
	}
	firstInvalid := -1
	for i, w := range m.fields {
		res := w.blur()
		if !res.Valid {
			result.Valid = false
			if firstInvalid < 0 {
				firstInvalid = i
			}
		}
		result.Fields = append(result.Fields, model.FieldResult{
			Name:  w.spec.Name,
			Type:  w.field.Type().String(),
			Value: res.Text,
			Valid: res.Valid,
		})
	}
	if firstInvalid >= 0 {
		invalid := 0
		for _, f := range result.Fields {
			if !f.Valid {
				invalid++
			}
		}
		m.status = fmt.Sprintf("%d invalid field(s)", invalid)
		m.active = firstInvalid
		return m, m.fields[m.active].focus()
	}
	m.result = result
	m.submitted = true
	return m, tea.Quit
}

func (m *Model) pressButton() {
	w := m.fields[m.active]
	if w.spec.Button == "" {
		m.status = "no button on " + w.caption()
		return
	}
	m.presses = append(m.presses, model.ButtonPress{Field: w.spec.Name, Value: w.field.RealValue()})
	m.status = fmt.Sprintf("%s: %s pressed", w.caption(), w.spec.Button)
}

func (m *Model) captionWidth() int {
	width := 0
	for _, w := range m.fields {
		if cw := runewidth.StringWidth(w.caption()); cw > width {
			width = cw
		}
	}
	return width
}

func (m *Model) renderFields() string {
	captionWidth := m.captionWidth()
	rows := make([]string, 0, len(m.fields))
	for i, w := range m.fields {
		rows = append(rows, w.view(i == m.active, captionWidth, m.width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderFooter() string {
	segments := []string{m.fields[m.active].field.Mode().String()}
	if m.status != "" {
		segments = append(segments, m.status)
	}
	line := footerStyle.Render(strings.Join(segments, "  "))
	return line + "\n" + m.help.View(m.keys)
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	headerHeight := lipgloss.Height(titleStyle.Render(m.title()))
	footerHeight := lipgloss.Height(m.renderFooter())
	m.viewport.Width = m.width
	m.viewport.Height = maxInt(1, m.height-headerHeight-footerHeight)
}

// scrollToActive keeps the focused row inside the viewport.
func (m *Model) scrollToActive() {
	captionWidth := m.captionWidth()
	top := 0
	for i := 0; i < m.active; i++ {
		top += lipgloss.Height(m.fields[i].view(false, captionWidth, m.width))
	}
	bottom := top + lipgloss.Height(m.fields[m.active].view(true, captionWidth, m.width))
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
