package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/fieldmask/internal/mask"
)

type styledRune struct {
	r     rune
	s     string
	style lipgloss.Style
	width int
}

// buildSlotRunes styles the display string of a masked field slot by slot.
// display must hold one rune per position; extra runes are styled as text.
func buildSlotRunes(positions []mask.Position, display []rune, fill lipgloss.TerminalColor, selStart, selLen int) []styledRune {
	out := make([]styledRune, 0, len(display))
	for i, r := range display {
		style := textStyle
		if i < len(positions) {
			switch {
			case !positions[i].Editable():
				style = literalStyle
			case positions[i].PromptShown():
				style = promptStyle
			}
		}
		style = style.Background(fill)
		if selLen > 0 && i >= selStart && i < selStart+selLen {
			style = style.Reverse(true)
		}
		out = append(out, styledRune{
			r:     r,
			s:     style.Render(string(r)),
			style: style,
			width: runewidth.RuneWidth(r),
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}
