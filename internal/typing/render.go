package typing

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Renderer turns slots into a styled string. Correct slots are wrapped in
// a green escape pair, incorrect ones in a red pair.
type Renderer struct {
	correct   lipgloss.Style
	incorrect lipgloss.Style
}

// NewRenderer returns a Renderer that always emits basic ANSI colors,
// independent of the detected terminal profile.
func NewRenderer() *Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	return &Renderer{
		correct:   r.NewStyle().Foreground(lipgloss.Color("2")).TabWidth(lipgloss.NoTabConversion),
		incorrect: r.NewStyle().Foreground(lipgloss.Color("1")).TabWidth(lipgloss.NoTabConversion),
	}
}

// Render returns the display string of slots.
func (r *Renderer) Render(slots []Slot) string {
	var b strings.Builder
	for _, slot := range slots {
		b.WriteString(r.RenderSlot(slot))
	}
	return b.String()
}

// RenderSlot returns the display string of one slot.
func (r *Renderer) RenderSlot(slot Slot) string {
	switch slot.State {
	case Correct:
		return r.correct.Render(string(slot.Char))
	case Incorrect:
		return r.incorrect.Render(string(slot.Char))
	default:
		return string(slot.Glyph)
	}
}
