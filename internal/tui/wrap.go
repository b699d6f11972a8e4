package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typecode/internal/typing"
)

const tabStop = 8

type styledRune struct {
	s       string
	width   int
	isSpace bool
	isTab   bool
}

// widthAt returns the columns the rune takes when drawn at col. A tab
// advances to the next tab stop.
func (r styledRune) widthAt(col int) int {
	if r.isTab {
		return tabStop - col%tabStop
	}
	return r.width
}

func buildStyledRunes(r *typing.Renderer, slots []typing.Slot) []styledRune {
	out := make([]styledRune, 0, len(slots))
	for _, slot := range slots {
		shown := slot.Char
		if slot.State == typing.Untouched {
			shown = slot.Glyph
		}
		out = append(out, styledRune{
			s:       r.RenderSlot(slot),
			width:   runewidth.RuneWidth(shown),
			isSpace: shown == ' ',
			isTab:   shown == '\t',
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

// wrapStyledRunes breaks runes into rows no wider than width, preferring to
// break after the last space of a row. Every rune is kept, including the
// breaking space.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		itemWidth := item.widthAt(lineWidth)
		if lineWidth+itemWidth > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx+1]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += itemWidth
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	col := 0
	for _, item := range line {
		col += item.widthAt(col)
	}
	return col
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
