package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typecode/internal/typing"
)

var functionKeys = []tea.KeyType{
	tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4, tea.KeyF5,
	tea.KeyF6, tea.KeyF7, tea.KeyF8, tea.KeyF9, tea.KeyF10,
	tea.KeyF11, tea.KeyF12, tea.KeyF13, tea.KeyF14, tea.KeyF15,
	tea.KeyF16, tea.KeyF17, tea.KeyF18, tea.KeyF19, tea.KeyF20,
}

// keysFromMsg converts one Bubble Tea key message into session events.
// A message carrying several runes (fast typing or a paste) yields one event
// per rune.
func keysFromMsg(msg tea.KeyMsg) []typing.Key {
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]typing.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, typing.Char(r))
		}
		return keys
	case tea.KeySpace:
		return []typing.Key{typing.Char(' ')}
	case tea.KeyTab:
		return []typing.Key{typing.Char('\t')}
	case tea.KeyEnter:
		return []typing.Key{{Kind: typing.KeyEnter}}
	case tea.KeyEsc, tea.KeyCtrlC:
		return []typing.Key{{Kind: typing.KeyEscape}}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []typing.Key{{Kind: typing.KeyBackspace}}
	case tea.KeyCtrlAt:
		return []typing.Key{typing.Char(' ')}
	}
	// Remaining control chords type their letter.
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return []typing.Key{typing.Char(rune('a' + int(msg.Type-tea.KeyCtrlA)))}
	}
	for i, fk := range functionKeys {
		if msg.Type == fk {
			return []typing.Key{{Kind: typing.KeyChar, Text: strconv.Itoa(i + 1)}}
		}
	}
	return []typing.Key{{Kind: typing.KeyOther}}
}
