// Package typing implements the line-typing state machine and its rendering.
package typing

import (
	"time"

	"github.com/verte-zerg/typecode/internal/model"
)

// ResetIndex is the target line position whose rune a backspaced slot
// displays in GlyphLine mode.
const ResetIndex = 5

// SlotState is the display state of one character position.
type SlotState int

// Slot states.
const (
	Untouched SlotState = iota
	Correct
	Incorrect
)

// Slot is one position of the working buffer.
type Slot struct {
	Char  rune
	State SlotState
	// Glyph is what an Untouched slot displays.
	Glyph rune
}

// State is the lifecycle state of a session.
type State int

// Session states. Everything but StateTyping is terminal.
const (
	StateTyping State = iota
	StateCompleted
	StateSkipped
	StateAborted
)

// Done reports whether the state is terminal.
func (s State) Done() bool {
	return s != StateTyping
}

// Outcome maps a terminal state to the model outcome.
func (s State) Outcome() model.Outcome {
	switch s {
	case StateCompleted:
		return model.OutcomeCompleted
	case StateSkipped:
		return model.OutcomeSkipped
	default:
		return model.OutcomeAborted
	}
}

// GlyphMode selects what a backspaced slot displays.
type GlyphMode string

const (
	// GlyphLine shows the rune at ResetIndex of the target line.
	GlyphLine GlyphMode = "line"
	// GlyphSlot shows the slot's own rune.
	GlyphSlot GlyphMode = "slot"
)

// ParseGlyphMode validates a glyph mode name.
func ParseGlyphMode(s string) (GlyphMode, bool) {
	switch GlyphMode(s) {
	case GlyphLine, GlyphSlot:
		return GlyphMode(s), true
	default:
		return "", false
	}
}

// EnterMode selects what Enter does once every slot has been typed.
type EnterMode string

const (
	// EnterComplete accepts a fully typed line with its stats.
	EnterComplete EnterMode = "complete"
	// EnterSkip makes every Enter yield the zero record.
	EnterSkip EnterMode = "skip"
)

// ParseEnterMode validates an Enter mode name.
func ParseEnterMode(s string) (EnterMode, bool) {
	switch EnterMode(s) {
	case EnterComplete, EnterSkip:
		return EnterMode(s), true
	default:
		return "", false
	}
}

// Option configures a Session.
type Option func(*Session)

// WithGlyphMode sets the backspace glyph mode.
func WithGlyphMode(mode GlyphMode) Option {
	return func(s *Session) {
		s.glyphMode = mode
	}
}

// WithEnterMode sets the Enter mode.
func WithEnterMode(mode EnterMode) Option {
	return func(s *Session) {
		s.enterMode = mode
	}
}

// Session owns the working buffer of a single line.
type Session struct {
	line      []rune
	slots     []Slot
	cursor    int
	start     time.Time
	end       time.Time
	typed     int
	mistakes  int
	state     State
	glyphMode GlyphMode
	enterMode EnterMode
}

// New starts a session for line. start is the elapsed-time origin.
func New(line []rune, start time.Time, opts ...Option) *Session {
	s := &Session{
		line:      append([]rune(nil), line...),
		slots:     make([]Slot, len(line)),
		start:     start,
		glyphMode: GlyphLine,
		enterMode: EnterComplete,
	}
	for _, opt := range opts {
		opt(s)
	}
	for i, r := range s.line {
		s.slots[i] = Slot{Char: r, Glyph: r}
	}
	return s
}

// Press applies one keyboard event and returns the resulting state.
// Events arriving after the session ended are ignored.
func (s *Session) Press(key Key, at time.Time) State {
	if s.state.Done() {
		return s.state
	}
	switch key.Kind {
	case KeyEscape:
		s.finish(StateAborted, at)
	case KeyEnter:
		if s.cursor >= len(s.slots) && s.enterMode != EnterSkip {
			s.finish(StateCompleted, at)
		} else {
			s.finish(StateSkipped, at)
		}
	case KeyBackspace:
		s.backspace()
	case KeyChar:
		s.typeText(key.Text)
	}
	return s.state
}

func (s *Session) typeText(text string) {
	if s.cursor >= len(s.slots) {
		return
	}
	slot := &s.slots[s.cursor]
	if text == string(slot.Char) {
		slot.State = Correct
	} else {
		slot.State = Incorrect
		s.mistakes++
	}
	s.typed++
	s.cursor++
}

func (s *Session) backspace() {
	if s.cursor == 0 {
		return
	}
	s.cursor--
	slot := &s.slots[s.cursor]
	slot.State = Untouched
	slot.Glyph = s.resetGlyph(slot.Char)
}

func (s *Session) resetGlyph(own rune) rune {
	if s.glyphMode == GlyphSlot || len(s.line) <= ResetIndex {
		return own
	}
	return s.line[ResetIndex]
}

func (s *Session) finish(state State, at time.Time) {
	s.state = state
	s.end = at
}

// Result returns the line stats of a finished session. ok is false when the
// session was aborted or is still running.
func (s *Session) Result() (stats model.LineStats, ok bool) {
	switch s.state {
	case StateCompleted:
		return model.LineStats{
			Chars:    float64(s.typed),
			Seconds:  s.end.Sub(s.start).Seconds(),
			Mistakes: float64(s.mistakes),
		}, true
	case StateSkipped:
		return model.LineStats{}, true
	default:
		return model.LineStats{}, false
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Cursor returns the index of the active slot.
func (s *Session) Cursor() int { return s.cursor }

// Slots exposes the working buffer. Callers must not mutate it.
func (s *Session) Slots() []Slot { return s.slots }

// Line returns the target line.
func (s *Session) Line() []rune { return s.line }

// Mistakes returns the number of mismatched keystrokes.
func (s *Session) Mistakes() int { return s.mistakes }
