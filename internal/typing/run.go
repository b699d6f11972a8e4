package typing

import (
	"bufio"
	"fmt"
	"io"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/typecode/internal/model"
)

// KeySource delivers keyboard events. ReadKey blocks until one is available.
type KeySource interface {
	ReadKey() (Key, error)
}

// Run shows line on w and feeds keys from src into a fresh session until it
// ends. The raw line is printed once, then every event redraws the buffer
// in place. ok is false when the session was aborted; err is set only when
// src fails.
func Run(src KeySource, w io.Writer, line []rune, r *Renderer, now func() time.Time, opts ...Option) (stats model.LineStats, ok bool, err error) {
	if _, err := fmt.Fprintf(w, "%s\r", string(line)); err != nil {
		return model.LineStats{}, false, err
	}
	s := New(line, now(), opts...)
	for {
		if _, err := fmt.Fprintf(w, "\r%s", r.Render(s.Slots())); err != nil {
			return model.LineStats{}, false, err
		}
		if f, ok := w.(interface{ Flush() error }); ok {
			if err := f.Flush(); err != nil {
				return model.LineStats{}, false, err
			}
		}
		key, err := src.ReadKey()
		if err != nil {
			return model.LineStats{}, false, err
		}
		if s.Press(key, now()).Done() {
			stats, ok := s.Result()
			return stats, ok, nil
		}
	}
}

// Runner runs sessions against a KeySource, one line at a time.
type Runner struct {
	Source   KeySource
	Out      io.Writer
	Renderer *Renderer
	Now      func() time.Time
	Options  []Option

	// Err holds the source error that ended the last session, if any.
	Err error
}

// RunSession implements trainer.SessionRunner. A source error aborts the
// session and is kept in Err.
func (r *Runner) RunSession(line []rune) (model.LineStats, bool) {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	stats, ok, err := Run(r.Source, r.Out, line, r.Renderer, now, r.Options...)
	if err != nil {
		r.Err = err
		return model.LineStats{}, false
	}
	if _, err := io.WriteString(r.Out, "\r\n"); err != nil {
		r.Err = err
		return model.LineStats{}, false
	}
	return stats, ok
}

// ScriptSource decodes keystrokes from a byte stream: newline or carriage
// return is Enter, ESC is Escape, DEL or BS is Backspace and every other
// printable rune (including tab) is typed as-is.
type ScriptSource struct {
	rd *bufio.Reader
}

// NewScriptSource reads keystrokes from r.
func NewScriptSource(r io.Reader) *ScriptSource {
	return &ScriptSource{rd: bufio.NewReader(r)}
}

// ReadKey implements KeySource.
func (s *ScriptSource) ReadKey() (Key, error) {
	r, size, err := s.rd.ReadRune()
	if err != nil {
		return Key{}, err
	}
	switch {
	case r == utf8.RuneError && size == 1:
		return Key{Kind: KeyOther}, nil
	case r == '\n' || r == '\r':
		return Key{Kind: KeyEnter}, nil
	case r == 0x1b:
		return Key{Kind: KeyEscape}, nil
	case r == 0x7f || r == 0x08:
		return Key{Kind: KeyBackspace}, nil
	case r == '\t' || !unicode.IsControl(r):
		return Char(r), nil
	default:
		return Key{Kind: KeyOther}, nil
	}
}
