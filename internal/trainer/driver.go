// Package trainer sequences typing sessions over the lines of a file.
package trainer

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/typecode/internal/model"
	"github.com/verte-zerg/typecode/internal/stats"
)

// MinLineLength is the rune count a trimmed line must exceed to be presented.
const MinLineLength = 5

// ErrNoLines is returned when a file has no line worth typing.
var ErrNoLines = errors.New("no lines longer than 5 characters")

// FilterFunc returns true when a trimmed line should be presented.
type FilterFunc func(string) bool

// LongEnough is the default line filter.
func LongEnough(line string) bool {
	return line != "" && utf8.RuneCountInString(line) > MinLineLength
}

// Eligible trims raw lines and keeps those accepted by LongEnough, in order.
func Eligible(raw []string) []string {
	return Filter(raw, LongEnough)
}

// Filter trims raw lines and keeps those accepted by keep, in order.
func Filter(raw []string, keep FilterFunc) []string {
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if keep(line) {
			lines = append(lines, line)
		}
	}
	return lines
}

// SessionRunner runs one blocking typing session. ok is false when the user
// aborted the whole run.
type SessionRunner interface {
	RunSession(line []rune) (stats model.LineStats, ok bool)
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used for session outcomes.
func WithLogger(logger *log.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Driver walks the eligible lines of a file and accumulates their stats.
type Driver struct {
	lines   []string
	next    int
	total   stats.Aggregate
	results []model.LineResult
	aborted bool
	logger  *log.Logger
}

// NewDriver filters raw lines and prepares a run over them.
func NewDriver(raw []string, opts ...Option) *Driver {
	d := &Driver{
		lines:  Eligible(raw),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Lines returns the eligible lines in presentation order.
func (d *Driver) Lines() []string {
	return d.lines
}

// Current returns the line to present next. ok is false once the run has
// ended, either because every line was presented or because it was aborted.
func (d *Driver) Current() (line string, ok bool) {
	if d.aborted || d.next >= len(d.lines) {
		return "", false
	}
	return d.lines[d.next], true
}

// Position returns the 1-based index of the current line and the line count.
func (d *Driver) Position() (int, int) {
	return d.next + 1, len(d.lines)
}

// Record stores the outcome of the current line's session. An aborted
// session stops the run; any other outcome is merged into the total.
// It reports whether another line remains.
func (d *Driver) Record(outcome model.Outcome, lineStats model.LineStats) bool {
	line, ok := d.Current()
	if !ok {
		return false
	}
	d.logger.Debug("session ended", "line", d.next+1, "outcome", outcome, "chars", lineStats.Chars, "mistakes", lineStats.Mistakes, "seconds", lineStats.Seconds)
	if outcome == model.OutcomeAborted {
		d.aborted = true
		return false
	}
	d.total = d.total.Merge(lineStats)
	d.results = append(d.results, model.LineResult{Line: line, Outcome: outcome, Stats: lineStats})
	d.next++
	_, more := d.Current()
	return more
}

// Run presents every line through runner until the lines are exhausted or
// a session is aborted, and returns the total.
func (d *Driver) Run(runner SessionRunner) stats.Aggregate {
	for {
		line, ok := d.Current()
		if !ok {
			return d.total
		}
		lineStats, ok := runner.RunSession([]rune(line))
		if !d.Record(outcomeOf(lineStats, ok), lineStats) {
			return d.total
		}
	}
}

// A completed line always has typed characters, so a present zero record
// is an Enter skip.
func outcomeOf(lineStats model.LineStats, ok bool) model.Outcome {
	switch {
	case !ok:
		return model.OutcomeAborted
	case lineStats == model.LineStats{}:
		return model.OutcomeSkipped
	default:
		return model.OutcomeCompleted
	}
}

// Total returns the aggregate of every recorded line.
func (d *Driver) Total() stats.Aggregate {
	return d.total
}

// Results returns the recorded lines in order.
func (d *Driver) Results() []model.LineResult {
	return d.results
}

// Aborted reports whether the run was stopped by the user.
func (d *Driver) Aborted() bool {
	return d.aborted
}
