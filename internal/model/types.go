// Package model defines shared data structures.
package model

// Config defines training settings.
type Config struct {
	File           string
	Directory      string
	BackspaceGlyph string
	EnterMode      string
	Attempts       int
	Seed           int64
	LogLevel       string
	Script         string
}

// LineStats captures the outcome of one typed line.
type LineStats struct {
	Chars    float64
	Seconds  float64
	Mistakes float64
}

// Outcome describes how a line session ended.
type Outcome int

const (
	// OutcomeCompleted means every slot was typed and Enter accepted the line.
	OutcomeCompleted Outcome = iota
	// OutcomeSkipped means Enter was pressed before the line was fully typed.
	OutcomeSkipped
	// OutcomeAborted means Escape ended the whole run on this line.
	OutcomeAborted
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// LineResult records a presented line with its outcome.
type LineResult struct {
	Line    string
	Outcome Outcome
	Stats   LineStats
}
