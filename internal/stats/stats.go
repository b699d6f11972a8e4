// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/typecode/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Aggregate is the running sum of line stats over a training run.
type Aggregate struct {
	Chars    float64
	Seconds  float64
	Mistakes float64
	Lines    int
}

// Merge returns a with line added field by field.
func (a Aggregate) Merge(line model.LineStats) Aggregate {
	return Aggregate{
		Chars:    a.Chars + line.Chars,
		Seconds:  a.Seconds + line.Seconds,
		Mistakes: a.Mistakes + line.Mistakes,
		Lines:    a.Lines + 1,
	}
}

// Of returns the aggregate of a single line.
func Of(line model.LineStats) Aggregate {
	return Aggregate{}.Merge(line)
}

// CharsPerMinute returns correctly typed characters per minute, rounded.
// A zero duration yields NaN or +Inf.
func (a Aggregate) CharsPerMinute() float64 {
	return math.Round((a.Chars - a.Mistakes) / a.Seconds * 60)
}

// WordsPerMinute returns CharsPerMinute over a five-character word, rounded.
func (a Aggregate) WordsPerMinute() float64 {
	return math.Round(a.CharsPerMinute() / 5)
}

// Accuracy returns 1 - mistakes/chars rounded to the nearest integer, so
// every value collapses to 0 or 1. Use AccuracyRatio for the fraction.
func (a Aggregate) Accuracy() float64 {
	return math.Round(1 - a.Mistakes/a.Chars)
}

// AccuracyRatio returns the unrounded 1 - mistakes/chars.
func (a Aggregate) AccuracyRatio() float64 {
	return 1 - a.Mistakes/a.Chars
}

// Finite reports whether v can be displayed as a number.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Sparkline renders a single-line ASCII sparkline for the values.
// Non-finite values are skipped.
func Sparkline(values []float64) string {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if Finite(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return ""
	}
	minVal := finite[0]
	maxVal := finite[0]
	for _, v := range finite[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(finite))
	}
	var b strings.Builder
	for _, v := range finite {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
