package stats

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typecode/internal/model"
)

const (
	defaultReportWidth = 80
	minLineColumn      = 10
)

// Report is the end-of-run summary of a training run.
type Report struct {
	Path    string
	Total   Aggregate
	Results []model.LineResult
	Aborted bool
}

// FormatMetric formats a derived metric, showing non-finite values as n/a.
func FormatMetric(v float64) string {
	if !Finite(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", v)
}

func formatRatio(v float64) string {
	if !Finite(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

// RenderReport prints the summary and a per-line table sized to width.
func RenderReport(w io.Writer, r Report, width int) error {
	if width <= 0 {
		width = defaultReportWidth
	}
	completed, skipped := 0, 0
	for _, res := range r.Results {
		switch res.Outcome {
		case model.OutcomeCompleted:
			completed++
		case model.OutcomeSkipped:
			skipped++
		}
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if r.Path != "" {
		if _, err := fmt.Fprintf(w, "File: %s\n", r.Path); err != nil {
			return err
		}
	}
	status := "finished"
	if r.Aborted {
		status = "stopped"
	}
	if _, err := fmt.Fprintf(w, "Lines: %d completed, %d skipped (%s)\n", completed, skipped, status); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Chars: %.0f  Mistakes: %.0f  Time: %.1fs\n", r.Total.Chars, r.Total.Mistakes, r.Total.Seconds); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "CPM: %s  WPM: %s\n", FormatMetric(r.Total.CharsPerMinute()), FormatMetric(r.Total.WordsPerMinute())); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy: %s (%s)\n", FormatMetric(r.Total.Accuracy()), formatRatio(r.Total.AccuracyRatio())); err != nil {
		return err
	}

	var cpms []float64
	for _, res := range r.Results {
		if res.Outcome == model.OutcomeCompleted {
			cpms = append(cpms, Of(res.Stats).CharsPerMinute())
		}
	}
	if len(cpms) > 1 {
		if _, err := fmt.Fprintf(w, "CPM trend: %s\n", Sparkline(cpms)); err != nil {
			return err
		}
	}
	if len(r.Results) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return renderLineTable(w, r.Results, width)
}

func renderLineTable(w io.Writer, results []model.LineResult, width int) error {
	headers := []string{"#", "Result", "Chars", "Mistakes", "Secs", "CPM", "Line"}
	rows := make([][]string, 0, len(results))
	for i, res := range results {
		agg := Of(res.Stats)
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			res.Outcome.String(),
			fmt.Sprintf("%.0f", res.Stats.Chars),
			fmt.Sprintf("%.0f", res.Stats.Mistakes),
			fmt.Sprintf("%.1f", res.Stats.Seconds),
			FormatMetric(agg.CharsPerMinute()),
			res.Line,
		})
	}
	lineCol := len(headers) - 1
	available := width - tableWidth(headers[:lineCol], rows, lineCol) - 1
	if available < minLineColumn {
		available = minLineColumn
	}
	for _, row := range rows {
		row[lineCol] = runewidth.Truncate(row[lineCol], available, "…")
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
