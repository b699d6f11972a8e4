package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/typecode/internal/model"
)

func TestRenderReport(t *testing.T) {
	results := []model.LineResult{
		{Line: "func main() {", Outcome: model.OutcomeCompleted, Stats: model.LineStats{Chars: 13, Seconds: 6, Mistakes: 1}},
		{Line: "return nil", Outcome: model.OutcomeSkipped},
		{Line: "fmt.Println(x)", Outcome: model.OutcomeCompleted, Stats: model.LineStats{Chars: 14, Seconds: 7, Mistakes: 0}},
	}
	total := Aggregate{}
	for _, res := range results {
		total = total.Merge(res.Stats)
	}
	var buf bytes.Buffer
	err := RenderReport(&buf, Report{Path: "main.go", Total: total, Results: results, Aborted: true}, 80)
	if err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"File: main.go",
		"Lines: 2 completed, 1 skipped (stopped)",
		"Chars: 27  Mistakes: 1  Time: 13.0s",
		"CPM: 120  WPM: 24",
		"Accuracy: 1 (96.3%)",
		"CPM trend:",
		"completed",
		"return nil",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderReportDegenerate(t *testing.T) {
	results := []model.LineResult{{Line: "return nil", Outcome: model.OutcomeSkipped}}
	var buf bytes.Buffer
	if err := RenderReport(&buf, Report{Total: Of(model.LineStats{}), Results: results}, 0); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "CPM: n/a  WPM: n/a") || !strings.Contains(out, "Accuracy: n/a (n/a)") {
		t.Fatalf("expected n/a metrics:\n%s", out)
	}
	if strings.Contains(out, "CPM trend") {
		t.Fatalf("no trend expected without completed lines:\n%s", out)
	}
}

func TestRenderReportTruncatesLongLines(t *testing.T) {
	long := strings.Repeat("x", 200)
	results := []model.LineResult{{Line: long, Outcome: model.OutcomeSkipped}}
	var buf bytes.Buffer
	if err := RenderReport(&buf, Report{Total: Of(model.LineStats{}), Results: results}, 60); err != nil {
		t.Fatalf("render report: %v", err)
	}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if displayWidth(line) > 60 {
			t.Fatalf("line wider than 60: %q", line)
		}
	}
	if !strings.Contains(buf.String(), "…") {
		t.Fatalf("expected truncation marker")
	}
}
