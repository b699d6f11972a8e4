package typing

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestRenderSlotStyles(t *testing.T) {
	r := NewRenderer()
	slots := []Slot{
		{Char: 'a', State: Correct, Glyph: 'a'},
		{Char: 'b', State: Incorrect, Glyph: 'b'},
		{Char: 'c', State: Untouched, Glyph: 'c'},
	}
	got := r.Render(slots)
	want := "\x1b[32ma\x1b[0m" + "\x1b[31mb\x1b[0m" + "c"
	if got != want {
		t.Fatalf("unexpected render:\n got %q\nwant %q", got, want)
	}
}

func TestRenderUntouchedUsesGlyph(t *testing.T) {
	r := NewRenderer()
	got := r.Render([]Slot{{Char: 'b', State: Untouched, Glyph: 'f'}})
	if got != "f" {
		t.Fatalf("expected glyph 'f', got %q", got)
	}
}

type keyList struct {
	keys []Key
}

func (k *keyList) ReadKey() (Key, error) {
	if len(k.keys) == 0 {
		return Key{}, io.EOF
	}
	key := k.keys[0]
	k.keys = k.keys[1:]
	return key, nil
}

func fixedClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		if i >= len(times) {
			return times[len(times)-1]
		}
		now := times[i]
		i++
		return now
	}
}

func TestRunRedrawsInPlace(t *testing.T) {
	src := &keyList{keys: []Key{Char('a'), Char('x'), {Kind: KeyEscape}}}
	var out bytes.Buffer
	_, ok, err := Run(src, &out, []rune("abcdef"), NewRenderer(), fixedClock(t0))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if ok {
		t.Fatalf("escape must produce no result")
	}
	got := out.String()
	if !strings.HasPrefix(got, "abcdef\r\rabcdef") {
		t.Fatalf("expected raw line then first redraw, got %q", got)
	}
	if strings.Contains(got, "\n") {
		t.Fatalf("redraws must not start new lines: %q", got)
	}
	if strings.Count(got, "\r") != 4 {
		t.Fatalf("expected one redraw per event, got %q", got)
	}
	if !strings.HasSuffix(got, "\r\x1b[32ma\x1b[0m\x1b[31mb\x1b[0mcdef") {
		t.Fatalf("unexpected last frame: %q", got)
	}
}

func TestRunCompletesWithStats(t *testing.T) {
	keys := []Key{}
	for _, r := range "function" {
		keys = append(keys, Char(r))
	}
	keys = append(keys, Key{Kind: KeyEnter})
	clock := fixedClock(t0, t0, t0, t0, t0, t0, t0, t0, t0, t0.Add(2*time.Second))
	stats, ok, err := Run(&keyList{keys: keys}, io.Discard, []rune("function"), NewRenderer(), clock)
	if err != nil || !ok {
		t.Fatalf("expected result, got ok=%v err=%v", ok, err)
	}
	if stats.Chars != 8 || stats.Mistakes != 0 || stats.Seconds != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestRunReturnsSourceError(t *testing.T) {
	_, ok, err := Run(&keyList{}, io.Discard, []rune("abcdef"), NewRenderer(), fixedClock(t0))
	if !errors.Is(err, io.EOF) || ok {
		t.Fatalf("expected EOF, got ok=%v err=%v", ok, err)
	}
}

func TestRunnerKeepsError(t *testing.T) {
	runner := &Runner{Source: &keyList{}, Out: io.Discard, Renderer: NewRenderer()}
	if _, ok := runner.RunSession([]rune("abcdef")); ok {
		t.Fatalf("expected abort on source error")
	}
	if !errors.Is(runner.Err, io.EOF) {
		t.Fatalf("expected EOF in Err, got %v", runner.Err)
	}
}

func TestScriptSourceDecoding(t *testing.T) {
	src := NewScriptSource(strings.NewReader("a\t\x7f\x08\x1b\n\r\x01é"))
	want := []Key{
		Char('a'),
		Char('\t'),
		{Kind: KeyBackspace},
		{Kind: KeyBackspace},
		{Kind: KeyEscape},
		{Kind: KeyEnter},
		{Kind: KeyEnter},
		{Kind: KeyOther},
		Char('é'),
	}
	for i, w := range want {
		got, err := src.ReadKey()
		if err != nil {
			t.Fatalf("key %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("key %d: expected %+v, got %+v", i, w, got)
		}
	}
	if _, err := src.ReadKey(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}
