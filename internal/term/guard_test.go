package term

import (
	"os"
	"path/filepath"
	"testing"
)

func regularFile(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	t.Cleanup(func() {
		if cerr := f.Close(); cerr != nil {
			t.Errorf("close: %v", cerr)
		}
	})
	return f
}

func TestAcquireFailsOnRegularFile(t *testing.T) {
	f := regularFile(t)
	g, err := Acquire(int(f.Fd()))
	if err == nil {
		t.Fatalf("expected raw mode to fail on a regular file")
	}
	if g != nil {
		t.Fatalf("expected nil guard on failure")
	}
}

func TestReleaseNilGuard(t *testing.T) {
	var g *Guard
	if err := g.Release(); err != nil {
		t.Fatalf("nil guard release: %v", err)
	}
}

func TestIsTerminalAndWidthOnRegularFile(t *testing.T) {
	f := regularFile(t)
	if IsTerminal(f) {
		t.Fatalf("regular file reported as terminal")
	}
	if got := Width(f); got != widthBackup {
		t.Fatalf("expected fallback width %d, got %d", widthBackup, got)
	}
}
