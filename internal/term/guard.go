// Package term owns the raw-mode state of the controlling terminal.
package term

import (
	"os"
	"sync"

	xterm "golang.org/x/term"
)

const widthBackup = 80

// Guard restores the terminal state captured by Acquire.
type Guard struct {
	fd    int
	state *xterm.State
	once  sync.Once
	err   error
}

// Acquire switches fd to raw mode. The returned Guard must be released on
// every exit path, typically with defer.
func Acquire(fd int) (*Guard, error) {
	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &Guard{fd: fd, state: state}, nil
}

// Release restores the captured state. It is safe to call more than once
// and on a nil Guard; only the first call touches the terminal.
func (g *Guard) Release() error {
	if g == nil {
		return nil
	}
	g.once.Do(func() {
		g.err = xterm.Restore(g.fd, g.state)
	})
	return g.err
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return xterm.IsTerminal(int(f.Fd()))
}

// Width returns the column count of the terminal behind f, or 80 when it
// cannot be determined.
func Width(f *os.File) int {
	width, _, err := xterm.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return widthBackup
	}
	return width
}
