// Package picker chooses a random file below a directory.
package picker

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultAttempts is the number of failed descents allowed before giving up.
const DefaultAttempts = 3

const maxDepth = 64

// ErrNoFile is returned when the attempt budget is spent without reaching a
// regular file.
var ErrNoFile = errors.New("failed to find file")

// Picker walks a directory tree along uniformly random entries.
type Picker struct {
	rnd      *rand.Rand
	attempts int
	logger   *log.Logger
}

// Option configures a Picker.
type Option func(*Picker)

// WithLogger sets the logger that receives failed attempts.
func WithLogger(logger *log.Logger) Option {
	return func(p *Picker) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New returns a Picker. A zero seed uses the current time; attempts below
// one fall back to DefaultAttempts.
func New(seed int64, attempts int, opts ...Option) *Picker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if attempts < 1 {
		attempts = DefaultAttempts
	}
	p := &Picker{
		rnd:      rand.New(rand.NewSource(seed)),
		attempts: attempts,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pick descends from root, choosing one entry per directory, until it reaches
// a regular file. An entry that cannot be resolved, an empty directory, a
// special file or a descent deeper than maxDepth costs one attempt and
// restarts the walk at root. The budget is shared by the whole call.
func (p *Picker) Pick(root string) (string, error) {
	rootEntries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("read directory %s: %w", root, err)
	}

	failures := 0
	dir, depth := root, 0
	entries := rootEntries
	for failures < p.attempts {
		path, next, err := p.step(dir, entries, depth)
		switch {
		case err != nil:
			failures++
			p.logger.Warn("random file attempt failed", "attempt", failures, "dir", dir, "err", err)
			dir, depth, entries = root, 0, rootEntries
		case next != nil:
			dir, depth, entries = path, depth+1, next
		default:
			return path, nil
		}
	}
	return "", ErrNoFile
}

// step picks one entry of dir. It returns the entry path with either the
// listing of the directory to descend into or nil for a regular file.
func (p *Picker) step(dir string, entries []os.DirEntry, depth int) (string, []os.DirEntry, error) {
	if len(entries) == 0 {
		return "", nil, errors.New("empty directory")
	}
	path := filepath.Join(dir, entries[p.rnd.Intn(len(entries))].Name())
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, err
	}
	switch {
	case info.Mode().IsRegular():
		return path, nil, nil
	case !info.IsDir():
		return "", nil, fmt.Errorf("%s is not a regular file", path)
	case depth >= maxDepth:
		return "", nil, fmt.Errorf("%s is nested too deep", path)
	}
	next, err := os.ReadDir(path)
	if err != nil {
		return "", nil, err
	}
	if len(next) == 0 {
		return "", nil, fmt.Errorf("%s is empty", path)
	}
	return path, next, nil
}
