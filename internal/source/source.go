// Package source loads practice text from files.
package source

import (
	"bufio"
	"fmt"
	"os"
)

// maxLineSize bounds a single line; minified sources can exceed the
// scanner default.
const maxLineSize = 1 << 20

// LoadLines reads the newline-delimited lines of the file at path.
// Trailing carriage returns are dropped.
func LoadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only source file.
			_ = cerr
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}
