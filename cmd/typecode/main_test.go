package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/typecode/internal/model"
	"github.com/verte-zerg/typecode/internal/trainer"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScriptRunReportsPerfectLine(t *testing.T) {
	dir := isolate(t)
	file := writeFile(t, filepath.Join(dir, "src.go"), "  function  \nab\n")
	script := writeFile(t, filepath.Join(dir, "keys"), "function\n")

	out, err := execute(t, "--file", file, "--script", script)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"Summary", "Lines: 1 completed, 0 skipped (finished)", "Mistakes: 0", "Accuracy: 1 (100.0%)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "state", "typecode", "typecode.log")); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestScriptEscapeStopsRun(t *testing.T) {
	dir := isolate(t)
	file := writeFile(t, filepath.Join(dir, "src.rs"), "let a = 1;\nlet b = 2;\nlet c = 3;\n")
	script := writeFile(t, filepath.Join(dir, "keys"), "\nlet\x1b")

	out, err := execute(t, "-f", file, "--script", script)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Lines: 0 completed, 1 skipped (stopped)") {
		t.Fatalf("expected one skipped line before the stop:\n%s", out)
	}
	if !strings.Contains(out, "CPM: n/a") {
		t.Fatalf("expected n/a metrics for a zero aggregate:\n%s", out)
	}
}

func TestEnterSkipModeRecordsZeroLine(t *testing.T) {
	dir := isolate(t)
	file := writeFile(t, filepath.Join(dir, "src.go"), "function\n")
	script := writeFile(t, filepath.Join(dir, "keys"), "function\n")

	out, err := execute(t, "--file", file, "--script", script, "--enter", "skip")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Lines: 0 completed, 1 skipped (finished)") || !strings.Contains(out, "Chars: 0") {
		t.Fatalf("expected the zero record for a typed line:\n%s", out)
	}
}

func TestNoEligibleLinesIsFatal(t *testing.T) {
	dir := isolate(t)
	file := writeFile(t, filepath.Join(dir, "short.txt"), "a\n\nabcde\n")
	_, err := execute(t, "--file", file, "--script", file)
	if !errors.Is(err, trainer.ErrNoLines) {
		t.Fatalf("expected ErrNoLines, got %v", err)
	}
}

func TestBrokenSymlinkDirectoryIsFatal(t *testing.T) {
	dir := isolate(t)
	root := filepath.Join(dir, "root")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	script := writeFile(t, filepath.Join(dir, "keys"), "x")
	out, err := execute(t, "--directory", root, "--script", script)
	if err == nil || !strings.Contains(err.Error(), "failed to find file") {
		t.Fatalf("expected failed to find file, got %v", err)
	}
	if strings.Contains(out, "Summary") {
		t.Fatalf("no session may start when no file is found:\n%s", out)
	}
}

func TestConfigFileAppliesUnlessFlagSet(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config", "typecode", "config.toml"), "[practice]\nbackspace-glyph = \"bogus\"\n")
	file := writeFile(t, filepath.Join(dir, "src.go"), "function\n")
	script := writeFile(t, filepath.Join(dir, "keys"), "\n")

	if _, err := execute(t, "--file", file, "--script", script); err == nil {
		t.Fatalf("expected config value to be validated")
	}
	if _, err := execute(t, "--file", file, "--script", script, "--backspace-glyph", "slot"); err != nil {
		t.Fatalf("flag must win over config: %v", err)
	}
}

func TestLinesCommand(t *testing.T) {
	dir := isolate(t)
	file := writeFile(t, filepath.Join(dir, "src.py"), "import os\n\nx = 1\n    return value\n")
	out, err := execute(t, "lines", "-n", file)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "1\timport os\n2\treturn value\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestValidateConfig(t *testing.T) {
	valid := model.Config{Directory: ".", BackspaceGlyph: "line", EnterMode: "complete", Attempts: 3, LogLevel: "warn"}
	if err := validateConfig(valid); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}
	cases := []model.Config{
		{Directory: ".", BackspaceGlyph: "dot", EnterMode: "complete", Attempts: 3},
		{Directory: ".", BackspaceGlyph: "line", EnterMode: "zero", Attempts: 3},
		{Directory: ".", BackspaceGlyph: "line", EnterMode: "complete", Attempts: 0},
		{Directory: "", BackspaceGlyph: "line", EnterMode: "complete", Attempts: 3},
		{Directory: ".", BackspaceGlyph: "line", EnterMode: "complete", Attempts: 3, LogLevel: "loud"},
	}
	for i, cfg := range cases {
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("case %d: expected error for %+v", i, cfg)
		}
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var v map[string]any
	if _, err := toml.Decode(defaultConfigTemplate(), &v); err != nil {
		t.Fatalf("template is not valid TOML: %v", err)
	}
}
