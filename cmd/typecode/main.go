// Package main provides the CLI entrypoint for typecode.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typecode/internal/config"
	"github.com/verte-zerg/typecode/internal/logging"
	"github.com/verte-zerg/typecode/internal/model"
	"github.com/verte-zerg/typecode/internal/picker"
	"github.com/verte-zerg/typecode/internal/source"
	"github.com/verte-zerg/typecode/internal/stats"
	"github.com/verte-zerg/typecode/internal/term"
	"github.com/verte-zerg/typecode/internal/trainer"
	"github.com/verte-zerg/typecode/internal/tui"
	"github.com/verte-zerg/typecode/internal/typing"
)

const (
	defaultDirectory = "."
	defaultGlyph     = string(typing.GlyphLine)
	defaultEnter     = string(typing.EnterComplete)
	defaultAttempts  = picker.DefaultAttempts
)

var (
	trainFile      string
	trainDirectory string
	trainGlyph     string
	trainEnter     string
	trainAttempts  int
	trainSeed      int64
	trainLogLevel  string
	trainScript    string

	linesNumbered bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typecode",
		Short:         "Line-by-line typing trainer for source files",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runTrainCmd,
	}

	rootCmd.Flags().StringVarP(&trainFile, "file", "f", "", "file to practice on")
	rootCmd.Flags().StringVarP(&trainDirectory, "directory", "d", defaultDirectory, "directory to pick a random file from")
	rootCmd.Flags().StringVar(&trainGlyph, "backspace-glyph", defaultGlyph, "glyph shown on a backspaced slot (line|slot)")
	rootCmd.Flags().StringVar(&trainEnter, "enter", defaultEnter, "Enter on a fully typed line (complete|skip)")
	rootCmd.Flags().IntVar(&trainAttempts, "attempts", defaultAttempts, "failed descents allowed while picking a random file")
	rootCmd.Flags().Int64Var(&trainSeed, "seed", 0, "random seed for file selection (0 = time based)")
	rootCmd.Flags().StringVar(&trainLogLevel, "log-level", logging.DefaultLevel, "log level (debug|info|warn|error)")
	rootCmd.Flags().StringVar(&trainScript, "script", "", "read keystrokes from a file instead of the terminal")
	rootCmd.MarkFlagsMutuallyExclusive("file", "directory")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLinesCmd())

	return rootCmd
}

func runTrainCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog := openLogger(cfg)
	defer closeLog()

	path, err := resolvePath(cfg, logger)
	if err != nil {
		return err
	}
	raw, err := source.LoadLines(path)
	if err != nil {
		return fmt.Errorf("unable to read file %s: %w", path, err)
	}
	driver := trainer.NewDriver(raw, trainer.WithLogger(logger))
	if len(driver.Lines()) == 0 {
		return fmt.Errorf("%s: %w", path, trainer.ErrNoLines)
	}
	logger.Info("training started", "file", path, "lines", len(driver.Lines()))

	glyph, _ := typing.ParseGlyphMode(cfg.BackspaceGlyph)
	enter, _ := typing.ParseEnterMode(cfg.EnterMode)
	opts := []typing.Option{typing.WithGlyphMode(glyph), typing.WithEnterMode(enter)}

	out := cmd.OutOrStdout()
	if cfg.Script != "" {
		if err := runScript(cfg.Script, driver, out, opts); err != nil {
			return err
		}
	} else if err := runInteractive(cmd.Context(), driver, out, logger, opts); err != nil {
		return err
	}

	logger.Info("training ended", "lines", driver.Total().Lines, "aborted", driver.Aborted())
	report := stats.Report{
		Path:    path,
		Total:   driver.Total(),
		Results: driver.Results(),
		Aborted: driver.Aborted(),
	}
	if err := stats.RenderReport(out, report, reportWidth(out)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if !cmd.Flags().Changed("file") {
		applyStringConfig(cmd, "directory", &trainDirectory, fileCfg.Practice.Directory)
	}
	applyStringConfig(cmd, "backspace-glyph", &trainGlyph, fileCfg.Practice.BackspaceGlyph)
	applyStringConfig(cmd, "enter", &trainEnter, fileCfg.Practice.Enter)
	applyIntConfig(cmd, "attempts", &trainAttempts, fileCfg.Practice.Attempts)
	applyInt64Config(cmd, "seed", &trainSeed, fileCfg.Practice.Seed)
	applyStringConfig(cmd, "log-level", &trainLogLevel, fileCfg.Log.Level)

	cfg := model.Config{
		File:           trainFile,
		Directory:      trainDirectory,
		BackspaceGlyph: trainGlyph,
		EnterMode:      trainEnter,
		Attempts:       trainAttempts,
		Seed:           trainSeed,
		LogLevel:       trainLogLevel,
		Script:         trainScript,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// openLogger falls back to a discarding logger when the log file cannot be
// opened; training does not depend on it.
func openLogger(cfg model.Config) (*log.Logger, func()) {
	logger, closer, err := logging.Open(config.DefaultLogPath(), cfg.LogLevel)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		return logging.Discard(), func() {}
	}
	return logger, func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}
}

func resolvePath(cfg model.Config, logger *log.Logger) (string, error) {
	if cfg.File != "" {
		return cfg.File, nil
	}
	p := picker.New(cfg.Seed, cfg.Attempts, picker.WithLogger(logger))
	path, err := p.Pick(cfg.Directory)
	if err != nil {
		if errors.Is(err, picker.ErrNoFile) {
			return "", fmt.Errorf("%w in %s after %d attempts", err, cfg.Directory, cfg.Attempts)
		}
		return "", fmt.Errorf("failed to read directory: %w", err)
	}
	logger.Debug("random file picked", "path", path, "root", cfg.Directory)
	return path, nil
}

func runInteractive(ctx context.Context, driver *trainer.Driver, out io.Writer, logger *log.Logger, opts []typing.Option) error {
	if !term.IsTerminal(os.Stdin) {
		return fmt.Errorf("stdin is not a terminal; use --script to run without one")
	}
	guard, err := term.Acquire(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		if rerr := guard.Release(); rerr != nil {
			logger.Error("failed to restore terminal", "err", rerr)
		}
	}()

	m := tui.NewModel(driver, typing.NewRenderer(), logger, opts...)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(out))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if rerr := guard.Release(); rerr != nil {
		logger.Error("failed to restore terminal", "err", rerr)
	}
	_, err = fmt.Fprintln(out)
	return err
}

func runScript(path string, driver *trainer.Driver, out io.Writer, opts []typing.Option) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close script: %v\n", cerr)
		}
	}()

	w := bufio.NewWriter(out)
	runner := &typing.Runner{
		Source:   typing.NewScriptSource(f),
		Out:      w,
		Renderer: typing.NewRenderer(),
		Options:  opts,
	}
	driver.Run(runner)
	if runner.Err != nil && !errors.Is(runner.Err, io.EOF) {
		return fmt.Errorf("failed to read script: %w", runner.Err)
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return w.Flush()
}

func reportWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(f) {
		return term.Width(f)
	}
	return 0
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines FILE",
		Short: "Print the lines a training run would present",
		Args:  cobra.ExactArgs(1),
		RunE:  runLinesCmd,
	}
	cmd.Flags().BoolVarP(&linesNumbered, "number", "n", false, "prefix each line with its position")
	return cmd
}

func runLinesCmd(cmd *cobra.Command, args []string) error {
	raw, err := source.LoadLines(args[0])
	if err != nil {
		return fmt.Errorf("unable to read file %s: %w", args[0], err)
	}
	lines := trainer.Eligible(raw)
	if len(lines) == 0 {
		return fmt.Errorf("%s: %w", args[0], trainer.ErrNoLines)
	}
	w := bufio.NewWriter(cmd.OutOrStdout())
	for i, line := range lines {
		if linesNumbered {
			if _, err := fmt.Fprintf(w, "%d\t", i+1); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return w.Flush()
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typecode configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# directory = %q          # Directory to pick a random file from
# backspace-glyph = %q    # Glyph shown on a backspaced slot (line|slot)
# enter = %q         # Enter on a fully typed line (complete|skip)
# attempts = %d             # Failed descents allowed while picking a file
# seed = 0                 # Random seed for file selection (0 = time based)

[log]
# level = %q            # debug, info, warn or error
`,
		defaultDirectory,
		defaultGlyph,
		defaultEnter,
		defaultAttempts,
		logging.DefaultLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if _, ok := typing.ParseGlyphMode(cfg.BackspaceGlyph); !ok {
		return fmt.Errorf("--backspace-glyph must be %q or %q", typing.GlyphLine, typing.GlyphSlot)
	}
	if _, ok := typing.ParseEnterMode(cfg.EnterMode); !ok {
		return fmt.Errorf("--enter must be %q or %q", typing.EnterComplete, typing.EnterSkip)
	}
	if cfg.Attempts < 1 {
		return fmt.Errorf("--attempts must be > 0")
	}
	if cfg.File == "" && cfg.Directory == "" {
		return fmt.Errorf("--directory must not be empty")
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
