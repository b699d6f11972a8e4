// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/typecode/internal/stats"
	"github.com/verte-zerg/typecode/internal/trainer"
	"github.com/verte-zerg/typecode/internal/typing"
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))

// Model implements the Bubble Tea typing UI. It runs one typing session per
// line of the driver and quits after the last line or on Escape.
type Model struct {
	driver   *trainer.Driver
	renderer *typing.Renderer
	options  []typing.Option
	logger   *log.Logger
	now      func() time.Time

	session *typing.Session
	width   int
	done    bool
}

// NewModel constructs a typing TUI model over driver.
func NewModel(driver *trainer.Driver, renderer *typing.Renderer, logger *log.Logger, opts ...typing.Option) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Model{
		driver:   driver,
		renderer: renderer,
		options:  opts,
		logger:   logger,
		now:      time.Now,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if !m.startSession() {
		return tea.Quit
	}
	return tea.ClearScreen
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.done || m.session == nil {
			return m, nil
		}
		for _, key := range keysFromMsg(msg) {
			state := m.session.Press(key, m.now())
			if state.Done() {
				return m, m.finishSession(state)
			}
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done || m.session == nil {
		return ""
	}
	styled := buildStyledRunes(m.renderer, m.session.Slots())
	return wrapStyledRunes(styled, m.width) + "\n" + m.renderFooter()
}

// Done reports whether the run has ended.
func (m *Model) Done() bool {
	return m.done
}

func (m *Model) startSession() bool {
	line, ok := m.driver.Current()
	if !ok {
		m.done = true
		return false
	}
	i, n := m.driver.Position()
	m.logger.Debug("line started", "line", i, "of", n)
	m.session = typing.New([]rune(line), m.now(), m.options...)
	return true
}

func (m *Model) finishSession(state typing.State) tea.Cmd {
	lineStats, _ := m.session.Result()
	if !m.driver.Record(state.Outcome(), lineStats) {
		m.done = true
		return tea.Quit
	}
	m.startSession()
	return tea.ClearScreen
}

func (m *Model) renderFooter() string {
	i, n := m.driver.Position()
	total := m.driver.Total()
	footer := fmt.Sprintf("Line %d/%d · CPM %s · WPM %s", i, n,
		stats.FormatMetric(total.CharsPerMinute()),
		stats.FormatMetric(total.WordsPerMinute()))
	return footerStyle.Render(footer)
}
