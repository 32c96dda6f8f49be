package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/marquee/internal/logtail"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// handleLogsKey processes keyboard input for the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CycleLevel):
		m.logMinLevel = nextLevel(m.logMinLevel)
		m.updateLogViewport()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// refreshLogs reads the tail of the log file off the update loop.
func (m Model) refreshLogs() tea.Cmd {
	path := m.logPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.Tail(path, logFetchLimit)
		return logsMsg{entries: entries, err: err}
	}
}

func (m *Model) resizeLogViewport() {
	m.logViewport.Width = m.width
	m.logViewport.Height = max(1, m.contentHeight()-1)
	m.updateLogViewport()
}

func (m *Model) updateLogViewport() {
	follow := m.logViewport.AtBottom()
	m.logViewport.SetContent(m.renderLogLines())
	if follow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) renderLogLines() string {
	styles := m.theme.Styles()
	if m.logErr != nil {
		return styles.DangerText.Render("Cannot read log: ") + styles.MutedText.Render(m.logErr.Error())
	}

	var lines []string
	for _, e := range m.logEntries {
		if !e.AtLeast(m.logMinLevel) {
			continue
		}
		lines = append(lines, m.formatLogEntry(e))
	}
	if len(lines) == 0 {
		return styles.MutedText.Render("Nothing logged at this level yet.")
	}
	return strings.Join(lines, "\n")
}

func (m Model) formatLogEntry(e logtail.Entry) string {
	styles := m.theme.Styles()
	if e.Level == "" {
		return styles.Text.Render(e.Message)
	}
	ts := "        "
	if !e.Time.IsZero() {
		ts = e.Time.Local().Format("15:04:05")
	}
	line := styles.FaintText.Render(ts) + " " +
		styles.LevelStyle(e.Level).Render(padRight(strings.ToUpper(e.Level), 5)) + " " +
		styles.Text.Render(e.Message)
	if fields := e.FieldString(); fields != "" {
		line += " " + styles.MutedText.Render(fields)
	}
	return line
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	if m.logPath == "" {
		return styles.MutedText.Render("Logging is disabled.")
	}
	title := styles.AccentText.Bold(true).Render("Log") +
		styles.MutedText.Render(fmt.Sprintf("  %s  ·  level ≥ %s", m.logPath, m.logMinLevel))
	return title + "\n" + m.logViewport.View()
}

func nextLevel(current string) string {
	for i, level := range logLevels {
		if level == current {
			return logLevels[(i+1)%len(logLevels)]
		}
	}
	return logLevels[0]
}

// logHints are the footer hints for the log view.
func (m Model) logHints() []key.Binding {
	return []key.Binding{m.keys.CycleLevel, m.keys.Up, m.keys.Down, m.keys.Bottom}
}
