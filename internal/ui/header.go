package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// chromeLines is the header, tab rule and footer height around the content.
const chromeLines = 4

func (m Model) contentHeight() int {
	return max(3, m.height-chromeLines)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	content := lipgloss.NewStyle().
		Height(m.contentHeight()).
		MaxHeight(m.contentHeight()).
		Padding(0, 1).
		Render(m.renderContent())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderRule(),
		content,
		m.renderFooter(),
	)
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSearch:
		return m.renderSearch()
	case ViewShortlist:
		return m.renderShortlist()
	case ViewWheel:
		return m.renderWheel()
	case ViewLogs:
		return m.renderLogs()
	default:
		return ""
	}
}

// renderHeader draws the logo, view tabs and a summary of saved state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	var tabs []string
	for i, v := range viewOrder {
		label := fmt.Sprintf(" %d %s ", i+1, v)
		if v == m.currentView {
			tabs = append(tabs, styles.Selected.Bold(true).Render(label))
		} else {
			tabs = append(tabs, styles.MutedText.Render(label))
		}
	}
	left := styles.Logo.Render("▶ marquee") + "  " + strings.Join(tabs, "")

	right := styles.MutedText.Render(m.summary())
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) summary() string {
	snap := m.snapshot
	parts := []string{
		plural(len(snap.SelectedMovies), "pick"),
		snap.WinMode,
	}
	if !snap.LastSaved.IsZero() {
		parts = append(parts, "saved "+humanizeDuration(m.now().Sub(snap.LastSaved))+" ago")
	}
	return strings.Join(parts, " · ")
}

func (m Model) renderRule() string {
	return m.theme.Styles().FaintText.Render(strings.Repeat("─", max(0, m.width)))
}

// renderFooter shows the status line and the current view's key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	var status string
	if m.status != "" {
		style := styles.InfoText
		if m.statusIsErr {
			style = styles.DangerText
		}
		status = style.Render(m.status)
	}

	hints := m.renderHints(append(m.viewHints(), m.keys.ShortHelp()...))
	gap := max(1, m.width-lipgloss.Width(status)-lipgloss.Width(hints)-2)
	return styles.Footer.Width(m.width).Render(status + strings.Repeat(" ", gap) + hints)
}

func (m Model) viewHints() []key.Binding {
	switch m.currentView {
	case ViewSearch:
		return m.searchHints()
	case ViewShortlist:
		return m.shortlistHints()
	case ViewWheel:
		return m.wheelHints()
	case ViewLogs:
		return m.logHints()
	default:
		return nil
	}
}

func (m Model) renderHints(bindings []key.Binding) string {
	styles := m.theme.Styles()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, styles.WarningText.Render(h.Key)+" "+styles.MutedText.Render(strings.ToLower(h.Desc)))
	}
	return strings.Join(parts, "  ")
}
