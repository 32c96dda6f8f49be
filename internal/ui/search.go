package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/state"
)

// handleSearchKey processes keyboard input for the search view. Anything
// that is not navigation goes to the query input.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	results := m.snapshot.SearchResults

	switch msg.Type {
	case tea.KeyUp:
		if m.resultCursor > 0 {
			m.resultCursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.resultCursor < len(results)-1 {
			m.resultCursor++
		}
		return m, nil
	case tea.KeyEnter:
		return m.addHighlighted()
	case tea.KeyEsc:
		if m.input.Value() == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m.queryChanged("")
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	next, searchCmd := m.queryChanged(m.input.Value())
	return next, tea.Batch(cmd, searchCmd)
}

// queryChanged schedules a debounced search. A blank query clears the
// results at once.
func (m Model) queryChanged(query string) (Model, tea.Cmd) {
	m.debounceID++
	m.debouncing = false
	if !m.searchEnabled {
		return m, nil
	}
	if strings.TrimSpace(query) == "" {
		return m, m.searchCmd("")
	}
	m.debouncing = true
	return m, debounceCmd(m.debounceID, query)
}

func (m Model) addHighlighted() (tea.Model, tea.Cmd) {
	results := m.snapshot.SearchResults
	if len(results) == 0 {
		return m, nil
	}
	if m.spin.active {
		m.setStatus("Wait for the wheel to stop", false)
		return m, nil
	}
	movie := results[clamp(m.resultCursor, 0, len(results)-1)]
	if m.snapshot.IsSelected(movie.ID) {
		m.setStatus(movie.DisplayTitle()+" is already on the shortlist", false)
		return m, nil
	}
	return m, m.actionCmd("Added "+movie.DisplayTitle(), "shortlist not saved",
		func(ctx context.Context, s *state.Store) error {
			return s.AddMovie(ctx, movie)
		})
}

// searching reports whether a query is pending or in flight.
func (m Model) searching() bool {
	return m.debouncing || m.inFlight > 0 || m.snapshot.IsSearching
}

func (m Model) renderSearch() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if !m.searchEnabled {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render("Search is disabled: no TMDB API key."))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Set tmdb.api_key in ~/.config/marquee/config.toml or export TMDB_API_KEY."))
		return b.String()
	}

	snap := m.snapshot
	switch {
	case m.searching():
		b.WriteString(m.spinner.View() + styles.MutedText.Render(" searching..."))
	case snap.LastSearchError != nil:
		b.WriteString(styles.DangerText.Render("Search failed: ") + styles.MutedText.Render(snap.LastSearchError.Error()))
	case snap.LastQuery == "":
		b.WriteString(styles.MutedText.Render("Type to search TMDB. enter adds the highlighted movie."))
	case len(snap.SearchResults) == 0:
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("No movies match %q", snap.LastQuery)))
	default:
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d results for %q", len(snap.SearchResults), snap.LastQuery)))
	}
	b.WriteString("\n\n")

	results := snap.SearchResults
	if len(results) == 0 {
		return b.String()
	}

	// Title, list and a short overview of the highlighted movie.
	overviewLines := 3
	rows := max(1, m.contentHeight()-4-overviewLines-1)
	start := 0
	if m.resultCursor >= rows {
		start = m.resultCursor - rows + 1
	}
	end := min(len(results), start+rows)
	titleWidth := max(10, m.width-20)

	for i := start; i < end; i++ {
		movie := results[i]
		line := padRight(truncate(movie.DisplayTitle(), titleWidth), titleWidth)
		marker := "  "
		if snap.IsSelected(movie.ID) {
			marker = "✓ "
		}
		if i == m.resultCursor {
			b.WriteString(styles.Selected.Render("▸ " + line + " " + marker))
		} else {
			b.WriteString(styles.Text.Render("  "+line+" ") + styles.SuccessText.Render(marker))
		}
		b.WriteString("\n")
	}

	highlighted := results[clamp(m.resultCursor, 0, len(results)-1)]
	if overview := strings.TrimSpace(highlighted.Overview); overview != "" {
		b.WriteString("\n")
		wrapped := lipgloss.NewStyle().Width(max(20, m.width-4)).Render(overview)
		lines := strings.Split(wrapped, "\n")
		if len(lines) > overviewLines {
			lines = lines[:overviewLines]
			lines[overviewLines-1] += "…"
		}
		b.WriteString(styles.FaintText.Render(strings.Join(lines, "\n")))
	}
	return b.String()
}

// searchHints are the footer hints for the search view.
func (m Model) searchHints() []key.Binding {
	return []key.Binding{m.keys.AddMovie, m.keys.Escape, m.keys.Tab}
}
