package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/marquee/internal/spin"
	"github.com/five82/marquee/internal/state"
)

// handleShortlistKey processes keyboard input for the shortlist view.
func (m Model) handleShortlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.SelectedMovies)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.listCursor > 0 {
			m.listCursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.listCursor < count-1 {
			m.listCursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.listCursor = 0
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.listCursor = max(0, count-1)
		return m, nil
	case key.Matches(msg, m.keys.Remove):
		return m.removeHighlighted()
	}
	return m.handleTallyKey(msg)
}

// handleTallyKey handles the win settings keys shared by the shortlist and
// wheel views.
func (m Model) handleTallyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.snapshot
	switch {
	case key.Matches(msg, m.keys.ResetWins):
		return m, m.actionCmd("Win tally cleared", "tally not saved",
			func(ctx context.Context, s *state.Store) error {
				return s.ResetWins(ctx)
			})

	case key.Matches(msg, m.keys.CycleMode):
		mode := spin.NextMode(snap.WinMode)
		return m, m.actionCmd("Win mode: "+mode, "win mode not saved",
			func(ctx context.Context, s *state.Store) error {
				return s.UpdateWinMode(ctx, mode)
			})

	case key.Matches(msg, m.keys.MoreWins), key.Matches(msg, m.keys.FewerWins):
		delta := 1
		if key.Matches(msg, m.keys.FewerWins) {
			delta = -1
		}
		n := clamp(snap.WinsNeeded+delta, 1, maxWinsNeeded)
		if n == snap.WinsNeeded {
			return m, nil
		}
		return m, m.actionCmd(fmt.Sprintf("Wins needed: %d", n), "wins needed not saved",
			func(ctx context.Context, s *state.Store) error {
				return s.UpdateWinsNeeded(ctx, n)
			})
	}
	return m, nil
}

func (m Model) removeHighlighted() (tea.Model, tea.Cmd) {
	movies := m.snapshot.SelectedMovies
	if len(movies) == 0 {
		return m, nil
	}
	if m.spin.active {
		m.setStatus("Wait for the wheel to stop", false)
		return m, nil
	}
	movie := movies[clamp(m.listCursor, 0, len(movies)-1)]
	return m, m.actionCmd("Removed "+movie.DisplayTitle(), "shortlist not saved",
		func(ctx context.Context, s *state.Store) error {
			return s.RemoveMovie(ctx, movie.ID)
		})
}

func (m Model) renderShortlist() string {
	styles := m.theme.Styles()
	snap := m.snapshot
	var b strings.Builder

	b.WriteString(styles.AccentText.Bold(true).Render("Shortlist"))
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %s", plural(len(snap.SelectedMovies), "movie"))))
	b.WriteString("\n")
	b.WriteString(m.renderWinSettings())
	b.WriteString("\n\n")

	if len(snap.SelectedMovies) == 0 {
		b.WriteString(styles.MutedText.Render("Your shortlist is empty. Press / to search for movies."))
		return b.String()
	}

	rows := max(1, m.contentHeight()-4)
	start := 0
	if m.listCursor >= rows {
		start = m.listCursor - rows + 1
	}
	end := min(len(snap.SelectedMovies), start+rows)
	titleWidth := max(10, m.width-24)

	for i := start; i < end; i++ {
		movie := snap.SelectedMovies[i]
		badge := styles.SegmentStyle(i).Render(fmt.Sprintf("%2d", i+1))
		title := padRight(truncate(movie.DisplayTitle(), titleWidth), titleWidth)
		wins := winsLabel(snap.Wins(movie.ID))
		if i == m.listCursor {
			b.WriteString(badge + styles.Selected.Render(" "+title+" "+wins))
		} else {
			b.WriteString(badge + styles.Text.Render(" "+title+" ") + styles.WarningText.Render(wins))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderWinSettings describes how a winner is decided.
func (m Model) renderWinSettings() string {
	styles := m.theme.Styles()
	snap := m.snapshot
	var rule string
	if snap.WinMode == spin.ModeMulti {
		rule = fmt.Sprintf("first to %s wins", plural(max(1, snap.WinsNeeded), "spin"))
	} else {
		rule = "first spin decides"
	}
	return styles.MutedText.Render("Mode ") +
		styles.InfoText.Render(snap.WinMode) +
		styles.MutedText.Render(fmt.Sprintf(" (%s)  ·  wins needed ", rule)) +
		styles.InfoText.Render(fmt.Sprintf("%d", snap.WinsNeeded))
}

func winsLabel(n int) string {
	if n == 0 {
		return "      "
	}
	return padRight(strings.Repeat("★", min(n, 3)), 3) + fmt.Sprintf("%3d", n)
}

// shortlistHints are the footer hints for the shortlist view.
func (m Model) shortlistHints() []key.Binding {
	return []key.Binding{m.keys.Remove, m.keys.ResetWins, m.keys.CycleMode, m.keys.MoreWins, m.keys.FewerWins}
}
