package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/spin"
)

// reelRows is how many shortlist entries the reel shows around the pointer.
const reelRows = 7

// handleWheelKey processes keyboard input for the wheel view.
func (m Model) handleWheelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Spin) {
		return m.startSpin()
	}
	if m.spin.active {
		return m, nil
	}
	return m.handleTallyKey(msg)
}

// startSpin picks the landing segment up front and animates towards it.
func (m Model) startSpin() (tea.Model, tea.Cmd) {
	if m.spin.active {
		return m, nil
	}
	snap := m.snapshot
	if len(snap.SelectedMovies) == 0 {
		m.setStatus("Add movies to the shortlist first", false)
		return m, nil
	}
	if winner, ok := m.winner(); ok {
		m.setStatus(winner.DisplayTitle()+" already won; press r to reset the tally", false)
		return m, nil
	}

	ids := make([]int64, len(snap.SelectedMovies))
	for i, movie := range snap.SelectedMovies {
		ids[i] = movie.ID
	}
	result, err := m.wheel.Spin(ids, snap.CurrentRotation)
	if err != nil {
		m.setStatus("spin: "+err.Error(), true)
		return m, nil
	}

	if m.store != nil {
		m.store.SetSpinning(true)
	}
	m.snapshot.IsSpinning = true
	m.spin = spinState{
		active: true,
		start:  m.now(),
		from:   snap.CurrentRotation,
		to:     result.Rotation,
		result: result,
	}
	m.setStatus("Spinning...", false)
	return m, spinFrameCmd()
}

// handleSpinFrame advances the animation; the final frame lands and records
// the win.
func (m Model) handleSpinFrame(now time.Time) (tea.Model, tea.Cmd) {
	if !m.spin.active {
		return m, nil
	}

	progress := float64(now.Sub(m.spin.start)) / float64(m.spinDuration)
	if progress < 1 {
		rotation := spin.Ease(m.spin.from, m.spin.to, progress)
		m.snapshot.CurrentRotation = rotation
		if m.store != nil {
			m.store.SetRotation(rotation)
		}
		return m, spinFrameCmd()
	}

	m.spin.active = false
	m.snapshot.CurrentRotation = m.spin.to
	m.snapshot.IsSpinning = false
	if m.store != nil {
		m.store.SetRotation(m.spin.to)
		m.store.SetSpinning(false)
	}

	id := m.spin.result.MovieID
	title := fmt.Sprintf("movie %d", id)
	for _, movie := range m.snapshot.SelectedMovies {
		if movie.ID == id {
			title = movie.DisplayTitle()
			break
		}
	}
	return m, m.recordWinCmd(id, "The wheel landed on "+title)
}

func (m Model) renderWheel() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	if len(snap.SelectedMovies) == 0 {
		return styles.MutedText.Render("The wheel is empty. Add a few movies from the search view first.")
	}

	reelWidth := max(24, m.width/2-4)
	reel := styles.Panel.Width(reelWidth).Render(m.renderReel(reelWidth - 4))

	standings := styles.Panel.Width(max(20, m.width-reelWidth-8)).Render(m.renderStandings())

	var b strings.Builder
	b.WriteString(m.renderWinSettings())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, reel, "  ", standings))
	b.WriteString("\n\n")

	if winner, ok := m.winner(); ok && !m.spin.active {
		b.WriteString(styles.Banner.Render("Tonight's movie: " + winner.DisplayTitle()))
	} else if m.spin.active {
		b.WriteString(styles.WarningText.Render("Spinning..."))
	} else {
		b.WriteString(styles.MutedText.Render("Press space to spin."))
	}
	return b.String()
}

// renderReel draws the shortlist as a slot-machine reel centered on the
// segment under the pointer.
func (m Model) renderReel(width int) string {
	styles := m.theme.Styles()
	movies := m.snapshot.SelectedMovies
	n := len(movies)
	current := spin.SegmentAt(m.snapshot.CurrentRotation, n)

	rows := min(n, reelRows)
	half := rows / 2
	lines := make([]string, 0, rows+2)
	for offset := -half; offset < rows-half; offset++ {
		idx := ((current+offset)%n + n) % n
		title := truncate(movies[idx].DisplayTitle(), max(4, width-6))
		badge := styles.SegmentStyle(idx).Render(" ")
		if offset == 0 {
			lines = append(lines, styles.WarningText.Render("▶ ")+badge+styles.Selected.Render(" "+padRight(title, width-6)+" "))
			continue
		}
		lines = append(lines, "  "+badge+styles.FaintText.Render(" "+title))
	}
	lines = append(lines, "", styles.MutedText.Render(fmt.Sprintf("%.0f°", math.Mod(m.snapshot.CurrentRotation, 360))))
	return strings.Join(lines, "\n")
}

func (m Model) renderStandings() string {
	styles := m.theme.Styles()
	snap := m.snapshot
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Standings"))
	b.WriteString("\n")
	for i, s := range spin.Standings(snap.SelectedMovies, snap.MovieWins) {
		if i >= reelRows {
			b.WriteString(styles.FaintText.Render(fmt.Sprintf("… %d more", len(snap.SelectedMovies)-reelRows)))
			break
		}
		label := truncate(s.Movie.DisplayTitle(), 28)
		b.WriteString(styles.Text.Render(padRight(label, 28)) + styles.WarningText.Render(fmt.Sprintf(" %d", s.Wins)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// wheelHints are the footer hints for the wheel view.
func (m Model) wheelHints() []key.Binding {
	return []key.Binding{m.keys.Spin, m.keys.ResetWins, m.keys.CycleMode, m.keys.MoreWins, m.keys.FewerWins}
}
