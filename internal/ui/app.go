package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/marquee/internal/logtail"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/spin"
	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/tmdb"
)

// View represents the current active view.
type View int

const (
	ViewSearch View = iota
	ViewShortlist
	ViewWheel
	ViewLogs
)

var viewOrder = []View{ViewSearch, ViewShortlist, ViewWheel, ViewLogs}

func (v View) String() string {
	switch v {
	case ViewSearch:
		return "Search"
	case ViewShortlist:
		return "Shortlist"
	case ViewWheel:
		return "Wheel"
	case ViewLogs:
		return "Log"
	default:
		return "?"
	}
}

const (
	searchDebounce  = 350 * time.Millisecond
	snapshotTick    = 500 * time.Millisecond
	logRefreshEvery = 2 * time.Second
	spinFrameEvery  = 33 * time.Millisecond
	logFetchLimit   = 500
	maxWinsNeeded   = 99
)

// Options configures the UI.
type Options struct {
	Context       context.Context
	Store         *state.Store
	Wheel         *spin.Wheel
	Logger        *zap.Logger
	ThemeName     string
	SpinDuration  time.Duration
	PrefsPath     string
	LogPath       string
	SearchEnabled bool
}

// spinState tracks one wheel animation.
type spinState struct {
	active bool
	start  time.Time
	from   float64
	to     float64
	result spin.Result
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx           context.Context
	store         *state.Store
	wheel         *spin.Wheel
	logger        *zap.Logger
	prefsPath     string
	logPath       string
	searchEnabled bool
	spinDuration  time.Duration
	now           func() time.Time

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot state.Snapshot

	// Search state
	input        textinput.Model
	spinner      spinner.Model
	debounceID   int
	debouncing   bool
	inFlight     int
	resultCursor int
	resultsQuery string

	// Shortlist state
	listCursor int

	// Wheel state
	spin spinState

	// Log state
	logViewport viewport.Model
	logEntries  []logtail.Entry
	logMinLevel string
	logErr      error
	logTicking  bool

	// Status line
	status      string
	statusIsErr bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	wheel := opts.Wheel
	if wheel == nil {
		wheel = spin.NewWheel(nil)
	}

	spinDuration := opts.SpinDuration
	if spinDuration <= 0 {
		spinDuration = prefs.Defaults().Spin()
	}

	input := textinput.New()
	input.Placeholder = "Search for a movie..."
	input.Prompt = "› "
	input.CharLimit = 120
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:           ctx,
		store:         opts.Store,
		wheel:         wheel,
		logger:        logger,
		prefsPath:     prefsPath,
		logPath:       opts.LogPath,
		searchEnabled: opts.SearchEnabled,
		spinDuration:  spinDuration,
		now:           time.Now,
		keys:          DefaultKeyMap(),
		theme:         GetTheme(themeName),
		currentView:   ViewSearch,
		input:         input,
		spinner:       sp,
		logMinLevel:   "info",
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		textinput.Blink,
		m.spinner.Tick,
		tickCmd(snapshotTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logViewport = viewport.New(msg.Width, m.contentHeight())
		}
		m.ready = true
		m.input.Width = max(10, msg.Width-8)
		m.resizeLogViewport()
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(snapshotTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.setSnapshot(state.Snapshot(msg))
		return m, nil

	case debounceMsg:
		if msg.id != m.debounceID {
			return m, nil
		}
		m.debouncing = false
		m.inFlight++
		return m, m.searchCmd(msg.query)

	case searchDoneMsg:
		// Blank queries never counted as in flight.
		if strings.TrimSpace(msg.query) != "" && m.inFlight > 0 {
			m.inFlight--
		}
		m.setSnapshot(msg.snapshot)
		if m.snapshot.LastQuery != m.resultsQuery {
			m.resultsQuery = m.snapshot.LastQuery
			m.resultCursor = 0
		}
		return m, nil

	case actionMsg:
		m.setSnapshot(msg.snapshot)
		if msg.err != nil {
			m.setStatus(msg.errPrefix+": "+msg.err.Error(), true)
		} else if msg.status != "" {
			m.setStatus(msg.status, false)
		}
		if winner, ok := m.winner(); ok && msg.recordedWin {
			m.setStatus(fmt.Sprintf("%s wins!", winner.DisplayTitle()), false)
		}
		return m, nil

	case spinFrameMsg:
		return m.handleSpinFrame(time.Time(msg))

	case logsMsg:
		m.logEntries = msg.entries
		m.logErr = msg.err
		m.updateLogViewport()
		return m, nil

	case logTickMsg:
		if m.currentView != ViewLogs {
			m.logTicking = false
			return m, nil
		}
		return m, tea.Batch(m.refreshLogs(), logTickCmd())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other input-internal messages.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// While the query has focus, only keys that cannot be part of a title
	// act globally.
	typing := m.currentView == ViewSearch
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case msg.String() == "f1", !typing && key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case msg.String() == "ctrl+t", !typing && key.Matches(msg, m.keys.CycleTheme):
		return m.cycleTheme(), nil
	case key.Matches(msg, m.keys.Tab):
		return m.switchView(m.offsetView(1))
	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView(m.offsetView(-1))
	}

	if !typing {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ViewSearch), key.Matches(msg, m.keys.Escape):
			return m.switchView(ViewSearch)
		case key.Matches(msg, m.keys.ViewShortlist):
			return m.switchView(ViewShortlist)
		case key.Matches(msg, m.keys.ViewWheel):
			return m.switchView(ViewWheel)
		case key.Matches(msg, m.keys.ViewLogs):
			return m.switchView(ViewLogs)
		}
	}

	switch m.currentView {
	case ViewSearch:
		return m.handleSearchKey(msg)
	case ViewShortlist:
		return m.handleShortlistKey(msg)
	case ViewWheel:
		return m.handleWheelKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

func (m Model) offsetView(delta int) View {
	idx := 0
	for i, v := range viewOrder {
		if v == m.currentView {
			idx = i
			break
		}
	}
	n := len(viewOrder)
	return viewOrder[((idx+delta)%n+n)%n]
}

// switchView changes the active view and starts any view-specific refresh.
func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	if v == ViewSearch {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	if v != ViewLogs {
		return m, nil
	}
	cmds := []tea.Cmd{m.refreshLogs()}
	if !m.logTicking {
		m.logTicking = true
		cmds = append(cmds, logTickCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) cycleTheme() Model {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.applyTheme()
	p := prefs.Prefs{Theme: m.theme.Name, SpinDuration: m.spinDuration.String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.String("path", m.prefsPath), zap.Error(err))
		m.setStatus("theme not saved: "+err.Error(), true)
		return m
	}
	m.setStatus("Theme: "+m.theme.Name, false)
	return m
}

// applyTheme restyles the bubbles components for the current theme.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.input.PromptStyle = styles.AccentText
	m.input.TextStyle = styles.Text
	m.input.PlaceholderStyle = styles.FaintText
	m.spinner.Style = styles.AccentText
}

func (m *Model) setSnapshot(snap state.Snapshot) {
	// The animation owns the wheel angle until it lands.
	if m.spin.active {
		snap.CurrentRotation = m.snapshot.CurrentRotation
		snap.IsSpinning = true
	}
	m.snapshot = snap
	m.clampCursors()
}

func (m *Model) clampCursors() {
	m.resultCursor = clamp(m.resultCursor, 0, len(m.snapshot.SearchResults)-1)
	m.listCursor = clamp(m.listCursor, 0, len(m.snapshot.SelectedMovies)-1)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusIsErr = isErr
}

// winner reports the decided movie, if any, for the current tally.
func (m Model) winner() (tmdb.Movie, bool) {
	return spin.Winner(m.snapshot.WinMode, m.snapshot.WinsNeeded, m.snapshot.SelectedMovies, m.snapshot.MovieWins)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type debounceMsg struct {
	id    int
	query string
}

type searchDoneMsg struct {
	query    string
	snapshot state.Snapshot
}

type actionMsg struct {
	status      string
	errPrefix   string
	err         error
	recordedWin bool
	snapshot    state.Snapshot
}

type spinFrameMsg time.Time

type logsMsg struct {
	entries []logtail.Entry
	err     error
}

type logTickMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func debounceCmd(id int, query string) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id, query: query}
	})
}

func spinFrameCmd() tea.Cmd {
	return tea.Tick(spinFrameEvery, func(t time.Time) tea.Msg {
		return spinFrameMsg(t)
	})
}

func logTickCmd() tea.Cmd {
	return tea.Tick(logRefreshEvery, func(time.Time) tea.Msg {
		return logTickMsg{}
	})
}

// searchCmd runs a store search off the update loop.
func (m Model) searchCmd(query string) tea.Cmd {
	store, ctx := m.store, m.ctx
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		store.Search(ctx, query)
		return searchDoneMsg{query: query, snapshot: store.Snapshot()}
	}
}

// actionCmd runs a persisting store mutation off the update loop and reports
// the outcome.
func (m Model) actionCmd(status, errPrefix string, fn func(context.Context, *state.Store) error) tea.Cmd {
	store, ctx := m.store, m.ctx
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		err := fn(ctx, store)
		return actionMsg{status: status, errPrefix: errPrefix, err: err, snapshot: store.Snapshot()}
	}
}

// recordWinCmd credits movieID with a win after the wheel lands.
func (m Model) recordWinCmd(movieID int64, status string) tea.Cmd {
	store, ctx := m.store, m.ctx
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		err := store.RecordWin(ctx, movieID)
		return actionMsg{
			status:      status,
			errPrefix:   "win not saved",
			err:         err,
			recordedWin: true,
			snapshot:    store.Snapshot(),
		}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
