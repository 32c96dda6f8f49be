// Package ui provides marquee's terminal interface.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. Model owns presentation state only
// (active view, cursors, the query input, the spin animation); everything
// the user cares about lives in state.Store and reaches the model as
// state.Snapshot copies.
//
// Store calls that may touch the network or disk (Search, AddMovie,
// RecordWin and friends) run inside tea.Cmd functions, never in Update. Each
// returns a message carrying a fresh snapshot, so the screen reflects the
// result as soon as the call finishes. A slow 500ms tick also re-reads the
// snapshot to pick up flags such as IsSearching.
//
// # Package Structure
//
//   - app.go: Model, Update loop, messages and commands, Run
//   - search.go: query input, debounce, results list
//   - shortlist.go: shortlist table and win settings keys
//   - wheel.go: spin animation, reel and standings
//   - logs.go: log tail viewport
//   - header.go: header, tabs, footer and layout
//   - help.go: help overlay
//   - keys.go: bubbles/key bindings
//   - theme.go: lipgloss themes (Dracula, Slate)
//
// # Views
//
//  1. Search: type to search TMDB; enter adds the highlighted result
//  2. Shortlist: remove movies, reset the tally, change win settings
//  3. Wheel: spin to pick a movie; the banner names the winner
//  4. Log: marquee's own log, filtered by minimum level
//
// # Searching
//
// Every edit bumps a debounce id and schedules a 350ms tick carrying it.
// Only the tick whose id is still current issues the search, so a burst of
// keystrokes costs one request. Clearing the query clears the results at
// once. The store drops responses that arrive after a newer query; the UI
// does not need to.
//
// # Spinning
//
// The landing segment is chosen before the animation starts. Frames ease
// the rotation from its current value to the target over the configured
// spin duration, writing it to the store as they go. On the last frame the
// win is recorded through the store, which persists it. While the wheel is
// turning, adding or removing movies is refused so the segments under the
// pointer cannot shift.
//
// A decided winner (see spin.Winner) blocks further spins until the tally
// is reset with r.
//
// # Keys
//
// In the search view the input has focus, so only keys that cannot be part
// of a title act globally: tab, shift+tab, esc, enter, arrows, f1, ctrl+t and
// ctrl+c. Elsewhere single-letter keys apply; see keys.go.
package ui
