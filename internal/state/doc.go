// Package state holds marquee's selection store: the shortlist, the latest
// search results and the win tally that drives the spin wheel.
//
// # Overview
//
// Store is the single owner of application state. It is built once by the
// app package and handed to the UI by pointer; there is no package-level
// instance. The UI reads immutable Snapshot copies and calls Store methods
// to mutate.
//
//	┌──────────────┐  Search   ┌──────────────┐
//	│      UI      │──────────→│ tmdb.Searcher│
//	│  (bubbletea) │           └──────────────┘
//	│              │  Add/Remove/RecordWin/...
//	│              │──────────→ Store ──Save──→ kv.Store
//	│              │←── Snapshot()
//	└──────────────┘
//
// # State
//
//   - SelectedMovies: ordered, unique by id, insertion order is display order
//   - SearchResults: replaced wholesale by every search
//   - MovieWins: id -> count, entries exist only for ids with a win
//   - WinMode / WinsNeeded: stored as given, interpreted by the spin package
//   - IsSearching / IsSpinning / CurrentRotation: transient, never persisted
//
// # Search Semantics
//
// A blank query clears the results and returns without touching the catalog
// or the IsSearching flag. Otherwise IsSearching is raised for the duration
// of the request. Failures are logged, recorded in LastSearchError and turned
// into an empty result list; Search never returns an error.
//
// Each call takes a sequence number. Only the most recently issued call may
// apply its results, and only the most recent call that reached the catalog
// may lower IsSearching. A slow response that resolves after a newer query
// is discarded.
//
// # Persistence
//
// Every mutating action except the transient setters writes a full snapshot
// under one key (default "movieRandomizer"):
//
//	{
//	  "selectedMovies": [{"id": 603, "title": "The Matrix", ...}],
//	  "movieWins": [[603, 2], [550, 1]],
//	  "winMode": "single",
//	  "winsNeeded": 2
//	}
//
// movieWins is a list of [id, count] records. It is written sorted by id, but
// readers must not rely on the order. A write failure is returned from the
// action that triggered it; the in-memory change is kept.
//
// Load treats a missing key as "nothing saved". A present entry is validated
// before anything is replaced: missing fields, wrong types, duplicate ids or
// non-positive counts produce a *SnapshotError (errors.Is ErrCorruptSnapshot)
// and leave the store untouched. What to do about corrupt state is the
// caller's decision; the app package logs it and calls Clear.
//
// # Concurrency
//
// A sync.RWMutex guards all fields. The lock is never held across catalog
// or storage I/O. Writes are serialized by a second mutex so a stale payload
// can never overwrite a newer one.
package state
