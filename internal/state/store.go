package state

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/marquee/internal/kv"
	"github.com/five82/marquee/internal/tmdb"
)

const (
	DefaultStorageKey = "movieRandomizer"
	DefaultWinMode    = "single"
	DefaultWinsNeeded = 2
)

// ErrNoCatalog is recorded as the search error when the store was built
// without a catalog client.
var ErrNoCatalog = errors.New("no catalog client configured")

// Snapshot is a point-in-time copy of the store for rendering.
type Snapshot struct {
	SelectedMovies []tmdb.Movie
	SearchResults  []tmdb.Movie
	IsSearching    bool

	MovieWins       map[int64]int
	CurrentRotation float64
	IsSpinning      bool
	WinMode         string
	WinsNeeded      int

	LastQuery       string
	LastSearchError error
	LastSaved       time.Time
}

// Wins returns the recorded win count for id.
func (s Snapshot) Wins(id int64) int {
	return s.MovieWins[id]
}

// IsSelected reports whether id is on the shortlist.
func (s Snapshot) IsSelected(id int64) bool {
	for _, m := range s.SelectedMovies {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Options configure a Store. KV may be nil for a store that never persists.
type Options struct {
	Catalog tmdb.Searcher
	KV      kv.Store
	Key     string
	Logger  *zap.Logger
}

// Store holds the shortlist, search results and win tally. All methods are
// safe for concurrent use; the UI runs searches off the update loop.
type Store struct {
	catalog tmdb.Searcher
	kv      kv.Store
	key     string
	logger  *zap.Logger

	mu         sync.RWMutex
	selected   []tmdb.Movie
	results    []tmdb.Movie
	searching  bool
	wins       map[int64]int
	rotation   float64
	spinning   bool
	winMode    string
	winsNeeded int

	// searchSeq counts every Search call; networkSeq is the latest call that
	// actually reached the catalog.
	searchSeq     uint64
	networkSeq    uint64
	lastQuery     string
	lastSearchErr error
	lastSaved     time.Time

	// saveMu orders snapshot writes so an older payload never lands after a
	// newer one.
	saveMu sync.Mutex
}

// New returns a store holding default state. Call Load to restore a saved
// snapshot.
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	key := strings.TrimSpace(opts.Key)
	if key == "" {
		key = DefaultStorageKey
	}
	return &Store{
		catalog:    opts.Catalog,
		kv:         opts.KV,
		key:        key,
		logger:     logger,
		wins:       make(map[int64]int),
		winMode:    DefaultWinMode,
		winsNeeded: DefaultWinsNeeded,
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		SelectedMovies:  tmdb.CloneMovies(s.selected),
		SearchResults:   tmdb.CloneMovies(s.results),
		IsSearching:     s.searching,
		MovieWins:       maps.Clone(s.wins),
		CurrentRotation: s.rotation,
		IsSpinning:      s.spinning,
		WinMode:         s.winMode,
		WinsNeeded:      s.winsNeeded,
		LastQuery:       s.lastQuery,
		LastSaved:       s.lastSaved,
	}
	if snap.MovieWins == nil {
		snap.MovieWins = map[int64]int{}
	}
	if s.lastSearchErr != nil {
		snap.LastSearchError = fmt.Errorf("%w", s.lastSearchErr)
	}
	return snap
}

// Search replaces the search results with the catalog's matches for query.
// A blank query clears the results without contacting the catalog. Failures
// are logged and leave the results empty; they are never returned.
//
// Only the most recently issued call may apply its results. A slower,
// earlier request that resolves last is dropped.
func (s *Store) Search(ctx context.Context, query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	s.searchSeq++
	seq := s.searchSeq
	s.lastQuery = query
	if query == "" {
		s.results = nil
		s.lastSearchErr = nil
		s.mu.Unlock()
		return
	}
	s.networkSeq = seq
	s.searching = true
	s.mu.Unlock()

	var (
		movies []tmdb.Movie
		err    error
	)
	if s.catalog == nil {
		err = ErrNoCatalog
	} else {
		movies, err = s.catalog.SearchMovies(ctx, query)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq == s.networkSeq {
		s.searching = false
	}
	if seq != s.searchSeq {
		s.logger.Debug("discarding stale search response",
			zap.String("query", query),
			zap.Uint64("seq", seq),
			zap.Uint64("latest", s.searchSeq))
		return
	}
	if err != nil {
		s.logger.Error("movie search failed", zap.String("query", query), zap.Error(err))
		s.results = nil
		s.lastSearchErr = err
		return
	}
	s.results = tmdb.CloneMovies(movies)
	s.lastSearchErr = nil
}

// AddMovie appends movie to the shortlist unless a movie with the same id is
// already there. It persists only when the list changed.
func (s *Store) AddMovie(ctx context.Context, movie tmdb.Movie) error {
	s.mu.Lock()
	for _, m := range s.selected {
		if m.ID == movie.ID {
			s.mu.Unlock()
			return nil
		}
	}
	s.selected = append(s.selected, tmdb.CloneMovies([]tmdb.Movie{movie})...)
	s.mu.Unlock()

	return s.Save(ctx)
}

// RemoveMovie drops every shortlist entry with movieID along with its win
// count.
func (s *Store) RemoveMovie(ctx context.Context, movieID int64) error {
	s.mu.Lock()
	kept := make([]tmdb.Movie, 0, len(s.selected))
	for _, m := range s.selected {
		if m.ID != movieID {
			kept = append(kept, m)
		}
	}
	s.selected = kept
	delete(s.wins, movieID)
	s.mu.Unlock()

	return s.Save(ctx)
}

// UpdateWinMode stores mode as given.
func (s *Store) UpdateWinMode(ctx context.Context, mode string) error {
	s.mu.Lock()
	s.winMode = mode
	s.mu.Unlock()

	return s.Save(ctx)
}

// UpdateWinsNeeded stores n as given.
func (s *Store) UpdateWinsNeeded(ctx context.Context, n int) error {
	s.mu.Lock()
	s.winsNeeded = n
	s.mu.Unlock()

	return s.Save(ctx)
}

// RecordWin increments the win count for movieID. The id does not have to
// be on the shortlist.
func (s *Store) RecordWin(ctx context.Context, movieID int64) error {
	s.mu.Lock()
	s.wins[movieID]++
	s.mu.Unlock()

	return s.Save(ctx)
}

// ResetWins clears the win tally.
func (s *Store) ResetWins(ctx context.Context) error {
	s.mu.Lock()
	clear(s.wins)
	s.mu.Unlock()

	return s.Save(ctx)
}

// SetSpinning flips the transient spinning flag. It is never persisted.
func (s *Store) SetSpinning(spinning bool) {
	s.mu.Lock()
	s.spinning = spinning
	s.mu.Unlock()
}

// SetRotation records the wheel angle in degrees. It is never persisted.
func (s *Store) SetRotation(rotation float64) {
	s.mu.Lock()
	s.rotation = rotation
	s.mu.Unlock()
}
