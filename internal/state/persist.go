package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/five82/marquee/internal/tmdb"
)

// ErrCorruptSnapshot matches every *SnapshotError via errors.Is.
var ErrCorruptSnapshot = errors.New("corrupt saved state")

// SnapshotError reports a saved entry that does not have the expected shape.
type SnapshotError struct {
	Key   string
	Field string
	Err   error
}

func (e *SnapshotError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("saved state %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("saved state %q: %s: %v", e.Key, e.Field, e.Err)
}

func (e *SnapshotError) Unwrap() error { return e.Err }

func (e *SnapshotError) Is(target error) bool { return target == ErrCorruptSnapshot }

// WinEntry is one movie's tally, encoded as a two-element [id, count] array.
type WinEntry struct {
	MovieID int64
	Wins    int
}

func (w WinEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{w.MovieID, int64(w.Wins)})
}

func (w *WinEntry) UnmarshalJSON(data []byte) error {
	var pair []int64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("want [id, count] pair, got %d elements", len(pair))
	}
	if pair[1] < 1 {
		return fmt.Errorf("movie %d has win count %d", pair[0], pair[1])
	}
	w.MovieID = pair[0]
	w.Wins = int(pair[1])
	return nil
}

// persisted is the document written under the storage key. Transient
// fields are deliberately absent.
type persisted struct {
	SelectedMovies []tmdb.Movie `json:"selectedMovies"`
	MovieWins      []WinEntry   `json:"movieWins"`
	WinMode        string       `json:"winMode"`
	WinsNeeded     int          `json:"winsNeeded"`
}

// Save writes the persisted subset of the state under the storage key,
// replacing any previous value. A store without a kv backend is a no-op.
func (s *Store) Save(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	doc := s.persistedLocked()
	s.mu.RUnlock()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode saved state: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		s.logger.Error("save state failed", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("save state: %w", err)
	}

	s.mu.Lock()
	s.lastSaved = time.Now()
	s.mu.Unlock()
	return nil
}

// Load restores the persisted subset from the storage key. A missing key
// leaves the state untouched. A malformed entry returns a *SnapshotError and
// also leaves the state untouched.
func (s *Store) Load(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	data, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if !ok {
		return nil
	}

	doc, err := decodePersisted(s.key, data)
	if err != nil {
		return err
	}

	wins := make(map[int64]int, len(doc.MovieWins))
	for _, w := range doc.MovieWins {
		wins[w.MovieID] = w.Wins
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = doc.SelectedMovies
	s.wins = wins
	s.winMode = doc.WinMode
	s.winsNeeded = doc.WinsNeeded
	return nil
}

// Clear deletes the saved entry and resets the persisted fields to their
// defaults. Search results and transient flags are kept.
func (s *Store) Clear(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if s.kv != nil {
		if err := s.kv.Delete(ctx, s.key); err != nil {
			return fmt.Errorf("clear state: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
	s.wins = make(map[int64]int)
	s.winMode = DefaultWinMode
	s.winsNeeded = DefaultWinsNeeded
	return nil
}

// persistedLocked builds the document; callers hold s.mu. Win entries are
// sorted by id so identical state always encodes identically; readers do not
// depend on the order.
func (s *Store) persistedLocked() persisted {
	entries := make([]WinEntry, 0, len(s.wins))
	for _, id := range slices.Sorted(maps.Keys(s.wins)) {
		entries = append(entries, WinEntry{MovieID: id, Wins: s.wins[id]})
	}
	selected := tmdb.CloneMovies(s.selected)
	if selected == nil {
		selected = []tmdb.Movie{}
	}
	return persisted{
		SelectedMovies: selected,
		MovieWins:      entries,
		WinMode:        s.winMode,
		WinsNeeded:     s.winsNeeded,
	}
}

func decodePersisted(key string, data []byte) (persisted, error) {
	var raw struct {
		SelectedMovies *[]tmdb.Movie `json:"selectedMovies"`
		MovieWins      *[]WinEntry   `json:"movieWins"`
		WinMode        *string       `json:"winMode"`
		WinsNeeded     *int          `json:"winsNeeded"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return persisted{}, &SnapshotError{Key: key, Err: err}
	}

	switch {
	case raw.SelectedMovies == nil:
		return persisted{}, &SnapshotError{Key: key, Field: "selectedMovies", Err: errors.New("missing")}
	case raw.MovieWins == nil:
		return persisted{}, &SnapshotError{Key: key, Field: "movieWins", Err: errors.New("missing")}
	case raw.WinMode == nil:
		return persisted{}, &SnapshotError{Key: key, Field: "winMode", Err: errors.New("missing")}
	case raw.WinsNeeded == nil:
		return persisted{}, &SnapshotError{Key: key, Field: "winsNeeded", Err: errors.New("missing")}
	}

	seen := make(map[int64]struct{}, len(*raw.SelectedMovies))
	for _, m := range *raw.SelectedMovies {
		if _, dup := seen[m.ID]; dup {
			return persisted{}, &SnapshotError{Key: key, Field: "selectedMovies", Err: fmt.Errorf("duplicate movie id %d", m.ID)}
		}
		seen[m.ID] = struct{}{}
	}

	tally := make(map[int64]struct{}, len(*raw.MovieWins))
	for _, w := range *raw.MovieWins {
		if _, dup := tally[w.MovieID]; dup {
			return persisted{}, &SnapshotError{Key: key, Field: "movieWins", Err: fmt.Errorf("duplicate movie id %d", w.MovieID)}
		}
		tally[w.MovieID] = struct{}{}
	}

	return persisted{
		SelectedMovies: *raw.SelectedMovies,
		MovieWins:      *raw.MovieWins,
		WinMode:        *raw.WinMode,
		WinsNeeded:     *raw.WinsNeeded,
	}, nil
}
