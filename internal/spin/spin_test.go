package spin

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/marquee/internal/tmdb"
)

func TestSpin_LandsOnChosenSegment(t *testing.T) {
	w := NewWheel(rand.NewPCG(1, 2))
	candidates := []int64{11, 22, 33, 44, 55}

	rotation := 0.0
	for range 200 {
		res, err := w.Spin(candidates, rotation)
		require.NoError(t, err)
		require.Equal(t, candidates[res.Index], res.MovieID)
		require.Equal(t, res.Index, SegmentAt(res.Rotation, len(candidates)))
		require.GreaterOrEqual(t, res.Rotation-rotation, float64(defaultTurns*360))
		rotation = res.Rotation
	}
}

func TestSpin_CoversEveryCandidate(t *testing.T) {
	w := NewWheel(rand.NewPCG(7, 7))
	candidates := []int64{1, 2, 3}
	seen := map[int64]int{}
	for range 300 {
		res, err := w.Spin(candidates, 0)
		require.NoError(t, err)
		seen[res.MovieID]++
	}
	require.Len(t, seen, 3)
	for id, n := range seen {
		require.Greater(t, n, 50, "candidate %d drawn too rarely", id)
	}
}

func TestSpin_Empty(t *testing.T) {
	_, err := NewWheel(nil).Spin(nil, 0)
	require.ErrorIs(t, err, ErrNoCandidates)
}

func TestSegmentAt(t *testing.T) {
	require.Equal(t, -1, SegmentAt(0, 0))
	require.Equal(t, 0, SegmentAt(0, 1))
	require.Equal(t, 0, SegmentAt(359.9, 1))

	// Four segments of 90 degrees; turning clockwise brings the last
	// segment under the pointer first.
	require.Equal(t, 3, SegmentAt(45, 4))
	require.Equal(t, 2, SegmentAt(135, 4))
	require.Equal(t, 0, SegmentAt(-45, 4))
	require.Equal(t, 3, SegmentAt(45+720, 4))
}

func TestEase(t *testing.T) {
	require.InDelta(t, 10.0, Ease(10, 100, 0), 1e-9)
	require.InDelta(t, 100.0, Ease(10, 100, 1), 1e-9)
	require.InDelta(t, 100.0, Ease(10, 100, 2), 1e-9)
	require.Greater(t, Ease(0, 100, 0.5), 50.0, "ease-out front-loads movement")
}

func TestNextMode(t *testing.T) {
	require.Equal(t, []string{ModeSingle, ModeMulti}, Modes())
	require.Equal(t, ModeMulti, NextMode(ModeSingle))
	require.Equal(t, ModeSingle, NextMode(ModeMulti))
	require.Equal(t, ModeSingle, NextMode("bogus"))
}

func TestWinner(t *testing.T) {
	a := tmdb.Movie{ID: 1, Title: "A"}
	b := tmdb.Movie{ID: 2, Title: "B"}
	c := tmdb.Movie{ID: 3, Title: "C"}
	list := []tmdb.Movie{a, b, c}

	tests := []struct {
		name       string
		mode       string
		winsNeeded int
		wins       map[int64]int
		want       int64
		ok         bool
	}{
		{name: "single no wins", mode: ModeSingle, winsNeeded: 3, wins: map[int64]int{}, ok: false},
		{name: "single first win decides", mode: ModeSingle, winsNeeded: 3, wins: map[int64]int{2: 1}, want: 2, ok: true},
		{name: "multi below threshold", mode: ModeMulti, winsNeeded: 3, wins: map[int64]int{1: 2, 3: 2}, ok: false},
		{name: "multi reaches threshold", mode: ModeMulti, winsNeeded: 3, wins: map[int64]int{1: 2, 3: 3}, want: 3, ok: true},
		{name: "multi tie goes to shortlist order", mode: ModeMulti, winsNeeded: 2, wins: map[int64]int{3: 2, 2: 2}, want: 2, ok: true},
		{name: "multi zero needed acts as one", mode: ModeMulti, winsNeeded: 0, wins: map[int64]int{3: 1}, want: 3, ok: true},
		{name: "unknown mode acts as single", mode: "other", winsNeeded: 5, wins: map[int64]int{1: 1}, want: 1, ok: true},
		{name: "wins for removed movie ignored", mode: ModeSingle, winsNeeded: 1, wins: map[int64]int{99: 4}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Winner(tt.mode, tt.winsNeeded, list, tt.wins)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got.ID)
			}
		})
	}
}

func TestStandings(t *testing.T) {
	list := []tmdb.Movie{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	got := Standings(list, map[int64]int{3: 2, 2: 1, 4: 1})

	ids := make([]int64, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.Movie.ID)
	}
	require.Equal(t, []int64{3, 2, 4, 1}, ids)
	require.Equal(t, 0, got[3].Wins)
}
