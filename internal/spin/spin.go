package spin

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/five82/marquee/internal/tmdb"
)

const (
	ModeSingle = "single"
	ModeMulti  = "multi"

	defaultTurns = 4
)

// ErrNoCandidates is returned when spinning an empty wheel.
var ErrNoCandidates = errors.New("nothing to spin")

// Modes returns the win modes the UI offers, in cycle order.
func Modes() []string {
	return []string{ModeSingle, ModeMulti}
}

// NextMode returns the mode after mode, wrapping around. Unknown modes
// restart the cycle.
func NextMode(mode string) string {
	modes := Modes()
	idx := slices.Index(modes, strings.TrimSpace(mode))
	if idx < 0 {
		return modes[0]
	}
	return modes[(idx+1)%len(modes)]
}

// Wheel picks a uniformly random segment and works out how far to turn so
// the pointer lands on it.
type Wheel struct {
	rng   *rand.Rand
	turns int
}

// NewWheel returns a wheel drawing from src. A nil src uses a randomly
// seeded PCG.
func NewWheel(src rand.Source) *Wheel {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Wheel{rng: rand.New(src), turns: defaultTurns}
}

// Result describes one spin.
type Result struct {
	Index    int
	MovieID  int64
	Rotation float64
}

// Spin chooses one of candidates and returns the absolute rotation, in
// degrees, that places it under the pointer. The wheel always turns forward
// by at least a few full turns from rotation.
func (w *Wheel) Spin(candidates []int64, rotation float64) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, ErrNoCandidates
	}
	idx := w.rng.IntN(len(candidates))
	return Result{
		Index:    idx,
		MovieID:  candidates[idx],
		Rotation: landingRotation(idx, len(candidates), rotation, w.turns),
	}, nil
}

// SegmentAt returns the segment under the pointer for a wheel of n segments
// turned clockwise by rotation degrees. Segment 0 starts at the pointer.
func SegmentAt(rotation float64, n int) int {
	if n <= 0 {
		return -1
	}
	seg := 360 / float64(n)
	angle := normalize(360 - normalize(rotation))
	idx := int(math.Floor(angle / seg))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// Ease interpolates from -> to with an ease-out cubic curve; t is clamped
// to [0, 1].
func Ease(from, to, t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	p := 1 - math.Pow(1-t, 3)
	return from + (to-from)*p
}

func landingRotation(idx, n int, rotation float64, turns int) float64 {
	seg := 360 / float64(n)
	// Pointer sits at the center of segment idx when the wheel has turned
	// 360 - center degrees.
	target := normalize(360 - (float64(idx)+0.5)*seg)
	delta := normalize(target - normalize(rotation))
	return rotation + float64(turns)*360 + delta
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Winner returns the first shortlisted movie that has reached the win
// threshold. In single mode one win decides; in multi mode the threshold is
// winsNeeded (values below 1 count as 1). Ties go to shortlist order.
func Winner(mode string, winsNeeded int, selected []tmdb.Movie, wins map[int64]int) (tmdb.Movie, bool) {
	threshold := winsNeeded
	if strings.TrimSpace(mode) != ModeMulti || threshold < 1 {
		threshold = 1
	}
	for _, m := range selected {
		if wins[m.ID] >= threshold {
			return m, true
		}
	}
	return tmdb.Movie{}, false
}

// Standing is one row of the leaderboard.
type Standing struct {
	Movie tmdb.Movie
	Wins  int
}

// Standings orders the shortlist by wins, most first, keeping shortlist
// order among equal counts.
func Standings(selected []tmdb.Movie, wins map[int64]int) []Standing {
	out := make([]Standing, 0, len(selected))
	for _, m := range selected {
		out = append(out, Standing{Movie: m, Wins: wins[m.ID]})
	}
	slices.SortStableFunc(out, func(a, b Standing) int {
		return b.Wins - a.Wins
	})
	return out
}
