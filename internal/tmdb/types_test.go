package tmdb

import "testing"

func TestMovieHelpers(t *testing.T) {
	m := Movie{Title: "Heat", ReleaseDate: "1995-12-15", PosterPath: "/abc.jpg"}
	if m.Year() != 1995 {
		t.Fatalf("Year = %d, want 1995", m.Year())
	}
	if got := m.DisplayTitle(); got != "Heat (1995)" {
		t.Fatalf("DisplayTitle = %q, want %q", got, "Heat (1995)")
	}
	if got := m.PosterURL(""); got != "https://image.tmdb.org/t/p/w342/abc.jpg" {
		t.Fatalf("PosterURL = %q", got)
	}
	if got := m.PosterURL("w92"); got != "https://image.tmdb.org/t/p/w92/abc.jpg" {
		t.Fatalf("PosterURL(w92) = %q", got)
	}
}

func TestMovieHelpers_MissingFields(t *testing.T) {
	m := Movie{OriginalTitle: "Hana-bi", ReleaseDate: "soon"}
	if m.Year() != 0 {
		t.Fatalf("Year = %d, want 0 for unparsable date", m.Year())
	}
	if got := m.DisplayTitle(); got != "Hana-bi" {
		t.Fatalf("DisplayTitle = %q, want original title fallback", got)
	}
	if (Movie{}).DisplayTitle() != "Untitled" {
		t.Fatalf("DisplayTitle on empty movie should be Untitled")
	}
	if (Movie{}).PosterURL("") != "" {
		t.Fatalf("PosterURL without poster path should be empty")
	}
}

func TestCloneMovies(t *testing.T) {
	if CloneMovies(nil) != nil {
		t.Fatalf("CloneMovies(nil) should be nil")
	}
	orig := []Movie{{ID: 1, GenreIDs: []int{18}}}
	dup := CloneMovies(orig)
	dup[0].ID = 2
	dup[0].GenreIDs[0] = 99
	if orig[0].ID != 1 || orig[0].GenreIDs[0] != 18 {
		t.Fatalf("CloneMovies shares memory with source: %#v", orig)
	}
}
