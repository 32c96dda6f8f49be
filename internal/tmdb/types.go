package tmdb

import (
	"strconv"
	"strings"
	"time"
)

const (
	releaseDateLayout = "2006-01-02"
	imageBaseURL      = "https://image.tmdb.org/t/p/"
	defaultPosterSize = "w342"
)

// Movie mirrors a single entry of TMDB's /search/movie results.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	Overview         string  `json:"overview,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	VoteCount        int     `json:"vote_count,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Adult            bool    `json:"adult,omitempty"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
}

// SearchResponse is the paged envelope returned by /search/movie.
type SearchResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// errorResponse is the body TMDB sends alongside 4xx/5xx statuses.
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// ParsedReleaseDate returns the release date, or the zero time when missing.
func (m Movie) ParsedReleaseDate() time.Time {
	value := strings.TrimSpace(m.ReleaseDate)
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(releaseDateLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Year returns the release year or 0.
func (m Movie) Year() int {
	t := m.ParsedReleaseDate()
	if t.IsZero() {
		return 0
	}
	return t.Year()
}

// DisplayTitle renders "Title (Year)", falling back to the original title.
func (m Movie) DisplayTitle() string {
	title := strings.TrimSpace(m.Title)
	if title == "" {
		title = strings.TrimSpace(m.OriginalTitle)
	}
	if title == "" {
		title = "Untitled"
	}
	if year := m.Year(); year > 0 {
		return title + " (" + strconv.Itoa(year) + ")"
	}
	return title
}

// PosterURL builds an image CDN URL for the poster. size is a TMDB size
// token such as "w185"; empty uses w342.
func (m Movie) PosterURL(size string) string {
	path := strings.TrimSpace(m.PosterPath)
	if path == "" {
		return ""
	}
	size = strings.TrimSpace(size)
	if size == "" {
		size = defaultPosterSize
	}
	return imageBaseURL + size + "/" + strings.TrimPrefix(path, "/")
}

// CloneMovies copies the slice and each movie's genre list.
func CloneMovies(movies []Movie) []Movie {
	if len(movies) == 0 {
		return nil
	}
	dup := make([]Movie, len(movies))
	copy(dup, movies)
	for i := range dup {
		if dup[i].GenreIDs != nil {
			dup[i].GenreIDs = append([]int(nil), dup[i].GenreIDs...)
		}
	}
	return dup
}
