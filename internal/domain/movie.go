package domain

import (
	"strings"
	"time"
)

// MinReleaseYear is an exclusive lower bound: a movie must be newer than 1800.
const MinReleaseYear = 1800

// DefaultDirector is stored when no director is supplied.
const DefaultDirector = "Unknown"

// Genre pairs a stored code with its display label.
type Genre struct {
	Code  string
	Label string
}

// Genres is the fixed set of accepted genre codes.
var Genres = []Genre{
	{"ACTION", "Action"},
	{"COMEDY", "Comedy"},
	{"DRAMA", "Drama"},
	{"FANTASY", "Fantasy"},
	{"HORROR", "Horror"},
	{"SCI_FI", "Science Fiction"},
	{"ROMANCE", "Romance"},
	{"THRILLER", "Thriller"},
	{"DOCUMENTARY", "Documentary"},
	{"ANIMATION", "Animation"},
	{"OTHER", "Other"},
}

// ValidGenre reports whether code belongs to the genre set.
func ValidGenre(code string) bool {
	for _, g := range Genres {
		if g.Code == code {
			return true
		}
	}
	return false
}

// GenreLabel returns the display label for a genre code. Unknown codes fall
// back to the code itself.
func GenreLabel(code string) string {
	for _, g := range Genres {
		if g.Code == code {
			return g.Label
		}
	}
	return code
}

// Movie represents the canonical catalog entry. AverageRating is derived from
// rating writes and never set directly.
type Movie struct {
	ID            string
	Title         string
	ReleaseYear   int
	Genre         string
	Duration      int
	Director      string
	AverageRating float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateMovie checks user-supplied movie attributes. It returns nil when
// everything passes, otherwise a FieldErrors naming each offending field.
func ValidateMovie(title string, releaseYear int, genre string, duration int) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(title) == "" {
		errs.Add("title", "title is required")
	}
	if releaseYear <= MinReleaseYear || releaseYear > time.Now().Year() {
		errs.Add("releaseYear", "release year must be after 1800 and not in the future")
	}
	if !ValidGenre(genre) {
		errs.Add("genre", "genre must be one of the known genre codes")
	}
	if duration < 0 {
		errs.Add("duration", "duration must be non-negative")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
