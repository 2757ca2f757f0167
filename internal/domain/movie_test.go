package domain

import (
	"strings"
	"testing"
	"time"
)

func TestValidateMovie(t *testing.T) {
	currentYear := time.Now().Year()

	tests := []struct {
		name       string
		title      string
		year       int
		genre      string
		duration   int
		wantFields []string
	}{
		{"valid", "Inception", 2010, "SCI_FI", 148, nil},
		{"year lower bound rejected", "Too Old Movie", 1800, "SCI_FI", 90, []string{"releaseYear"}},
		{"year just above lower bound", "Old Enough", 1801, "DRAMA", 90, nil},
		{"current year accepted", "Fresh", currentYear, "DRAMA", 90, nil},
		{"future year rejected", "Future Movie", currentYear + 1, "SCI_FI", 90, []string{"releaseYear"}},
		{"unknown genre", "Invalid Genre Movie", 2000, "UNKNOWN_GENRE", 90, []string{"genre"}},
		{"negative duration", "Backwards", 2000, "HORROR", -1, []string{"duration"}},
		{"blank title", "   ", 2000, "COMEDY", 90, []string{"title"}},
		{"multiple failures", "", 3000, "NOPE", -5, []string{"title", "releaseYear", "genre", "duration"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateMovie(tt.title, tt.year, tt.genre, tt.duration)
			if tt.wantFields == nil {
				if errs != nil {
					t.Fatalf("unexpected validation errors: %v", errs)
				}
				return
			}
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(tt.wantFields))
			}
			for _, field := range tt.wantFields {
				if _, ok := errs[field]; !ok {
					t.Fatalf("missing error for field %q in %v", field, errs)
				}
			}
		})
	}
}

func TestValidRating(t *testing.T) {
	valid := []float64{0, 0.0, 2.5, 4.99, 5, 5.0}
	for _, v := range valid {
		if !ValidRating(v) {
			t.Fatalf("rating %v should be valid", v)
		}
	}

	invalid := []float64{-0.01, 5.01, -1, 6}
	for _, v := range invalid {
		if ValidRating(v) {
			t.Fatalf("rating %v should be invalid", v)
		}
	}
}

func TestGenreHelpers(t *testing.T) {
	if !ValidGenre("SCI_FI") {
		t.Fatalf("SCI_FI should be a known genre")
	}
	if ValidGenre("sci_fi") {
		t.Fatalf("genre codes are case-sensitive")
	}
	if label := GenreLabel("SCI_FI"); label != "Science Fiction" {
		t.Fatalf("GenreLabel(SCI_FI) = %q", label)
	}
	if label := GenreLabel("MYSTERY"); label != "MYSTERY" {
		t.Fatalf("unknown code should fall back to itself, got %q", label)
	}
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("title", "title is required")
	errs.Add("genre", "unknown genre")
	errs.Add("title", "shadowed message")

	if errs["title"] != "title is required" {
		t.Fatalf("Add should keep the first message per field")
	}

	msg := errs.Error()
	if !strings.HasPrefix(msg, "genre:") {
		t.Fatalf("Error() should order fields alphabetically, got %q", msg)
	}
	if !strings.Contains(msg, "title: title is required") {
		t.Fatalf("Error() missing title message: %q", msg)
	}
}
