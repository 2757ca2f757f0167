package httpserver

import (
	"net/url"
	"testing"
)

func TestBuildMovieFilters(t *testing.T) {
	values, _ := url.ParseQuery("title= Incep &genre=SCI_FI&director= Nolan &year=2010&rating=3.5&page=2")

	filters, err := buildMovieFilters(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.Title == nil || *filters.Title != "Incep" {
		t.Fatalf("title not trimmed: %+v", filters.Title)
	}
	if filters.Genre == nil || *filters.Genre != "SCI_FI" {
		t.Fatalf("genre parse failed: %+v", filters.Genre)
	}
	if filters.Director == nil || *filters.Director != "Nolan" {
		t.Fatalf("director not trimmed: %+v", filters.Director)
	}
	if filters.Year == nil || *filters.Year != 2010 {
		t.Fatalf("year parse failed: %+v", filters.Year)
	}
	if filters.MinRating == nil || *filters.MinRating != 3.5 {
		t.Fatalf("rating parse failed: %+v", filters.MinRating)
	}
	if filters.Page != 2 {
		t.Fatalf("page not parsed: %d", filters.Page)
	}
}

func TestBuildMovieFilters_BlankValuesAreNoOps(t *testing.T) {
	values, _ := url.ParseQuery("title=&genre=&director=  &year=&rating=&page=")

	filters, err := buildMovieFilters(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.Title != nil || filters.Genre != nil || filters.Director != nil ||
		filters.Year != nil || filters.MinRating != nil {
		t.Fatalf("blank values should not constrain: %+v", filters)
	}
}

func TestBuildMovieFilters_Invalid(t *testing.T) {
	cases := []string{
		"year=abc",
		"genre=WESTERN",
		"rating=5.5",
		"rating=-1",
		"rating=abc",
		"page=-1",
		"page=abc",
	}
	for _, raw := range cases {
		values, _ := url.ParseQuery(raw)
		if _, err := buildMovieFilters(values); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
