package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/FlorekPawel/movie-db/internal/auth"
	"github.com/FlorekPawel/movie-db/internal/domain"
	"github.com/FlorekPawel/movie-db/internal/repository"
)

// starRange enumerates the star positions rendered on a detail page.
var starRange = []int{0, 1, 2, 3, 4}

type movieCreateRequest struct {
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	ReleaseYear int     `json:"releaseYear"`
	Duration    *int    `json:"duration"`
	Director    *string `json:"director"`
}

type movieResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	ReleaseYear   int     `json:"releaseYear"`
	Genre         string  `json:"genre"`
	GenreLabel    string  `json:"genreLabel"`
	Duration      int     `json:"duration"`
	Director      string  `json:"director"`
	AverageRating float64 `json:"averageRating"`
	Bookmarked    *bool   `json:"bookmarked,omitempty"`
}

type movieListResponse struct {
	Items      []movieResponse `json:"items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	TotalItems int64           `json:"totalItems"`
}

type movieDetailResponse struct {
	movieResponse
	LiveAverage float64  `json:"liveAverage"`
	RatingCount int64    `json:"ratingCount"`
	UserRating  *float64 `json:"userRating"`
	StarRange   []int    `json:"starRange"`
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	filters, err := buildMovieFilters(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	result, err := s.repo.Movies.List(r.Context(), filters)
	if err != nil {
		s.logger.Printf("list movies error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list movies")
		return
	}

	bookmarked := map[string]bool{}
	userID := s.userID(r)
	if userID != "" && len(result.Items) > 0 {
		ids := make([]string, 0, len(result.Items))
		for _, movie := range result.Items {
			ids = append(ids, movie.ID)
		}
		bookmarked, err = s.repo.Bookmarks.MovieIDsForUser(r.Context(), userID, ids)
		if err != nil {
			s.logger.Printf("bookmark lookup error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list movies")
			return
		}
	}

	items := make([]movieResponse, 0, len(result.Items))
	for _, movie := range result.Items {
		item := toMovieResponse(movie)
		if userID != "" {
			flag := bookmarked[movie.ID]
			item.Bookmarked = &flag
		}
		items = append(items, item)
	}

	s.respondJSON(w, http.StatusOK, movieListResponse{
		Items:      items,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		TotalItems: result.TotalItems,
	})
}

// buildMovieFilters parses the optional query predicates. Blank values are
// no-ops; an unknown genre is an error rather than an empty match.
func buildMovieFilters(query url.Values) (repository.MovieListFilters, error) {
	var filters repository.MovieListFilters

	if val := strings.TrimSpace(query.Get("title")); val != "" {
		filters.Title = &val
	}
	if val := strings.TrimSpace(query.Get("genre")); val != "" {
		if !domain.ValidGenre(val) {
			return filters, fmt.Errorf("unknown genre %q", val)
		}
		filters.Genre = &val
	}
	if val := strings.TrimSpace(query.Get("director")); val != "" {
		filters.Director = &val
	}
	if val := strings.TrimSpace(query.Get("year")); val != "" {
		year, err := strconv.Atoi(val)
		if err != nil {
			return filters, fmt.Errorf("invalid year value")
		}
		filters.Year = &year
	}
	if val := strings.TrimSpace(query.Get("rating")); val != "" {
		rating, err := strconv.ParseFloat(val, 64)
		if err != nil || !domain.ValidRating(rating) {
			return filters, fmt.Errorf("invalid rating value")
		}
		filters.MinRating = &rating
	}
	if val := strings.TrimSpace(query.Get("page")); val != "" {
		page, err := strconv.Atoi(val)
		if err != nil || page < 1 {
			return filters, fmt.Errorf("invalid page value")
		}
		filters.Page = page
	}
	return filters, nil
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	if !s.requireEditor(w, r) {
		return
	}

	var req movieCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	duration := 0
	if req.Duration != nil {
		duration = *req.Duration
	}
	if errs := domain.ValidateMovie(req.Title, req.ReleaseYear, req.Genre, duration); errs != nil {
		s.respondValidation(w, errs)
		return
	}

	movie, err := s.repo.Movies.Create(r.Context(), repository.MovieCreateParams{
		Title:       req.Title,
		ReleaseYear: req.ReleaseYear,
		Genre:       req.Genre,
		Duration:    duration,
		Director:    req.Director,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateTitle) {
			s.respondValidation(w, domain.FieldErrors{"title": "a movie with this title already exists"})
			return
		}
		s.logger.Printf("create movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create movie")
		return
	}

	s.topCache.Invalidate(r.Context())

	w.Header().Set("Location", "/movies/"+movie.ID)
	s.respondJSON(w, http.StatusCreated, toMovieResponse(movie))
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	movie, err := s.repo.Movies.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("get movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch movie")
		return
	}

	agg, err := s.repo.Ratings.Aggregate(r.Context(), movie.ID)
	if err != nil {
		s.logger.Printf("aggregate rating error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch movie")
		return
	}

	resp := movieDetailResponse{
		movieResponse: toMovieResponse(movie),
		LiveAverage:   agg.Average,
		RatingCount:   agg.Count,
		StarRange:     starRange,
	}

	if userID := s.userID(r); userID != "" {
		flag, err := s.repo.Bookmarks.Exists(r.Context(), userID, movie.ID)
		if err != nil {
			s.logger.Printf("bookmark lookup error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch movie")
			return
		}
		resp.Bookmarked = &flag

		rating, err := s.repo.Ratings.Get(r.Context(), movie.ID, userID)
		switch {
		case err == nil:
			resp.UserRating = &rating.Value
		case errors.Is(err, repository.ErrNotFound):
			// no rating from this user yet
		default:
			s.logger.Printf("user rating lookup error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch movie")
			return
		}
	}

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	if !s.requireEditor(w, r) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.repo.Movies.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("delete movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete movie")
		return
	}

	s.topCache.Invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// requireEditor enforces the editor capability gate. A missing identity is
// unauthenticated; a known identity without the capability is a refused
// action, not a system error.
func (s *Server) requireEditor(w http.ResponseWriter, r *http.Request) bool {
	userID := s.userID(r)
	if userID == "" {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return false
	}

	allowed, err := auth.Has(r.Context(), s.repo.Users, userID, auth.CapabilityEditor)
	if err != nil {
		s.logger.Printf("capability check error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to verify permissions")
		return false
	}
	if !allowed {
		s.respondError(w, http.StatusForbidden, "FORBIDDEN", "Editor capability required")
		return false
	}
	return true
}

func toMovieResponse(movie domain.Movie) movieResponse {
	return movieResponse{
		ID:            movie.ID,
		Title:         movie.Title,
		ReleaseYear:   movie.ReleaseYear,
		Genre:         movie.Genre,
		GenreLabel:    domain.GenreLabel(movie.Genre),
		Duration:      movie.Duration,
		Director:      movie.Director,
		AverageRating: movie.AverageRating,
	}
}
