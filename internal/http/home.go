package httpserver

import (
	"encoding/json"
	"net/http"
)

// topMoviesCount is the size of the home highlight panel.
const topMoviesCount = 5

type topMoviesResponse struct {
	Items []movieResponse `json:"items"`
}

// handleTopMovies serves the home highlight panel: the five movies with the
// highest persisted average rating. The payload is cached in Redis when a
// client is configured; rating and catalog writes invalidate it.
func (s *Server) handleTopMovies(w http.ResponseWriter, r *http.Request) {
	if payload, ok := s.topCache.Get(r.Context()); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
		return
	}

	movies, err := s.repo.Movies.TopByAverageRating(r.Context(), topMoviesCount)
	if err != nil {
		s.logger.Printf("top movies error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch top movies")
		return
	}

	items := make([]movieResponse, 0, len(movies))
	for _, movie := range movies {
		items = append(items, toMovieResponse(movie))
	}
	resp := topMoviesResponse{Items: items}

	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Printf("encode top movies error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch top movies")
		return
	}
	s.topCache.Set(r.Context(), payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
