package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FlorekPawel/movie-db/internal/domain"
	"github.com/FlorekPawel/movie-db/internal/repository"
)

type ratingRequest struct {
	Rating float64 `json:"rating"`
}

type ratingSubmitResponse struct {
	Success bool `json:"success"`
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	if userID == "" {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	movie, err := s.repo.Movies.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("fetch movie for rating failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process rating")
		return
	}

	var req ratingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if !domain.ValidRating(req.Rating) {
		s.respondValidation(w, domain.FieldErrors{"rating": "rating must be between 0 and 5"})
		return
	}

	if _, err := s.repo.Ratings.Submit(r.Context(), repository.RatingSubmitParams{
		MovieID: movie.ID,
		UserID:  userID,
		Value:   req.Rating,
	}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("submit rating error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process rating")
		return
	}

	s.topCache.Invalidate(r.Context())
	s.respondJSON(w, http.StatusOK, ratingSubmitResponse{Success: true})
}
