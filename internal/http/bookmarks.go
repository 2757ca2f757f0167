package httpserver

import (
	"errors"
	"net/http"

	"github.com/FlorekPawel/movie-db/internal/repository"
)

type bookmarkToggleRequest struct {
	MovieID string `json:"movieId"`
	Action  string `json:"action"`
}

type bookmarkToggleResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// handleToggleBookmark implements the add/remove toggle protocol. The response
// always carries a status string; the statuses mirror the toggle outcomes:
// added, exists, removed, error (unknown movie), invalid (bad request shape).
func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r)
	if userID == "" {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req bookmarkToggleRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondJSON(w, http.StatusOK, bookmarkToggleResponse{Status: "invalid", Message: "Invalid request."})
		return
	}
	if req.MovieID == "" || (req.Action != "add" && req.Action != "remove") {
		s.respondJSON(w, http.StatusOK, bookmarkToggleResponse{Status: "invalid", Message: "Invalid request."})
		return
	}

	movie, err := s.repo.Movies.GetByID(r.Context(), req.MovieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondJSON(w, http.StatusOK, bookmarkToggleResponse{Status: "error", Message: "Movie not found."})
			return
		}
		s.logger.Printf("fetch movie for bookmark failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to toggle bookmark")
		return
	}

	switch req.Action {
	case "add":
		created, err := s.repo.Bookmarks.Add(r.Context(), userID, movie.ID)
		if err != nil {
			s.logger.Printf("add bookmark error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to toggle bookmark")
			return
		}
		if created {
			s.respondJSON(w, http.StatusOK, bookmarkToggleResponse{Status: "added", Message: "Bookmark added."})
		} else {
			s.respondJSON(w, http.StatusOK, bookmarkToggleResponse{Status: "exists", Message: "Already bookmarked."})
		}
	case "remove":
		if _, err := s.repo.Bookmarks.Remove(r.Context(), userID, movie.ID); err != nil {
			s.logger.Printf("remove bookmark error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to toggle bookmark")
			return
		}
		s.respondJSON(w, http.StatusOK, bookmarkToggleResponse{Status: "removed", Message: "Bookmark removed."})
	}
}
