package api

import (
	"net/http"

	"github.com/vytor/packdex/internal/models"
)

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	entries, err := s.LeaderboardService.Top(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	respondJSON(w, r, http.StatusOK, entries)
}
