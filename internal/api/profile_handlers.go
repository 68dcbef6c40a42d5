package api

import (
	"net/http"

	"github.com/vytor/packdex/internal/logger"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	overview, err := s.ProfileService.Overview(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, overview)
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.ProfileService.Rename(r.Context(), profile.ID, req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	profile := profileFromContext(r.Context())

	var req struct {
		Credential string `json:"credential"`
		Name       string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.ProfileService.Login(r.Context(), profile.ID, req.Credential, req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("profile %d linked identity", profile.ID)
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	updated, err := s.ProfileService.Logout(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}
