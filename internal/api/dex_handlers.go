package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/packdex/internal/services"
)

func (s *Server) handleDex(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	filter := services.DexFilter{
		Search:    r.URL.Query().Get("search"),
		OwnedOnly: r.URL.Query().Get("owned") == "true",
	}

	page, err := s.DexService.Page(r.Context(), profile.ID, chi.URLParam(r, "pack"), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, page)
}
