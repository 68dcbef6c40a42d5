package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/packdex/internal/catalog"
)

func (s *Server) handlePacks(w http.ResponseWriter, r *http.Request) {
	packs := make([]catalog.PackInfo, 0, len(catalog.Packs))
	for _, p := range catalog.Packs {
		packs = append(packs, p)
	}
	sort.Slice(packs, func(i, j int) bool { return packs[i].Key < packs[j].Key })
	respondJSON(w, r, http.StatusOK, packs)
}

func (s *Server) handleOpenPack(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	opening, err := s.PackService.Open(r.Context(), profile.ID, chi.URLParam(r, "pack"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, opening)
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	reveal, err := s.PackService.Reveal(r.Context(), profile.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, reveal)
}

func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	discarded, err := s.PackService.Abandon(r.Context(), profile.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]int{"discarded": discarded})
}
