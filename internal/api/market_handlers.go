package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/services"
)

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ListingFilter{
		Pack:     q.Get("pack"),
		SellerID: q.Get("seller"),
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		filter.Limit = n
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil && n > 0 {
		filter.Offset = n
	}

	listings, err := s.MarketService.Listings(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	respondJSON(w, r, http.StatusOK, listings)
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req services.CreateListingInput
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	listing, err := s.MarketService.Create(r.Context(), profile.ID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, listing)
}

func (s *Server) handleBuyListing(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	result, err := s.MarketService.Buy(r.Context(), profile.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleCancelListing(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	if err := s.MarketService.Cancel(r.Context(), profile.ID, chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
