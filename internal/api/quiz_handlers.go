package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleQuizStart(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	question, err := s.QuizService.Start(r.Context(), profile.ID, chi.URLParam(r, "category"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, question)
}

func (s *Server) handleQuizQuestion(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	question, err := s.QuizService.Question(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, question)
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.QuizService.Answer(r.Context(), profile.ID, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleQuizStop(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	if err := s.QuizService.Stop(r.Context(), profile.ID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
