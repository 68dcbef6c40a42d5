package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/packdex/internal/services"
)

type Server struct {
	ProfileService     services.ProfileService
	PackService        services.PackService
	QuizService        services.QuizService
	MarketService      services.MarketService
	LeaderboardService services.LeaderboardService
	DexService         services.DexService

	// Ping checks backing-store health for the readiness probe.
	Ping      func(ctx context.Context) error
	StaticDir string
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.playerMiddleware)

		r.Get("/profile", s.handleProfile)
		r.Post("/profile/name", s.handleRename)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		r.Get("/packs", s.handlePacks)
		r.Post("/packs/{pack}/open", s.handleOpenPack)
		r.Post("/packs/sessions/{id}/reveal", s.handleReveal)
		r.Delete("/packs/sessions/{id}", s.handleAbandon)

		r.Get("/dex/{pack}", s.handleDex)

		r.Post("/quiz/{category}/start", s.handleQuizStart)
		r.Get("/quiz/question", s.handleQuizQuestion)
		r.Post("/quiz/answer", s.handleQuizAnswer)
		r.Delete("/quiz", s.handleQuizStop)

		r.Get("/market", s.handleListings)
		r.Post("/market", s.handleCreateListing)
		r.Post("/market/{id}/buy", s.handleBuyListing)
		r.Delete("/market/{id}", s.handleCancelListing)

		r.Get("/leaderboard", s.handleLeaderboard)
	})

	if s.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.StaticDir)))
	}
	return r
}
