package services

import (
	"context"

	"github.com/vytor/packdex/internal/errors"
	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/remote"
	"github.com/vytor/packdex/internal/repository"
)

// LeaderboardService ranks players by unique cards collected
type LeaderboardService interface {
	Top(ctx context.Context, profileID int64) ([]models.LeaderboardEntry, error)
}

type leaderboardService struct {
	profiles  repository.ProfileRepository
	inventory repository.InventoryRepository
	boards    repository.LeaderboardRepository
	remote    remote.StoreInterface

	limit int
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(profiles repository.ProfileRepository, inventory repository.InventoryRepository, boards repository.LeaderboardRepository, remoteStore remote.StoreInterface, limit int) LeaderboardService {
	return &leaderboardService{
		profiles:  profiles,
		inventory: inventory,
		boards:    boards,
		remote:    remoteStore,
		limit:     limit,
	}
}

func (s *leaderboardService) Top(ctx context.Context, profileID int64) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx)

	// Fold the requester into the local cache first so a fresh board
	// always includes them.
	if err := s.refreshRequester(ctx, profileID); err != nil {
		log.Warn("failed to refresh leaderboard entry: %v", err)
	}

	if s.remote != nil {
		entries, err := s.remote.TopPlayers(ctx, s.limit)
		if err == nil {
			return entries, nil
		}
		log.Warn("remote leaderboard unavailable, serving local: %v", err)
	}

	entries, err := s.boards.Top(ctx, s.limit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}

func (s *leaderboardService) refreshRequester(ctx context.Context, profileID int64) error {
	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil || profile == nil {
		return err
	}
	unique, err := s.inventory.TotalUnique(ctx, profileID)
	if err != nil {
		return err
	}
	return s.boards.Upsert(ctx, models.LeaderboardEntry{
		Identity:    profile.Identity(),
		Name:        profile.Name,
		UniqueCards: unique,
	})
}
