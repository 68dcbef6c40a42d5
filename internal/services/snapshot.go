package services

import (
	"context"

	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/repository"
)

// publishProfile assembles a profile's sync snapshot and pushes it through
// the publisher. A failed unique count skips the push entirely: a stale
// remote row beats one zeroed out by a read error.
func publishProfile(ctx context.Context, pub *Publisher, inventory repository.InventoryRepository, p *models.Profile) {
	unique, err := inventory.TotalUnique(ctx, p.ID)
	if err != nil {
		logger.FromContext(ctx).Warn("skipping sync push for profile %d: %v", p.ID, err)
		return
	}
	pub.ProfileUpdated(ctx, models.ProfileSnapshot{
		Identity:    p.Identity(),
		Name:        p.Name,
		UniqueCards: unique,
		Coins:       p.Coins,
		PacksOpened: p.PacksOpened,
		TotalCards:  p.TotalCards,
		QuizScore:   p.QuizScore,
		Avatar:      p.Avatar,
	})
}
