package remote

import (
	"context"

	"github.com/vytor/packdex/internal/models"
)

// StoreInterface defines the remote document store operations.
// This interface enables testability by allowing mock implementations.
type StoreInterface interface {
	SaveProfile(ctx context.Context, snap models.ProfileSnapshot) error
	TopPlayers(ctx context.Context, n int) ([]models.LeaderboardEntry, error)
	PutListing(ctx context.Context, l models.Listing) error
	DeleteListing(ctx context.Context, id string) error
	Listings(ctx context.Context) ([]models.Listing, error)
}

// Ensure Store implements the interface
var _ StoreInterface = (*Store)(nil)
