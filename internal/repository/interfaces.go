package repository

import (
	"context"
	"errors"

	"github.com/vytor/packdex/internal/models"
)

// ErrNoCopies is returned when a decrement would take an owned count below zero.
var ErrNoCopies = errors.New("no owned copies")

// ErrListingGone is returned when a trade races a delete of its listing.
var ErrListingGone = errors.New("listing no longer exists")

// ProfileRepository handles player profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	GetByUID(ctx context.Context, uid string) (*models.Profile, error)
	Create(ctx context.Context, name string, coins int64) (*models.Profile, error)
	Update(ctx context.Context, p *models.Profile) error
}

// InventoryRepository handles per-pack owned-card counts. Unique-card sets
// are derived from rows with count > 0, never stored separately.
type InventoryRepository interface {
	Count(ctx context.Context, profileID int64, pack, cardID string) (int, error)
	Add(ctx context.Context, profileID int64, pack, cardID string, delta int) error
	Remove(ctx context.Context, profileID int64, pack, cardID string) error
	Counts(ctx context.Context, profileID int64, pack string) (map[string]int, error)
	UniquePerPack(ctx context.Context, profileID int64) (map[string]int, error)
	TotalUnique(ctx context.Context, profileID int64) (int, error)
}

// ListingRepository handles marketplace listing data access
type ListingRepository interface {
	Insert(ctx context.Context, l models.Listing) error
	Get(ctx context.Context, id string) (*models.Listing, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error)
}

// TradeRepository executes multi-table marketplace mutations in a single
// transaction, so a half-applied trade can never be observed.
type TradeRepository interface {
	// Purchase persists the buyer's profile, adds the sold card to the
	// buyer's inventory, deletes the listing, and persists the seller's
	// profile when one is given. Returns ErrListingGone when the listing
	// was deleted concurrently; nothing is applied in that case.
	Purchase(ctx context.Context, listing models.Listing, buyer *models.Profile, seller *models.Profile) error
	// Release deletes a listing and, when it holds a reserved unit,
	// returns that unit to the owner's inventory.
	Release(ctx context.Context, listing models.Listing, ownerID int64) error
}

// LeaderboardRepository is the local leaderboard cache, used when no remote
// store is attached.
type LeaderboardRepository interface {
	Upsert(ctx context.Context, entry models.LeaderboardEntry) error
	Top(ctx context.Context, n int) ([]models.LeaderboardEntry, error)
}
