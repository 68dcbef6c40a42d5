package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/packdex/internal/catalog"
	"github.com/vytor/packdex/internal/errors"
	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/remote"
	"github.com/vytor/packdex/internal/repository"
)

// CreateListingInput carries a new marketplace offer.
type CreateListingInput struct {
	Pack          string `json:"pack"`
	CardID        string `json:"card_id"`
	Price         int64  `json:"price"`
	FromInventory bool   `json:"from_inventory"`
}

// PurchaseResult reports the outcome of buying a listing. Buying your own
// listing cancels it instead.
type PurchaseResult struct {
	Listing   models.Listing `json:"listing"`
	Coins     int64          `json:"coins"`
	Cancelled bool           `json:"cancelled"`
}

// MarketService handles marketplace business logic
type MarketService interface {
	Create(ctx context.Context, profileID int64, in CreateListingInput) (*models.Listing, error)
	Listings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error)
	Cancel(ctx context.Context, profileID int64, listingID string) error
	Buy(ctx context.Context, profileID int64, listingID string) (*PurchaseResult, error)
}

type marketService struct {
	profiles  repository.ProfileRepository
	inventory repository.InventoryRepository
	listings  repository.ListingRepository
	trades    repository.TradeRepository
	remote    remote.StoreInterface
	publisher *Publisher

	sellerCredit bool
}

// NewMarketService creates a new MarketService
func NewMarketService(profiles repository.ProfileRepository, inventory repository.InventoryRepository, listings repository.ListingRepository, trades repository.TradeRepository, remoteStore remote.StoreInterface, publisher *Publisher, sellerCredit bool) MarketService {
	return &marketService{
		profiles:     profiles,
		inventory:    inventory,
		listings:     listings,
		trades:       trades,
		remote:       remoteStore,
		publisher:    publisher,
		sellerCredit: sellerCredit,
	}
}

func (s *marketService) Create(ctx context.Context, profileID int64, in CreateListingInput) (*models.Listing, error) {
	log := logger.FromContext(ctx)

	info, ok := catalog.Pack(in.Pack)
	if !ok {
		return nil, errors.NewValidationError("pack", "unknown pack")
	}
	cardID := strings.TrimSpace(in.CardID)
	if cardID == "" {
		return nil, errors.NewValidationError("card_id", "cannot be empty")
	}
	if in.Price <= 0 {
		return nil, errors.NewValidationError("price", "must be positive")
	}

	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", profileID)
	}

	// Listing a card is not an acquisition or a loss: the owned count
	// drops while the unit sits in escrow, the lifetime total does not.
	if in.FromInventory {
		if err := s.inventory.Remove(ctx, profileID, info.Key, cardID); err != nil {
			if stderrors.Is(err, repository.ErrNoCopies) {
				return nil, errors.NewValidationError("card_id", "no copies owned")
			}
			return nil, errors.NewInternalError(err)
		}
	}

	listing := models.Listing{
		ID:         newListingID(),
		Pack:       info.Key,
		CardID:     cardID,
		Price:      in.Price,
		SellerName: profile.Name,
		SellerID:   profile.Identity(),
		Reserved:   in.FromInventory,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.listings.Insert(ctx, listing); err != nil {
		return nil, errors.NewInternalError(err)
	}

	log.Info("profile %d listed %s/%s for %d coins (reserved=%t)", profileID, listing.Pack, listing.CardID, listing.Price, listing.Reserved)
	s.publisher.ListingCreated(ctx, listing)
	if in.FromInventory {
		publishProfile(ctx, s.publisher, s.inventory, profile)
	}
	return &listing, nil
}

func (s *marketService) Listings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	log := logger.FromContext(ctx)

	if s.remote != nil {
		all, err := s.remote.Listings(ctx)
		if err == nil {
			return applyFilter(all, filter), nil
		}
		log.Warn("remote listings unavailable, serving local: %v", err)
	}

	listings, err := s.listings.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return listings, nil
}

func (s *marketService) Cancel(ctx context.Context, profileID int64, listingID string) error {
	log := logger.FromContext(ctx)

	listing, profile, err := s.lookup(ctx, profileID, listingID)
	if err != nil {
		return err
	}
	if listing.SellerID != profile.Identity() {
		return errors.NewValidationError("listing", "only the seller can cancel")
	}

	if err := s.removeListing(ctx, profile, listing); err != nil {
		return err
	}
	log.Info("profile %d cancelled listing %s", profileID, listingID)
	return nil
}

func (s *marketService) Buy(ctx context.Context, profileID int64, listingID string) (*PurchaseResult, error) {
	log := logger.FromContext(ctx)

	listing, profile, err := s.lookup(ctx, profileID, listingID)
	if err != nil {
		return nil, err
	}

	// Buying your own listing takes it off the market.
	if listing.SellerID == profile.Identity() {
		if err := s.removeListing(ctx, profile, listing); err != nil {
			return nil, err
		}
		return &PurchaseResult{Listing: *listing, Coins: profile.Coins, Cancelled: true}, nil
	}

	if profile.Coins < listing.Price {
		return nil, errors.NewInsufficientFundsError(listing.Price, profile.Coins)
	}

	var seller *models.Profile
	if s.sellerCredit {
		seller = s.resolveSeller(ctx, listing)
		if seller != nil {
			seller.Coins += listing.Price
		}
	}

	profile.Coins -= listing.Price
	profile.TotalCards++
	if err := s.trades.Purchase(ctx, *listing, profile, seller); err != nil {
		if stderrors.Is(err, repository.ErrListingGone) {
			return nil, errors.NewNotFoundError("listing", listing.ID)
		}
		return nil, errors.NewInternalError(err)
	}

	log.Info("profile %d bought listing %s for %d coins", profileID, listing.ID, listing.Price)
	s.publisher.ListingRemoved(ctx, listing.ID)
	publishProfile(ctx, s.publisher, s.inventory, profile)
	if seller != nil {
		publishProfile(ctx, s.publisher, s.inventory, seller)
	}

	return &PurchaseResult{Listing: *listing, Coins: profile.Coins}, nil
}

func (s *marketService) lookup(ctx context.Context, profileID int64, listingID string) (*models.Listing, *models.Profile, error) {
	listing, err := s.listings.Get(ctx, listingID)
	if err != nil {
		return nil, nil, errors.NewInternalError(err)
	}
	if listing == nil {
		return nil, nil, errors.NewNotFoundError("listing", listingID)
	}
	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, nil, errors.NewNotFoundError("profile", profileID)
	}
	return listing, profile, nil
}

// removeListing deletes a seller's own listing and restores the reserved
// unit when there was one.
func (s *marketService) removeListing(ctx context.Context, profile *models.Profile, listing *models.Listing) error {
	if err := s.trades.Release(ctx, *listing, profile.ID); err != nil {
		if stderrors.Is(err, repository.ErrListingGone) {
			return errors.NewNotFoundError("listing", listing.ID)
		}
		return errors.NewInternalError(err)
	}
	s.publisher.ListingRemoved(ctx, listing.ID)
	if listing.Reserved {
		publishProfile(ctx, s.publisher, s.inventory, profile)
	}
	return nil
}

// resolveSeller finds the seller's local profile, nil when there is none.
func (s *marketService) resolveSeller(ctx context.Context, listing *models.Listing) *models.Profile {
	log := logger.FromContext(ctx)

	var seller *models.Profile
	var err error
	if id, ok := strings.CutPrefix(listing.SellerID, "local-"); ok {
		var n int64
		if n, err = strconv.ParseInt(id, 10, 64); err == nil {
			seller, err = s.profiles.Get(ctx, n)
		}
	} else {
		seller, err = s.profiles.GetByUID(ctx, listing.SellerID)
	}
	if err != nil {
		log.Warn("failed to resolve seller %s: %v", listing.SellerID, err)
		return nil
	}
	if seller == nil {
		log.Debug("seller %s has no local profile, skipping credit", listing.SellerID)
	}
	return seller
}

func applyFilter(listings []models.Listing, filter models.ListingFilter) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if filter.Pack != "" && l.Pack != filter.Pack {
			continue
		}
		if filter.SellerID != "" && l.SellerID != filter.SellerID {
			continue
		}
		out = append(out, l)
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}

// newListingID mirrors the id shape used by remote mirrors: a millisecond
// timestamp plus a short random suffix, so ids sort by creation time.
func newListingID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
