package services

import (
	"context"
	"strings"

	"github.com/vytor/packdex/internal/catalog"
	"github.com/vytor/packdex/internal/errors"
	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/repository"
)

// DexFilter narrows a dex page. Search matches card names case-insensitively.
type DexFilter struct {
	Search    string
	OwnedOnly bool
}

// DexPage is one pack's card list annotated with the viewer's counts.
type DexPage struct {
	Pack    string            `json:"pack"`
	Title   string            `json:"title"`
	Entries []models.DexEntry `json:"entries"`
	Owned   int               `json:"owned"`
	Total   int               `json:"total"`
}

// DexService joins the card catalog with a player's inventory
type DexService interface {
	Page(ctx context.Context, profileID int64, packKey string, filter DexFilter) (*DexPage, error)
}

type dexService struct {
	catalog   *catalog.Catalog
	inventory repository.InventoryRepository
}

// NewDexService creates a new DexService
func NewDexService(cat *catalog.Catalog, inventory repository.InventoryRepository) DexService {
	return &dexService{catalog: cat, inventory: inventory}
}

func (s *dexService) Page(ctx context.Context, profileID int64, packKey string, filter DexFilter) (*DexPage, error) {
	log := logger.FromContext(ctx)

	info, ok := catalog.Pack(packKey)
	if !ok {
		return nil, errors.NewValidationError("pack", "unknown pack")
	}

	cards, err := s.catalog.Cards(ctx, info.Key)
	if err != nil {
		log.Error("failed to load card pool for %s: %v", info.Key, err)
		return nil, errors.NewUpstreamError("card pool unavailable", err)
	}
	counts, err := s.inventory.Counts(ctx, profileID, info.Key)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	page := &DexPage{Pack: info.Key, Title: info.Name, Total: len(cards)}
	for _, card := range cards {
		owned := counts[card.Key()]
		if owned > 0 {
			page.Owned++
		}
		if search != "" && !strings.Contains(strings.ToLower(card.Name), search) {
			continue
		}
		if filter.OwnedOnly && owned == 0 {
			continue
		}
		page.Entries = append(page.Entries, models.DexEntry{Card: card, Owned: owned})
	}
	return page, nil
}
