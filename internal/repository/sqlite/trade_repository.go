package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/repository"
)

type tradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new TradeRepository implementation
func NewTradeRepository(db *sql.DB) repository.TradeRepository {
	return &tradeRepository{db: db}
}

func (r *tradeRepository) Purchase(ctx context.Context, listing models.Listing, buyer *models.Profile, seller *models.Profile) error {
	log := logger.FromContext(ctx).WithPrefix("trade_repo")
	log.Debug("executing purchase: listing=%s buyer=%d", listing.ID, buyer.ID)

	return tx(ctx, r.db, func(t *sql.Tx) error {
		// Deleting the listing first guards against a concurrent buy or
		// cancel: zero rows affected rolls the whole trade back.
		res, err := t.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, listing.ID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return repository.ErrListingGone
		}
		if err := saveProfileTx(ctx, t, buyer); err != nil {
			return err
		}
		if seller != nil {
			if err := saveProfileTx(ctx, t, seller); err != nil {
				return err
			}
		}
		return addCopyTx(ctx, t, buyer.ID, listing.Pack, listing.CardID)
	})
}

func (r *tradeRepository) Release(ctx context.Context, listing models.Listing, ownerID int64) error {
	log := logger.FromContext(ctx).WithPrefix("trade_repo")
	log.Debug("releasing listing: id=%s owner=%d reserved=%t", listing.ID, ownerID, listing.Reserved)

	return tx(ctx, r.db, func(t *sql.Tx) error {
		res, err := t.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, listing.ID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return repository.ErrListingGone
		}
		if !listing.Reserved {
			return nil
		}
		return addCopyTx(ctx, t, ownerID, listing.Pack, listing.CardID)
	})
}

func saveProfileTx(ctx context.Context, t *sql.Tx, p *models.Profile) error {
	_, err := t.ExecContext(ctx, `
UPDATE profiles
SET uid = ?, name = ?, coins = ?, packs_opened = ?, quiz_score = ?, total_cards = ?, avatar = ?
WHERE id = ?
`, p.UID, p.Name, p.Coins, p.PacksOpened, p.QuizScore, p.TotalCards, p.Avatar, p.ID)
	return err
}

func addCopyTx(ctx context.Context, t *sql.Tx, profileID int64, pack, cardID string) error {
	_, err := t.ExecContext(ctx, `
INSERT INTO inventory (profile_id, pack, card_id, count)
VALUES (?, ?, ?, 1)
ON CONFLICT(profile_id, pack, card_id) DO UPDATE SET count = count + 1
`, profileID, pack, cardID)
	return err
}
