package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/repository"
)

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new InventoryRepository implementation
func NewInventoryRepository(db *sql.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}


func (r *inventoryRepository) Count(ctx context.Context, profileID int64, pack, cardID string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("inventory_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT count FROM inventory
WHERE profile_id = ? AND pack = ? AND card_id = ?
`, profileID, pack, cardID).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		log.Error("failed to read count: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *inventoryRepository) Add(ctx context.Context, profileID int64, pack, cardID string, delta int) error {
	log := logger.FromContext(ctx).WithPrefix("inventory_repo")
	log.Debug("adjusting inventory: profile_id=%d pack=%s card=%s delta=%d", profileID, pack, cardID, delta)

	if delta >= 0 {
		_, err := r.db.ExecContext(ctx, `
INSERT INTO inventory (profile_id, pack, card_id, count)
VALUES (?, ?, ?, ?)
ON CONFLICT(profile_id, pack, card_id) DO UPDATE SET count = count + excluded.count
`, profileID, pack, cardID, delta)
		if err != nil {
			log.Error("failed to add to inventory: %v", err)
		}
		return err
	}

	// Negative deltas must not push the count below zero.
	return tx(ctx, r.db, func(tx *sql.Tx) error {
		var count int
		err := tx.QueryRowContext(ctx, `
SELECT count FROM inventory
WHERE profile_id = ? AND pack = ? AND card_id = ?
`, profileID, pack, cardID).Scan(&count)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && count+delta < 0) {
			return fmt.Errorf("%w: profile=%d pack=%s card=%s", repository.ErrNoCopies, profileID, pack, cardID)
		}
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
UPDATE inventory SET count = count + ?
WHERE profile_id = ? AND pack = ? AND card_id = ?
`, delta, profileID, pack, cardID)
		return err
	})
}

func (r *inventoryRepository) Remove(ctx context.Context, profileID int64, pack, cardID string) error {
	return r.Add(ctx, profileID, pack, cardID, -1)
}

func (r *inventoryRepository) Counts(ctx context.Context, profileID int64, pack string) (map[string]int, error) {
	log := logger.FromContext(ctx).WithPrefix("inventory_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT card_id, count FROM inventory
WHERE profile_id = ? AND pack = ? AND count > 0
`, profileID, pack)
	if err != nil {
		log.Error("failed to list counts: %v", err)
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var cardID string
		var count int
		if err := rows.Scan(&cardID, &count); err != nil {
			log.Error("failed to scan inventory row: %v", err)
			return nil, err
		}
		counts[cardID] = count
	}
	return counts, rows.Err()
}

func (r *inventoryRepository) UniquePerPack(ctx context.Context, profileID int64) (map[string]int, error) {
	log := logger.FromContext(ctx).WithPrefix("inventory_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT pack, COUNT(*) FROM inventory
WHERE profile_id = ? AND count > 0
GROUP BY pack
`, profileID)
	if err != nil {
		log.Error("failed to count uniques per pack: %v", err)
		return nil, err
	}
	defer rows.Close()

	uniques := map[string]int{}
	for rows.Next() {
		var pack string
		var n int
		if err := rows.Scan(&pack, &n); err != nil {
			log.Error("failed to scan unique count row: %v", err)
			return nil, err
		}
		uniques[pack] = n
	}
	return uniques, rows.Err()
}

func (r *inventoryRepository) TotalUnique(ctx context.Context, profileID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("inventory_repo")

	var n int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM inventory
WHERE profile_id = ? AND count > 0
`, profileID).Scan(&n)
	if err != nil {
		log.Error("failed to count unique cards: %v", err)
		return 0, err
	}
	return n, nil
}
