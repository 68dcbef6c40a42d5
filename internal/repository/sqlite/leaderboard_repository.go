package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/repository"
)

type leaderboardRepository struct {
	db *sql.DB
}

// NewLeaderboardRepository creates the local leaderboard cache repository
func NewLeaderboardRepository(db *sql.DB) repository.LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) Upsert(ctx context.Context, entry models.LeaderboardEntry) error {
	log := logger.FromContext(ctx).WithPrefix("leaderboard_repo")
	log.Debug("upserting leaderboard entry: identity=%s unique_cards=%d", entry.Identity, entry.UniqueCards)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO leaderboard_cache (identity, name, unique_cards, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(identity) DO UPDATE SET
    name = excluded.name,
    unique_cards = excluded.unique_cards,
    updated_at = CURRENT_TIMESTAMP
`, entry.Identity, entry.Name, entry.UniqueCards)
	if err != nil {
		log.Error("failed to upsert leaderboard entry: %v", err)
	}
	return err
}

func (r *leaderboardRepository) Top(ctx context.Context, n int) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("leaderboard_repo")
	log.Debug("reading top %d leaderboard entries", n)

	rows, err := r.db.QueryContext(ctx, `
SELECT identity, name, unique_cards
FROM leaderboard_cache
ORDER BY unique_cards DESC, name ASC
LIMIT ?
`, n)
	if err != nil {
		log.Error("failed to read leaderboard: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.Identity, &e.Name, &e.UniqueCards); err != nil {
			log.Error("failed to scan leaderboard row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
