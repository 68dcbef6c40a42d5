package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: id=%d", id)

	var p models.Profile
	err := r.db.QueryRowContext(ctx, `
SELECT id, uid, name, coins, packs_opened, quiz_score, total_cards, avatar, created_at
FROM profiles
WHERE id = ?
`, id).Scan(&p.ID, &p.UID, &p.Name, &p.Coins, &p.PacksOpened, &p.QuizScore, &p.TotalCards, &p.Avatar, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetByUID(ctx context.Context, uid string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile by uid: %s", uid)

	if uid == "" {
		return nil, nil
	}
	var p models.Profile
	err := r.db.QueryRowContext(ctx, `
SELECT id, uid, name, coins, packs_opened, quiz_score, total_cards, avatar, created_at
FROM profiles
WHERE uid = ?
`, uid).Scan(&p.ID, &p.UID, &p.Name, &p.Coins, &p.PacksOpened, &p.QuizScore, &p.TotalCards, &p.Avatar, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: uid=%s", uid)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile by uid: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, name string, coins int64) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("creating profile: name=%s", name)

	var p models.Profile
	err := r.db.QueryRowContext(ctx, `
INSERT INTO profiles (name, coins)
VALUES (?, ?)
RETURNING id, uid, name, coins, packs_opened, quiz_score, total_cards, avatar, created_at
`, name, coins).Scan(&p.ID, &p.UID, &p.Name, &p.Coins, &p.PacksOpened, &p.QuizScore, &p.TotalCards, &p.Avatar, &p.CreatedAt)
	if err != nil {
		log.Error("failed to create profile: %v", err)
		return nil, err
	}
	log.Debug("profile created: id=%d", p.ID)
	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *models.Profile) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("updating profile: id=%d coins=%d", p.ID, p.Coins)

	res, err := r.db.ExecContext(ctx, `
UPDATE profiles
SET uid = ?, name = ?, coins = ?, packs_opened = ?, quiz_score = ?, total_cards = ?, avatar = ?
WHERE id = ?
`, p.UID, p.Name, p.Coins, p.PacksOpened, p.QuizScore, p.TotalCards, p.Avatar, p.ID)
	if err != nil {
		log.Error("failed to update profile: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Warn("update matched no profile: id=%d", p.ID)
		return sql.ErrNoRows
	}
	return nil
}
