package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/repository"
)

type listingRepository struct {
	db *sql.DB
}

// NewListingRepository creates a new ListingRepository implementation
func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Insert(ctx context.Context, l models.Listing) error {
	log := logger.FromContext(ctx).WithPrefix("listing_repo")
	log.Debug("inserting listing: id=%s pack=%s card=%s price=%d", l.ID, l.Pack, l.CardID, l.Price)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO listings (id, pack, card_id, price, seller_name, seller_id, reserved, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, l.ID, l.Pack, l.CardID, l.Price, l.SellerName, l.SellerID, l.Reserved, l.CreatedAt)
	if err != nil {
		log.Error("failed to insert listing: %v", err)
	}
	return err
}

func (r *listingRepository) Get(ctx context.Context, id string) (*models.Listing, error) {
	log := logger.FromContext(ctx).WithPrefix("listing_repo")
	log.Debug("getting listing: id=%s", id)

	var l models.Listing
	err := r.db.QueryRowContext(ctx, `
SELECT id, pack, card_id, price, seller_name, seller_id, reserved, created_at
FROM listings
WHERE id = ?
`, id).Scan(&l.ID, &l.Pack, &l.CardID, &l.Price, &l.SellerName, &l.SellerID, &l.Reserved, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("listing not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get listing: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *listingRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("listing_repo")
	log.Debug("deleting listing: id=%s", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete listing: %v", err)
	}
	return err
}

func (r *listingRepository) List(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	log := logger.FromContext(ctx).WithPrefix("listing_repo")
	log.Debug("listing market with filter: pack=%s seller=%s", filter.Pack, filter.SellerID)

	query := sqlBuilder.Select(
		"id", "pack", "card_id", "price", "seller_name", "seller_id", "reserved", "created_at",
	).From("listings")

	// Dynamic WHERE clauses
	if filter.Pack != "" {
		query = query.Where(squirrel.Eq{"pack": filter.Pack})
	}
	if filter.SellerID != "" {
		query = query.Where(squirrel.Eq{"seller_id": filter.SellerID})
	}

	// Newest first, the order the market renders in
	query = query.OrderBy("created_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list listings: %v", err)
		return nil, err
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.Pack, &l.CardID, &l.Price, &l.SellerName, &l.SellerID, &l.Reserved, &l.CreatedAt); err != nil {
			log.Error("failed to scan listing row: %v", err)
			return nil, err
		}
		listings = append(listings, l)
	}

	log.Debug("found %d listings", len(listings))
	return listings, rows.Err()
}
