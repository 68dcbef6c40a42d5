// Package remote mirrors player snapshots and marketplace listings to a
// Redis instance so the leaderboard and market work across devices. Every
// call here is best-effort from the caller's point of view: the server runs
// local-only when no remote store is attached.
package remote

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/models"
)

const (
	leaderboardKey = "leaderboard"
	marketIndexKey = "market:index"
)

// Store is the Redis-backed remote document store.
type Store struct {
	client *redis.Client
	log    *logger.Logger
}

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewStore connects to Redis and verifies the connection.
func NewStore(cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &Store{
		client: client,
		log:    logger.Default().WithPrefix("remote"),
	}, nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func playerKey(identity string) string {
	return "players:" + identity
}

func listingKey(id string) string {
	return "market:" + id
}

// SaveProfile merges a player snapshot into the player hash and scores the
// leaderboard sorted set by unique-card count.
func (s *Store) SaveProfile(ctx context.Context, snap models.ProfileSnapshot) error {
	pipe := s.client.Pipeline()
	pipe.HSet(ctx, playerKey(snap.Identity),
		"name", snap.Name,
		"unique_cards", snap.UniqueCards,
		"coins", snap.Coins,
		"packs_opened", snap.PacksOpened,
		"total_cards", snap.TotalCards,
		"quiz_score", snap.QuizScore,
		"avatar", snap.Avatar,
		"updated", time.Now().Unix(),
	)
	pipe.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(snap.UniqueCards),
		Member: snap.Identity,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("saving profile snapshot: %w", err)
	}
	return nil
}

// TopPlayers returns the top n leaderboard entries, best first.
func (s *Store) TopPlayers(ctx context.Context, n int) ([]models.LeaderboardEntry, error) {
	results, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(results))
	pipe := s.client.Pipeline()
	nameCmds := make([]*redis.StringCmd, len(results))
	for i, result := range results {
		nameCmds[i] = pipe.HGet(ctx, playerKey(result.Member.(string)), "name")
	}
	// HGet misses are fine: the entry falls back to its identity.
	_, _ = pipe.Exec(ctx)

	for i, result := range results {
		identity := result.Member.(string)
		name, err := nameCmds[i].Result()
		if err != nil || name == "" {
			name = identity
		}
		entries = append(entries, models.LeaderboardEntry{
			Identity:    identity,
			Name:        name,
			UniqueCards: int(result.Score),
		})
	}
	return entries, nil
}

// PutListing mirrors a listing hash and indexes it by creation time.
func (s *Store) PutListing(ctx context.Context, l models.Listing) error {
	pipe := s.client.Pipeline()
	pipe.HSet(ctx, listingKey(l.ID),
		"id", l.ID,
		"pack", l.Pack,
		"card_id", l.CardID,
		"price", l.Price,
		"seller_name", l.SellerName,
		"seller_id", l.SellerID,
		"reserved", strconv.FormatBool(l.Reserved),
		"created_at", l.CreatedAt.UnixMilli(),
	)
	pipe.ZAdd(ctx, marketIndexKey, redis.Z{
		Score:  float64(l.CreatedAt.UnixMilli()),
		Member: l.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("mirroring listing: %w", err)
	}
	return nil
}

// DeleteListing removes a mirrored listing and its index entry.
func (s *Store) DeleteListing(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, listingKey(id))
	pipe.ZRem(ctx, marketIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("deleting mirrored listing: %w", err)
	}
	return nil
}

// Listings returns all mirrored listings, newest first.
func (s *Store) Listings(ctx context.Context) ([]models.Listing, error) {
	ids, err := s.client.ZRevRange(ctx, marketIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading market index: %w", err)
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, listingKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("reading listings: %w", err)
	}

	listings := make([]models.Listing, 0, len(ids))
	for i := range ids {
		fields, err := cmds[i].Result()
		if err != nil || len(fields) == 0 {
			// Index entry without a hash: the listing was deleted mid-read.
			continue
		}
		listings = append(listings, listingFromFields(fields))
	}
	return listings, nil
}

func listingFromFields(fields map[string]string) models.Listing {
	price, _ := strconv.ParseInt(fields["price"], 10, 64)
	reserved, _ := strconv.ParseBool(fields["reserved"])
	createdMs, _ := strconv.ParseInt(fields["created_at"], 10, 64)
	return models.Listing{
		ID:         fields["id"],
		Pack:       fields["pack"],
		CardID:     fields["card_id"],
		Price:      price,
		SellerName: fields["seller_name"],
		SellerID:   fields["seller_id"],
		Reserved:   reserved,
		CreatedAt:  time.UnixMilli(createdMs),
	}
}
