package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/packdex/internal/catalog"
	"github.com/vytor/packdex/internal/errors"
	"github.com/vytor/packdex/internal/gacha"
	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/repository"
)

// PackOpening is an in-progress pack whose cards are revealed one at a time.
type PackOpening struct {
	SessionID string `json:"session_id"`
	Pack      string `json:"pack"`
	Size      int    `json:"size"`
	Revealed  int    `json:"revealed"`
	Coins     int64  `json:"coins"`
}

// Reveal is the result of flipping the next card of an opening.
type Reveal struct {
	Card      models.Card `json:"card"`
	Revealed  int         `json:"revealed"`
	Remaining int         `json:"remaining"`
	NewCopy   bool        `json:"new_copy"`
}

// PackService handles pack purchase and card reveal business logic
type PackService interface {
	Open(ctx context.Context, profileID int64, packKey string) (*PackOpening, error)
	Reveal(ctx context.Context, profileID int64, sessionID string) (*Reveal, error)
	Abandon(ctx context.Context, profileID int64, sessionID string) (int, error)
}

// revealSessionTTL bounds how long an unfinished opening is kept. Clients
// that close the tab mid-reveal would otherwise pin sessions forever.
const revealSessionTTL = time.Hour

type revealSession struct {
	profileID int64
	pack      string
	cards     []models.Card
	next      int
	created   time.Time
}

func (sess *revealSession) expired(now time.Time) bool {
	return now.Sub(sess.created) > revealSessionTTL
}

type packService struct {
	profiles  repository.ProfileRepository
	inventory repository.InventoryRepository
	catalog   *catalog.Catalog
	publisher *Publisher

	packCost int64
	packSize int

	mu       sync.Mutex
	rng      *rand.Rand
	sessions map[string]*revealSession
}

// NewPackService creates a new PackService
func NewPackService(profiles repository.ProfileRepository, inventory repository.InventoryRepository, cat *catalog.Catalog, publisher *Publisher, packCost int64, packSize int, rng *rand.Rand) PackService {
	return &packService{
		profiles:  profiles,
		inventory: inventory,
		catalog:   cat,
		publisher: publisher,
		packCost:  packCost,
		packSize:  packSize,
		rng:       rng,
		sessions:  make(map[string]*revealSession),
	}
}

func (s *packService) Open(ctx context.Context, profileID int64, packKey string) (*PackOpening, error) {
	log := logger.FromContext(ctx)

	info, ok := catalog.Pack(packKey)
	if !ok {
		return nil, errors.NewValidationError("pack", "unknown pack")
	}

	// Build the pool before touching the wallet so a bad catalog never
	// charges the player.
	cards, err := s.catalog.Cards(ctx, info.Key)
	if err != nil {
		log.Error("failed to load card pool for %s: %v", info.Key, err)
		return nil, errors.NewUpstreamError("card pool unavailable", err)
	}
	pool, err := gacha.BuildPool(cards)
	if err != nil {
		log.Error("pack %s has no drawable cards: %v", info.Key, err)
		return nil, errors.NewUpstreamError("card pool unavailable", err)
	}

	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", profileID)
	}
	if profile.Coins < s.packCost {
		return nil, errors.NewInsufficientFundsError(s.packCost, profile.Coins)
	}

	profile.Coins -= s.packCost
	profile.PacksOpened++
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, errors.NewInternalError(err)
	}

	now := time.Now()
	s.mu.Lock()
	s.sweepLocked(now)
	drawn := pool.DrawMany(s.rng, s.packSize)
	id := uuid.NewString()
	s.sessions[id] = &revealSession{profileID: profileID, pack: info.Key, cards: drawn, created: now}
	s.mu.Unlock()

	log.Info("profile %d opened pack %s (session %s)", profileID, info.Key, id)
	publishProfile(ctx, s.publisher, s.inventory, profile)

	return &PackOpening{
		SessionID: id,
		Pack:      info.Key,
		Size:      len(drawn),
		Coins:     profile.Coins,
	}, nil
}

func (s *packService) Reveal(ctx context.Context, profileID int64, sessionID string) (*Reveal, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok && sess.expired(time.Now()) {
		delete(s.sessions, sessionID)
		ok = false
	}
	if !ok || sess.profileID != profileID {
		s.mu.Unlock()
		return nil, errors.NewNotFoundError("pack session", sessionID)
	}
	if sess.next >= len(sess.cards) {
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, errors.NewConflictError("all cards already revealed")
	}
	card := sess.cards[sess.next]
	sess.next++
	revealed := sess.next
	remaining := len(sess.cards) - sess.next
	if remaining == 0 {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	had, err := s.inventory.Count(ctx, profileID, sess.pack, card.Key())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if err := s.inventory.Add(ctx, profileID, sess.pack, card.Key(), 1); err != nil {
		return nil, errors.NewInternalError(err)
	}

	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil || profile == nil {
		return nil, errors.NewInternalError(err)
	}
	profile.TotalCards++
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, errors.NewInternalError(err)
	}

	log.Debug("profile %d revealed %s (%d/%d)", profileID, card.Key(), revealed, revealed+remaining)
	publishProfile(ctx, s.publisher, s.inventory, profile)

	return &Reveal{Card: card, Revealed: revealed, Remaining: remaining, NewCopy: had == 0}, nil
}

func (s *packService) Abandon(ctx context.Context, profileID int64, sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if ok && sess.expired(time.Now()) {
		delete(s.sessions, sessionID)
		ok = false
	}
	if !ok || sess.profileID != profileID {
		return 0, errors.NewNotFoundError("pack session", sessionID)
	}
	discarded := len(sess.cards) - sess.next
	delete(s.sessions, sessionID)
	logger.FromContext(ctx).Info("profile %d abandoned session %s with %d unrevealed cards", profileID, sessionID, discarded)
	return discarded, nil
}

// sweepLocked drops openings older than the TTL. Caller holds s.mu.
func (s *packService) sweepLocked(now time.Time) {
	for id, sess := range s.sessions {
		if sess.expired(now) {
			delete(s.sessions, id)
		}
	}
}
