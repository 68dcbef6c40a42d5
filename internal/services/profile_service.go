package services

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vytor/packdex/internal/errors"
	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/repository"
)

// ProfileOverview is a profile joined with its derived collection stats.
type ProfileOverview struct {
	Profile       *models.Profile `json:"profile"`
	UniquePerPack map[string]int  `json:"unique_per_pack"`
	UniqueCards   int             `json:"unique_cards"`
}

// ProfileService handles player profile business logic
type ProfileService interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	Create(ctx context.Context) (*models.Profile, error)
	Overview(ctx context.Context, id int64) (*ProfileOverview, error)
	Rename(ctx context.Context, id int64, name string) (*models.Profile, error)
	Login(ctx context.Context, id int64, credential, chosenName string) (*models.Profile, error)
	Logout(ctx context.Context, id int64) (*models.Profile, error)
	Publish(ctx context.Context, p *models.Profile)
}

type profileService struct {
	profiles  repository.ProfileRepository
	inventory repository.InventoryRepository
	publisher *Publisher

	startingCoins  int64
	identitySecret string
}

// NewProfileService creates a new ProfileService. identitySecret is the
// shared key identity credentials are signed with; when empty, identity
// login is disabled.
func NewProfileService(profiles repository.ProfileRepository, inventory repository.InventoryRepository, publisher *Publisher, startingCoins int64, identitySecret string) ProfileService {
	return &profileService{
		profiles:       profiles,
		inventory:      inventory,
		publisher:      publisher,
		startingCoins:  startingCoins,
		identitySecret: identitySecret,
	}
}

func (s *profileService) Get(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	profile, err := s.profiles.Get(ctx, id)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", id)
	}
	return profile, nil
}

func (s *profileService) Create(ctx context.Context) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating profile with defaults")

	profile, err := s.profiles.Create(ctx, "Player", s.startingCoins)
	if err != nil {
		log.Error("failed to create profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return profile, nil
}

func (s *profileService) Overview(ctx context.Context, id int64) (*ProfileOverview, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	perPack, err := s.inventory.UniquePerPack(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	var total int
	for _, n := range perPack {
		total += n
	}

	return &ProfileOverview{Profile: profile, UniquePerPack: perPack, UniqueCards: total}, nil
}

func (s *profileService) Rename(ctx context.Context, id int64, name string) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}

	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.Name = name
	if err := s.profiles.Update(ctx, profile); err != nil {
		log.Error("failed to rename profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.Publish(ctx, profile)
	return profile, nil
}

// identityClaims are the profile claims carried by an identity credential.
// The subject becomes the cross-device identity that listing ownership and
// leaderboard rows key on, so the signature must check out before any of
// these claims are trusted.
type identityClaims struct {
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

func (s *profileService) Login(ctx context.Context, id int64, credential, chosenName string) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(credential) == "" {
		return nil, errors.NewBadRequestError("credential required")
	}
	if s.identitySecret == "" {
		return nil, errors.NewBadRequestError("identity login is not configured")
	}

	var claims identityClaims
	_, err := jwt.ParseWithClaims(credential, &claims, func(*jwt.Token) (any, error) {
		return []byte(s.identitySecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		log.Warn("rejected identity credential: %v", err)
		return nil, errors.NewBadRequestError("invalid credential")
	}
	if claims.Subject == "" {
		return nil, errors.NewBadRequestError("credential has no subject")
	}

	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.UID = claims.Subject
	if name := strings.TrimSpace(chosenName); name != "" {
		profile.Name = name
	} else if claims.Name != "" {
		profile.Name = claims.Name
	}
	if claims.Picture != "" {
		profile.Avatar = claims.Picture
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		log.Error("failed to attach identity: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("profile %d signed in as %s", profile.ID, profile.UID)
	s.Publish(ctx, profile)
	return profile, nil
}

func (s *profileService) Logout(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.UID = ""
	// Keep externally hosted avatars, drop provider blobs.
	if !strings.HasPrefix(profile.Avatar, "http") {
		profile.Avatar = ""
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		log.Error("failed to detach identity: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.Publish(ctx, profile)
	return profile, nil
}

// Publish pushes the profile's snapshot through the sync publisher.
// Failures are logged and swallowed: local state already committed.
func (s *profileService) Publish(ctx context.Context, p *models.Profile) {
	publishProfile(ctx, s.publisher, s.inventory, p)
}
