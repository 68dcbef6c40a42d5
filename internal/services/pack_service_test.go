package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/packdex/internal/errors"
	"github.com/vytor/packdex/internal/services"
)

const testPool = `[
	{"name": "Pikachu", "dropRate": 50},
	{"name": "Eevee", "dropRate": 30},
	{"name": "Mew", "dropRate": 1},
	{"name": "Promo", "dropRate": 0}
]`

func newPackService(e *env) services.PackService {
	return services.NewPackService(e.profiles, e.inventory, e.catalog, e.publisher, 150, 5, testRng())
}

func TestOpenPackChargesAndDraws(t *testing.T) {
	e := newEnv(t, nil)
	e.stubPool(testPool)
	svc := newPackService(e)
	profile := e.newProfile(t, 500)

	opening, err := svc.Open(context.Background(), profile.ID, "prismatic")
	require.NoError(t, err)

	assert.NotEmpty(t, opening.SessionID)
	assert.Equal(t, "prismatic", opening.Pack)
	assert.Equal(t, 5, opening.Size)
	assert.Equal(t, int64(350), opening.Coins)

	got, err := e.profiles.Get(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(350), got.Coins)
	assert.Equal(t, 1, got.PacksOpened)
}

func TestOpenPackInsufficientFunds(t *testing.T) {
	e := newEnv(t, nil)
	e.stubPool(testPool)
	svc := newPackService(e)
	profile := e.newProfile(t, 100)

	_, err := svc.Open(context.Background(), profile.ID, "prismatic")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeInsufficientFunds, appErr.Code)

	got, err := e.profiles.Get(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Coins, "failed open must not charge")
}

func TestOpenPackBadPoolDoesNotCharge(t *testing.T) {
	e := newEnv(t, nil)
	e.source.On("Fetch", mock.Anything, "cards.json").Return([]byte(`[{"name": "Promo", "dropRate": 0}]`), nil)
	svc := newPackService(e)
	profile := e.newProfile(t, 500)

	_, err := svc.Open(context.Background(), profile.ID, "prismatic")
	require.Error(t, err)

	got, err := e.profiles.Get(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), got.Coins, "the pool is validated before the wallet is touched")
	assert.Zero(t, got.PacksOpened)
}

func TestOpenPackUnknownPack(t *testing.T) {
	e := newEnv(t, nil)
	svc := newPackService(e)
	profile := e.newProfile(t, 500)

	_, err := svc.Open(context.Background(), profile.ID, "void")
	require.Error(t, err)
	e.source.AssertNotCalled(t, "Fetch")
}

func TestRevealWalksThroughThePack(t *testing.T) {
	e := newEnv(t, nil)
	e.stubPool(testPool)
	svc := newPackService(e)
	profile := e.newProfile(t, 500)

	opening, err := svc.Open(context.Background(), profile.ID, "prismatic")
	require.NoError(t, err)

	for i := 1; i <= opening.Size; i++ {
		reveal, err := svc.Reveal(context.Background(), profile.ID, opening.SessionID)
		require.NoError(t, err)
		assert.Equal(t, i, reveal.Revealed)
		assert.Equal(t, opening.Size-i, reveal.Remaining)
		assert.NotEmpty(t, reveal.Card.Key())
	}

	// The session is gone once the last card flips.
	_, err = svc.Reveal(context.Background(), profile.ID, opening.SessionID)
	require.Error(t, err)

	got, err := e.profiles.Get(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, opening.Size, got.TotalCards)

	total, err := e.inventory.TotalUnique(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Positive(t, total)
}

func TestRevealWrongProfile(t *testing.T) {
	e := newEnv(t, nil)
	e.stubPool(testPool)
	svc := newPackService(e)
	owner := e.newProfile(t, 500)
	other := e.newProfile(t, 500)

	opening, err := svc.Open(context.Background(), owner.ID, "prismatic")
	require.NoError(t, err)

	_, err = svc.Reveal(context.Background(), other.ID, opening.SessionID)
	require.Error(t, err)
}

func TestAbandonDiscardsUnrevealedCards(t *testing.T) {
	e := newEnv(t, nil)
	e.stubPool(testPool)
	svc := newPackService(e)
	profile := e.newProfile(t, 500)

	opening, err := svc.Open(context.Background(), profile.ID, "prismatic")
	require.NoError(t, err)

	_, err = svc.Reveal(context.Background(), profile.ID, opening.SessionID)
	require.NoError(t, err)

	discarded, err := svc.Abandon(context.Background(), profile.ID, opening.SessionID)
	require.NoError(t, err)
	assert.Equal(t, opening.Size-1, discarded)

	_, err = svc.Reveal(context.Background(), profile.ID, opening.SessionID)
	require.Error(t, err)

	got, err := e.profiles.Get(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalCards, "abandoned cards never enter the inventory")
}

func TestStaleSessionsExpire(t *testing.T) {
	e := newEnv(t, nil)
	e.stubPool(testPool)
	svc := newPackService(e)
	profile := e.newProfile(t, 500)
	ctx := context.Background()

	abandoned, err := svc.Open(ctx, profile.ID, "prismatic")
	require.NoError(t, err)

	services.AgeRevealSessions(svc, 2*time.Hour)

	// Revealing an aged-out session fails, and opening a new pack sweeps
	// it from the map.
	_, err = svc.Reveal(ctx, profile.ID, abandoned.SessionID)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)

	fresh, err := svc.Open(ctx, profile.ID, "prismatic")
	require.NoError(t, err)

	_, err = svc.Reveal(ctx, profile.ID, fresh.SessionID)
	assert.NoError(t, err)
	_, err = svc.Abandon(ctx, profile.ID, abandoned.SessionID)
	assert.Error(t, err)
}
