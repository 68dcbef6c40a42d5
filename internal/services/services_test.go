package services_test

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/packdex/internal/catalog"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/remote"
	"github.com/vytor/packdex/internal/repository"
	"github.com/vytor/packdex/internal/repository/sqlite"
	"github.com/vytor/packdex/internal/services"
	"github.com/vytor/packdex/internal/testutil"
	"github.com/vytor/packdex/internal/testutil/mocks"
)

// env wires real sqlite repositories to the services under test. The
// publisher runs jobs inline (no pool), so sync side effects are visible
// immediately.
type env struct {
	db        *sql.DB
	profiles  repository.ProfileRepository
	inventory repository.InventoryRepository
	listings  repository.ListingRepository
	trades    repository.TradeRepository
	boards    repository.LeaderboardRepository
	source    *mocks.MockSource
	catalog   *catalog.Catalog
	publisher *services.Publisher
}

func newEnv(t *testing.T, remoteStore remote.StoreInterface) *env {
	db := testutil.NewTestDB(t)
	t.Cleanup(func() { db.Close() })

	source := new(mocks.MockSource)
	boards := sqlite.NewLeaderboardRepository(db)
	return &env{
		db:        db,
		profiles:  sqlite.NewProfileRepository(db),
		inventory: sqlite.NewInventoryRepository(db),
		listings:  sqlite.NewListingRepository(db),
		trades:    sqlite.NewTradeRepository(db),
		boards:    boards,
		source:    source,
		catalog:   catalog.New(source),
		publisher: services.NewPublisher(nil, remoteStore, boards),
	}
}

func (e *env) newProfile(t *testing.T, coins int64) *models.Profile {
	p, err := e.profiles.Create(context.Background(), "Player", coins)
	require.NoError(t, err)
	return p
}

func (e *env) stubPool(cards string) {
	e.source.On("Fetch", mock.Anything, "cards.json").Return([]byte(cards), nil)
}

func (e *env) stubQuestions(category, questions string) {
	e.source.On("Fetch", mock.Anything, category+".json").Return([]byte(questions), nil)
}

func testRng() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func lockoutDuration() time.Duration {
	return 3 * time.Second
}
