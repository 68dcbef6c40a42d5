package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/packdex/internal/repository"
	"github.com/vytor/packdex/internal/repository/sqlite"
	"github.com/vytor/packdex/internal/testutil"
)

type InventoryRepositorySuite struct {
	suite.Suite
	db        *sql.DB
	repo      repository.InventoryRepository
	profileID int64
}

func (s *InventoryRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewInventoryRepository(s.db)

	profiles := sqlite.NewProfileRepository(s.db)
	p, err := profiles.Create(context.Background(), "Player", 500)
	s.Require().NoError(err)
	s.profileID = p.ID
}

func (s *InventoryRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *InventoryRepositorySuite) TestAddAndCount() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Add(ctx, s.profileID, "prismatic", "Pikachu", 1))
	s.Require().NoError(s.repo.Add(ctx, s.profileID, "prismatic", "Pikachu", 2))

	count, err := s.repo.Count(ctx, s.profileID, "prismatic", "Pikachu")
	s.Require().NoError(err)
	s.Assert().Equal(3, count)

	count, err = s.repo.Count(ctx, s.profileID, "prismatic", "Mew")
	s.Require().NoError(err)
	s.Assert().Zero(count)
}

func (s *InventoryRepositorySuite) TestRemove() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Add(ctx, s.profileID, "prismatic", "Pikachu", 2))
	s.Require().NoError(s.repo.Remove(ctx, s.profileID, "prismatic", "Pikachu"))

	count, err := s.repo.Count(ctx, s.profileID, "prismatic", "Pikachu")
	s.Require().NoError(err)
	s.Assert().Equal(1, count)
}

func (s *InventoryRepositorySuite) TestRemoveWithoutCopies() {
	ctx := context.Background()

	err := s.repo.Remove(ctx, s.profileID, "prismatic", "Pikachu")
	s.Assert().ErrorIs(err, repository.ErrNoCopies)

	s.Require().NoError(s.repo.Add(ctx, s.profileID, "prismatic", "Pikachu", 1))
	s.Require().NoError(s.repo.Remove(ctx, s.profileID, "prismatic", "Pikachu"))

	err = s.repo.Remove(ctx, s.profileID, "prismatic", "Pikachu")
	s.Assert().ErrorIs(err, repository.ErrNoCopies)
}

func (s *InventoryRepositorySuite) TestCountsExcludeZeroRows() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Add(ctx, s.profileID, "prismatic", "Pikachu", 1))
	s.Require().NoError(s.repo.Add(ctx, s.profileID, "prismatic", "Mew", 1))
	s.Require().NoError(s.repo.Remove(ctx, s.profileID, "prismatic", "Mew"))

	counts, err := s.repo.Counts(ctx, s.profileID, "prismatic")
	s.Require().NoError(err)
	s.Assert().Equal(map[string]int{"Pikachu": 1}, counts)
}

func (s *InventoryRepositorySuite) TestUniquePerPackAndTotal() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Add(ctx, s.profileID, "prismatic", "Pikachu", 5))
	s.Require().NoError(s.repo.Add(ctx, s.profileID, "prismatic", "Mew", 1))
	s.Require().NoError(s.repo.Add(ctx, s.profileID, "twilight", "Ogerpon", 1))

	perPack, err := s.repo.UniquePerPack(ctx, s.profileID)
	s.Require().NoError(err)
	s.Assert().Equal(map[string]int{"prismatic": 2, "twilight": 1}, perPack)

	total, err := s.repo.TotalUnique(ctx, s.profileID)
	s.Require().NoError(err)
	s.Assert().Equal(3, total)
}

func (s *InventoryRepositorySuite) TestCountsAreScopedToProfile() {
	ctx := context.Background()

	profiles := sqlite.NewProfileRepository(s.db)
	other, err := profiles.Create(ctx, "Other", 0)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Add(ctx, s.profileID, "prismatic", "Pikachu", 1))

	count, err := s.repo.Count(ctx, other.ID, "prismatic", "Pikachu")
	s.Require().NoError(err)
	s.Assert().Zero(count)
}

func TestInventoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(InventoryRepositorySuite))
}
