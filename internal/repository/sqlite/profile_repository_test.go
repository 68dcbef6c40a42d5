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

type ProfileRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProfileRepository
}

func (s *ProfileRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProfileRepository(s.db)
}

func (s *ProfileRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProfileRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()

	created, err := s.repo.Create(ctx, "Player", 500)
	s.Require().NoError(err)
	s.Assert().Greater(created.ID, int64(0))
	s.Assert().Equal("Player", created.Name)
	s.Assert().Equal(int64(500), created.Coins)
	s.Assert().Empty(created.UID)

	got, err := s.repo.Get(ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(created.ID, got.ID)
	s.Assert().Equal(int64(500), got.Coins)
}

func (s *ProfileRepositorySuite) TestGetMissingReturnsNil() {
	got, err := s.repo.Get(context.Background(), 9999)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *ProfileRepositorySuite) TestUpdate() {
	ctx := context.Background()

	p, err := s.repo.Create(ctx, "Player", 500)
	s.Require().NoError(err)

	p.Name = "Ash"
	p.UID = "google-123"
	p.Coins = 350
	p.PacksOpened = 1
	p.QuizScore = 4
	p.TotalCards = 10
	p.Avatar = "https://example.com/a.png"
	s.Require().NoError(s.repo.Update(ctx, p))

	got, err := s.repo.Get(ctx, p.ID)
	s.Require().NoError(err)
	s.Assert().Equal("Ash", got.Name)
	s.Assert().Equal("google-123", got.UID)
	s.Assert().Equal(int64(350), got.Coins)
	s.Assert().Equal(1, got.PacksOpened)
	s.Assert().Equal(4, got.QuizScore)
	s.Assert().Equal(10, got.TotalCards)
}

func (s *ProfileRepositorySuite) TestUpdateMissingProfile() {
	ctx := context.Background()

	p, err := s.repo.Create(ctx, "Player", 0)
	s.Require().NoError(err)
	p.ID = 12345

	err = s.repo.Update(ctx, p)
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func (s *ProfileRepositorySuite) TestGetByUID() {
	ctx := context.Background()

	p, err := s.repo.Create(ctx, "Player", 0)
	s.Require().NoError(err)
	p.UID = "google-xyz"
	s.Require().NoError(s.repo.Update(ctx, p))

	got, err := s.repo.GetByUID(ctx, "google-xyz")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(p.ID, got.ID)

	// Empty uid never matches the anonymous rows.
	got, err = s.repo.GetByUID(ctx, "")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func TestProfileRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositorySuite))
}
