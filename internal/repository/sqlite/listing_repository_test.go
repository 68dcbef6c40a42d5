package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/repository"
	"github.com/vytor/packdex/internal/repository/sqlite"
	"github.com/vytor/packdex/internal/testutil"
)

type ListingRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ListingRepository
}

func (s *ListingRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewListingRepository(s.db)
}

func (s *ListingRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ListingRepositorySuite) newListing(id, pack, seller string, createdAt time.Time) models.Listing {
	return models.Listing{
		ID:         id,
		Pack:       pack,
		CardID:     "Pikachu",
		Price:      100,
		SellerName: "Seller",
		SellerID:   seller,
		CreatedAt:  createdAt,
	}
}

func (s *ListingRepositorySuite) TestInsertGetDelete() {
	ctx := context.Background()

	l := s.newListing("l1", "prismatic", "local-1", time.Now().UTC())
	l.Reserved = true
	s.Require().NoError(s.repo.Insert(ctx, l))

	got, err := s.repo.Get(ctx, "l1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("prismatic", got.Pack)
	s.Assert().Equal(int64(100), got.Price)
	s.Assert().True(got.Reserved)

	s.Require().NoError(s.repo.Delete(ctx, "l1"))
	got, err = s.repo.Get(ctx, "l1")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *ListingRepositorySuite) TestGetMissingReturnsNil() {
	got, err := s.repo.Get(context.Background(), "nope")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *ListingRepositorySuite) TestListFiltersAndOrder() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	s.Require().NoError(s.repo.Insert(ctx, s.newListing("old", "prismatic", "local-1", base)))
	s.Require().NoError(s.repo.Insert(ctx, s.newListing("new", "prismatic", "local-2", base.Add(10*time.Minute))))
	s.Require().NoError(s.repo.Insert(ctx, s.newListing("other-pack", "twilight", "local-1", base.Add(5*time.Minute))))

	all, err := s.repo.List(ctx, models.ListingFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Assert().Equal("new", all[0].ID, "newest first")

	prismatic, err := s.repo.List(ctx, models.ListingFilter{Pack: "prismatic"})
	s.Require().NoError(err)
	s.Assert().Len(prismatic, 2)

	bySeller, err := s.repo.List(ctx, models.ListingFilter{SellerID: "local-1"})
	s.Require().NoError(err)
	s.Assert().Len(bySeller, 2)

	both, err := s.repo.List(ctx, models.ListingFilter{Pack: "twilight", SellerID: "local-1"})
	s.Require().NoError(err)
	s.Require().Len(both, 1)
	s.Assert().Equal("other-pack", both[0].ID)
}

func (s *ListingRepositorySuite) TestListPagination() {
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("l%d", i)
		s.Require().NoError(s.repo.Insert(ctx, s.newListing(id, "prismatic", "local-1", base.Add(time.Duration(i)*time.Minute))))
	}

	page, err := s.repo.List(ctx, models.ListingFilter{Limit: 2, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Assert().Equal("l3", page[0].ID)
	s.Assert().Equal("l2", page[1].ID)
}

func TestListingRepositorySuite(t *testing.T) {
	suite.Run(t, new(ListingRepositorySuite))
}
