package worker

import (
	"context"

	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/remote"
	"github.com/vytor/packdex/internal/repository"
)

// ProfileSnapshotJob pushes a denormalized player snapshot to the local
// leaderboard cache and, when a remote store is attached, to the remote
// player document (merge write).
type ProfileSnapshotJob struct {
	Remote   remote.StoreInterface
	Boards   repository.LeaderboardRepository
	Snapshot models.ProfileSnapshot
}

func (j ProfileSnapshotJob) Name() string { return "profile-snapshot" }

func (j ProfileSnapshotJob) Run(ctx context.Context) error {
	if j.Boards != nil {
		if err := j.Boards.Upsert(ctx, models.LeaderboardEntry{
			Identity:    j.Snapshot.Identity,
			Name:        j.Snapshot.Name,
			UniqueCards: j.Snapshot.UniqueCards,
		}); err != nil {
			return err
		}
	}
	if j.Remote != nil {
		return j.Remote.SaveProfile(ctx, j.Snapshot)
	}
	return nil
}

// MirrorListingJob mirrors a new listing to the remote marketplace collection.
type MirrorListingJob struct {
	Remote  remote.StoreInterface
	Listing models.Listing
}

func (j MirrorListingJob) Name() string { return "mirror-listing" }

func (j MirrorListingJob) Run(ctx context.Context) error {
	if j.Remote == nil {
		return nil
	}
	return j.Remote.PutListing(ctx, j.Listing)
}

// DeleteListingJob removes a listing from the remote marketplace collection.
type DeleteListingJob struct {
	Remote    remote.StoreInterface
	ListingID string
}

func (j DeleteListingJob) Name() string { return "delete-listing" }

func (j DeleteListingJob) Run(ctx context.Context) error {
	if j.Remote == nil {
		return nil
	}
	return j.Remote.DeleteListing(ctx, j.ListingID)
}
