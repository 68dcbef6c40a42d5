package services

import (
	"context"

	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/models"
	"github.com/vytor/packdex/internal/remote"
	"github.com/vytor/packdex/internal/repository"
	"github.com/vytor/packdex/internal/worker"
)

// Publisher fans out best-effort sync work after local state is committed:
// profile snapshots to the leaderboard cache and remote store, listing
// mirrors to the remote marketplace. With a pool attached the work runs on
// the sync workers; without one it runs inline, which tests rely on.
type Publisher struct {
	pool   *worker.Pool
	remote remote.StoreInterface
	boards repository.LeaderboardRepository
}

// NewPublisher creates a Publisher. pool and remote may be nil.
func NewPublisher(pool *worker.Pool, remoteStore remote.StoreInterface, boards repository.LeaderboardRepository) *Publisher {
	return &Publisher{pool: pool, remote: remoteStore, boards: boards}
}

func (p *Publisher) run(ctx context.Context, job worker.Job) {
	if p == nil {
		return
	}
	if p.pool != nil {
		p.pool.Submit(job)
		return
	}
	if err := job.Run(ctx); err != nil {
		logger.FromContext(ctx).Warn("sync job %s failed: %v", job.Name(), err)
	}
}

// ProfileUpdated pushes a player snapshot.
func (p *Publisher) ProfileUpdated(ctx context.Context, snap models.ProfileSnapshot) {
	if p == nil {
		return
	}
	p.run(ctx, worker.ProfileSnapshotJob{Remote: p.remote, Boards: p.boards, Snapshot: snap})
}

// ListingCreated mirrors a new listing to the remote store.
func (p *Publisher) ListingCreated(ctx context.Context, l models.Listing) {
	if p == nil {
		return
	}
	p.run(ctx, worker.MirrorListingJob{Remote: p.remote, Listing: l})
}

// ListingRemoved deletes a mirrored listing from the remote store.
func (p *Publisher) ListingRemoved(ctx context.Context, id string) {
	if p == nil {
		return
	}
	p.run(ctx, worker.DeleteListingJob{Remote: p.remote, ListingID: id})
}
