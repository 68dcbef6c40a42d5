// Package worker runs best-effort background jobs, mainly pushes of local
// state to the remote store. Jobs are fire-and-forget: the local write has
// already committed by the time a job is queued, so a lost or failed job
// costs nothing but freshness.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/packdex/internal/logger"
)

type Job interface {
	Run(context.Context) error
	Name() string
}

type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	cancel  context.CancelFunc
	log     *logger.Logger
}

func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		log:     logger.Default().WithPrefix("sync"),
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.log.Info("starting %d sync workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i+1)
	}
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	log := p.log.WithField("worker_id", id)

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.jobs:
			if job == nil {
				return
			}
			jobLog := log.WithField("job", job.Name())
			start := time.Now()
			if err := job.Run(logger.NewContext(ctx, jobLog)); err != nil {
				jobLog.Warn("job failed after %v: %v", time.Since(start), err)
			} else {
				jobLog.Debug("job done in %v", time.Since(start))
			}
		}
	}
}

func (p *Pool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	close(p.jobs)
	p.wg.Wait()
	p.log.Info("sync workers stopped")
}

// Submit enqueues a job, dropping it when the queue is full. Blocking a
// request on a full queue would be worse than losing one push.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		p.log.Warn("queue full, dropping job: %s", job.Name())
	}
}

// QueueSize reports the number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
