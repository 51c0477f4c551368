package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mariana/linguaflash/internal/logger"
)

// Job is a unit of background work.
type Job interface {
	Run(context.Context) error
	Name() string
}

// Pool runs queued jobs on a fixed set of workers.
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
		queueSize = 32
	}
	log := logger.Default().WithPrefix("worker-pool")
	log.Debug("creating worker pool with %d workers and queue size %d", workers, queueSize)
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		log:     log,
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i+1)
	}
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	log := p.log.WithField("worker_id", id)
	log.Debug("worker started")

	for {
		select {
		case <-ctx.Done():
			log.Debug("worker shutting down (context cancelled)")
			return
		case job, ok := <-p.jobs:
			if !ok {
				log.Debug("worker shutting down (queue closed)")
				return
			}

			jobLog := log.WithField("job", job.Name())
			start := time.Now()
			if err := job.Run(logger.NewContext(ctx, jobLog)); err != nil {
				jobLog.Error("job failed after %v: %v", time.Since(start), err)
			} else {
				jobLog.Info("job completed in %v", time.Since(start))
			}
		}
	}
}

func (p *Pool) Stop() {
	p.log.Info("stopping worker pool")
	if p.cancel != nil {
		p.cancel()
	}
	close(p.jobs)
	p.wg.Wait()
	p.log.Info("worker pool stopped")
}

// Submit enqueues a job, failing immediately when the queue is full rather
// than blocking an HTTP handler.
func (p *Pool) Submit(job Job) error {
	select {
	case p.jobs <- job:
		p.log.Debug("submitted job: %s", job.Name())
		return nil
	default:
		return fmt.Errorf("job queue full, rejecting %s", job.Name())
	}
}

// Pending returns the current number of queued jobs.
func (p *Pool) Pending() int {
	return len(p.jobs)
}
