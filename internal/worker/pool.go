package worker

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
)

// Job represents a task to be executed by a worker
type Job interface {
	Name() string
	Process(ctx context.Context) error
}

// Pool represents a worker pool
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the workers. Jobs receive a context derived from ctx that is
// cancelled by Stop.
func (p *Pool) Start(ctx context.Context) {
	p.cancel()
	p.ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker is the worker loop
func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			return
		}
	}
}

// run executes one job. A panic is logged and counted; it never takes the
// worker down.
func (p *Pool) run(job Job) {
	ctx := p.ctx
	defer func() {
		if r := recover(); r != nil {
			metrics.JobPanics.WithLabelValues(job.Name()).Inc()
			logger.FromContext(ctx).Error(LogMsgWorkerJobPanicked,
				"job", job.Name(), "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		}
	}()

	if err := job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "job", job.Name(), "error", err)
	}
}

// Enqueue adds a job to the queue, blocking while it is full.
// It returns false once the pool is stopping.
func (p *Pool) Enqueue(job Job) bool {
	if p.stopping() {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	case <-p.quit:
		return false
	}
}

// TryEnqueue adds a job without blocking. A full queue drops the job.
func (p *Pool) TryEnqueue(job Job) bool {
	if p.stopping() {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		metrics.JobsSkipped.WithLabelValues(job.Name()).Inc()
		logger.FromContext(p.ctx).Warn(LogMsgQueueFull, "job", job.Name())
		return false
	}
}

func (p *Pool) stopping() bool {
	select {
	case <-p.quit:
		return true
	default:
		return false
	}
}

// Stop stops the workers and waits for in-flight jobs until ctx expires
func (p *Pool) Stop(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPoolStopping)

	p.stopOnce.Do(func() { close(p.quit) })
	defer p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgPoolStopped)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgPoolStopTimeout)
		return ctx.Err()
	}
}
