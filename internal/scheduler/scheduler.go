package scheduler

import (
	"sync"
	"time"

	"github.com/osse101/FarmBot_Go/internal/worker"
)

// Enqueuer is the part of worker.Pool the scheduler uses
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	queue Enqueuer
	quit  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

// New creates a new scheduler
func New(queue Enqueuer) *Scheduler {
	return &Scheduler{
		queue: queue,
		quit:  make(chan struct{}),
	}
}

// Schedule registers a job to run once right away and then at a fixed
// interval. A tick that finds the queue full is skipped, never stacked.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.queue.TryEnqueue(job)
		for {
			select {
			case <-ticker.C:
				s.queue.TryEnqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
}
