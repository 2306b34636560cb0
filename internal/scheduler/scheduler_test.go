package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount int32
	Done     chan struct{}
}

func (m *MockJob) Name() string { return "mock" }

func (m *MockJob) Process(ctx context.Context) error {
	atomic.AddInt32(&m.RunCount, 1)
	// Signal that job ran
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start(context.Background())
	defer func() { _ = pool.Stop(context.Background()) }()

	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{Done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)

	timeout := time.After(time.Second)
	runCount := 0
	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}

type countingQueue struct {
	calls int32
}

func (q *countingQueue) TryEnqueue(worker.Job) bool {
	atomic.AddInt32(&q.calls, 1)
	return true
}

func TestScheduler_RunsImmediately(t *testing.T) {
	queue := &countingQueue{}
	sched := New(queue)
	sched.Schedule(time.Hour, &MockJob{})

	require.Eventually(t, func() bool { return atomic.LoadInt32(&queue.calls) == 1 }, time.Second, time.Millisecond)
	sched.Stop()
	sched.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&queue.calls))
}
