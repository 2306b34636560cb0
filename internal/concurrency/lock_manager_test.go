package concurrency

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLock_SameKeySameMutex(t *testing.T) {
	lm := NewLockManager()
	assert.Same(t, lm.GetLock("a"), lm.GetLock("a"))
	assert.NotSame(t, lm.GetLock("a"), lm.GetLock("b"))
}

func TestTryLock(t *testing.T) {
	lm := NewLockManager()

	unlock, ok := lm.TryLock("guild:server")
	require.True(t, ok)

	_, ok = lm.TryLock("guild:server")
	assert.False(t, ok, "second acquisition is refused while held")

	other, ok := lm.TryLock("guild:other")
	require.True(t, ok, "different keys are independent")
	other()

	unlock()
	again, ok := lm.TryLock("guild:server")
	require.True(t, ok)
	again()
}

func TestTryLock_SkipIfRunning(t *testing.T) {
	lm := NewLockManager()
	var ran, skipped atomic.Int32

	unlock, ok := lm.TryLock("k")
	require.True(t, ok)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if release, ok := lm.TryLock("k"); ok {
				ran.Add(1)
				release()
				return
			}
			skipped.Add(1)
		}()
	}
	wg.Wait()
	unlock()

	assert.Equal(t, int32(0), ran.Load())
	assert.Equal(t, int32(10), skipped.Load())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "a:b:c", Key("a", "b", "c"))
	assert.Equal(t, "solo", Key("solo"))
	assert.Equal(t, "", Key())
}
