package concurrency

import (
	"strings"
	"sync"
)

// LockManager handles named locks
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// TryLock acquires the named lock without waiting.
// On success the returned func releases it.
func (lm *LockManager) TryLock(key string) (func(), bool) {
	mu := lm.GetLock(key)
	if !mu.TryLock() {
		return nil, false
	}
	return mu.Unlock, true
}

// Key joins parts into a lock key
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
