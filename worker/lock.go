package worker

import (
	"fmt"
	"sync"
	"time"
)

// LockInfo describes the current holder of the sweep lock
type LockInfo struct {
	Owner      string
	AcquiredAt time.Time
	ExpiresAt  time.Time
}

// LockManager keeps sweeps from overlapping when a run outlasts the cron
// interval. An expired lock can be taken over.
type LockManager struct {
	mu      sync.Mutex
	current *LockInfo
	timeout time.Duration
	now     func() time.Time
}

// NewLockManager creates a lock whose holders expire after timeout
func NewLockManager(timeout time.Duration) *LockManager {
	return &LockManager{timeout: timeout, now: time.Now}
}

func (lm *LockManager) AcquireLock(ownerID string) (*LockInfo, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	now := lm.now()
	if lm.current != nil && now.Before(lm.current.ExpiresAt) {
		return nil, fmt.Errorf("sweep already running since %s (owner %s)", lm.current.AcquiredAt.Format(time.RFC3339), lm.current.Owner)
	}

	lm.current = &LockInfo{
		Owner:      ownerID,
		AcquiredAt: now,
		ExpiresAt:  now.Add(lm.timeout),
	}
	return lm.current, nil
}

// ReleaseLock releases the lock if lockInfo still holds it
func (lm *LockManager) ReleaseLock(lockInfo *LockInfo) error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if lm.current == nil {
		return nil
	}
	if lm.current != lockInfo {
		return fmt.Errorf("cannot release lock owned by %s", lm.current.Owner)
	}
	lm.current = nil
	return nil
}
