package worker

import (
	"daassist-web/models"
	"sync"
	"time"
)

// StatusManager records the outcome of the sweeper runs
type StatusManager struct {
	mu          sync.RWMutex
	last        *models.ExecutionResult
	runs        int
	tablesReady []string
}

func NewStatusManager() *StatusManager {
	return &StatusManager{}
}

// Begin marks a run as started
func (sm *StatusManager) Begin(now time.Time) *models.ExecutionResult {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.runs++
	sm.last = &models.ExecutionResult{Status: models.StatusRunning, StartedAt: now}
	return sm.last
}

// Finish completes result with the number of swept sessions or the error
func (sm *StatusManager) Finish(result *models.ExecutionResult, swept int, err error, now time.Time) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	result.FinishedAt = now
	result.SessionsSwept = swept
	if err != nil {
		result.Status = models.StatusFailed
		result.Error = err.Error()
		return
	}
	result.Status = models.StatusCompleted
}

func (sm *StatusManager) SetTablesReady(tables []string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.tablesReady = append([]string(nil), tables...)
}

// LoadStatus returns a copy of the last run, nil before the first one
func (sm *StatusManager) LoadStatus() *models.ExecutionResult {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if sm.last == nil {
		return nil
	}
	last := *sm.last
	return &last
}

func (sm *StatusManager) Runs() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.runs
}

func (sm *StatusManager) TablesReady() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return append([]string{}, sm.tablesReady...)
}
