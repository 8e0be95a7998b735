package models

import "time"

// WorkerStatus is the state of the last background job run
type WorkerStatus string

const (
	StatusIdle      WorkerStatus = "idle"
	StatusRunning   WorkerStatus = "running"
	StatusCompleted WorkerStatus = "completed"
	StatusFailed    WorkerStatus = "failed"
)

// WorkerConfig holds the schedule of the session sweeper
type WorkerConfig struct {
	CronSchedule   string        `json:"cron_schedule"`
	IdleTimeout    time.Duration `json:"idle_timeout"`
	RunTimeout     time.Duration `json:"run_timeout"`
	Environment    string        `json:"environment"`
	RequiredTables []string      `json:"required_tables"`
}

// ExecutionResult records one sweep
type ExecutionResult struct {
	Status        WorkerStatus `json:"status"`
	StartedAt     time.Time    `json:"started_at"`
	FinishedAt    time.Time    `json:"finished_at,omitempty"`
	SessionsSwept int          `json:"sessions_swept"`
	Error         string       `json:"error,omitempty"`
}

// WorkerHealth is reported by /health
type WorkerHealth struct {
	Running     bool             `json:"running"`
	OwnerID     string           `json:"owner_id"`
	Schedule    string           `json:"schedule"`
	Runs        int              `json:"runs"`
	TablesReady []string         `json:"tables_ready"`
	LastRun     *ExecutionResult `json:"last_run,omitempty"`
}

// SessionRecord is a browser session as persisted by the token storage
type SessionRecord struct {
	SessionID string            `dynamodbav:"session_id" json:"session_id"`
	Values    map[string]string `dynamodbav:"values" json:"values"`
	LastSeen  time.Time         `dynamodbav:"last_seen" json:"last_seen"`
	ExpiresAt int64             `dynamodbav:"expires_at" json:"expires_at"`
}
