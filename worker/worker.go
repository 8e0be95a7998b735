package worker

import (
	"context"
	"daassist-web/models"
	"daassist-web/utils/logger"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron"
)

// SessionSweeper drops idle browser sessions
type SessionSweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// Worker runs the session sweeper on a cron schedule
type Worker struct {
	mu       sync.Mutex
	cron     *cron.Cron
	sweeper  SessionSweeper
	lock     *LockManager
	status   *StatusManager
	config   *models.WorkerConfig
	logger   logger.Logger
	ownerID  string
	running  bool
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	now      func() time.Time
}

// NewWorker validates the schedule and prepares a stopped worker
func NewWorker(cfg *models.Config, sweeper SessionSweeper, log logger.Logger) (*Worker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = "localhost"
	}

	workerConfig := &models.WorkerConfig{
		CronSchedule:   cfg.SweepSchedule,
		IdleTimeout:    cfg.SessionTTL,
		RunTimeout:     2 * time.Minute,
		Environment:    cfg.AppEnv,
		RequiredTables: cfg.Tables,
	}
	if err := validateWorkerConfig(workerConfig); err != nil {
		return nil, fmt.Errorf("invalid worker configuration: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		cron:    cron.New(),
		sweeper: sweeper,
		lock:    NewLockManager(workerConfig.RunTimeout),
		status:  NewStatusManager(),
		config:  workerConfig,
		logger:  log,
		ownerID: fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8]),
		ctx:     ctx,
		cancel:  cancel,
		now:     time.Now,
	}, nil
}

func validateWorkerConfig(config *models.WorkerConfig) error {
	if config.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if config.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive")
	}
	if config.RunTimeout <= 0 {
		return fmt.Errorf("run timeout must be positive")
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(config.CronSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", config.CronSchedule, err)
	}
	return nil
}

// Start schedules the sweeper
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("worker is already running")
	}
	select {
	case <-w.ctx.Done():
		return fmt.Errorf("worker context is cancelled, cannot start")
	default:
	}

	if err := w.cron.AddFunc(w.config.CronSchedule, w.sweepJob); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	w.cron.Start()
	w.running = true

	w.logger.WithFields(logger.Fields{
		"owner_id": w.ownerID,
		"schedule": w.config.CronSchedule,
	}).Info("Session sweeper started")
	return nil
}

func (w *Worker) sweepJob() {
	if _, err := w.RunOnce(w.ctx); err != nil {
		w.logger.Warnf("Session sweep skipped or failed: %v", err)
	}
}

// RunOnce sweeps idle sessions now and records the outcome
func (w *Worker) RunOnce(ctx context.Context) (*models.ExecutionResult, error) {
	lockInfo, err := w.lock.AcquireLock(w.ownerID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := w.lock.ReleaseLock(lockInfo); err != nil {
			w.logger.Errorf("Failed to release sweep lock: %v", err)
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, w.config.RunTimeout)
	defer cancel()

	result := w.status.Begin(w.now())
	swept, err := w.sweeper.Sweep(runCtx, w.now())
	w.status.Finish(result, swept, err, w.now())
	if err != nil {
		return w.status.LoadStatus(), fmt.Errorf("session sweep failed: %w", err)
	}

	w.logger.Debugf("Session sweep completed, %d sessions affected", swept)
	return w.status.LoadStatus(), nil
}

// Stop stops the scheduler; it is safe to call more than once
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		w.cancel()
		w.cron.Stop()
		if w.running {
			w.logger.Info("Session sweeper stopped")
		}
		w.running = false
	})
}

func (w *Worker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Health reports the scheduler state and the last run
func (w *Worker) Health() models.WorkerHealth {
	return models.WorkerHealth{
		Running:     w.IsRunning(),
		OwnerID:     w.ownerID,
		Schedule:    w.config.CronSchedule,
		Runs:        w.status.Runs(),
		TablesReady: w.status.TablesReady(),
		LastRun:     w.status.LoadStatus(),
	}
}
