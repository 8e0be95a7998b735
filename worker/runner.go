package worker

import (
	"context"
	"daassist-web/dal"
	"daassist-web/models"
	"daassist-web/utils/logger"
	"fmt"
)

// Service bootstraps the storage tables and runs the session sweeper
type Service struct {
	worker *Worker
	setup  *InfrastructureSetup
	logger logger.Logger
}

// NewService wires the table bootstrap and the sweeper
func NewService(db dal.DatabaseClientInterface, sweeper SessionSweeper, cfg *models.Config, log logger.Logger) (*Service, error) {
	w, err := NewWorker(cfg, sweeper, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create session sweeper: %w", err)
	}
	return &Service{
		worker: w,
		setup:  NewInfrastructureSetup(db, cfg, log),
		logger: log,
	}, nil
}

// Start creates missing tables, then schedules the sweeper. Tables must be
// ready before the first session is stored, so this blocks.
func (s *Service) Start(ctx context.Context) error {
	tables, err := s.setup.Execute(ctx)
	s.worker.status.SetTablesReady(tables)
	if err != nil {
		return fmt.Errorf("storage bootstrap failed: %w", err)
	}
	s.logger.Infof("Storage tables ready: %v", tables)

	return s.worker.Start()
}

func (s *Service) Stop() {
	s.logger.Info("Stopping session sweeper service")
	s.worker.Stop()
}

// Sweep runs the sweeper immediately
func (s *Service) Sweep(ctx context.Context) (*models.ExecutionResult, error) {
	return s.worker.RunOnce(ctx)
}

// GetHealthStatus returns the sweeper health for monitoring
func (s *Service) GetHealthStatus() models.WorkerHealth {
	return s.worker.Health()
}
