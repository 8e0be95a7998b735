package worker

import (
	"context"
	"daassist-web/dal"
	"daassist-web/infrastructure"
	"daassist-web/models"
	"daassist-web/utils/logger"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/smithy-go"
)

// InfrastructureSetup makes sure the storage tables exist before sessions
// are served
type InfrastructureSetup struct {
	db         dal.DatabaseClientInterface
	config     *models.Config
	logger     logger.Logger
	maxRetries int
	baseDelay  time.Duration
}

// NewInfrastructureSetup creates a table bootstrapper over db
func NewInfrastructureSetup(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *InfrastructureSetup {
	return &InfrastructureSetup{
		db:         db,
		config:     cfg,
		logger:     log,
		maxRetries: 3,
		baseDelay:  5 * time.Second,
	}
}

// Execute creates every configured table that does not exist yet and
// returns the names of the tables ready for use
func (is *InfrastructureSetup) Execute(ctx context.Context) ([]string, error) {
	is.logger.Info("Checking storage tables")

	tables := is.getTableDetails()
	ready := make([]string, 0, len(tables))

	// Sequential to avoid throttling
	for _, table := range tables {
		if err := is.createTableWithRetry(ctx, table); err != nil {
			return ready, err
		}
		ready = append(ready, table.Name)
	}
	return ready, nil
}

func (is *InfrastructureSetup) getTableDetails() []*models.TableInfo {
	tables := make([]*models.TableInfo, 0, len(is.config.Tables))
	for _, base := range is.config.Tables {
		tables = append(tables, &models.TableInfo{
			Name:      is.config.TableName(base),
			ParseName: base,
			Status:    "CREATING",
			Tags: map[string]string{
				"Environment": is.config.AppEnv,
				"Application": is.config.AppName,
				"TableType":   base,
				"Version":     is.config.AppVersion,
			},
			CreatedAt: time.Now(),
		})
	}
	return tables
}

func (is *InfrastructureSetup) createTableWithRetry(ctx context.Context, table *models.TableInfo) error {
	var lastErr error
	for attempt := 0; attempt <= is.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * is.baseDelay
			is.logger.Infof("Retrying table creation for %s in %v (attempt %d/%d)", table.Name, delay, attempt+1, is.maxRetries+1)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		exists, err := is.tableExists(ctx, table.Name)
		if err != nil {
			is.logger.Errorf("Failed to check if table %s exists: %v", table.Name, err)
			lastErr = err
			continue
		}
		if exists {
			is.logger.Debugf("Table %s already exists", table.Name)
			return nil
		}

		if err := is.createTable(ctx, table); err != nil {
			is.logger.Errorf("Attempt %d failed to create table %s: %v", attempt+1, table.Name, err)
			lastErr = err
			continue
		}

		is.logger.WithFields(logger.Fields{
			"table":  table.Name,
			"schema": table.ParseName,
		}).Info("Table created")
		return nil
	}

	return fmt.Errorf("failed to create table %s after %d attempts: %w", table.Name, is.maxRetries+1, lastErr)
}

func (is *InfrastructureSetup) createTable(ctx context.Context, table *models.TableInfo) error {
	input, err := infrastructure.GetTables(table.Name)
	if err != nil {
		return fmt.Errorf("failed to get table input: %w", err)
	}
	if err := is.db.CreateTable(ctx, input); err != nil {
		if isTableInUseError(err) {
			return nil
		}
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (is *InfrastructureSetup) tableExists(ctx context.Context, tableName string) (bool, error) {
	if _, err := is.db.DescribeTable(ctx, tableName); err != nil {
		if isTableNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// isTableNotFoundError checks if error indicates table not found
func isTableNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ResourceNotFoundException"
	}

	errorStr := err.Error()
	return strings.Contains(errorStr, "ResourceNotFoundException") ||
		strings.Contains(errorStr, "Requested resource not found")
}

// isTableInUseError reports a table created concurrently by another instance
func isTableInUseError(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceInUseException"
}
