package worker

import (
	"context"
	"daassist-web/dal"
	"daassist-web/models"
	"daassist-web/utils/logger"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func testLogger() logger.Logger {
	return logger.NewLoggerWithOutput("error", "json", io.Discard)
}

func testConfig() *models.Config {
	return &models.Config{
		AppName:       "daassist-web",
		AppEnv:        "test",
		SessionTTL:    time.Hour,
		SweepSchedule: "@every 1m",
		Tables:        []string{"sessions"},
	}
}

// fakeSweeper counts calls and optionally blocks until released
type fakeSweeper struct {
	mu      sync.Mutex
	calls   int
	swept   int
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeSweeper) Sweep(ctx context.Context, now time.Time) (int, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
		<-f.release
	}
	return f.swept, f.err
}

type WorkerTestSuite struct {
	suite.Suite
	sweeper *fakeSweeper
	worker  *Worker
}

func (suite *WorkerTestSuite) SetupTest() {
	suite.sweeper = &fakeSweeper{swept: 3}
	w, err := NewWorker(testConfig(), suite.sweeper, testLogger())
	require.NoError(suite.T(), err)
	suite.worker = w
}

func (suite *WorkerTestSuite) TearDownTest() {
	suite.worker.Stop()
}

func TestWorkerTestSuite(t *testing.T) {
	suite.Run(t, new(WorkerTestSuite))
}

func (suite *WorkerTestSuite) TestRunOnceRecordsResult() {
	result, err := suite.worker.RunOnce(context.Background())
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), models.StatusCompleted, result.Status)
	assert.Equal(suite.T(), 3, result.SessionsSwept)
	assert.Empty(suite.T(), result.Error)

	health := suite.worker.Health()
	assert.Equal(suite.T(), 1, health.Runs)
	assert.Equal(suite.T(), "@every 1m", health.Schedule)
	require.NotNil(suite.T(), health.LastRun)
	assert.Equal(suite.T(), models.StatusCompleted, health.LastRun.Status)
}

func (suite *WorkerTestSuite) TestRunOnceRecordsFailure() {
	suite.sweeper.err = errors.New("table gone")

	result, err := suite.worker.RunOnce(context.Background())
	require.Error(suite.T(), err)

	require.NotNil(suite.T(), result)
	assert.Equal(suite.T(), models.StatusFailed, result.Status)
	assert.Equal(suite.T(), "table gone", result.Error)
}

func (suite *WorkerTestSuite) TestRunsDoNotOverlap() {
	suite.sweeper.started = make(chan struct{})
	suite.sweeper.release = make(chan struct{})

	done := make(chan error)
	go func() {
		_, err := suite.worker.RunOnce(context.Background())
		done <- err
	}()
	<-suite.sweeper.started

	_, err := suite.worker.RunOnce(context.Background())
	assert.ErrorContains(suite.T(), err, "already running")

	close(suite.sweeper.release)
	require.NoError(suite.T(), <-done)
	assert.Equal(suite.T(), 1, suite.sweeper.calls)
}

func (suite *WorkerTestSuite) TestStartAndStop() {
	require.NoError(suite.T(), suite.worker.Start())
	assert.True(suite.T(), suite.worker.IsRunning())
	assert.Error(suite.T(), suite.worker.Start())

	suite.worker.Stop()
	suite.worker.Stop()
	assert.False(suite.T(), suite.worker.IsRunning())
	assert.Error(suite.T(), suite.worker.Start())
}

func TestNewWorkerValidatesConfig(t *testing.T) {
	cfg := testConfig()
	cfg.SweepSchedule = "every ten minutes"
	_, err := NewWorker(cfg, &fakeSweeper{}, testLogger())
	assert.ErrorContains(t, err, "invalid cron schedule")

	cfg = testConfig()
	cfg.AppEnv = ""
	_, err = NewWorker(cfg, &fakeSweeper{}, testLogger())
	assert.ErrorContains(t, err, "environment is required")

	cfg = testConfig()
	cfg.SessionTTL = 0
	_, err = NewWorker(cfg, &fakeSweeper{}, testLogger())
	assert.Error(t, err)

	_, err = NewWorker(nil, &fakeSweeper{}, testLogger())
	assert.Error(t, err)
}

func TestLockTakeoverAfterExpiry(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	lm := NewLockManager(time.Minute)
	lm.now = func() time.Time { return now }

	first, err := lm.AcquireLock("a")
	require.NoError(t, err)
	_, err = lm.AcquireLock("b")
	require.Error(t, err)

	now = now.Add(2 * time.Minute)
	second, err := lm.AcquireLock("b")
	require.NoError(t, err)
	assert.Equal(t, "b", second.Owner)

	assert.Error(t, lm.ReleaseLock(first))
	assert.NoError(t, lm.ReleaseLock(second))
}

func TestInfrastructureSetupCreatesPrefixedTables(t *testing.T) {
	cfg := testConfig()
	cfg.DynamoDBTablePrefix = "dev"
	db := dal.NewMemoryClient()
	setup := NewInfrastructureSetup(db, cfg, testLogger())

	ready, err := setup.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"dev_sessions"}, ready)

	_, err = db.DescribeTable(context.Background(), "dev_sessions")
	require.NoError(t, err)

	ready, err = setup.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"dev_sessions"}, ready)
}

// brokenDescribe fails every table lookup
type brokenDescribe struct {
	*dal.MemoryClient
}

func (b brokenDescribe) DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error) {
	return nil, errors.New("connection reset")
}

func TestInfrastructureSetupGivesUp(t *testing.T) {
	setup := NewInfrastructureSetup(brokenDescribe{dal.NewMemoryClient()}, testConfig(), testLogger())
	setup.maxRetries = 1
	setup.baseDelay = time.Millisecond

	ready, err := setup.Execute(context.Background())
	assert.ErrorContains(t, err, "after 2 attempts")
	assert.Empty(t, ready)
}

func TestServiceStartBootstrapsTables(t *testing.T) {
	sweeper := &fakeSweeper{}
	svc, err := NewService(dal.NewMemoryClient(), sweeper, testConfig(), testLogger())
	require.NoError(t, err)

	require.NoError(t, svc.Start(context.Background()))
	defer svc.Stop()

	health := svc.GetHealthStatus()
	assert.True(t, health.Running)
	assert.Equal(t, []string{"sessions"}, health.TablesReady)

	result, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, result.Status)
}
