package repository

import (
	"context"
	"daassist-web/dal"
	"daassist-web/infrastructure"
	"daassist-web/models"
	"daassist-web/utils/logger"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SessionRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	db   *dal.MemoryClient
	cfg  *models.Config
	repo *SessionRepository
}

func (suite *SessionRepositoryTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.cfg = &models.Config{
		SessionSecret:       "test-secret",
		SessionTTL:          time.Hour,
		DynamoDBTablePrefix: "test",
	}
	suite.db = dal.NewMemoryClient()

	input, err := infrastructure.GetTables(suite.cfg.SessionsTable())
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.db.CreateTable(suite.ctx, input))

	log := logger.NewLoggerWithOutput("error", "json", io.Discard)
	suite.repo = NewRepository(suite.db, suite.cfg, log).Session
}

func TestSessionRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SessionRepositoryTestSuite))
}

func (suite *SessionRepositoryTestSuite) TestSetGetRemove() {
	tokens := suite.repo.ForSession("s1")

	require.NoError(suite.T(), tokens.SetItem(suite.ctx, models.AccessTokenKey, "access"))
	require.NoError(suite.T(), tokens.SetItem(suite.ctx, models.RefreshTokenKey, "refresh"))

	value, ok, err := tokens.GetItem(suite.ctx, models.AccessTokenKey)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "access", value)

	require.NoError(suite.T(), tokens.RemoveItem(suite.ctx, models.AccessTokenKey))
	_, ok, err = tokens.GetItem(suite.ctx, models.AccessTokenKey)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok)

	value, ok, _ = tokens.GetItem(suite.ctx, models.RefreshTokenKey)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "refresh", value)
}

func (suite *SessionRepositoryTestSuite) TestValuesAreSealedAtRest() {
	tokens := suite.repo.ForSession("s1")
	require.NoError(suite.T(), tokens.SetItem(suite.ctx, models.AccessTokenKey, "plain-token"))

	record, err := suite.repo.Get(suite.ctx, "s1")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), record)
	assert.NotEqual(suite.T(), "plain-token", record.Values[models.AccessTokenKey])
	assert.NotContains(suite.T(), record.Values[models.AccessTokenKey], "plain-token")
}

func (suite *SessionRepositoryTestSuite) TestSessionsAreIsolated() {
	require.NoError(suite.T(), suite.repo.ForSession("a").SetItem(suite.ctx, models.AccessTokenKey, "a-token"))

	_, ok, err := suite.repo.ForSession("b").GetItem(suite.ctx, models.AccessTokenKey)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func (suite *SessionRepositoryTestSuite) TestOtherSecretReadsAsAbsent() {
	require.NoError(suite.T(), suite.repo.ForSession("s1").SetItem(suite.ctx, models.AccessTokenKey, "tok"))

	otherCfg := *suite.cfg
	otherCfg.SessionSecret = "rotated"
	other := NewSessionRepository(suite.db, &otherCfg, logger.NewLoggerWithOutput("error", "json", io.Discard))

	_, ok, err := other.ForSession("s1").GetItem(suite.ctx, models.AccessTokenKey)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func (suite *SessionRepositoryTestSuite) TestListIdleAndDelete() {
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(suite.T(), suite.repo.Touch(suite.ctx, "old", old))
	require.NoError(suite.T(), suite.repo.Touch(suite.ctx, "fresh", time.Now()))

	idle, err := suite.repo.ListIdle(suite.ctx, time.Now().Add(-time.Hour))
	require.NoError(suite.T(), err)
	require.Len(suite.T(), idle, 1)
	assert.Equal(suite.T(), "old", idle[0].SessionID)

	require.NoError(suite.T(), suite.repo.Delete(suite.ctx, "old"))
	record, err := suite.repo.Get(suite.ctx, "old")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), record)
}

func TestSealerRoundTrip(t *testing.T) {
	s := NewSealer("secret")
	sealed, err := s.Seal("value")
	require.NoError(t, err)

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "value", plain)

	_, err = NewSealer("other").Open(sealed)
	assert.ErrorIs(t, err, ErrUnsealFailed)

	_, err = s.Open("not base64 !!")
	assert.ErrorIs(t, err, ErrUnsealFailed)
}

func (suite *SessionRepositoryTestSuite) TestRemoveOnUnknownSessionStoresNothing() {
	tokens := suite.repo.ForSession("never-stored")

	require.NoError(suite.T(), tokens.RemoveItem(suite.ctx, models.AccessTokenKey))
	require.NoError(suite.T(), tokens.RemoveItem(suite.ctx, models.RefreshTokenKey))

	record, err := suite.repo.Get(suite.ctx, "never-stored")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), record)
}
