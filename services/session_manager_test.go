package services

import (
	"context"
	"daassist-web/dal"
	"daassist-web/infrastructure"
	"daassist-web/models"
	"daassist-web/repository"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SessionManagerTestSuite struct {
	suite.Suite
	ctx     context.Context
	config  *models.Config
	repo    *repository.SessionRepository
	auth    *mockAuthAPI
	manager *SessionManager
	clock   time.Time
}

func (suite *SessionManagerTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.config = &models.Config{SessionSecret: "manager-test-secret", SessionTTL: time.Hour}

	db := dal.NewMemoryClient()
	input, err := infrastructure.GetTables(suite.config.SessionsTable())
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), db.CreateTable(suite.ctx, input))

	suite.repo = repository.NewSessionRepository(db, suite.config, testLogger())
	suite.auth = &mockAuthAPI{}
	factory := func(tokens repository.TokenStorage) *Backend {
		m := newMockBackend()
		m.auth = suite.auth
		return m.backend()
	}

	suite.clock = time.Now()
	suite.manager = NewSessionManager(suite.repo, factory, suite.config, testLogger())
	suite.manager.now = func() time.Time { return suite.clock }
}

func TestSessionManagerTestSuite(t *testing.T) {
	suite.Run(t, new(SessionManagerTestSuite))
}

func signedToken(t *testing.T, expires time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "mrossi",
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return signed
}

func (suite *SessionManagerTestSuite) TestResolveCreatesAnonymousSession() {
	sess, err := suite.manager.Resolve(suite.ctx, "")
	require.NoError(suite.T(), err)

	assert.NotEmpty(suite.T(), sess.ID)
	state := sess.Store.State()
	assert.False(suite.T(), state.IsAuthenticated)
	assert.False(suite.T(), state.IsLoading)
	assert.Equal(suite.T(), 1, suite.manager.Count())
	suite.auth.AssertNotCalled(suite.T(), "CurrentUser", mock.Anything)

	record, err := suite.repo.Get(suite.ctx, sess.ID)
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), record)
}

func (suite *SessionManagerTestSuite) TestResolveReturnsKnownSession() {
	first, err := suite.manager.Resolve(suite.ctx, "")
	require.NoError(suite.T(), err)

	second, err := suite.manager.Resolve(suite.ctx, first.ID)
	require.NoError(suite.T(), err)

	assert.Same(suite.T(), first, second)
	assert.Equal(suite.T(), 1, suite.manager.Count())
}

func (suite *SessionManagerTestSuite) TestResolveUnknownIDGetsFreshID() {
	sess, err := suite.manager.Resolve(suite.ctx, "forged-id")
	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), "forged-id", sess.ID)
}

func (suite *SessionManagerTestSuite) TestResolveRestoresStoredSession() {
	tokens := suite.repo.ForSession("restored")
	require.NoError(suite.T(), tokens.SetItem(suite.ctx, models.AccessTokenKey, "access"))
	require.NoError(suite.T(), tokens.SetItem(suite.ctx, models.RefreshTokenKey, "refresh"))
	suite.auth.On("CurrentUser", mock.Anything).Return(&models.User{ID: 7, Username: "mrossi"}, nil).Once()

	sess, err := suite.manager.Resolve(suite.ctx, "restored")
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "restored", sess.ID)
	state := sess.Store.State()
	assert.True(suite.T(), state.IsAuthenticated)
	assert.Equal(suite.T(), "mrossi", state.User.Username)
	suite.auth.AssertExpectations(suite.T())
}

func (suite *SessionManagerTestSuite) TestResolveIgnoresExpiredRecord() {
	require.NoError(suite.T(), suite.repo.ForSession("stale").SetItem(suite.ctx, models.AccessTokenKey, "access"))
	suite.clock = suite.clock.Add(2 * time.Hour)

	sess, err := suite.manager.Resolve(suite.ctx, "stale")
	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), "stale", sess.ID)
	suite.auth.AssertNotCalled(suite.T(), "CurrentUser", mock.Anything)
}

func (suite *SessionManagerTestSuite) TestSweepDropsIdleSessions() {
	idle, err := suite.manager.Resolve(suite.ctx, "")
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.repo.ForSession("orphan").SetItem(suite.ctx, models.AccessTokenKey, "access"))

	suite.clock = suite.clock.Add(90 * time.Minute)
	fresh, err := suite.manager.Resolve(suite.ctx, "")
	require.NoError(suite.T(), err)

	swept, err := suite.manager.Sweep(suite.ctx, suite.clock)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), 2, swept)
	assert.Equal(suite.T(), 1, suite.manager.Count())

	again, err := suite.manager.Resolve(suite.ctx, fresh.ID)
	require.NoError(suite.T(), err)
	assert.Same(suite.T(), fresh, again)

	record, err := suite.repo.Get(suite.ctx, "orphan")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), record)
	assert.NotEqual(suite.T(), idle.ID, fresh.ID)
}

func (suite *SessionManagerTestSuite) TestSweepLogsOutExpiredToken() {
	tokens := suite.repo.ForSession("expiring")
	require.NoError(suite.T(), tokens.SetItem(suite.ctx, models.AccessTokenKey, signedToken(suite.T(), suite.clock.Add(-time.Minute))))
	suite.auth.On("CurrentUser", mock.Anything).Return(&models.User{ID: 7, Username: "mrossi"}, nil).Once()
	suite.auth.On("Logout", mock.Anything).Return(nil).Once()

	sess, err := suite.manager.Resolve(suite.ctx, "expiring")
	require.NoError(suite.T(), err)
	require.True(suite.T(), sess.Store.State().IsAuthenticated)

	swept, err := suite.manager.Sweep(suite.ctx, suite.clock)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), 1, swept)
	assert.False(suite.T(), sess.Store.State().IsAuthenticated)
	assert.Equal(suite.T(), 1, suite.manager.Count())
	suite.auth.AssertExpectations(suite.T())
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, TokenExpired("not-a-jwt", now))
	assert.False(t, TokenExpired(signedToken(t, now.Add(time.Hour)), now))
	assert.True(t, TokenExpired(signedToken(t, now.Add(-time.Hour)), now))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x"}).SignedString([]byte("k"))
	require.NoError(t, err)
	assert.False(t, TokenExpired(noExp, now))
}
