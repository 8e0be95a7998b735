package services

import (
	"context"
	"daassist-web/apiclient"
	"daassist-web/models"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SessionStoreTestSuite struct {
	suite.Suite
	ctx    context.Context
	auth   *mockAuthAPI
	tokens *memoryTokens
	store  *SessionStore
}

func (suite *SessionStoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.auth = &mockAuthAPI{}
	suite.tokens = newMemoryTokens()
	suite.store = NewSessionStore(suite.auth, suite.tokens, testLogger())
}

func (suite *SessionStoreTestSuite) TearDownTest() {
	suite.auth.AssertExpectations(suite.T())
}

func TestSessionStoreTestSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreTestSuite))
}

func (suite *SessionStoreTestSuite) TestInitialState() {
	state := suite.store.State()
	assert.True(suite.T(), state.IsLoading)
	assert.False(suite.T(), state.IsAuthenticated)
	assert.Nil(suite.T(), state.User)
}

func (suite *SessionStoreTestSuite) TestLoginPersistsTokensAndAuthenticates() {
	user := &models.User{ID: 7, Username: "mario", Nome: "Mario", Cognome: "Rossi"}
	suite.auth.On("Login", mock.Anything, models.LoginRequest{Username: "mario", Password: "secret"}).
		Return(&models.TokenResponse{AccessToken: "a1", RefreshToken: "r1", TokenType: "bearer"}, nil)
	suite.auth.On("CurrentUser", mock.Anything).Return(user, nil)

	require.NoError(suite.T(), suite.store.Login(suite.ctx, "mario", "secret"))

	access, ok, _ := suite.tokens.GetItem(suite.ctx, models.AccessTokenKey)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "a1", access)
	refresh, ok, _ := suite.tokens.GetItem(suite.ctx, models.RefreshTokenKey)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "r1", refresh)

	state := suite.store.State()
	assert.True(suite.T(), state.IsAuthenticated)
	assert.False(suite.T(), state.IsLoading)
	assert.Equal(suite.T(), user, state.User)
}

func (suite *SessionStoreTestSuite) TestLoginProfileFailurePurgesTokens() {
	profileErr := &apiclient.APIError{StatusCode: 500, Detail: "boom"}
	suite.auth.On("Login", mock.Anything, mock.Anything).
		Return(&models.TokenResponse{AccessToken: "a1", RefreshToken: "r1"}, nil)
	suite.auth.On("CurrentUser", mock.Anything).Return(nil, profileErr)

	err := suite.store.Login(suite.ctx, "mario", "secret")
	assert.Same(suite.T(), profileErr, err)

	assert.False(suite.T(), suite.tokens.has(models.AccessTokenKey))
	assert.False(suite.T(), suite.tokens.has(models.RefreshTokenKey))
	state := suite.store.State()
	assert.False(suite.T(), state.IsAuthenticated)
	assert.False(suite.T(), state.IsLoading)
	assert.Nil(suite.T(), state.User)
}

func (suite *SessionStoreTestSuite) TestLoginRejectedReturnsErrorUnchanged() {
	loginErr := &apiclient.APIError{StatusCode: 401, Detail: "Incorrect username or password"}
	suite.auth.On("Login", mock.Anything, mock.Anything).Return(nil, loginErr)

	err := suite.store.Login(suite.ctx, "mario", "wrong")
	assert.Same(suite.T(), loginErr, err)
	assert.False(suite.T(), suite.store.State().IsAuthenticated)
	suite.auth.AssertNotCalled(suite.T(), "CurrentUser", mock.Anything)
}

func (suite *SessionStoreTestSuite) TestLoadUserWithoutTokenMakesNoCall() {
	require.NoError(suite.T(), suite.store.LoadUser(suite.ctx))

	state := suite.store.State()
	assert.False(suite.T(), state.IsAuthenticated)
	assert.False(suite.T(), state.IsLoading)
	suite.auth.AssertNotCalled(suite.T(), "CurrentUser", mock.Anything)
}

func (suite *SessionStoreTestSuite) TestLoadUserRestoresIdentity() {
	require.NoError(suite.T(), suite.tokens.SetItem(suite.ctx, models.AccessTokenKey, "a1"))
	suite.auth.On("CurrentUser", mock.Anything).Return(&models.User{ID: 1, Username: "anna"}, nil)

	require.NoError(suite.T(), suite.store.LoadUser(suite.ctx))
	assert.True(suite.T(), suite.store.State().IsAuthenticated)
	assert.Equal(suite.T(), "anna", suite.store.User().Username)
}

func (suite *SessionStoreTestSuite) TestLoadUserProfileFailurePurges() {
	require.NoError(suite.T(), suite.tokens.SetItem(suite.ctx, models.AccessTokenKey, "a1"))
	require.NoError(suite.T(), suite.tokens.SetItem(suite.ctx, models.RefreshTokenKey, "r1"))
	suite.auth.On("CurrentUser", mock.Anything).Return(nil, errors.New("connection refused"))

	require.NoError(suite.T(), suite.store.LoadUser(suite.ctx))
	assert.False(suite.T(), suite.store.State().IsAuthenticated)
	assert.False(suite.T(), suite.tokens.has(models.AccessTokenKey))
	assert.False(suite.T(), suite.tokens.has(models.RefreshTokenKey))
}

func (suite *SessionStoreTestSuite) TestLogoutResetsState() {
	suite.auth.On("Login", mock.Anything, mock.Anything).
		Return(&models.TokenResponse{AccessToken: "a1", RefreshToken: "r1"}, nil)
	suite.auth.On("CurrentUser", mock.Anything).Return(&models.User{ID: 1}, nil)
	suite.auth.On("Logout", mock.Anything).Return(nil)
	require.NoError(suite.T(), suite.store.Login(suite.ctx, "u", "p"))

	require.NoError(suite.T(), suite.store.Logout(suite.ctx))
	state := suite.store.State()
	assert.False(suite.T(), state.IsAuthenticated)
	assert.Nil(suite.T(), state.User)
}
