package services

import (
	"context"
	"daassist-web/models"
	"daassist-web/repository"
	"daassist-web/utils/logger"
	"fmt"
	"sync"
)

// SessionStore holds the authentication state of one browser session.
// Tokens live in the session's TokenStorage; user and flags live here.
type SessionStore struct {
	mu              sync.RWMutex
	auth            AuthAPI
	tokens          repository.TokenStorage
	logger          logger.Logger
	user            *models.User
	isAuthenticated bool
	isLoading       bool
}

// NewSessionStore creates a store in its initial loading state
func NewSessionStore(auth AuthAPI, tokens repository.TokenStorage, log logger.Logger) *SessionStore {
	return &SessionStore{
		auth:      auth,
		tokens:    tokens,
		logger:    log,
		isLoading: true,
	}
}

// Login exchanges credentials for tokens, persists both and loads the
// profile. On any failure the store is unauthenticated, no token is left in
// storage and the error is returned as produced.
func (s *SessionStore) Login(ctx context.Context, username, password string) error {
	tokens, err := s.auth.Login(ctx, models.LoginRequest{Username: username, Password: password})
	if err != nil {
		s.logger.Warnf("Login failed for %s: %v", username, err)
		s.purge(ctx)
		return err
	}

	if err := s.tokens.SetItem(ctx, models.AccessTokenKey, tokens.AccessToken); err != nil {
		s.purge(ctx)
		return fmt.Errorf("failed to store access token: %w", err)
	}
	if err := s.tokens.SetItem(ctx, models.RefreshTokenKey, tokens.RefreshToken); err != nil {
		s.purge(ctx)
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		s.logger.Warnf("Profile fetch after login failed for %s: %v", username, err)
		s.purge(ctx)
		return err
	}

	s.mu.Lock()
	s.user = user
	s.isAuthenticated = true
	s.isLoading = false
	s.mu.Unlock()

	s.logger.Infof("User %s logged in", user.Username)
	return nil
}

// Logout drops both tokens and the in-memory identity; no server call
func (s *SessionStore) Logout(ctx context.Context) error {
	err := s.auth.Logout(ctx)

	s.mu.Lock()
	s.user = nil
	s.isAuthenticated = false
	s.isLoading = false
	s.mu.Unlock()

	return err
}

// LoadUser restores the identity from a stored access token. Without a
// token no request is made. A failing profile fetch purges both tokens.
func (s *SessionStore) LoadUser(ctx context.Context) error {
	token, ok, err := s.tokens.GetItem(ctx, models.AccessTokenKey)
	if err != nil {
		s.setState(nil, false)
		return fmt.Errorf("failed to read access token: %w", err)
	}
	if !ok || token == "" {
		s.setState(nil, false)
		return nil
	}

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		s.logger.Warnf("Stored session is no longer valid: %v", err)
		s.purge(ctx)
		return nil
	}

	s.setState(user, true)
	return nil
}

// State returns a snapshot of the session state
func (s *SessionStore) State() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.SessionState{
		User:            s.user,
		IsAuthenticated: s.isAuthenticated,
		IsLoading:       s.isLoading,
	}
}

// User returns the authenticated user, nil when logged out
func (s *SessionStore) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *SessionStore) setState(user *models.User, authenticated bool) {
	s.mu.Lock()
	s.user = user
	s.isAuthenticated = authenticated
	s.isLoading = false
	s.mu.Unlock()
}

// purge removes both stored tokens and clears the state
func (s *SessionStore) purge(ctx context.Context) {
	for _, key := range []string{models.AccessTokenKey, models.RefreshTokenKey} {
		if err := s.tokens.RemoveItem(ctx, key); err != nil {
			s.logger.Errorf("Failed to remove %s: %v", key, err)
		}
	}
	s.setState(nil, false)
}
