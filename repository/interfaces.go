package repository

import (
	"context"
	"daassist-web/models"
	"time"
)

// TokenStorage is the key-value storage of one browser session.
// Only models.AccessTokenKey and models.RefreshTokenKey are ever written.
type TokenStorage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// SessionRepositoryInterface defines the contract for browser-session persistence
type SessionRepositoryInterface interface {
	ForSession(sessionID string) TokenStorage
	Get(ctx context.Context, sessionID string) (*models.SessionRecord, error)
	Touch(ctx context.Context, sessionID string, now time.Time) error
	Delete(ctx context.Context, sessionID string) error
	ListIdle(ctx context.Context, before time.Time) ([]*models.SessionRecord, error)
}

// RepositoryContainerInterface defines the contract for the repository container
type RepositoryContainerInterface interface {
	GetSessionRepository() SessionRepositoryInterface
}
