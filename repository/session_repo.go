package repository

import (
	"context"
	"daassist-web/dal"
	"daassist-web/models"
	"errors"
	"fmt"
	"sync"
	"time"

	"daassist-web/utils/logger"
)

const sessionKey = "session_id"

type SessionRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
	sealer *Sealer

	// serializes read-modify-write of a record's values
	mu sync.Mutex
}

// NewSessionRepository creates a new browser-session repository
func NewSessionRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *SessionRepository {
	return &SessionRepository{
		db:     db,
		config: cfg,
		logger: log,
		sealer: NewSealer(cfg.SessionSecret),
	}
}

func (r *SessionRepository) table() string {
	return r.config.SessionsTable()
}

// ForSession returns the token storage scoped to one browser session
func (r *SessionRepository) ForSession(sessionID string) TokenStorage {
	return &sessionTokens{repo: r, sessionID: sessionID}
}

// Get returns the stored record, or nil when the session was never persisted
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*models.SessionRecord, error) {
	record := &models.SessionRecord{}
	found, err := r.db.GetItem(ctx, r.table(), sessionKey, sessionID, record)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if !found {
		return nil, nil
	}
	return record, nil
}

// Touch refreshes last_seen and the storage TTL of a session
func (r *SessionRepository) Touch(ctx context.Context, sessionID string, now time.Time) error {
	return r.db.UpdateItem(ctx, r.table(), sessionKey, sessionID, map[string]interface{}{
		"last_seen":  now.UTC(),
		"expires_at": now.Add(r.config.SessionTTL).Unix(),
	})
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.db.DeleteItem(ctx, r.table(), sessionKey, sessionID); err != nil {
		r.logger.Errorf("Failed to delete session %s: %v", sessionID, err)
		return err
	}
	return nil
}

// ListIdle returns the sessions not seen since before
func (r *SessionRepository) ListIdle(ctx context.Context, before time.Time) ([]*models.SessionRecord, error) {
	var records []*models.SessionRecord
	if err := r.db.Scan(ctx, r.table(), &records); err != nil {
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}

	idle := make([]*models.SessionRecord, 0, len(records))
	for _, rec := range records {
		if rec.LastSeen.Before(before) {
			idle = append(idle, rec)
		}
	}
	return idle, nil
}

func (r *SessionRepository) getValue(ctx context.Context, sessionID, key string) (string, bool, error) {
	record, err := r.Get(ctx, sessionID)
	if err != nil || record == nil {
		return "", false, err
	}
	sealed, ok := record.Values[key]
	if !ok {
		return "", false, nil
	}

	value, err := r.sealer.Open(sealed)
	if errors.Is(err, ErrUnsealFailed) {
		// written with another secret; treat as absent
		r.logger.Warnf("Discarding unreadable %s for session %s", key, sessionID)
		return "", false, nil
	}
	return value, true, err
}

func (r *SessionRepository) setValue(ctx context.Context, sessionID, key, value string) error {
	sealed, err := r.sealer.Seal(value)
	if err != nil {
		return err
	}
	return r.mutate(ctx, sessionID, true, func(values map[string]string) {
		values[key] = sealed
	})
}

func (r *SessionRepository) removeValue(ctx context.Context, sessionID, key string) error {
	return r.mutate(ctx, sessionID, false, func(values map[string]string) {
		delete(values, key)
	})
}

// mutate applies a change to the stored values. Without create, a session
// that was never persisted is left alone.
func (r *SessionRepository) mutate(ctx context.Context, sessionID string, create bool, apply func(map[string]string)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, err := r.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if record == nil {
		if !create {
			return nil
		}
		record = &models.SessionRecord{SessionID: sessionID}
	}
	if record.Values == nil {
		record.Values = make(map[string]string)
	}
	apply(record.Values)

	now := time.Now()
	record.LastSeen = now.UTC()
	record.ExpiresAt = now.Add(r.config.SessionTTL).Unix()

	if err := r.db.PutItem(ctx, r.table(), record); err != nil {
		r.logger.Errorf("Failed to store session %s: %v", sessionID, err)
		return err
	}
	return nil
}

// sessionTokens implements TokenStorage for one session id
type sessionTokens struct {
	repo      *SessionRepository
	sessionID string
}

func (s *sessionTokens) GetItem(ctx context.Context, key string) (string, bool, error) {
	return s.repo.getValue(ctx, s.sessionID, key)
}

func (s *sessionTokens) SetItem(ctx context.Context, key, value string) error {
	return s.repo.setValue(ctx, s.sessionID, key, value)
}

func (s *sessionTokens) RemoveItem(ctx context.Context, key string) error {
	return s.repo.removeValue(ctx, s.sessionID, key)
}
