package services

import (
	"context"
	"daassist-web/apiclient"
	"daassist-web/models"
	"daassist-web/repository"
	"daassist-web/utils"
	"daassist-web/utils/logger"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// touchInterval throttles last-seen writes to storage
const touchInterval = time.Minute

// BrowserSession is everything the BFF keeps for one browser
type BrowserSession struct {
	ID               string
	Store            *SessionStore
	Backend          *Backend
	Pages            *Pages
	TicketForm       *TicketForm
	InterventionForm *InterventionForm

	tokens   repository.TokenStorage
	mu       sync.Mutex
	lastSeen time.Time
	touched  time.Time
}

// LastSeen returns the time of the last request of this session
func (b *BrowserSession) LastSeen() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSeen
}

// BackendFactory builds the API resources of a session over its token storage
type BackendFactory func(tokens repository.TokenStorage) *Backend

// APIBackendFactory builds backends sharing one HTTP transport
func APIBackendFactory(cfg *models.Config, httpClient *http.Client, log logger.Logger) BackendFactory {
	return func(tokens repository.TokenStorage) *Backend {
		return NewBackend(apiclient.NewClient(cfg.APIBaseURL, httpClient, tokens, log))
	}
}

type SessionManager struct {
	mu         sync.Mutex
	sessions   map[string]*BrowserSession
	repo       repository.SessionRepositoryInterface
	newBackend BackendFactory
	config     *models.Config
	logger     logger.Logger
	now        func() time.Time
}

// NewSessionManager creates an empty browser-session registry
func NewSessionManager(repo repository.SessionRepositoryInterface, newBackend BackendFactory, cfg *models.Config, log logger.Logger) *SessionManager {
	return &SessionManager{
		sessions:   make(map[string]*BrowserSession),
		repo:       repo,
		newBackend: newBackend,
		config:     cfg,
		logger:     log,
		now:        time.Now,
	}
}

// Resolve returns the session with the given id. A session known only to
// storage (after a restart) is restored; an unknown, expired or empty id
// yields a new session with a fresh id. New sessions run LoadUser once.
func (m *SessionManager) Resolve(ctx context.Context, sessionID string) (*BrowserSession, error) {
	now := m.now()

	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if ok {
		m.seen(ctx, sess, now)
		return sess, nil
	}

	id := ""
	if sessionID != "" {
		record, err := m.repo.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if record != nil && !record.LastSeen.Before(now.Add(-m.config.SessionTTL)) {
			id = sessionID
		}
	}
	if id == "" {
		id = utils.GenerateUUID()
	}

	sess = m.newSession(id, now)
	if err := sess.Store.LoadUser(ctx); err != nil {
		m.logger.Warnf("Failed to load user for session %s: %v", id, err)
	}

	m.mu.Lock()
	if existing, ok := m.sessions[id]; ok {
		sess = existing
	} else {
		m.sessions[id] = sess
	}
	m.mu.Unlock()

	return sess, nil
}

func (m *SessionManager) newSession(id string, now time.Time) *BrowserSession {
	tokens := m.repo.ForSession(id)
	backend := m.newBackend(tokens)
	return &BrowserSession{
		ID:               id,
		Store:            NewSessionStore(backend.Auth, tokens, m.logger),
		Backend:          backend,
		Pages:            NewPages(backend, m.logger),
		TicketForm:       NewTicketForm(backend, m.logger),
		InterventionForm: NewInterventionForm(backend, m.logger),
		tokens:           tokens,
		lastSeen:         now,
	}
}

// seen records a request; authenticated sessions also refresh storage
func (m *SessionManager) seen(ctx context.Context, sess *BrowserSession, now time.Time) {
	sess.mu.Lock()
	sess.lastSeen = now
	due := now.Sub(sess.touched) >= touchInterval
	if due {
		sess.touched = now
	}
	sess.mu.Unlock()

	if due && sess.Store.State().IsAuthenticated {
		if err := m.repo.Touch(ctx, sess.ID, now); err != nil {
			m.logger.Warnf("Failed to touch session %s: %v", sess.ID, err)
		}
	}
}

// Sweep drops sessions idle for longer than the session TTL, from memory
// and from storage, and logs out sessions whose access token has expired.
// It returns how many sessions were affected.
func (m *SessionManager) Sweep(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-m.config.SessionTTL)

	var idle, active []*BrowserSession
	m.mu.Lock()
	for id, sess := range m.sessions {
		if sess.LastSeen().Before(cutoff) {
			idle = append(idle, sess)
			delete(m.sessions, id)
		} else {
			active = append(active, sess)
		}
	}
	m.mu.Unlock()

	swept := make(map[string]bool)
	for _, sess := range idle {
		swept[sess.ID] = true
		if err := m.repo.Delete(ctx, sess.ID); err != nil {
			m.logger.Warnf("Failed to delete idle session %s: %v", sess.ID, err)
		}
	}

	loggedOut := 0
	for _, sess := range active {
		if !sess.Store.State().IsAuthenticated {
			continue
		}
		token, ok, err := sess.tokens.GetItem(ctx, models.AccessTokenKey)
		if err != nil || !ok || !TokenExpired(token, now) {
			continue
		}
		if err := sess.Store.Logout(ctx); err != nil {
			m.logger.Warnf("Failed to log out expired session %s: %v", sess.ID, err)
			continue
		}
		loggedOut++
	}

	records, err := m.repo.ListIdle(ctx, cutoff)
	if err != nil {
		return len(swept) + loggedOut, err
	}
	for _, record := range records {
		if swept[record.SessionID] {
			continue
		}
		if err := m.repo.Delete(ctx, record.SessionID); err != nil {
			m.logger.Warnf("Failed to delete idle session %s: %v", record.SessionID, err)
			continue
		}
		swept[record.SessionID] = true
	}

	if n := len(swept) + loggedOut; n > 0 {
		m.logger.Infof("Swept %d idle sessions, logged out %d expired", len(swept), loggedOut)
	}
	return len(swept) + loggedOut, nil
}

// Count returns the number of sessions held in memory
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// TokenExpired reads the exp claim of a JWT access token without verifying
// it. Tokens that are not JWTs or carry no exp never expire here.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(now)
}
