package middelware

import (
	"daassist-web/models"
	"daassist-web/services"
	"daassist-web/utils/logger"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Keys of the values stored in the gin context
const (
	ContextSessionKey = "browser_session"
	ContextUserKey    = "user_id"
)

// SessionMiddleware binds every request to a browser session. The session id
// travels in an HS256-signed cookie; tokens of the remote API never leave
// the server.
type SessionMiddleware struct {
	config  *models.Config
	manager services.SessionManagerInterface
	logger  logger.Logger
	now     func() time.Time
}

func NewSessionMiddleware(cfg *models.Config, manager services.SessionManagerInterface, log logger.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		config:  cfg,
		manager: manager,
		logger:  log,
		now:     time.Now,
	}
}

// SignSession builds the cookie value for a session id
func (m *SessionMiddleware) SignSession(sessionID string) (string, error) {
	now := m.now()
	claims := models.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.AppName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}
	return signed, nil
}

// ParseSession validates a cookie value and returns its claims
func (m *SessionMiddleware) ParseSession(value string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.SessionSecret), nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.SessionID == "" {
		return nil, fmt.Errorf("invalid session cookie")
	}
	return claims, nil
}

// Session resolves the browser session of the request. A missing, forged or
// expired cookie yields a new session and a new cookie. The cookie is also
// renewed once half of its lifetime has passed.
func (m *SessionMiddleware) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := ""
		var claims *models.SessionClaims
		if value, err := c.Cookie(m.config.SessionCookieName); err == nil && value != "" {
			parsed, err := m.ParseSession(value)
			if err != nil {
				m.logger.Debugf("Ignoring session cookie: %v", err)
			} else {
				claims = parsed
				sessionID = parsed.SessionID
			}
		}

		sess, err := m.manager.Resolve(c.Request.Context(), sessionID)
		if err != nil {
			m.logger.Errorf("Failed to resolve browser session: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.APIResponse{
				Status:  "error",
				Code:    http.StatusInternalServerError,
				Message: "Sessione non disponibile",
				Error: &models.APIError{
					Type:    models.ErrorTypeInternal,
					Details: err.Error(),
				},
			})
			return
		}

		if sess.ID != sessionID || m.needsRenewal(claims) {
			if err := m.setCookie(c, sess.ID); err != nil {
				m.logger.Errorf("Failed to issue session cookie: %v", err)
			}
		}

		c.Set(ContextSessionKey, sess)
		if user := sess.Store.User(); user != nil {
			c.Set(ContextUserKey, user.ID)
		}
		c.Next()
	}
}

func (m *SessionMiddleware) needsRenewal(claims *models.SessionClaims) bool {
	if claims == nil || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.Sub(m.now()) < m.config.SessionTTL/2
}

func (m *SessionMiddleware) setCookie(c *gin.Context, sessionID string) error {
	value, err := m.SignSession(sessionID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.config.SessionCookieName, value, int(m.config.SessionTTL.Seconds()), "/", "", m.config.SecureCookies, true)
	return nil
}

// RequireAuth rejects requests whose session is not logged in
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil || !sess.Store.State().IsAuthenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.APIResponse{
				Status:  "error",
				Code:    http.StatusUnauthorized,
				Message: "Accesso richiesto",
				Error: &models.APIError{
					Type:    models.ErrorTypeAuthentication,
					Details: "login required",
				},
			})
			return
		}
		c.Next()
	}
}

// GetSession returns the browser session bound by Session, nil outside it
func GetSession(c *gin.Context) *services.BrowserSession {
	value, ok := c.Get(ContextSessionKey)
	if !ok {
		return nil
	}
	sess, _ := value.(*services.BrowserSession)
	return sess
}
