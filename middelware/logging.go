package middelware

import (
	"daassist-web/models"
	"daassist-web/utils/logger"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware logs requests and recovers from panics
type LoggingMiddleware struct {
	logger    logger.Logger
	skipPaths []string
}

// NewLoggingMiddleware creates a request logger that stays quiet for the
// given path suffixes (health checks)
func NewLoggingMiddleware(log logger.Logger, skipPaths ...string) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger:    log,
		skipPaths: skipPaths,
	}
}

// StructuredLogger logs one line per request with its fields
func (m *LoggingMiddleware) StructuredLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if m.skip(path) && c.Writer.Status() < http.StatusBadRequest {
			return
		}

		fields := logger.Fields{
			"method":     c.Request.Method,
			"path":       path,
			"query":      raw,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"ip":         c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		}
		if userID, ok := c.Get(ContextUserKey); ok {
			fields["user_id"] = userID
		}
		if sess := GetSession(c); sess != nil {
			fields["session_id"] = sess.ID
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		entry := m.logger.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("HTTP request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("HTTP request rejected")
		default:
			entry.Info("HTTP request completed")
		}
	}
}

func (m *LoggingMiddleware) skip(path string) bool {
	for _, p := range m.skipPaths {
		if strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}

// Recovery turns a panic into a 500 envelope
func (m *LoggingMiddleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(gin.DefaultErrorWriter, func(c *gin.Context, recovered interface{}) {
		m.logger.Errorf("Panic recovered: %v", recovered)

		c.AbortWithStatusJSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Errore interno",
			Error: &models.APIError{
				Type:    models.ErrorTypeInternal,
				Details: "An unexpected error occurred",
			},
		})
	})
}
