package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader identifies the anonymous browsing session a hold belongs to.
// Sessions exist before any login, so this is a plain client-generated UUID,
// not an authentication credential.
const SessionHeader = "X-Session-ID"

const ctxSessionIDKey = "session_id"

func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SessionHeader)
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "X-Session-ID header required",
			})
			c.Abort()
			return
		}

		sessionID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid X-Session-ID format",
			})
			c.Abort()
			return
		}

		c.Set(ctxSessionIDKey, sessionID)
		c.Next()
	}
}

// OptionalSession parses the session header when present but never aborts;
// availability queries work without one, they just lose self-exclusion.
func OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SessionHeader)
		if raw == "" {
			c.Next()
			return
		}
		if sessionID, err := uuid.Parse(raw); err == nil {
			c.Set(ctxSessionIDKey, sessionID)
		}
		c.Next()
	}
}

func GetSessionID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxSessionIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
