package middleware

import (
	"log/slog"
	"strings"

	"pod-booking-core/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthMiddleware attaches an optional user identity to the request. Tokens
// are issued by the external auth service; this core only verifies them to
// link holds to a user account. Booking always works anonymously.
type AuthMiddleware struct {
	secret []byte
}

const ctxUserIDKey = "user_id"

func NewAuthMiddleware(cfg config.Config) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(cfg.JWT.Secret)}
}

func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(m.secret) == 0 || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		token := strings.TrimSpace(authHeader[len("Bearer "):])

		userID, err := m.parseSubject(token)
		if err != nil {
			slog.Warn("token validation failed, continuing anonymously", "error", err.Error())
			c.Next()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func (m *AuthMiddleware) parseSubject(token string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return uuid.Nil, err
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(sub)
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
