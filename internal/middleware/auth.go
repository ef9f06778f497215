package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
)

const userIDKey = "user_id"

// TokenVerifier turns a bearer token into the id of the user it was issued
// to.
type TokenVerifier interface {
	ParseToken(token string) (uuid.UUID, error)
}

func unauthorized(c *gin.Context, logger zerolog.Logger, message string, err error) {
	event := logger.Warn()
	if err != nil {
		event = event.Err(err)
	}
	event.
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("client_ip", c.ClientIP()).
		Int("status", http.StatusUnauthorized).
		Msg(message)

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}

// Authenticate requires an "Authorization: Bearer <token>" header and stores
// the caller's id in the context. It keeps no session state.
func Authenticate(verifier TokenVerifier, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, logger, "Authorization header is required", nil)
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			unauthorized(c, logger, "Authorization header must use Bearer token", nil)
			return
		}

		userID, err := verifier.ParseToken(strings.TrimSpace(token))
		if err != nil {
			unauthorized(c, logger, "Invalid or expired token", err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the caller stored by Authenticate.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
