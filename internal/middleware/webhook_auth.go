package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// WebhookAuthMiddleware authenticates gateway adapters posting normalized
// payment events. Callers send the shared API key in X-Api-Key; only its
// bcrypt hash lives in configuration.
func WebhookAuthMiddleware(apiKeyHash string, callerName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		if apiKeyHash == "" {
			logger.Error("Webhook API key hash not configured, rejecting request")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Webhook authentication not configured"})
			return
		}

		apiKey := c.GetHeader("X-Api-Key")
		if apiKey == "" {
			logger.Warn("X-Api-Key header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "X-Api-Key header required"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(apiKeyHash), []byte(apiKey)); err != nil {
			logger.Warn("Webhook API key mismatch")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), actorIDKey, callerName)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
