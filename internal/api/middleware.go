package api

import (
	"errors"
	"net/http"
	"strings"

	"alphacloud/assessment-portal/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Constants for context keys
const (
	ContextClientIDKey   = "clientID"
	ContextUsernameKey   = "username"
	ContextAccessTypeKey = "accessType"
	ContextRequestIDKey  = "requestID"

	requestIDHeader = "X-Request-ID"
)

// RequestIDMiddleware tags every request with an id for log correlation.
// An incoming X-Request-ID is trusted and propagated; otherwise a fresh
// one is generated.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// TokenAuthMiddleware creates a Gin middleware that decodes the bearer
// token through the configured codec and stores its claims in the
// context for downstream handlers.
func TokenAuthMiddleware(codec auth.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := codec.Decode(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				respondError(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Token has expired")
			} else {
				respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			}
			return
		}

		c.Set(ContextClientIDKey, claims.ClientID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Set(ContextAccessTypeKey, claims.AccessType)
		c.Next()
	}
}

// Helper to get the client ID set by TokenAuthMiddleware.
func getClientIDFromContext(c *gin.Context) (string, error) {
	raw, exists := c.Get(ContextClientIDKey)
	if !exists {
		return "", errors.New("client ID not found in context")
	}
	clientID, ok := raw.(string)
	if !ok || clientID == "" {
		return "", errors.New("invalid client ID in context")
	}
	return clientID, nil
}
