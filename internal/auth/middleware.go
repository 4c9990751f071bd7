package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context keys set by the middleware for downstream handlers.
const (
	ContextKeyAccountID = "auth_account_id"
)

// RequireSession aborts requests that carry no signed-in session. The
// signed-in account id is exposed on the gin context.
func RequireSession(sm *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := sm.AccountID(c.Request)
		if accountID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(ContextKeyAccountID, accountID)
		c.Next()
	}
}

// GetAccountID extracts the signed-in account's uuid from the gin
// context. Returns "" for unauthenticated requests.
func GetAccountID(c *gin.Context) string {
	if id, ok := c.Get(ContextKeyAccountID); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
