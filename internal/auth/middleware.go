package auth

import (
	"net/http"

	dom "entryledger/internal/domain"

	"github.com/gin-gonic/gin"
)

const sessionCookieName = "session_id"

const contextKeyIdentity = "identity"

// IdentityFromContext returns the caller identity set by
// RequireSession. Empty if not set.
func IdentityFromContext(c *gin.Context) dom.Identity {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return ""
	}
	id, ok := v.(dom.Identity)
	if !ok {
		return ""
	}
	return id
}

// SetIdentity puts the caller identity in the request context. Used by
// RequireSession and by handler tests.
func SetIdentity(c *gin.Context, id dom.Identity) {
	c.Set(contextKeyIdentity, id)
}

// RequireSession returns a middleware that checks for a valid session
// cookie and sets the caller identity in context. If missing or
// invalid, responds with 401.
func RequireSession(sessions *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		identity, ok := sessions.GetIdentity(c.Request.Context(), sessionID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		SetIdentity(c, identity)
		c.Next()
	}
}
