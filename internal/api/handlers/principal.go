package handlers

import (
	"github.com/gin-gonic/gin"

	"example.com/backstage/services/campaign/internal/domain"
)

// Context keys
const (
	userIDKey       = "user_id"
	capabilitiesKey = "capabilities"
)

// SetPrincipal stores the authenticated caller on the request context
func SetPrincipal(c *gin.Context, userID string, caps domain.Capabilities) {
	c.Set(userIDKey, userID)
	c.Set(capabilitiesKey, caps)
}

// CurrentUser returns the authenticated user id, or "" before authentication
func CurrentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// CallerCapabilities returns the caller's capabilities. Unauthenticated
// requests get those of the default role.
func CallerCapabilities(c *gin.Context) domain.Capabilities {
	caps, _ := c.Get(capabilitiesKey)
	resolved, ok := caps.(domain.Capabilities)
	if !ok {
		return domain.CapabilitiesFor(domain.DefaultRole)
	}
	return resolved
}

// RequireCapability rejects callers whose role does not grant want
func RequireCapability(want domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CallerCapabilities(c).Allows(want) {
			WriteError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}
