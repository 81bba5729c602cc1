package session

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CookieName = "session_id"
	ContextKey = "sessionID"

	cookieMaxAge = 30 * 24 * 3600
)

// Middleware makes sure every request carries a session id cookie and
// exposes it on the gin context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(CookieName)
		if err != nil || sid == "" {
			sid = uuid.New().String()
			c.SetCookie(CookieName, sid, cookieMaxAge, "/", "", false, true)
		}

		c.Set(ContextKey, sid)
		c.Next()
	}
}

// FromContext returns the request's session id.
func FromContext(c *gin.Context) string {
	sid, _ := c.Get(ContextKey)
	if s, ok := sid.(string); ok {
		return s
	}
	return ""
}
