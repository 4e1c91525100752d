package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// publicPaths lists route prefixes that never require a login.
var publicPaths = []string{
	"/",
	"/get_books",
	"/about",
	"/search",
	"/login",
	"/register",
	"/health",
	"/static",
	"/favicon.ico",
}

// Middleware redirects anonymous requests away from authenticated pages.
type Middleware struct {
	sessionManager *SessionManager
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(sm *SessionManager) *Middleware {
	return &Middleware{sessionManager: sm}
}

// Handler returns the gin handler enforcing the login requirement.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isPublicPath(c.Request.URL.Path) || m.sessionManager.IsAuthenticated(c.Request) {
			c.Next()
			return
		}

		m.sessionManager.Flash(c.Request, "Please log in to continue")
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
