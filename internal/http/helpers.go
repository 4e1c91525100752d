package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwalsh/bookshelf/internal/auth"
	"github.com/mwalsh/bookshelf/internal/entities"
)

// render wraps c.HTML, injecting the data every page needs: the pending
// flash message, the session user and the CSRF token.
func render(c *gin.Context, sm *auth.SessionManager, status int, template string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flash"] = sm.PopFlash(c.Request)
	data["SessionUser"] = sm.Username(c.Request)
	data["CSRFToken"] = auth.GetCSRFToken(c)
	if _, ok := data["Error"]; !ok {
		data["Error"] = c.Query("error")
	}
	c.HTML(status, template, data)
}

// redirectWithFlash queues a one-shot message and redirects.
func redirectWithFlash(c *gin.Context, sm *auth.SessionManager, location, message string) {
	sm.Flash(c.Request, message)
	c.Redirect(http.StatusFound, location)
}

// respondInternalError logs the error and renders a plain 500. The
// underlying error is never exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.String(http.StatusInternalServerError, "internal server error")
}

// currentUser resolves the session username to its stored account. A
// stale session whose account is gone is signed out and sent to login
// instead of faulting mid-handler.
func currentUser(c *gin.Context, svc *auth.Service, sm *auth.SessionManager) (*entities.User, bool) {
	username := sm.Username(c.Request)
	if username == "" {
		redirectWithFlash(c, sm, "/login", "Please log in to continue")
		return nil, false
	}

	user, err := svc.GetByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			sm.SignOut(c.Request)
			redirectWithFlash(c, sm, "/login", "Please log in to continue")
			return nil, false
		}
		respondInternalError(c, err, "resolve session user")
		return nil, false
	}
	return user, true
}
