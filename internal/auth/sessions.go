package auth

import (
	"net/http"

	"github.com/alexedwards/scs/mongodbstore"
	"github.com/alexedwards/scs/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mwalsh/bookshelf/internal/config"
)

// Session data keys
const (
	SessionKeyUser  = "user"
	SessionKeyFlash = "flash"
)

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a session manager backed by the given Mongo
// database (a "sessions" collection managed by the store).
func NewSessionManager(db *mongo.Database, cfg config.Auth) *SessionManager {
	sm := scs.New()
	sm.Store = mongodbstore.New(db)

	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}
}

// SignIn renews the session token and stores the username. Renewal
// prevents session fixation.
func (sm *SessionManager) SignIn(r *http.Request, username string) error {
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}
	sm.Put(r.Context(), SessionKeyUser, username)
	return nil
}

// SignOut drops the login marker. Other session data, such as a pending
// flash message, survives until it is shown.
func (sm *SessionManager) SignOut(r *http.Request) {
	sm.Remove(r.Context(), SessionKeyUser)
}

// Username returns the logged-in username, or "" for anonymous requests.
func (sm *SessionManager) Username(r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyUser)
}

// IsAuthenticated reports whether the request carries a login.
func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	return sm.Username(r) != ""
}

// Flash queues a one-shot notice shown on the next rendered page.
func (sm *SessionManager) Flash(r *http.Request, message string) {
	sm.Put(r.Context(), SessionKeyFlash, message)
}

// PopFlash returns and clears the pending flash message, if any.
func (sm *SessionManager) PopFlash(r *http.Request) string {
	return sm.PopString(r.Context(), SessionKeyFlash)
}
