package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// contextKeyCSRFToken is the gin context key the middleware stores the
// per-request token under.
const contextKeyCSRFToken = "csrf_token"

// CSRFMiddleware wraps gorilla/csrf for gin. Safe methods pass through
// untouched; form posts must carry the token rendered into each form.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		passed := false
		handler := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Set(contextKeyCSRFToken, csrf.Token(r))
			// The session middleware runs after this and layers its
			// context on top of the request csrf.Protect replaced.
			c.Request = r
			c.Next()
		}))
		handler.ServeHTTP(c.Writer, c.Request)

		// On rejection gorilla/csrf writes the response itself and never
		// calls the inner handler; stop the chain so the route does not
		// run anyway.
		if !passed {
			c.Abort()
		}
	}
}

// csrfErrorHandler sends form submitters back to where they came from
// with a user-readable error instead of a bare 403.
func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	referer := r.Referer()
	if referer != "" {
		separator := "?"
		if strings.Contains(referer, "?") {
			separator = "&"
		}
		http.Redirect(w, r, referer+separator+"error=Session+expired.+Please+try+again.", http.StatusSeeOther)
		return
	}
	http.Error(w, "Forbidden - CSRF token invalid or missing", http.StatusForbidden)
}

// GetCSRFToken retrieves the CSRF token stashed by the middleware.
func GetCSRFToken(c *gin.Context) string {
	if token, exists := c.Get(contextKeyCSRFToken); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}
