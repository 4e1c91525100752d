package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwalsh/bookshelf/internal/auth"
)

// ProfileController serves the account pages. Profile routes carry a
// username path segment for URL compatibility, but the rendered profile
// is always derived from the session, never from the URL.
type ProfileController struct {
	auth     *auth.Service
	sessions *auth.SessionManager
}

func NewProfileController(authService *auth.Service, sessions *auth.SessionManager) *ProfileController {
	return &ProfileController{
		auth:     authService,
		sessions: sessions,
	}
}

// ProfilePage shows the session user's own profile.
func (pc *ProfileController) ProfilePage(c *gin.Context) {
	user, ok := currentUser(c, pc.auth, pc.sessions)
	if !ok {
		return
	}
	render(c, pc.sessions, http.StatusOK, "profile.html", gin.H{"Username": user.Username})
}

// EditProfilePage renders the account edit form.
func (pc *ProfileController) EditProfilePage(c *gin.Context) {
	user, ok := currentUser(c, pc.auth, pc.sessions)
	if !ok {
		return
	}
	render(c, pc.sessions, http.StatusOK, "profile_edit.html", gin.H{"Username": user.Username})
}

// EditProfile replaces the account document and forces a fresh login.
// Leaving the password field blank keeps the current password.
func (pc *ProfileController) EditProfile(c *gin.Context) {
	user, ok := currentUser(c, pc.auth, pc.sessions)
	if !ok {
		return
	}

	_, err := pc.auth.UpdateProfile(
		c.Request.Context(),
		user.Username,
		c.PostForm("username"),
		c.PostForm("password"),
	)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			render(c, pc.sessions, http.StatusOK, "profile_edit.html", gin.H{
				"Error":    "Username already exists, choose another",
				"Username": user.Username,
			})
		case errors.Is(err, auth.ErrUsernameRequired), errors.Is(err, auth.ErrPasswordTooLong):
			render(c, pc.sessions, http.StatusOK, "profile_edit.html", gin.H{
				"Error":    err.Error(),
				"Username": user.Username,
			})
		default:
			respondInternalError(c, err, "update profile")
		}
		return
	}

	pc.sessions.SignOut(c.Request)
	redirectWithFlash(c, pc.sessions, "/login", "Update Successful!")
}

// DeleteProfile removes the session user's account and ends the session.
func (pc *ProfileController) DeleteProfile(c *gin.Context) {
	user, ok := currentUser(c, pc.auth, pc.sessions)
	if !ok {
		return
	}

	if err := pc.auth.DeleteProfile(c.Request.Context(), user.Username); err != nil {
		respondInternalError(c, err, "delete profile")
		return
	}

	pc.sessions.SignOut(c.Request)
	redirectWithFlash(c, pc.sessions, "/get_books", "Profile Successfully Deleted")
}
