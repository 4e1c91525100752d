package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwalsh/bookshelf/internal/auth"
)

// AuthController handles the register, login and logout pages.
type AuthController struct {
	service  *auth.Service
	sessions *auth.SessionManager
}

func NewAuthController(service *auth.Service, sessions *auth.SessionManager) *AuthController {
	return &AuthController{
		service:  service,
		sessions: sessions,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/register", ac.RegisterPage)
	router.POST("/register", ac.Register)
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.GET("/logout", ac.Logout)
}

// RegisterPage renders the registration form.
func (ac *AuthController) RegisterPage(c *gin.Context) {
	if ac.sessions.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, ac.sessions, http.StatusOK, "register.html", nil)
}

// Register creates the account and signs the new user in.
func (ac *AuthController) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := ac.service.Register(c.Request.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			render(c, ac.sessions, http.StatusOK, "register.html", gin.H{
				"Error":    "Username already exists",
				"Username": username,
			})
		case errors.Is(err, auth.ErrUsernameRequired),
			errors.Is(err, auth.ErrPasswordRequired),
			errors.Is(err, auth.ErrPasswordTooLong):
			render(c, ac.sessions, http.StatusOK, "register.html", gin.H{
				"Error":    err.Error(),
				"Username": username,
			})
		default:
			respondInternalError(c, err, "register")
		}
		return
	}

	if err := ac.sessions.SignIn(c.Request, user.Username); err != nil {
		respondInternalError(c, err, "create session")
		return
	}

	redirectWithFlash(c, ac.sessions, "/profile/"+user.Username, "Registration Successful!")
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if ac.sessions.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, ac.sessions, http.StatusOK, "login.html", nil)
}

// Login checks credentials. Unknown users and wrong passwords produce
// the same message so usernames cannot be enumerated.
func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := ac.service.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			render(c, ac.sessions, http.StatusOK, "login.html", gin.H{
				"Error":    "Incorrect Username and/or Password",
				"Username": username,
			})
			return
		}
		respondInternalError(c, err, "login")
		return
	}

	if err := ac.sessions.SignIn(c.Request, user.Username); err != nil {
		respondInternalError(c, err, "create session")
		return
	}

	redirectWithFlash(c, ac.sessions, "/get_books", "Welcome, "+user.Username)
}

// Logout clears the login and leaves a goodbye flash for the next page.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.sessions.SignOut(c.Request)
	redirectWithFlash(c, ac.sessions, "/login", "You have been logged out")
}
