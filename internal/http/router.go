package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mwalsh/bookshelf/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before the session middleware so the session
	// context is layered on top of the request csrf.Protect replaces.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	router.Use(cfg.SessionManager.LoadAndSave())

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	if cfg.TemplatesPath != "" {
		router.LoadHTMLGlob(cfg.TemplatesPath + "/*.html")
	}
	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	authController := NewAuthController(cfg.AuthService, cfg.SessionManager)
	authController.RegisterRoutes(router)

	booksController := NewBooksController(cfg.Books, cfg.AuthService, cfg.SessionManager)
	profileController := NewProfileController(cfg.AuthService, cfg.SessionManager)
	health := NewHealthController(cfg.Health, cfg.Version)

	router.GET("/health", health.Status)

	// Catalogue pages
	router.GET("/", booksController.BooksPage)
	router.GET("/get_books", booksController.BooksPage)
	router.GET("/about", booksController.AboutPage)
	router.POST("/search", booksController.SearchBooks)

	router.GET("/book_add", booksController.AddBookPage)
	router.POST("/book_add", booksController.AddBook)
	router.GET("/book_edit/:book_title", booksController.EditBookPage)
	router.POST("/book_edit/:book_title", booksController.EditBook)
	router.GET("/book_delete/:book_id", booksController.DeleteBook)

	// Account pages
	router.GET("/profile/:username", profileController.ProfilePage)
	router.GET("/profile_edit/:username", profileController.EditProfilePage)
	router.POST("/profile_edit/:username", profileController.EditProfile)
	router.GET("/profile_delete", profileController.DeleteProfile)

	return router
}
