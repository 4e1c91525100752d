package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mwalsh/bookshelf/internal/auth"
	"github.com/mwalsh/bookshelf/internal/config"
	"github.com/mwalsh/bookshelf/internal/database"
	"github.com/mwalsh/bookshelf/internal/database/books"
	"github.com/mwalsh/bookshelf/internal/database/users"
	http_controllers "github.com/mwalsh/bookshelf/internal/http"
)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutting down, waiting up to %v for open requests", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the store, session manager, auth service and router
// together and serves.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookshelf v%s", version)

	ctx := context.Background()

	db, err := database.NewDatabase(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	sessionManager := auth.NewSessionManager(db.DB, cfg.Auth)
	authService := auth.NewService(users.NewRepository(db), cfg.Auth)

	routerCfg := http_controllers.RouterConfig{
		Books:          books.NewRepository(db),
		AuthService:    authService,
		SessionManager: sessionManager,
		AuthMiddleware: auth.NewMiddleware(sessionManager),
		Health:         db,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		CSRFSecret:     resolveCSRFSecret(cfg.Auth.SessionSecret),
		SecureCookies:  cfg.Auth.SecureCookies,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg)
}

// resolveCSRFSecret decodes the configured secret, or generates an
// ephemeral one so the app still runs without SECRET_KEY set.
func resolveCSRFSecret(secret string) []byte {
	if secret != "" {
		if decoded, err := hex.DecodeString(secret); err == nil {
			return decoded
		}
		// Not hex, use as raw bytes
		return []byte(secret)
	}

	generated, err := auth.GenerateSessionSecret()
	if err != nil {
		log.Fatalf("Failed to generate session secret: %v", err)
	}
	log.Printf("Generated session secret (set SECRET_KEY to persist)")
	decoded, _ := hex.DecodeString(generated)
	return decoded
}
