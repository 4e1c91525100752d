package http

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mwalsh/bookshelf/internal/auth"
	"github.com/mwalsh/bookshelf/internal/entities"
)

// BookStore defines the catalogue operations the controllers need.
type BookStore interface {
	List(ctx context.Context) ([]entities.Book, error)
	Search(ctx context.Context, query string) ([]entities.Book, error)
	GetByTitle(ctx context.Context, title string) (*entities.Book, error)
	Insert(ctx context.Context, book *entities.Book) error
	Replace(ctx context.Context, book *entities.Book) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Pinger reports store connectivity for health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig carries all router dependencies, improving testability
// and keeping the constructor signature stable.
type RouterConfig struct {
	Books          BookStore
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	Health         Pinger
	TemplatesPath  string
	StaticPath     string
	CSRFSecret     []byte
	SecureCookies  bool
	Version        string
}
