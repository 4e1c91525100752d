package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mwalsh/bookshelf/internal/config"
	"github.com/mwalsh/bookshelf/internal/database"
	"github.com/mwalsh/bookshelf/internal/entities"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidCredentials = errors.New("incorrect username and/or password")
)

// UserStore defines the persistence operations the service needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entities.User, error)
	Insert(ctx context.Context, user *entities.User) error
	Replace(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Service handles account management and credential checks.
type Service struct {
	users  UserStore
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(users UserStore, cfg config.Auth) *Service {
	return &Service{
		users:  users,
		config: cfg,
	}
}

// Register creates a new account. Usernames are stored lowercased so
// later lookups are case-insensitive.
func (s *Service) Register(ctx context.Context, username, password string) (*entities.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate validates credentials and returns the user. Unknown
// usernames and wrong passwords are indistinguishable to the caller so
// accounts cannot be enumerated.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*entities.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

// GetByUsername retrieves an account, case-insensitively.
func (s *Service) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile replaces the account document. A blank newPassword
// keeps the current hash rather than re-hashing an empty string.
func (s *Service) UpdateProfile(ctx context.Context, current, newUsername, newPassword string) (*entities.User, error) {
	current = strings.ToLower(current)
	newUsername = strings.ToLower(strings.TrimSpace(newUsername))
	if newUsername == "" {
		return nil, ErrUsernameRequired
	}

	user, err := s.users.GetByUsername(ctx, current)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if newUsername != current {
		_, err := s.users.GetByUsername(ctx, newUsername)
		if err == nil {
			return nil, ErrUserExists
		}
		if !errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("failed to check existing user: %w", err)
		}
	}

	user.Username = newUsername
	if newPassword != "" {
		hash, err := HashPassword(newPassword, s.config.BcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Replace(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteProfile removes the account for the given username.
func (s *Service) DeleteProfile(ctx context.Context, username string) error {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
