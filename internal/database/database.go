package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sentinel errors shared by the collection repositories.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

const connectTimeout = 10 * time.Second

// Database holds the Mongo client and the application database handle.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func NewDatabase(ctx context.Context, uri, name string) (*Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Connected to database %q", name)

	return &Database{Client: client, DB: client.Database(name)}, nil
}

func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}

// Ping reports store connectivity, used by the health endpoint.
func (d *Database) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, nil)
}

// EnsureIndexes creates the text index backing book search and the
// unique username index. Safe to call on every startup.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	_, err := d.DB.Collection("books").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "book_title", Value: "text"},
			{Key: "book_author", Value: "text"},
			{Key: "book_description", Value: "text"},
		},
		Options: options.Index().SetName("books_text"),
	})
	if err != nil {
		return fmt.Errorf("failed to create books text index: %w", err)
	}

	_, err = d.DB.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetName("users_username_unique").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create username index: %w", err)
	}

	return nil
}
