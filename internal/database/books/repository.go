// Package books provides database operations for the book catalogue.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	all, err := repo.List(ctx)
package books

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mwalsh/bookshelf/internal/database"
	"github.com/mwalsh/bookshelf/internal/entities"
)

// Repository handles all book collection operations.
type Repository struct {
	collection *mongo.Collection
}

// NewRepository creates a new books repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{collection: db.DB.Collection("books")}
}

// List returns every book in store order.
func (r *Repository) List(ctx context.Context) ([]entities.Book, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	var books []entities.Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("failed to decode books: %w", err)
	}
	return books, nil
}

// Search returns the books whose indexed text fields match the query.
// Requires the text index created by Database.EnsureIndexes.
func (r *Repository) Search(ctx context.Context, query string) ([]entities.Book, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"$text": bson.M{"$search": query}})
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}

	var books []entities.Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("failed to decode books: %w", err)
	}
	return books, nil
}

// GetByID retrieves a book by its identifier.
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Book, error) {
	var book entities.Book
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return &book, nil
}

// GetByTitle looks a book up by its current title. Titles are not
// unique; the first match wins, as in the original catalogue.
func (r *Repository) GetByTitle(ctx context.Context, title string) (*entities.Book, error) {
	var book entities.Book
	err := r.collection.FindOne(ctx, bson.M{"book_title": title}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return &book, nil
}

// Insert stores a new book and fills in its generated identifier.
func (r *Repository) Insert(ctx context.Context, book *entities.Book) error {
	result, err := r.collection.InsertOne(ctx, book)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		book.ID = id
	}
	return nil
}

// Replace overwrites the whole document addressed by book.ID.
func (r *Repository) Replace(ctx context.Context, book *entities.Book) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": book.ID}, book)
	if err != nil {
		return fmt.Errorf("failed to replace book: %w", err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes a book by identifier. Deleting a missing id is a no-op.
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}
