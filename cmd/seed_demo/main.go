// Command seed_demo fills a catalogue database with sample data: a demo
// account and a handful of public domain books.
// Usage: go run cmd/seed_demo/main.go [-user demo] [-password demo]
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/mwalsh/bookshelf/internal/auth"
	"github.com/mwalsh/bookshelf/internal/config"
	"github.com/mwalsh/bookshelf/internal/database"
	"github.com/mwalsh/bookshelf/internal/database/books"
	"github.com/mwalsh/bookshelf/internal/database/users"
	"github.com/mwalsh/bookshelf/internal/entities"
)

func main() {
	username := flag.String("user", "demo", "username of the demo account")
	password := flag.String("password", "demo", "password of the demo account")
	flag.Parse()

	cfg := config.NewConfig()
	ctx := context.Background()

	db, err := database.NewDatabase(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close(ctx)

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	svc := auth.NewService(users.NewRepository(db), cfg.Auth)
	user, err := svc.Register(ctx, *username, *password)
	if err != nil {
		if !errors.Is(err, auth.ErrUserExists) {
			log.Fatalf("Failed to create demo account: %v", err)
		}
		user, err = svc.GetByUsername(ctx, *username)
		if err != nil {
			log.Fatalf("Failed to load demo account: %v", err)
		}
		log.Printf("Reusing existing account %q", user.Username)
	} else {
		log.Printf("Created account %q", user.Username)
	}

	repo := books.NewRepository(db)
	for _, book := range publicDomainBooks(user) {
		existing, err := repo.GetByTitle(ctx, book.Title)
		if err == nil {
			log.Printf("Skipping %q, already present", existing.Title)
			continue
		}
		if !errors.Is(err, database.ErrNotFound) {
			log.Fatalf("Failed to check for %q: %v", book.Title, err)
		}
		if err := repo.Insert(ctx, &book); err != nil {
			log.Fatalf("Failed to insert %q: %v", book.Title, err)
		}
		log.Printf("Added: %s by %s", book.Title, book.Author)
	}

	log.Println("Demo catalogue seeded successfully!")
}

func publicDomainBooks(owner *entities.User) []entities.Book {
	now := time.Now()
	return []entities.Book{
		{
			Title:       "Meditations",
			Author:      "Marcus Aurelius",
			Description: "Personal writings of the Roman emperor on Stoic philosophy.",
			AddedDate:   now,
			AddedBy:     owner.ID,
		},
		{
			Title:       "Pride and Prejudice",
			Author:      "Jane Austen",
			Description: "A novel of manners following Elizabeth Bennet.",
			AddedDate:   now,
			AddedBy:     owner.ID,
		},
		{
			Title:       "The Origin of Species",
			Author:      "Charles Darwin",
			Description: "Foundational work of evolutionary biology.",
			AddedDate:   now,
			AddedBy:     owner.ID,
		},
		{
			Title:       "Frankenstein",
			Author:      "Mary Shelley",
			Description: "The modern Prometheus.",
			AddedDate:   now,
			AddedBy:     owner.ID,
		},
		{
			Title:       "The Art of War",
			Author:      "Sun Tzu",
			Description: "Ancient treatise on strategy.",
			AddedDate:   now,
			AddedBy:     owner.ID,
		},
	}
}
