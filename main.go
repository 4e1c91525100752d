package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mwalsh/bookshelf/internal/config"
	"github.com/mwalsh/bookshelf/internal/database"
	"github.com/mwalsh/bookshelf/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	switch os.Args[1] {
	case "ensure-indexes":
		if err := ensureIndexes(config.NewConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Indexes created")

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func ensureIndexes(cfg *config.Config) error {
	ctx := context.Background()

	db, err := database.NewDatabase(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	return db.EnsureIndexes(ctx)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve           Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  ensure-indexes  Create the MongoDB indexes and exit\n")
	fmt.Fprintf(os.Stderr, "\nConfiguration is read from the environment (MONGO_URI, MONGO_DBNAME,\nSECRET_KEY, HOST, PORT).\n")
}
