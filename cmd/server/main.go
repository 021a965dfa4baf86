package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"pantry/internal/config"
	"pantry/internal/db"
	"pantry/internal/server"
)

func main() {
	cfg := config.FromEnv()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to SQLite database file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	// Open database, creating it if it doesn't exist.
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	// Run migrations (idempotent).
	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	router, err := server.NewRouter(database)
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	handler := server.LoggingMiddleware(server.CORSMiddleware(router))

	fmt.Printf("Server listening on %s (env: %s)\n", cfg.Addr, cfg.Env)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
