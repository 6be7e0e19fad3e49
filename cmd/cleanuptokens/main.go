package main

// Delete expired demo token records:
//   go run ./cmd/cleanuptokens
//
// Meant to be invoked by an external scheduler (cron). Exits 0 on success
// even when nothing was deleted, non-zero on storage failure.

import (
	"context"
	"log"
	"os"

	"resume-builder/internal/demotokens"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultCLIOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	svc := &demotokens.Service{Repo: &demotokens.PGRepo{DB: sqlDB}, Secret: cfg.JWTSecret}
	deleted, err := svc.Cleanup(ctx)
	if err != nil {
		log.Printf("failed to clean up expired tokens: %v", err)
		os.Exit(1)
	}

	if deleted > 0 {
		log.Printf("deleted %d expired token(s)", deleted)
	} else {
		log.Printf("no expired tokens to delete")
	}
}
