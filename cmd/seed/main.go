// Command seed loads the embedded starter corpus, embeds each precedent
// clause through the configured embedding gateway, and inserts the results
// into the precedent_clauses table.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/openclause/gavel/internal/config"
	"github.com/openclause/gavel/internal/embedding"
	"github.com/openclause/gavel/internal/precedents"
	"github.com/openclause/gavel/pkg/database"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "Overall seeding timeout")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		log.Fatal("database init failed:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn := db.Connection()
	if err := conn.PingContext(ctx); err != nil {
		log.Fatal("database ping failed:", err)
	}
	defer conn.Close()

	corpus, err := precedents.Corpus()
	if err != nil {
		log.Fatal("corpus load failed:", err)
	}

	embedder := embedding.NewClient(&cfg.Embedding, logger)
	sys := precedents.New(conn, embedder, logger)

	var seeded, skipped int
	for _, cmd := range corpus {
		if _, err := sys.Create(ctx, cmd); err != nil {
			logger.Warn(
				"precedent seed failed",
				"contract_type", cmd.ContractType,
				"clause_type", cmd.ClauseType,
				"error", err,
			)
			skipped++
			continue
		}
		seeded++
	}

	logger.Info("corpus seeding complete", "seeded", seeded, "skipped", skipped)
	if skipped > 0 {
		os.Exit(1)
	}
}
