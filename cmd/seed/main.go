// Command seed writes the demo profile set into the configured Postgres store.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/gdugdh24/covenant-backend/internal/config"
	"github.com/gdugdh24/covenant-backend/internal/infrastructure/database"
	"github.com/gdugdh24/covenant-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/covenant-backend/internal/repository/postgres"
	"github.com/gdugdh24/covenant-backend/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Server.Env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("seed failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.Storage.Type != config.StoragePostgres {
		return errors.New("seed requires STORAGE_TYPE=postgres, memory storage seeds itself with SEED_DEMO_PROFILES=true")
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}

	n, err := seed.Upsert(ctx, postgres.NewProfileRepository(db), time.Now().UTC())
	if err != nil {
		return err
	}
	log.Info("demo profiles upserted", zap.Int("count", n))
	return nil
}
