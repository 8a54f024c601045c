package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"walletledger/internal/config"
	"walletledger/internal/database"
	"walletledger/internal/logger"
	"walletledger/internal/storage"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: migrate <up|down|version|reset> [N]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig := database.NewConfig(cfg)
	if args[0] == "reset" {
		return reset(dbConfig)
	}

	if dbConfig.Driver == database.DriverSQLite {
		// The migrate sqlite3 driver does not create parent directories.
		mgr, err := database.NewManager(dbConfig)
		if err != nil {
			return err
		}
		_ = mgr.Close()
	}

	m, err := database.NewMigrate(dbConfig)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	switch command := args[0]; command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		logger.Get().Info("Migrations applied successfully")

	case "down":
		steps := 1
		if len(args) > 1 {
			steps, err = strconv.Atoi(args[1])
			if err != nil || steps < 1 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		logger.Get().Infof("Rolled back %d migration(s)", steps)

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Get().Info("No migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)

	default:
		return fmt.Errorf("unknown command: %s (use up, down, version, or reset)", command)
	}

	return nil
}

// reset clears every persisted store so the next start begins from defaults.
func reset(dbConfig *database.Config) error {
	mgr, err := database.NewManager(dbConfig)
	if err != nil {
		return err
	}
	defer mgr.Close()
	if err := mgr.RunMigrations(); err != nil {
		return err
	}

	removed, err := storage.NewKVStore(mgr.DB()).Reset(context.Background())
	if err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	logger.Get().Infow("Stored data cleared", "keys", removed)
	return nil
}
