package database

import (
	"path/filepath"
	"testing"

	"walletledger/internal/config"
)

func TestConfig(t *testing.T) {
	t.Run("sqlite_urls", func(t *testing.T) {
		cfg := NewConfig(&config.Config{DBDriver: "sqlite", DBPath: "data/ledger.db"})
		if got := cfg.MigrateURL(); got != "sqlite3://data/ledger.db" {
			t.Errorf("unexpected migrate url %q", got)
		}
	})

	t.Run("postgres_urls", func(t *testing.T) {
		cfg := NewConfig(&config.Config{
			DBDriver: "postgres", DBHost: "db", DBPort: "5432",
			DBUser: "u", DBPassword: "p@ss", DBName: "ledger", DBSSLMode: "disable",
		})
		if got := cfg.MigrateURL(); got != "postgres://u:p%40ss@db:5432/ledger?sslmode=disable" {
			t.Errorf("unexpected migrate url %q", got)
		}
		if got := cfg.DSN(); got != "host=db port=5432 user=u password=p@ss dbname=ledger sslmode=disable" {
			t.Errorf("unexpected dsn %q", got)
		}
	})
}

func TestManager(t *testing.T) {
	t.Run("unsupported_driver", func(t *testing.T) {
		if _, err := NewManager(&Config{Driver: "mysql"}); err == nil {
			t.Fatal("expected error for unsupported driver")
		}
	})

	t.Run("sqlite_migrations", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "ledger.db")
		m, err := NewManager(&Config{Driver: DriverSQLite, Path: path})
		if err != nil {
			t.Fatalf("NewManager: %v", err)
		}
		defer m.Close()

		if err := m.RunMigrations(); err != nil {
			t.Fatalf("RunMigrations: %v", err)
		}
		// Second run is a no-op.
		if err := m.RunMigrations(); err != nil {
			t.Fatalf("RunMigrations again: %v", err)
		}

		for _, table := range []string{"store_entries", "audit_logs"} {
			if !m.DB().Migrator().HasTable(table) {
				t.Errorf("expected table %s", table)
			}
		}
	})
}
