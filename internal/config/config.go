package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Ledger
	WeekStart  time.Weekday
	SearchMode string

	// Persistence
	PersistFlushInterval time.Duration

	// App lock
	JWTSecret        string
	JWTExpirationDur time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:     getEnv("DB_PATH", "data/walletledger.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "walletledger"),
		DBPassword: getEnv("DB_PASSWORD", "walletledger"),
		DBName:     getEnv("DB_NAME", "walletledger"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Ledger
		WeekStart:  ParseWeekday(getEnv("WEEK_START", "sunday")),
		SearchMode: strings.ToLower(getEnv("SEARCH_MODE", "all")),

		// App lock
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
	}

	config.JWTExpirationDur = parseDuration("JWT_EXPIRES_IN", "24h", 24*time.Hour)
	config.PersistFlushInterval = parseDuration("PERSIST_FLUSH_INTERVAL", "250ms", 250*time.Millisecond)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// ParseWeekday maps a day name ("monday", "Mon") to a time.Weekday.
// Unknown values fall back to Sunday.
func ParseWeekday(s string) time.Weekday {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d
		}
	}
	return time.Sunday
}

func parseDuration(key, fallback string, def time.Duration) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, def)
		return def
	}
	return d
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
