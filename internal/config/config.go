package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Tracker  TrackerConfig
	Refresh  RefreshConfig
	Session  SessionConfig
}

// ServerConfig holds server-specific configuration.
// APIKey guards mutating session/refresh routes; empty disables the guard.
type ServerConfig struct {
	Port   string
	Host   string
	Addr   string // Combined host:port for convenience
	APIKey string
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// TrackerConfig identifies the tracked security and the projection horizon.
// The schedule builder generates estimated distributions through December 31
// of HorizonYear.
type TrackerConfig struct {
	Symbol      string
	HorizonYear int
}

// RefreshConfig controls the scheduled price/distribution refresh job.
// Schedule is a cron expression; the job is skipped entirely when disabled.
type RefreshConfig struct {
	Enabled  bool
	Schedule string
}

// SessionConfig holds the fernet key used to sign shareable session tokens.
// Sharing endpoints are disabled when the key is empty.
type SessionConfig struct {
	FernetKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	horizonYear := time.Now().UTC().Year()
	if v := os.Getenv("HORIZON_YEAR"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HORIZON_YEAR %q: %w", v, err)
		}
		horizonYear = parsed
	}

	config := &Config{
		Server: ServerConfig{
			Port:   getEnv("SERVER_PORT", "5001"),
			Host:   getEnv("SERVER_HOST", "localhost"),
			APIKey: os.Getenv("INTERNAL_API_KEY"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/ulty_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Tracker: TrackerConfig{
			Symbol:      getEnv("TRACKER_SYMBOL", "ULTY"),
			HorizonYear: horizonYear,
		},
		Refresh: RefreshConfig{
			Enabled:  getEnv("REFRESH_ENABLED", "true") == "true",
			Schedule: getEnv("REFRESH_SCHEDULE", "30 21 * * MON-FRI"),
		},
		Session: SessionConfig{
			FernetKey: os.Getenv("SESSION_FERNET_KEY"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// HorizonEnd returns the last day of the configured horizon year, the point
// through which estimated distributions are generated.
func (c *Config) HorizonEnd() time.Time {
	return time.Date(c.Tracker.HorizonYear, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
