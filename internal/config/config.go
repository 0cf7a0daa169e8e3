package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	ServiceName string
	API         APIConfig
	Auth        AuthConfig
	Polling     PollingConfig
	Table       TableConfig
	Session     SessionConfig
}

// APIConfig holds backend API connection settings
type APIConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

// AuthConfig holds optional startup credentials; when set the dashboard logs
// in on start instead of relying on a cached session
type AuthConfig struct {
	Username string
	Password string
}

// PollingConfig holds the per-view refresh intervals
type PollingConfig struct {
	AdminInterval time.Duration
	TableInterval time.Duration
}

// TableConfig holds table presentation settings
type TableConfig struct {
	PageSize           int
	MaxVisiblePages    int
	NewRecordThreshold time.Duration
}

// SessionConfig holds session cache settings
type SessionConfig struct {
	CachePath string
	TTL       time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "water-quality-dashboard"),
		API: APIConfig{
			BaseURL:    getEnv("BACKEND_URL", ""),
			Timeout:    getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
			RetryCount: getEnvAsInt("BACKEND_RETRY_COUNT", 0),
		},
		Auth: AuthConfig{
			Username: getEnv("DASHBOARD_USERNAME", ""),
			Password: getEnv("DASHBOARD_PASSWORD", ""),
		},
		Polling: PollingConfig{
			AdminInterval: getEnvAsDuration("ADMIN_POLL_INTERVAL", 30*time.Second),
			TableInterval: getEnvAsDuration("TABLE_POLL_INTERVAL", 10*time.Second),
		},
		Table: TableConfig{
			PageSize:           getEnvAsInt("TABLE_PAGE_SIZE", 10),
			MaxVisiblePages:    getEnvAsInt("TABLE_MAX_VISIBLE_PAGES", 5),
			NewRecordThreshold: getEnvAsDuration("NEW_RECORD_THRESHOLD", time.Hour),
		},
		Session: SessionConfig{
			CachePath: getEnv("SESSION_CACHE_PATH", ".session.json"),
			TTL:       getEnvAsDuration("SESSION_TTL", time.Hour),
		},
	}

	// Validate required fields
	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_URL is required but not set in environment variables")
	}
	if cfg.Table.PageSize < 1 {
		return nil, fmt.Errorf("TABLE_PAGE_SIZE must be at least 1, got %d", cfg.Table.PageSize)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
