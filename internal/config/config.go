// Package config loads and validates environment-based configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: field %q: %s", e.Field, e.Message)
}

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	Port        int
	StoreDriver string
	PostgresURL string

	// Identity provider token verification.
	IDPJWTSecret string
	IDPIssuer    string // Optional; when set the token's iss claim must match.

	// SeedMockRoutes fills the in-memory store with sample routes. Only
	// valid together with StoreDriver "memory"; never used against Postgres.
	SeedMockRoutes bool

	RequestTimeout time.Duration
	MaxBodyBytes   int64
	AllowedOrigins []string

	LogLevel string
	LogFile  string // Empty logs to stdout.
}

// Load reads an optional .env file, then the environment, and validates
// the result. Returns a ConfigError for any missing or invalid value.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, &ConfigError{Field: ".env", Message: err.Error()}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv without touching .env files.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		StoreDriver:    strings.ToLower(strings.TrimSpace(getenv("STORE_DRIVER"))),
		PostgresURL:    getenv("POSTGRES_URL"),
		IDPJWTSecret:   getenv("IDP_JWT_SECRET"),
		IDPIssuer:      getenv("IDP_ISSUER"),
		LogLevel:       getenv("LOG_LEVEL"),
		LogFile:        getenv("LOG_FILE"),
		AllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS")),
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = StoreDriverPostgres
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	var err error
	if cfg.Port, err = parseIntEnv(getenv, "PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.SeedMockRoutes, err = parseBoolEnv(getenv, "SEED_MOCK_ROUTES", false); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = parseDurationEnv(getenv, "REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	maxBody, err := parseIntEnv(getenv, "MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxBodyBytes = int64(maxBody)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate re-checks required fields on an already-constructed Config.
func (c *Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.PostgresURL == "" {
			errs = append(errs, &ConfigError{Field: "POSTGRES_URL", Message: "required when STORE_DRIVER is postgres"})
		}
		if c.SeedMockRoutes {
			errs = append(errs, &ConfigError{Field: "SEED_MOCK_ROUTES", Message: "only allowed with STORE_DRIVER=memory"})
		}
	case StoreDriverMemory:
	default:
		errs = append(errs, &ConfigError{Field: "STORE_DRIVER", Message: "must be postgres or memory"})
	}
	if c.IDPJWTSecret == "" {
		errs = append(errs, &ConfigError{Field: "IDP_JWT_SECRET", Message: "required but not set"})
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, &ConfigError{Field: "PORT", Message: "must be between 1 and 65535"})
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, &ConfigError{Field: "REQUEST_TIMEOUT", Message: "must be positive"})
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, &ConfigError{Field: "MAX_BODY_BYTES", Message: "must be positive"})
	}
	return errors.Join(errs...)
}

func parseIntEnv(getenv func(string) string, key string, defaultVal int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ConfigError{Field: key, Message: "must be a valid integer"}
	}
	return v, nil
}

func parseBoolEnv(getenv func(string) string, key string, defaultVal bool) (bool, error) {
	raw := getenv(key)
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ConfigError{Field: key, Message: "must be a boolean"}
	}
	return v, nil
}

// parseDurationEnv accepts Go duration strings like "15s" or "2m".
func parseDurationEnv(getenv func(string) string, key string, defaultVal time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &ConfigError{Field: key, Message: "must be a duration such as 10s"}
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
