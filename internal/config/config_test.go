package config

import (
	"errors"
	"testing"
	"time"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"POSTGRES_URL":   "postgres://localhost/routes",
		"IDP_JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.StoreDriver != StoreDriverPostgres {
		t.Errorf("StoreDriver = %q, want postgres", cfg.StoreDriver)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.RequestTimeout)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes = %d, want 1MiB", cfg.MaxBodyBytes)
	}
	if cfg.SeedMockRoutes {
		t.Error("SeedMockRoutes should default to false")
	}
}

func TestFromEnv_MemoryDriverWithSeed(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"STORE_DRIVER":         "memory",
		"SEED_MOCK_ROUTES":     "true",
		"IDP_JWT_SECRET":       "s3cret",
		"CORS_ALLOWED_ORIGINS": "http://localhost:3000, https://app.example ,",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if !cfg.SeedMockRoutes {
		t.Error("SeedMockRoutes = false, want true")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://app.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestFromEnv_Errors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		env   map[string]string
		field string
	}{
		{"missing postgres url", map[string]string{"IDP_JWT_SECRET": "s"}, "POSTGRES_URL"},
		{"missing secret", map[string]string{"STORE_DRIVER": "memory"}, "IDP_JWT_SECRET"},
		{"seed against postgres", map[string]string{"POSTGRES_URL": "x", "IDP_JWT_SECRET": "s", "SEED_MOCK_ROUTES": "1"}, "SEED_MOCK_ROUTES"},
		{"unknown driver", map[string]string{"STORE_DRIVER": "redis", "IDP_JWT_SECRET": "s"}, "STORE_DRIVER"},
		{"bad port", map[string]string{"STORE_DRIVER": "memory", "IDP_JWT_SECRET": "s", "PORT": "http"}, "PORT"},
		{"port out of range", map[string]string{"STORE_DRIVER": "memory", "IDP_JWT_SECRET": "s", "PORT": "70000"}, "PORT"},
		{"bad timeout", map[string]string{"STORE_DRIVER": "memory", "IDP_JWT_SECRET": "s", "REQUEST_TIMEOUT": "soon"}, "REQUEST_TIMEOUT"},
		{"bad bool", map[string]string{"STORE_DRIVER": "memory", "IDP_JWT_SECRET": "s", "SEED_MOCK_ROUTES": "maybe"}, "SEED_MOCK_ROUTES"},
	} {
		_, err := FromEnv(envOf(tc.env))
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !hasField(err, tc.field) {
			t.Errorf("%s: error %v does not name field %s", tc.name, err, tc.field)
		}
	}
}

// hasField walks joined errors looking for a ConfigError on field.
func hasField(err error, field string) bool {
	var ce *ConfigError
	if errors.As(err, &ce) && ce.Field == field {
		return true
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if hasField(e, field) {
				return true
			}
		}
	}
	return false
}
