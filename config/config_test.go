package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://books.example.com/api/")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("STORAGE_KEY_PREFIX", "shop:")
	t.Setenv("REDIS_URI", "redis.internal:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOG_LEVEL", "WARN")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "https://books.example.com/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.API.Timeout)
	}

	expectedStorage := StorageConfig{
		Backend:      StorageBackendRedis,
		FilePath:     defaultSessionFile(),
		KeyPrefix:    "shop:",
		TokenKey:     "auth_token",
		PrincipalKey: "user",
	}
	if !reflect.DeepEqual(cfg.Storage, expectedStorage) {
		t.Fatalf("unexpected storage configuration:\nexpected: %#v\ngot:      %#v", expectedStorage, cfg.Storage)
	}
	if cfg.Redis.URI != "redis.internal:6380" || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected redis configuration: %#v", cfg.Redis)
	}
	if cfg.LogLevel.Level() != slog.LevelWarn {
		t.Fatalf("expected warn level, got %v", cfg.LogLevel)
	}
}

func TestAppConfig_InvalidStorageBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sqlite")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected error for unknown storage backend")
	}
}

func TestAppConfig_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestAppConfig_DevModeDefaultsToDebug(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Fatal("expected NODE_ENV=development to enable dev mode")
	}
	if cfg.LogLevel != LogLevelDebug {
		t.Fatalf("expected debug level in dev mode, got %q", cfg.LogLevel)
	}
}

func TestAPIConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    APIConfig
		expected APIConfig
	}{
		{
			name:  "empty values get defaults",
			input: APIConfig{},
			expected: APIConfig{
				BaseURL:   defaultAPIBaseURL,
				Timeout:   defaultAPITimeout,
				UserAgent: "bookstore-admin",
			},
		},
		{
			name:  "timeout is clamped",
			input: APIConfig{BaseURL: "http://api", Timeout: time.Hour, UserAgent: "cli"},
			expected: APIConfig{
				BaseURL:   "http://api",
				Timeout:   maxAPITimeout,
				UserAgent: "cli",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.input
			cfg.Sanitize()
			if cfg != tt.expected {
				t.Errorf("expected %#v, got %#v", tt.expected, cfg)
			}
		})
	}
}

func TestRedisConfig_Sanitize(t *testing.T) {
	cfg := RedisConfig{
		URI:          " localhost:6379 ",
		DB:           -1,
		ClusterNodes: []string{" ", ""},
		UseCluster:   true,
	}
	cfg.Sanitize()

	if cfg.URI != "localhost:6379" {
		t.Errorf("expected trimmed URI, got %q", cfg.URI)
	}
	if cfg.DB != 0 {
		t.Errorf("expected DB clamped to 0, got %d", cfg.DB)
	}
	if cfg.UseCluster {
		t.Error("expected cluster mode disabled without nodes")
	}
}
