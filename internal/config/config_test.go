package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
instance:
  id: test-gatherer
api:
  url: https://api.example.com/skyblock/bazaar
  require_success: true
database:
  host: mongo.internal
  port: 27018
  name: skyblock_test
poller:
  interval: 10s
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Instance.ID != "test-gatherer" {
		t.Errorf("Instance.ID = %q, want %q", cfg.Instance.ID, "test-gatherer")
	}
	if cfg.API.URL != "https://api.example.com/skyblock/bazaar" {
		t.Errorf("API.URL = %q, want %q", cfg.API.URL, "https://api.example.com/skyblock/bazaar")
	}
	if !cfg.API.RequireSuccess {
		t.Error("API.RequireSuccess = false, want true")
	}
	if cfg.Database.Host != "mongo.internal" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "mongo.internal")
	}
	if cfg.Database.Port != 27018 {
		t.Errorf("Database.Port = %d, want 27018", cfg.Database.Port)
	}
	if cfg.Poller.Interval != 10*time.Second {
		t.Errorf("Poller.Interval = %v, want 10s", cfg.Poller.Interval)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_MONGO_PASSWORD", "secret123")

	yaml := `
instance:
  id: test-gatherer
database:
  host: localhost
  user: gatherer
  password: ${TEST_MONGO_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Password != "secret123" {
		t.Errorf("Database.Password = %q, want %q", cfg.Database.Password, "secret123")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("BAZAAR_TEST_DOTENV=from-file\n"), 0644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("BAZAAR_TEST_DOTENV") })

	if err := LoadDotEnv(envPath, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if got := os.Getenv("BAZAAR_TEST_DOTENV"); got != "from-file" {
		t.Errorf("BAZAAR_TEST_DOTENV = %q, want %q", got, "from-file")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
instance:
  id: test-gatherer
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.API.URL != DefaultAPIURL {
		t.Errorf("API.URL = %q, want default %q", cfg.API.URL, DefaultAPIURL)
	}
	if cfg.API.Timeout != DefaultAPITimeout {
		t.Errorf("API.Timeout = %v, want default %v", cfg.API.Timeout, DefaultAPITimeout)
	}
	if cfg.API.RequireSuccess {
		t.Error("API.RequireSuccess should default to false")
	}
	if cfg.Database.Host != DefaultDBHost {
		t.Errorf("Database.Host = %q, want default %q", cfg.Database.Host, DefaultDBHost)
	}
	if cfg.Database.Port != DefaultDBPort {
		t.Errorf("Database.Port = %d, want default %d", cfg.Database.Port, DefaultDBPort)
	}
	if cfg.Database.Name != DefaultDBName {
		t.Errorf("Database.Name = %q, want default %q", cfg.Database.Name, DefaultDBName)
	}
	if cfg.Database.RecordsCollection != "bazaar" || cfg.Database.ConfigCollection != "config" {
		t.Errorf("collections = %q/%q, want bazaar/config",
			cfg.Database.RecordsCollection, cfg.Database.ConfigCollection)
	}
	if cfg.Poller.Interval != 5*time.Second {
		t.Errorf("Poller.Interval = %v, want default 5s", cfg.Poller.Interval)
	}
	if cfg.Projection.Depth != 3 {
		t.Errorf("Projection.Depth = %d, want default 3", cfg.Projection.Depth)
	}
	if !cfg.Writer.ShouldCreateCounter() {
		t.Error("Writer.ShouldCreateCounter() should default to true")
	}
	if cfg.Metrics.Port != DefaultMetricsPort {
		t.Errorf("Metrics.Port = %d, want default %d", cfg.Metrics.Port, DefaultMetricsPort)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadWithDefaults_URIKeepsHostEmpty(t *testing.T) {
	yaml := `
instance:
  id: test-gatherer
database:
  uri: mongodb://replica-0:27017,replica-1:27017/?replicaSet=rs0
writer:
  create_counter: false
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}
	if cfg.Database.Host != "" {
		t.Errorf("Database.Host = %q, want empty when uri is set", cfg.Database.Host)
	}
	if cfg.Writer.ShouldCreateCounter() {
		t.Error("Writer.ShouldCreateCounter() = true, want false when disabled")
	}
}

func TestValidate(t *testing.T) {
	valid := func() GathererConfig {
		cfg := GathererConfig{Instance: InstanceConfig{ID: "test"}}
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*GathererConfig)
		wantErr string
	}{
		{
			name:    "missing instance id",
			mutate:  func(c *GathererConfig) { c.Instance.ID = "" },
			wantErr: "instance.id is required",
		},
		{
			name:    "relative api url",
			mutate:  func(c *GathererConfig) { c.API.URL = "/skyblock/bazaar" },
			wantErr: `api.url must be an absolute http(s) URL, got "/skyblock/bazaar"`,
		},
		{
			name:    "bad mongo scheme",
			mutate:  func(c *GathererConfig) { c.Database.URI = "postgres://localhost" },
			wantErr: "database.uri must use the mongodb:// or mongodb+srv:// scheme",
		},
		{
			name:    "password without user",
			mutate:  func(c *GathererConfig) { c.Database.Password = "pass" },
			wantErr: "database.user is required when password is set",
		},
		{
			name: "same collections",
			mutate: func(c *GathererConfig) {
				c.Database.ConfigCollection = c.Database.RecordsCollection
			},
			wantErr: "database.records_collection and config_collection must differ",
		},
		{
			name:    "backoff max below initial",
			mutate:  func(c *GathererConfig) { c.Poller.ErrorBackoffMax = time.Second },
			wantErr: "poller.error_backoff_max (1s) cannot be less than error_backoff_initial (5s)",
		},
		{
			name:    "negative depth",
			mutate:  func(c *GathererConfig) { c.Projection.Depth = -1 },
			wantErr: "projection.depth must be >= 1",
		},
		{
			name:    "metrics port out of range",
			mutate:  func(c *GathererConfig) { c.Metrics.Port = 70000 },
			wantErr: "metrics.port must be between 1 and 65535, got 70000",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *GathererConfig) { c.Log.Level = "trace" },
			wantErr: `log.level must be one of debug, info, warn, error, got "trace"`,
		},
		{
			name:    "valid config",
			mutate:  func(c *GathererConfig) {},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := (LogConfig{Level: tt.level}).SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
