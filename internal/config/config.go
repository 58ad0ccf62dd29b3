package config

import (
	"log/slog"
	"time"
)

// GathererConfig is the root configuration for a gatherer instance.
type GathererConfig struct {
	Instance   InstanceConfig   `yaml:"instance"`
	API        APIConfig        `yaml:"api"`
	Database   DatabaseConfig   `yaml:"database"`
	Writer     WriterConfig     `yaml:"writer"`
	Poller     PollerConfig     `yaml:"poller"`
	Projection ProjectionConfig `yaml:"projection"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Log        LogConfig        `yaml:"log"`
}

// InstanceConfig identifies this gatherer.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// APIConfig holds upstream bazaar endpoint settings.
type APIConfig struct {
	URL            string        `yaml:"url"`
	APIKey         string        `yaml:"api_key"` // Optional, sent as API-Key header
	Timeout        time.Duration `yaml:"timeout"`
	RequireSuccess bool          `yaml:"require_success"` // Treat success=false as a decode failure
}

// DatabaseConfig holds the MongoDB connection and collection names.
// URI takes precedence over the discrete host fields when set.
type DatabaseConfig struct {
	URI               string        `yaml:"uri"`
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	User              string        `yaml:"user"`
	Password          string        `yaml:"password"`
	AuthSource        string        `yaml:"auth_source"`
	AppName           string        `yaml:"app_name"`
	Name              string        `yaml:"name"`
	RecordsCollection string        `yaml:"records_collection"`
	ConfigCollection  string        `yaml:"config_collection"`
	ConnectTimeout    time.Duration `yaml:"connect_timeout"`
	MaxPoolSize       int           `yaml:"max_pool_size"`
}

// WriterConfig holds persistence settings.
type WriterConfig struct {
	Transactional bool  `yaml:"transactional"`  // Wrap records + counter in one transaction
	CreateCounter *bool `yaml:"create_counter"` // Upsert the freshness document when missing (default true)
}

// PollerConfig holds poll loop settings.
type PollerConfig struct {
	Interval            time.Duration `yaml:"interval"`
	ErrorBackoffInitial time.Duration `yaml:"error_backoff_initial"`
	ErrorBackoffMax     time.Duration `yaml:"error_backoff_max"`
}

// ProjectionConfig holds record projection settings.
type ProjectionConfig struct {
	Depth int `yaml:"depth"` // History entries kept per side
}

// MetricsConfig holds Prometheus and health endpoint settings.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ShouldCreateCounter reports whether the freshness document is upserted.
func (w WriterConfig) ShouldCreateCounter() bool {
	return w.CreateCounter == nil || *w.CreateCounter
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
