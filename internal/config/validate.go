package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *GathererConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	u, err := url.Parse(c.API.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api.url must be an absolute http(s) URL, got %q", c.API.URL)
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be > 0")
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if c.Poller.Interval <= 0 {
		return errors.New("poller.interval must be > 0")
	}
	if c.Poller.ErrorBackoffInitial <= 0 {
		return errors.New("poller.error_backoff_initial must be > 0")
	}
	if c.Poller.ErrorBackoffMax < c.Poller.ErrorBackoffInitial {
		return fmt.Errorf("poller.error_backoff_max (%v) cannot be less than error_backoff_initial (%v)",
			c.Poller.ErrorBackoffMax, c.Poller.ErrorBackoffInitial)
	}

	if c.Projection.Depth < 1 {
		return errors.New("projection.depth must be >= 1")
	}

	if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") || c.Metrics.Path == "/health" {
		return fmt.Errorf("metrics.path must start with / and not be /health, got %q", c.Metrics.Path)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	return nil
}

func (db *DatabaseConfig) validate(prefix string) error {
	if db.URI != "" {
		if !strings.HasPrefix(db.URI, "mongodb://") && !strings.HasPrefix(db.URI, "mongodb+srv://") {
			return fmt.Errorf("%s.uri must use the mongodb:// or mongodb+srv:// scheme", prefix)
		}
	} else {
		if db.Host == "" {
			return fmt.Errorf("%s.host is required", prefix)
		}
		if db.Port < 1 || db.Port > 65535 {
			return fmt.Errorf("%s.port must be between 1 and 65535, got %d", prefix, db.Port)
		}
		if db.Password != "" && db.User == "" {
			return fmt.Errorf("%s.user is required when password is set", prefix)
		}
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.RecordsCollection == "" {
		return fmt.Errorf("%s.records_collection is required", prefix)
	}
	if db.ConfigCollection == "" {
		return fmt.Errorf("%s.config_collection is required", prefix)
	}
	if db.RecordsCollection == db.ConfigCollection {
		return fmt.Errorf("%s.records_collection and config_collection must differ", prefix)
	}
	if db.MaxPoolSize < 1 {
		return fmt.Errorf("%s.max_pool_size must be >= 1", prefix)
	}
	return nil
}
