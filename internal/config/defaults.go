package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultAPIURL              = "https://api.hypixel.net/skyblock/bazaar"
	DefaultAPITimeout          = 30 * time.Second
	DefaultDBHost              = "localhost"
	DefaultDBPort              = 27017
	DefaultDBAppName           = "hypixel"
	DefaultDBName              = "skyblock"
	DefaultRecordsCollection   = "bazaar"
	DefaultConfigCollection    = "config"
	DefaultConnectTimeout      = 10 * time.Second
	DefaultMaxPoolSize         = 10
	DefaultPollInterval        = 5 * time.Second
	DefaultErrorBackoffInitial = 5 * time.Second
	DefaultErrorBackoffMax     = 2 * time.Minute
	DefaultProjectionDepth     = 3
	DefaultMetricsPort         = 9090
	DefaultMetricsPath         = "/metrics"
	DefaultLogLevel            = "info"
)

// ApplyDefaults fills zero-valued optional fields.
func (c *GathererConfig) ApplyDefaults() {
	// API defaults
	if c.API.URL == "" {
		c.API.URL = DefaultAPIURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}

	// Database defaults
	if c.Database.URI == "" && c.Database.Host == "" {
		c.Database.Host = DefaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.AppName == "" {
		c.Database.AppName = DefaultDBAppName
	}
	if c.Database.Name == "" {
		c.Database.Name = DefaultDBName
	}
	if c.Database.RecordsCollection == "" {
		c.Database.RecordsCollection = DefaultRecordsCollection
	}
	if c.Database.ConfigCollection == "" {
		c.Database.ConfigCollection = DefaultConfigCollection
	}
	if c.Database.ConnectTimeout == 0 {
		c.Database.ConnectTimeout = DefaultConnectTimeout
	}
	if c.Database.MaxPoolSize == 0 {
		c.Database.MaxPoolSize = DefaultMaxPoolSize
	}

	// Poller defaults
	if c.Poller.Interval == 0 {
		c.Poller.Interval = DefaultPollInterval
	}
	if c.Poller.ErrorBackoffInitial == 0 {
		c.Poller.ErrorBackoffInitial = DefaultErrorBackoffInitial
	}
	if c.Poller.ErrorBackoffMax == 0 {
		c.Poller.ErrorBackoffMax = DefaultErrorBackoffMax
	}

	if c.Projection.Depth == 0 {
		c.Projection.Depth = DefaultProjectionDepth
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
