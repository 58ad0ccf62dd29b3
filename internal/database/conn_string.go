package database

import (
	"fmt"
	"net/url"

	"github.com/rickgao/bazaar-data/internal/config"
)

// BuildURI builds a MongoDB connection URI from config.
// An explicit URI in config is returned unchanged.
func BuildURI(cfg config.DatabaseConfig) string {
	if cfg.URI != "" {
		return cfg.URI
	}

	u := url.URL{
		Scheme: "mongodb",
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/",
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	if cfg.AuthSource != "" {
		u.RawQuery = url.Values{"authSource": []string{cfg.AuthSource}}.Encode()
	}

	return u.String()
}
