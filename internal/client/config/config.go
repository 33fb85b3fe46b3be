// Package config handles configuration for the docsync client,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the docsync client.
//
// Fields:
//   - EndpointURL: base URL of the sync endpoint.
//   - DatabasePath: location of the local SQLite store.
//   - UploadTimeout: bound on each individual upload call.
//   - OnlineCheckInterval: how often the client probes endpoint reachability.
//   - PageSize: documents per page in list views.
type Config struct {
	EndpointURL         string
	DatabasePath        string
	UploadTimeout       time.Duration
	OnlineCheckInterval time.Duration
	PageSize            int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.EndpointURL = "http://127.0.0.1:8080"
	c.DatabasePath = "docsync.db"
	c.UploadTimeout = 30 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.PageSize = 10
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
