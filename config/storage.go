package config

import "fmt"

// StorageConfig selects and configures the historical record store.
type StorageConfig struct {
	// Backend selects the store type: "sqlite" or "postgres".
	Backend string `json:"backend"`
	// Path is the database file location for the sqlite backend.
	Path string `json:"path"`
	// DSN is the connection string for the postgres backend.
	DSN string `json:"dsn"`
}

// SetDefaults applies sane defaults.
func (c *StorageConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "sqlite"
	}
	if c.Path == "" {
		c.Path = "trafficsense.db"
	}
}

// Validate checks mandatory fields.
func (c StorageConfig) Validate() error {
	switch c.Backend {
	case "sqlite":
		if c.Path == "" {
			return fmt.Errorf("storage path is required for sqlite")
		}
	case "postgres":
		if c.DSN == "" {
			return fmt.Errorf("storage dsn is required for postgres")
		}
	default:
		return fmt.Errorf("unknown storage backend %s", c.Backend)
	}
	return nil
}

// CacheConfig configures the optional redis forecast cache.
type CacheConfig struct {
	Enabled bool `json:"enabled"`
	// URL is a redis connection URL, e.g. redis://localhost:6379/0.
	URL string `json:"url"`
	// TTLSeconds bounds how long a cached forecast may be served.
	TTLSeconds int `json:"ttl_seconds"`
}

// SetDefaults applies sane defaults.
func (c *CacheConfig) SetDefaults() {
	if c.TTLSeconds <= 0 {
		c.TTLSeconds = 300
	}
}

// Validate checks mandatory fields.
func (c CacheConfig) Validate() error {
	if c.Enabled && c.URL == "" {
		return fmt.Errorf("cache url is required when the cache is enabled")
	}
	return nil
}
