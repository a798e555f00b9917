package config

// APIConfig configures the HTTP API server.
type APIConfig struct {
	// Addr is the listen address of the API server.
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}
