package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the ForKa CLI.
type Config struct {
	// ServerBaseURL is the API root, e.g. "http://localhost:8000/api".
	ServerBaseURL string

	// RequestTimeout bounds every API request.
	RequestTimeout time.Duration

	// DatabasePath locates the local sqlite database holding session state
	// and the offline post cache.
	DatabasePath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000/api"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = defaultDatabasePath()
}

// defaultDatabasePath places the database under the user's home directory,
// falling back to the working directory when home cannot be resolved.
func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "forka.db"
	}
	return filepath.Join(home, ".forka", "forka.db")
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
