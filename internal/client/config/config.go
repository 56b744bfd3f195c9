package config

import (
	"os"
	"time"
)

const (
	DefaultAPIBaseURL = "http://localhost:4000/api"
	DefaultStorePath  = "posko.db"
	DefaultLogLevel   = "info"
)

// Config holds runtime settings for the admin console.
//
// Fields:
//   - APIBaseURL: base of every API path, e.g. http://localhost:4000/api.
//   - StorePath: SQLite file holding the access token and cached profile.
//   - RequestTimeout: bound for one HTTP exchange, 0 disables it.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	StorePath      string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.StorePath = DefaultStorePath
	c.RequestTimeout = 0
	c.LogLevel = DefaultLogLevel
}

// LoadConfig builds a Config from defaults, then the environment (a .env file
// in the working directory is honoured), then an optional JSON file, then
// command-line flags. Later sources win. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
