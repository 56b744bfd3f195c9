package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/poskoadmin/internal/flagx"
	"github.com/dmitrijs2005/poskoadmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	StorePath      string          `json:"store_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       string          `json:"log_level"`
}

// parseJSON overlays cfg with the file named by -c or -config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.StorePath != "" {
		cfg.StorePath = jc.StorePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.RequestTimeout != nil {
		if jc.RequestTimeout.Duration < 0 {
			return fmt.Errorf("parse config %s: negative request_timeout", path)
		}
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}
