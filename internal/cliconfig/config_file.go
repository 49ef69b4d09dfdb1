package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config but uses strings for durations to make TOML friendly.
type fileConfig struct {
	Queries       []string `toml:"queries"`
	MaxResults    int      `toml:"max_results"`
	Store         string   `toml:"store"`
	StorePath     string   `toml:"store_path"`
	ServiceURL    string   `toml:"service_url"`
	AuthKey       string   `toml:"api_key"`
	RatePerMinute int      `toml:"rate_per_minute"`
	WriteRetries  int      `toml:"write_retries"`
	RetryDelay    string   `toml:"retry_delay"`
	FetchTimeout  string   `toml:"fetch_timeout"`
	FragmentLimit int      `toml:"fragment_limit"`
	Once          *bool    `toml:"once"`
	Interval      string   `toml:"interval"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.sponsorscout/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".sponsorscout", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc fileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setStrings("query", fc.Queries, &cfg.Queries)
	s.setString("store", fc.Store, &cfg.Store)
	s.setString("store-path", fc.StorePath, &cfg.StorePath)
	s.setString("service-url", fc.ServiceURL, &cfg.ServiceURL)
	s.setString("auth-key", fc.AuthKey, &cfg.AuthKey)

	s.setInt("max-results", fc.MaxResults, &cfg.MaxResults)
	s.setInt("rate", fc.RatePerMinute, &cfg.RatePerMinute)
	s.setInt("retries", fc.WriteRetries, &cfg.WriteRetries)
	s.setInt("fragment-limit", fc.FragmentLimit, &cfg.FragmentLimit)

	if err := s.setDuration("retry-delay", fc.RetryDelay, &cfg.RetryDelay); err != nil {
		return err
	}
	if err := s.setDuration("fetch-timeout", fc.FetchTimeout, &cfg.FetchTimeout); err != nil {
		return err
	}
	if err := s.setDuration("interval", fc.Interval, &cfg.Interval); err != nil {
		return err
	}

	s.setBool("once", fc.Once, &cfg.Once)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
