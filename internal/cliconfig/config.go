// Package cliconfig holds CLI configuration loading for sponsorscout:
// defaults, TOML file, environment and flag precedence.
package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tnt-robotics/sponsorscout/internal/domain"
)

// Store backend names accepted by the store flag.
const (
	StoreCSV    = "csv"
	StoreSheet  = "sheet"
	StoreSQLite = "sqlite"
)

// Config holds CLI configuration for sponsorscout.
type Config struct {
	Queries    []string
	MaxResults int

	Store     string
	StorePath string

	ServiceURL string
	AuthKey    string

	RatePerMinute int
	WriteRetries  int
	RetryDelay    time.Duration
	FetchTimeout  time.Duration

	FragmentLimit int

	Once     bool
	Interval time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		MaxResults:    10,
		Store:         StoreCSV,
		StorePath:     "sponsorscout.csv",
		RatePerMinute: 60,
		WriteRetries:  3,
		RetryDelay:    1500 * time.Millisecond,
		FetchTimeout:  10 * time.Second,
		FragmentLimit: 80,
		Once:          true,
		Interval:      time.Hour,
		AuthKey:       os.Getenv("SPONSORSCOUT_AUTH_KEY"),
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if len(c.Queries) == 0 {
		return fmt.Errorf("%w: at least one query is required", domain.ErrInvalidConfig)
	}

	switch c.Store {
	case StoreCSV, StoreSQLite:
		if c.StorePath == "" {
			return fmt.Errorf("%w: store-path is required for the %s store", domain.ErrInvalidConfig, c.Store)
		}
	case StoreSheet:
		if c.ServiceURL == "" {
			return fmt.Errorf("%w: service-url is required for the sheet store", domain.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store backend %q", domain.ErrInvalidConfig, c.Store)
	}

	// Ensure no trailing slash
	if len(c.ServiceURL) > 0 && c.ServiceURL[len(c.ServiceURL)-1] == '/' {
		c.ServiceURL = c.ServiceURL[:len(c.ServiceURL)-1]
	}

	if c.RatePerMinute <= 0 {
		return fmt.Errorf("%w: rate must be positive", domain.ErrInvalidConfig)
	}
	if c.WriteRetries <= 0 {
		return fmt.Errorf("%w: retries must be positive", domain.ErrInvalidConfig)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: fetch timeout must be positive", domain.ErrInvalidConfig)
	}
	if !c.Once && c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive", domain.ErrInvalidConfig)
	}

	return nil
}

// Logger returns the console logger used by the CLI before the structured
// logging adapter is wired up.
func Logger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a string slice if non-empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination if valid.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	if b, err := strconv.ParseBool(value); err == nil {
		*dst = b
	}
}
