package cliconfig

import (
	"os"
	"strings"
)

// ApplyEnvConfig applies configuration from environment variables
// (SPONSORSCOUT_*). It respects flags that have been explicitly set
// (changed map). Returns an error if any environment variable has an
// invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if v := os.Getenv("SPONSORSCOUT_QUERIES"); v != "" && !changed["query"] {
		var queries []string
		for _, q := range strings.Split(v, ",") {
			if q = strings.TrimSpace(q); q != "" {
				queries = append(queries, q)
			}
		}
		s.setStrings("query", queries, &cfg.Queries)
	}

	s.setString("store", os.Getenv("SPONSORSCOUT_STORE"), &cfg.Store)
	s.setString("store-path", os.Getenv("SPONSORSCOUT_STORE_PATH"), &cfg.StorePath)
	s.setString("service-url", os.Getenv("SPONSORSCOUT_SERVICE_URL"), &cfg.ServiceURL)
	s.setString("auth-key", os.Getenv("SPONSORSCOUT_AUTH_KEY"), &cfg.AuthKey)

	if err := s.setIntFromString("max-results", os.Getenv("SPONSORSCOUT_MAX_RESULTS"), &cfg.MaxResults); err != nil {
		return err
	}
	if err := s.setIntFromString("rate", os.Getenv("SPONSORSCOUT_RATE_PER_MINUTE"), &cfg.RatePerMinute); err != nil {
		return err
	}
	if err := s.setIntFromString("retries", os.Getenv("SPONSORSCOUT_WRITE_RETRIES"), &cfg.WriteRetries); err != nil {
		return err
	}
	if err := s.setIntFromString("fragment-limit", os.Getenv("SPONSORSCOUT_FRAGMENT_LIMIT"), &cfg.FragmentLimit); err != nil {
		return err
	}

	if err := s.setDuration("retry-delay", os.Getenv("SPONSORSCOUT_RETRY_DELAY"), &cfg.RetryDelay); err != nil {
		return err
	}
	if err := s.setDuration("fetch-timeout", os.Getenv("SPONSORSCOUT_FETCH_TIMEOUT"), &cfg.FetchTimeout); err != nil {
		return err
	}
	if err := s.setDuration("interval", os.Getenv("SPONSORSCOUT_INTERVAL"), &cfg.Interval); err != nil {
		return err
	}

	s.setBoolFromString("once", os.Getenv("SPONSORSCOUT_ONCE"), &cfg.Once)

	return nil
}
