package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
)

// Validate ensures the configuration is usable.
//
// The OMDb API key is not required here: geocoding and cache administration
// work without it. Commands that resolve movies call RequireOMDbKey.
func (c *Config) Validate() error {
	if err := c.validateOMDb(); err != nil {
		return err
	}
	if err := c.validateGeocoding(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if c.Batch.MaxTitles < 0 {
		return errors.New("batch.max_titles must be positive")
	}
	if c.Batch.MaxPlaces < 0 {
		return errors.New("batch.max_places must be positive")
	}
	return c.validateLogging()
}

// RequireOMDbKey reports a descriptive error when no OMDb API key is configured.
func (c *Config) RequireOMDbKey() error {
	if c.OMDb.APIKey != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("omdb.api_key is required. Set OMDB_API_KEY env var or edit %s (create with 'reel config init')", defaultPath)
}

func (c *Config) validateOMDb() error {
	if err := validateBaseURL("omdb.base_url", c.OMDb.BaseURL); err != nil {
		return err
	}
	if c.OMDb.TimeoutSeconds < 0 {
		return errors.New("omdb.timeout_seconds must be positive")
	}
	if c.OMDb.MinIntervalMS < 0 {
		return errors.New("omdb.min_interval_ms must not be negative")
	}
	return nil
}

func (c *Config) validateGeocoding() error {
	if err := validateBaseURL("geocoding.base_url", c.Geocoding.BaseURL); err != nil {
		return err
	}
	if c.Geocoding.TimeoutSeconds < 0 {
		return errors.New("geocoding.timeout_seconds must be positive")
	}
	if c.Geocoding.MinIntervalMS < 0 {
		return errors.New("geocoding.min_interval_ms must not be negative")
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("cache.backend: unsupported value %q (expected json or sqlite)", c.Cache.Backend)
	}
	if filepath.Clean(c.Cache.MoviesFile) == filepath.Clean(c.Cache.GeoFile) {
		return errors.New("cache.movies_file and cache.geo_file must differ")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func validateBaseURL(key, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http or https URL, got %q", key, raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s is missing a host", key)
	}
	return nil
}
