package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

func (c *Config) normalize() error {
	c.normalizeOMDb()
	if err := c.normalizeGeocoding(); err != nil {
		return err
	}
	if err := c.normalizeCache(); err != nil {
		return err
	}
	if c.Batch.MaxTitles == 0 {
		c.Batch.MaxTitles = defaultMaxTitles
	}
	if c.Batch.MaxPlaces == 0 {
		c.Batch.MaxPlaces = defaultMaxPlaces
	}
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeOMDb() {
	c.OMDb.APIKey = strings.TrimSpace(c.OMDb.APIKey)
	for _, name := range []string{"OMDB_API_KEY", "API_KEY"} {
		if c.OMDb.APIKey != "" {
			break
		}
		c.OMDb.APIKey = strings.TrimSpace(os.Getenv(name))
	}
	c.OMDb.BaseURL = strings.TrimSpace(c.OMDb.BaseURL)
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = defaultOMDbBaseURL
	}
	if c.OMDb.TimeoutSeconds == 0 {
		c.OMDb.TimeoutSeconds = defaultOMDbTimeoutSeconds
	}
}

func (c *Config) normalizeGeocoding() error {
	c.Geocoding.BaseURL = strings.TrimRight(strings.TrimSpace(c.Geocoding.BaseURL), "/")
	if c.Geocoding.BaseURL == "" {
		c.Geocoding.BaseURL = defaultGeocodingBaseURL
	}
	c.Geocoding.UserAgent = strings.TrimSpace(c.Geocoding.UserAgent)
	if c.Geocoding.UserAgent == "" {
		c.Geocoding.UserAgent = defaultGeocodingUserAgent
	}
	if c.Geocoding.TimeoutSeconds == 0 {
		c.Geocoding.TimeoutSeconds = defaultGeocodingTimeout
	}
	c.Geocoding.Language = strings.TrimSpace(c.Geocoding.Language)
	if c.Geocoding.Language != "" {
		tag, err := language.Parse(c.Geocoding.Language)
		if err != nil {
			return fmt.Errorf("geocoding.language: %q is not a BCP 47 language tag: %w", c.Geocoding.Language, err)
		}
		c.Geocoding.Language = tag.String()
	}
	return nil
}

func (c *Config) normalizeCache() error {
	var err error
	if strings.TrimSpace(c.Cache.Dir) == "" {
		c.Cache.Dir = defaultCacheDir
	}
	if c.Cache.Dir, err = expandPath(c.Cache.Dir); err != nil {
		return fmt.Errorf("cache.dir: %w", err)
	}
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if c.Cache.Backend == "" {
		c.Cache.Backend = defaultCacheBackend
	}
	c.Cache.MoviesFile = strings.TrimSpace(c.Cache.MoviesFile)
	if c.Cache.MoviesFile == "" {
		c.Cache.MoviesFile = defaultMoviesFile
	}
	c.Cache.GeoFile = strings.TrimSpace(c.Cache.GeoFile)
	if c.Cache.GeoFile == "" {
		c.Cache.GeoFile = defaultGeoFile
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dir, err := expandPath(strings.TrimSpace(c.Logging.Dir))
		if err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
		c.Logging.Dir = dir
	}
	return nil
}
