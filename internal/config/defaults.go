package config

const (
	defaultConfigPath         = "~/.config/reel/config.toml"
	defaultOMDbBaseURL        = "https://www.omdbapi.com/"
	defaultOMDbTimeoutSeconds = 10
	defaultGeocodingBaseURL   = "https://nominatim.openstreetmap.org"
	defaultGeocodingUserAgent = "reel/dev"
	defaultGeocodingLanguage  = "en"
	defaultGeocodingTimeout   = 10
	// Nominatim's usage policy allows at most one request per second.
	defaultGeocodingMinIntervalMS = 1000
	defaultCacheDir               = "~/.cache/reel"
	defaultCacheBackend           = "json"
	defaultMoviesFile             = "movies.json"
	defaultGeoFile                = "geo.json"
	defaultMaxTitles              = 40
	defaultMaxPlaces              = 100
	defaultServerBind             = "127.0.0.1:7488"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		OMDb: OMDb{
			BaseURL:        defaultOMDbBaseURL,
			TimeoutSeconds: defaultOMDbTimeoutSeconds,
		},
		Geocoding: Geocoding{
			BaseURL:        defaultGeocodingBaseURL,
			UserAgent:      defaultGeocodingUserAgent,
			Language:       defaultGeocodingLanguage,
			TimeoutSeconds: defaultGeocodingTimeout,
			MinIntervalMS:  defaultGeocodingMinIntervalMS,
		},
		Cache: Cache{
			Dir:        defaultCacheDir,
			Backend:    defaultCacheBackend,
			MoviesFile: defaultMoviesFile,
			GeoFile:    defaultGeoFile,
		},
		Batch: Batch{
			MaxTitles: defaultMaxTitles,
			MaxPlaces: defaultMaxPlaces,
		},
		Server: Server{
			Bind: defaultServerBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
