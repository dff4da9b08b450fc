package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmgilman/go/errors"

	"reel/internal/config"
	"reel/internal/enrich"
	"reel/internal/fetch"
	"reel/internal/geocode"
	"reel/internal/kvcache"
	"reel/internal/logging"
	"reel/internal/lookup"
	"reel/internal/movies"
	"reel/internal/omdb"
)

// Cache names accepted by App.Cache.
const (
	CacheMovies = "movies"
	CacheGeo    = "geo"
)

// CacheAdmin exposes the administrative side of a lookup service.
type CacheAdmin interface {
	Name() string
	Stats() lookup.Stats
	Keys() []string
	Invalidate() error
}

// App holds the wired lookup services.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	Movies      *lookup.Service[omdb.Record]
	Geo         *lookup.Service[geocode.Coordinates]
	MovieBatch  *enrich.Enricher[omdb.Record]
	PlaceBatch  *enrich.Enricher[geocode.Coordinates]
	maxTitles   int
	maxPlaces   int
	moviesReady bool
}

// Option adjusts how Open builds clients.
type Option func(*options)

type options struct {
	omdbOpts    []omdb.Option
	geocodeOpts []geocode.Option
	fetchOpts   []fetch.Option
}

// WithOMDbOptions passes extra options to the OMDb client.
func WithOMDbOptions(opts ...omdb.Option) Option {
	return func(o *options) { o.omdbOpts = append(o.omdbOpts, opts...) }
}

// WithGeocodeOptions passes extra options to the geocoding client.
func WithGeocodeOptions(opts ...geocode.Option) Option {
	return func(o *options) { o.geocodeOpts = append(o.geocodeOpts, opts...) }
}

// WithFetchOptions passes extra options to both rate limiters.
func WithFetchOptions(opts ...fetch.Option) Option {
	return func(o *options) { o.fetchOpts = append(o.fetchOpts, opts...) }
}

// Open builds the pipeline described by cfg. A missing OMDb API key does not
// fail Open; movie lookups then report an unauthorized failure and
// RequireMovies explains how to configure the key.
func Open(cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	movieBackend, err := kvcache.OpenBackend(cfg.Cache.Backend, cfg.MoviesCachePath())
	if err != nil {
		return nil, fmt.Errorf("movies cache: %w", err)
	}
	geoBackend, err := kvcache.OpenBackend(cfg.Cache.Backend, cfg.GeoCachePath())
	if err != nil {
		return nil, fmt.Errorf("geo cache: %w", err)
	}

	movieCall, moviesReady, err := movieLookup(cfg, o.omdbOpts)
	if err != nil {
		return nil, err
	}

	geoOpts := append([]geocode.Option{
		geocode.WithTimeout(cfg.GeocodingTimeout()),
		geocode.WithLanguage(cfg.Geocoding.Language),
	}, o.geocodeOpts...)
	geoClient, err := geocode.New(cfg.Geocoding.BaseURL, cfg.Geocoding.UserAgent, geoOpts...)
	if err != nil {
		return nil, fmt.Errorf("geocoding client: %w", err)
	}

	movieStore := kvcache.New[omdb.Record](movieBackend, logger)
	geoStore := kvcache.New[geocode.Coordinates](geoBackend, logger)

	movieFetcher := fetch.New(movieCall, cfg.OMDbMinInterval(), o.fetchOpts...)
	geoFetcher := fetch.New(geoClient.Locate, cfg.GeocodingMinInterval(), o.fetchOpts...)

	movieService := lookup.New[omdb.Record](CacheMovies, movieStore, movieFetcher, logger)
	geoService := lookup.New[geocode.Coordinates](CacheGeo, geoStore, geoFetcher, logger)

	logger.Debug("lookup pipeline ready",
		logging.String("cache_backend", cfg.Cache.Backend),
		logging.String("movies_cache", movieStore.Path()),
		logging.String("geo_cache", geoStore.Path()),
		logging.Duration("omdb_interval", movieFetcher.Interval()),
		logging.Duration("geocoding_interval", geoFetcher.Interval()),
		logging.Bool("omdb_configured", moviesReady))

	return &App{
		Config:      cfg,
		Logger:      logger,
		Movies:      movieService,
		Geo:         geoService,
		MovieBatch:  enrich.New[omdb.Record](movieService, logger),
		PlaceBatch:  enrich.New[geocode.Coordinates](geoService, logger),
		maxTitles:   cfg.Batch.MaxTitles,
		maxPlaces:   cfg.Batch.MaxPlaces,
		moviesReady: moviesReady,
	}, nil
}

func movieLookup(cfg *config.Config, extra []omdb.Option) (fetch.Func[omdb.Record], bool, error) {
	if cfg.OMDb.APIKey == "" {
		return func(context.Context, string) (omdb.Record, error) {
			return nil, errors.New(errors.CodeUnauthorized, "omdb.api_key is not configured")
		}, false, nil
	}
	clientOpts := append([]omdb.Option{omdb.WithTimeout(cfg.OMDbTimeout())}, extra...)
	client, err := omdb.New(cfg.OMDb.APIKey, cfg.OMDb.BaseURL, clientOpts...)
	if err != nil {
		return nil, false, fmt.Errorf("omdb client: %w", err)
	}
	return client.LookupTitle, true, nil
}

// RequireMovies reports why movie lookups cannot run, or nil when they can.
func (a *App) RequireMovies() error {
	if a.moviesReady {
		return nil
	}
	return a.Config.RequireOMDbKey()
}

// Caches returns every lookup service in a stable order.
func (a *App) Caches() []CacheAdmin {
	return []CacheAdmin{a.Movies, a.Geo}
}

// Cache returns the lookup service with the given name.
func (a *App) Cache(name string) (CacheAdmin, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case CacheMovies:
		return a.Movies, nil
	case CacheGeo:
		return a.Geo, nil
	default:
		return nil, fmt.Errorf("unknown cache %q (expected %s or %s)", name, CacheMovies, CacheGeo)
	}
}

// CapTitles applies the configured per-batch title limit.
func (a *App) CapTitles(titles []string) []string {
	capped := movies.CapTitles(titles, a.maxTitles)
	if len(capped) < len(titles) {
		logging.WarnWithContext(a.Logger, "title list truncated", "enrich_titles_truncated",
			logging.Int("requested", len(titles)),
			logging.Int("max_titles", a.maxTitles),
			logging.String(logging.FieldErrorHint, "raise batch.max_titles to resolve more titles per request"),
			logging.String(logging.FieldImpact, "titles beyond the limit are ignored"))
	}
	return capped
}

// EnrichMovies resolves titles (after capping) into OMDb records.
func (a *App) EnrichMovies(ctx context.Context, titles []string) enrich.Result[omdb.Record] {
	return a.MovieBatch.Enrich(ctx, a.CapTitles(titles))
}

// Point is a located place.
type Point struct {
	Place     string  `json:"place"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CapPlaces applies the configured per-batch place limit.
func (a *App) CapPlaces(places []string) []string {
	if a.maxPlaces <= 0 || len(places) <= a.maxPlaces {
		return places
	}
	logging.WarnWithContext(a.Logger, "place list truncated", "geocode_places_truncated",
		logging.Int("requested", len(places)),
		logging.Int("max_places", a.maxPlaces),
		logging.String(logging.FieldErrorHint, "raise batch.max_places to geocode more places per request"),
		logging.String(logging.FieldImpact, "places beyond the limit are ignored"))
	return places[:a.maxPlaces]
}

// LocatePlaces geocodes places (after capping), dropping the ones that do
// not resolve.
func (a *App) LocatePlaces(ctx context.Context, places []string) []Point {
	result := a.PlaceBatch.Enrich(ctx, a.CapPlaces(places))
	points := make([]Point, 0, len(result.Values))
	for i, coords := range result.Values {
		points = append(points, Point{
			Place:     result.Resolved[i],
			Latitude:  coords.Latitude,
			Longitude: coords.Longitude,
		})
	}
	return points
}

// MapMovies resolves titles and geocodes the production countries of the
// records found.
func (a *App) MapMovies(ctx context.Context, titles []string) ([]omdb.Record, []Point) {
	records := a.EnrichMovies(ctx, titles).Values
	return records, a.LocatePlaces(ctx, movies.Countries(records))
}
