// Package config loads, normalizes, and validates reel configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OMDB_API_KEY. The Config type centralizes every knob the CLI and HTTP API
// need: remote endpoints and their rate limits, where lookup caches live, and
// how logs are written.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical language tags, and clear validation errors.
package config
