// Package app assembles the lookup pipeline from configuration.
//
// Open builds one store, client, fetcher, lookup service, and batch enricher
// per remote source (movie metadata and geocoding). The CLI and the HTTP API
// share the resulting App; nothing in the pipeline is a process-wide global.
package app
