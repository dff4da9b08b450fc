// Package main hosts the reel CLI entrypoint and command graph.
//
// The Cobra command tree resolves movie titles and place names through the
// cached lookup services, renders batch results as tables or machine-readable
// output, administers the on-disk caches, and runs the HTTP API. Configuration
// loading and service wiring happen once per invocation in commandContext so
// subcommands only describe their flags and output.
package main
