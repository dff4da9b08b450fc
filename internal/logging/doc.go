// Package logging assembles structured slog loggers and formatting helpers used
// across reel.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes typed attribute helpers plus the standard field keys so lookup,
// cache, and batch code emit log lines with the same shape. A no-op logger is
// provided for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// writes to the same destinations with the same field names.
package logging
