// Package kvcache persists successful lookup results as a key/value snapshot.
//
// A Store keeps every entry in memory and mirrors the whole map to a Backend
// after each Put. Two backends are provided: a JSON file (one object mapping
// key to value, replaced atomically under a cross-process file lock) and a
// SQLite database with one row per key. Read and decode failures are logged
// and degrade to an empty store; they are never returned to callers.
package kvcache
