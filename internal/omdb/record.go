package omdb

import "strings"

// Record is a raw OMDb movie object keyed by OMDb field names
// ("Title", "Genre", "imdbRating", "Ratings", ...).
type Record map[string]any

// String returns the field as a trimmed string, or "" when absent or not a string.
func (r Record) String(key string) string {
	value, ok := r[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// Title returns the record's title.
func (r Record) Title() string {
	return r.String("Title")
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for key, value := range r {
		out[key] = value
	}
	return out
}
