package movies

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"reel/internal/omdb"
)

// SplitList splits an OMDb list field such as "Action, Sci-Fi".
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || part == "N/A" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// SelectFeatures returns copies of records holding only the named fields.
// With no features every record is copied whole.
func SelectFeatures(records []omdb.Record, features []string) []omdb.Record {
	out := make([]omdb.Record, 0, len(records))
	for _, record := range records {
		if len(features) == 0 {
			out = append(out, record.Clone())
			continue
		}
		selected := make(omdb.Record, len(features))
		for _, feature := range features {
			if value, ok := record[feature]; ok {
				selected[feature] = value
			}
		}
		out = append(out, selected)
	}
	return out
}

// FlattenRatings returns a copy of record where each Ratings entry
// {"Source": S, "Value": V} becomes a top-level "S Rating": V field.
func FlattenRatings(record omdb.Record) omdb.Record {
	out := record.Clone()
	ratings, ok := out["Ratings"].([]any)
	if !ok {
		return out
	}
	delete(out, "Ratings")
	for _, raw := range ratings {
		rating, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		source, _ := rating["Source"].(string)
		if strings.TrimSpace(source) == "" {
			continue
		}
		out[strings.TrimSpace(source)+" Rating"] = rating["Value"]
	}
	return out
}

// Search returns records whose Title, Genre, or Actors contain text,
// ignoring case. Empty text matches everything.
func Search(records []omdb.Record, text string) []omdb.Record {
	text = strings.TrimSpace(text)
	if text == "" {
		return records
	}
	fold := cases.Fold()
	needle := fold.String(text)

	var out []omdb.Record
	for _, record := range records {
		for _, field := range []string{"Title", "Genre", "Actors"} {
			if strings.Contains(fold.String(record.String(field)), needle) {
				out = append(out, record)
				break
			}
		}
	}
	return out
}

// Countries returns the distinct production countries of records in
// first-seen order.
func Countries(records []omdb.Record) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, record := range records {
		for _, country := range SplitList(record.String("Country")) {
			if _, ok := seen[country]; ok {
				continue
			}
			seen[country] = struct{}{}
			out = append(out, country)
		}
	}
	return out
}

// Describe renders a record field for display, joining non-string values.
func Describe(record omdb.Record, key string) string {
	switch value := record[key].(type) {
	case nil:
		return ""
	case string:
		return value
	case []any:
		parts := make([]string, 0, len(value))
		for _, item := range value {
			if rating, ok := item.(map[string]any); ok {
				parts = append(parts, fmt.Sprintf("%v: %v", rating["Source"], rating["Value"]))
				continue
			}
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprint(value)
	}
}
