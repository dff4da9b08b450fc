package app

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// MatchKeys lists the keys of the named cache that match a glob pattern
// such as "Star*". An empty pattern matches every key.
func (a *App) MatchKeys(name, pattern string) ([]string, error) {
	cache, err := a.Cache(name)
	if err != nil {
		return nil, err
	}
	keys := cache.Keys()
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return keys, nil
	}
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid key pattern %q: %w", pattern, err)
	}
	matched := make([]string, 0, len(keys))
	for _, key := range keys {
		if matcher.Match(key) {
			matched = append(matched, key)
		}
	}
	return matched, nil
}
