package utils

import (
	"strings"
	"sync"
)

// Location similarity scores
const (
	LocationExact     = 1.0
	LocationAlias     = 0.95
	LocationSubstring = 0.9
	LocationNone      = 0.0
)

var (
	aliasMu sync.RWMutex
	// canonical city -> known alternate names and airport codes
	locationAliases = map[string][]string{
		"nyc":    {"new york", "new york city"},
		"la":     {"los angeles"},
		"sf":     {"san francisco"},
		"paris":  {"cdg", "orly"},
		"london": {"lhr", "lgw", "ltn"},
		"tokyo":  {"nrt", "hnd"},
	}
)

// RegisterLocationAlias adds alternate names for a canonical location.
func RegisterLocationAlias(canonical string, aliases ...string) {
	key := normalizeLocation(canonical)
	if key == "" {
		return
	}
	aliasMu.Lock()
	defer aliasMu.Unlock()
	for _, a := range aliases {
		if a = normalizeLocation(a); a != "" {
			locationAliases[key] = append(locationAliases[key], a)
		}
	}
}

// LocationSimilarity scores how well two location strings (city names,
// airport codes) refer to the same place, from 0.0 to 1.0.
func LocationSimilarity(a, b string) float64 {
	loc1 := normalizeLocation(a)
	loc2 := normalizeLocation(b)
	if loc1 == "" || loc2 == "" {
		return LocationNone
	}

	if loc1 == loc2 {
		return LocationExact
	}

	// "Paris" vs "Paris CDG"
	if strings.Contains(loc1, loc2) || strings.Contains(loc2, loc1) {
		return LocationSubstring
	}

	if isAlias(loc1, loc2) || isAlias(loc2, loc1) {
		return LocationAlias
	}

	return LocationNone
}

func isAlias(canonical, candidate string) bool {
	aliasMu.RLock()
	defer aliasMu.RUnlock()
	for _, v := range locationAliases[canonical] {
		if v == candidate {
			return true
		}
	}
	return false
}

func normalizeLocation(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
