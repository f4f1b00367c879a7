package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache.  Only GET requests
// whose path starts with one of Paths are cached; the catalog never
// depends on who is asking, so the key is route plus query.
type CacheConfig struct {
	Enabled      bool
	Paths        []string
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* with defaults covering the public catalog.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Paths:        splitList(envStr("CACHE_PATHS", "/v1/events,/v1/menu")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
