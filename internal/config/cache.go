package config

import "time"

// CacheConfig defines settings for the availability response cache.
// When Enabled is false, or no Redis client could be created, the
// middleware degrades to a pass-through.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads cache settings from the environment, falling back
// to sane defaults.  A short TTL keeps availability reads cheap without
// showing stale slots for long.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 30*time.Second),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
	}
}
