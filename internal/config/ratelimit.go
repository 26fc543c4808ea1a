package config

import "time"

// RateLimitConfig drives the Redis token-bucket limiter.  Capacity is
// the burst size; the bucket refills RefillTokens every RefillInterval.
// TTL bounds how long idle buckets linger in Redis.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig reads limiter settings from the environment and
// normalizes them so the limiter never divides by zero or expires a
// bucket mid-refill.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Capacity:       atoiOr(getenv("RATE_LIMIT_CAPACITY", ""), 60),
		RefillTokens:   atoiOr(getenv("RATE_LIMIT_REFILL_TOKENS", ""), 1),
		RefillInterval: durOr(getenv("RATE_LIMIT_REFILL_INTERVAL", ""), time.Second),
		TTL:            durOr(getenv("RATE_LIMIT_TTL", ""), 10*time.Minute),
		KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
		Prefix:         getenv("RATE_LIMIT_PREFIX", "sporttrack:rl"),
		Debug:          getenv("RATE_LIMIT_DEBUG", "false") == "true",
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if n := atoi(s); n != 0 || s == "0" {
		return n
	}
	return def
}

func durOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}
