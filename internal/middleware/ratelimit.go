package middleware

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/sporttrack/sporttrack/internal/config"
)

// tokenBucketScript refills and debits a bucket atomically.  KEYS[1] is
// the bucket key; ARGV: capacity, refill tokens, refill interval ms,
// now ms, ttl ms.  Returns {allowed, tokens_left, retry_after_ms}.
const tokenBucketScript = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local refill_tokens = tonumber(ARGV[2])
local refill_interval = tonumber(ARGV[3])
local now = tonumber(ARGV[4])
local ttl = tonumber(ARGV[5])

local data = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts = tonumber(data[2])

if tokens == nil then
  tokens = capacity
  ts = now
end

local elapsed = now - ts
if elapsed >= refill_interval then
  local steps = math.floor(elapsed / refill_interval)
  tokens = math.min(capacity, tokens + steps * refill_tokens)
  ts = ts + steps * refill_interval
end

local allowed = 0
local retry_after = 0
if tokens > 0 then
  allowed = 1
  tokens = tokens - 1
else
  retry_after = refill_interval - (now - ts)
  if retry_after < 0 then retry_after = 0 end
end

redis.call('HSET', key, 'tokens', tokens, 'ts', ts)
redis.call('PEXPIRE', key, ttl)

return {allowed, tokens, retry_after}
`

var tokenBucket = redis.NewScript(tokenBucketScript)

// buildRateKey scopes the bucket.  The default ties the limit to both
// the caller's IP and identity so a busy club on a shared gym network
// cannot starve another.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
	parts := []string{cfg.Prefix}
	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		parts = append(parts, "ip", c.RealIP())
	case "user":
		parts = append(parts, "user", currentUserID(c))
	case "ip_route":
		parts = append(parts, "ip", c.RealIP(), "route", c.Path())
	default: // "ip_user_route"
		parts = append(parts, "ip", c.RealIP(), "user", currentUserID(c), "route", c.Path())
	}
	return strings.Join(parts, ":")
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	default:
		return 0
	}
}

// NewTokenBucket returns a per-caller limiter backed by Redis.  When
// Redis is unavailable the limiter fails open rather than blocking the
// whole API behind a cache outage.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := buildRateKey(cfg, c)
			now := time.Now().UnixMilli()

			res, err := tokenBucket.Run(ctx, rdb, []string{key},
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				now,
				cfg.TTL.Milliseconds(),
			).Result()
			if err != nil {
				if cfg.Debug {
					log.Printf("rate limiter unavailable: %v", err)
				}
				return next(c)
			}

			vals, ok := res.([]interface{})
			if !ok || len(vals) != 3 {
				return next(c)
			}
			allowed := asInt64(vals[0]) == 1
			remaining := asInt64(vals[1])
			retryAfterMs := asInt64(vals[2])

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if !allowed {
				retrySecs := (retryAfterMs + 999) / 1000
				if retrySecs < 1 {
					retrySecs = 1
				}
				h.Set("Retry-After", strconv.FormatInt(retrySecs, 10))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too_many_requests",
					"message":     "rate limit exceeded",
					"retry_after": retrySecs,
				})
			}

			if cfg.Debug {
				log.Printf("rate limit ok key=%s remaining=%d", key, remaining)
			}
			return next(c)
		}
	}
}
