package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"linkFlame/pkg/logger"
	"linkFlame/pkg/metrics"

	jsonres "linkFlame/pkg/response"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Counter is the slice of the Redis API the limiter needs.
// *redis.Client satisfies it.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimiter is a fixed-window counter backed by Redis. The window key
// is (client ip, route group), so one noisy client cannot starve the
// rest, and limits apply per surface rather than globally.
type RateLimiter struct {
	rdb    Counter
	limit  int64
	window time.Duration
}

func NewRateLimiter(rdb Counter, requestsPerWindow int64, window time.Duration) *RateLimiter {
	// a non-positive window would divide by zero in the key math
	if window < time.Second {
		window = time.Minute
	}
	if requestsPerWindow < 1 {
		requestsPerWindow = 60
	}

	return &RateLimiter{
		rdb:    rdb,
		limit:  requestsPerWindow,
		window: window,
	}
}

// Limit returns a middleware enforcing the configured limit for the
// given route group. Redis being unreachable fails open, dropping
// requests because the limiter is down would be worse than not limiting.
func (rl *RateLimiter) Limit(group string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			windowStart := time.Now().Unix() / int64(rl.window.Seconds())
			key := fmt.Sprintf("ratelimit:%s:%s:%d", group, c.RealIP(), windowStart)

			count, err := rl.rdb.Incr(ctx, key).Result()
			if err != nil {
				logger.Warn("Rate limiter unavailable, allowing request", "error", err)
				return next(c)
			}

			if count == 1 {
				if err := rl.rdb.Expire(ctx, key, rl.window).Err(); err != nil {
					logger.Warn("Failed to set rate limit key expiry", "key", key, "error", err)
				}
			}

			if count > rl.limit {
				metrics.RateLimitRejections.Inc()

				retryAfter := rl.window - time.Duration(time.Now().Unix()%int64(rl.window.Seconds()))*time.Second
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))

				return c.JSON(http.StatusTooManyRequests, jsonres.Error(
					"TOO_MANY_REQUESTS", "Rate limit exceeded", map[string]interface{}{
						"retry_after_seconds": int(retryAfter.Seconds()),
					},
				))
			}

			return next(c)
		}
	}
}
