package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/thanFreecss/celebrity-salon/internal/httperr"
)

// Counter is the subset of a redis client the limiter needs.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimit allows limit requests per window per key using redis INCR with
// a TTL set on the first hit. A nil counter or a redis failure lets the
// request through.
func RateLimit(rdb Counter, prefix string, limit int, window time.Duration, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}
		key := keyFn(c)
		if key == "" {
			c.Next()
			return
		}

		rkey := fmt.Sprintf("rl:%s:%s", prefix, key)
		ctx := c.Request.Context()
		cnt, err := rdb.Incr(ctx, rkey).Result()
		if err != nil {
			log.WithError(err).Warn("rate limiter unavailable")
			c.Next()
			return
		}
		if cnt == 1 {
			_ = rdb.Expire(ctx, rkey, window).Err()
		}
		if cnt > int64(limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httperr.HTTPError{
				Code:    "rate_limited",
				Message: "Too many requests, slow down.",
			})
			return
		}
		c.Next()
	}
}

func ByClientIP(c *gin.Context) string {
	return c.ClientIP()
}
