// Package redis throttles vote casting with a fixed-window counter kept in
// Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/vncsmyrnk/playervote/internal/core/fingerprint"
)

const keyPrefix = "rl:vote"

var windowScript = goredis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	return { count, ttl }
`)

// Counter increments the hit count for key inside the current window and
// reports the count and the time left in the window.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type redisCounter struct {
	rdb *goredis.Client
}

func (c redisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	vals, err := windowScript.Run(ctx, c.rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(vals) != 2 {
		return 0, 0, fmt.Errorf("unexpected rate limit script result: %v", vals)
	}
	return vals[0], time.Duration(vals[1]) * time.Millisecond, nil
}

type Limiter struct {
	counter Counter
	limit   int
	window  time.Duration
}

// NewLimiter returns a limiter allowing limit hits per window. A nil client or
// a non-positive limit or window disables limiting.
func NewLimiter(rdb *goredis.Client, limit int, window time.Duration) *Limiter {
	if rdb == nil {
		return NewLimiterWithCounter(nil, limit, window)
	}
	return NewLimiterWithCounter(redisCounter{rdb: rdb}, limit, window)
}

func NewLimiterWithCounter(counter Counter, limit int, window time.Duration) *Limiter {
	return &Limiter{counter: counter, limit: limit, window: window}
}

func (l *Limiter) enabled() bool {
	return l != nil && l.counter != nil && l.limit > 0 && l.window > 0
}

// Middleware rejects requests from a device once it used up its window.
// Devices are keyed by the same fingerprint the vote flow derives from the
// request. Redis failures let the request through.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	if !l.enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := keyPrefix + ":" + fingerprint.FromRequest(r)

		count, ttl, err := l.counter.Hit(r.Context(), key, l.window)
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		remaining := max(int64(l.limit)-count, 0)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(l.limit) {
			secs := int(math.Ceil(ttl.Seconds()))
			if secs < 0 {
				secs = 0
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    "TOO_MANY_REQUESTS",
				"message": "too many votes from this device, try again later",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
