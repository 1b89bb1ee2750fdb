package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zidalco/zidalco-backend/pkg/clientip"
)

const (
	submitWindow      = 120 * time.Second
	submitMaxRequests = 25
	rateLimitPrefix   = "ratelimit:"
	blockedIPPrefix   = "blocked_ip:"
	blockedIPDuration = 24 * time.Hour
)

// SubmitRateLimit throttles the public submission endpoints through Redis
// and blocks abusive IPs for 24 hours. With a nil client it is a no-op, and
// any Redis error fails open.
func SubmitRateLimit(rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := clientip.RealClientIP(r)

			blockedKey := blockedIPPrefix + ip
			if blocked, err := rdb.Exists(ctx, blockedKey).Result(); err == nil && blocked > 0 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"success":false,"message":"Your IP has been temporarily blocked due to excessive requests. Please try again later."}`))
				return
			}

			key := rateLimitPrefix + ip
			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(ctx, key, submitWindow)
			}

			if count > submitMaxRequests {
				rdb.Set(ctx, blockedKey, "1", blockedIPDuration)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(fmt.Sprintf(`{"success":false,"message":"Rate limit exceeded. Your IP has been temporarily blocked. Please try again later.","retry_after":%d}`, int(submitWindow.Seconds()))))
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(submitMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(submitMaxRequests-count, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(submitWindow).Unix(), 10))

			next.ServeHTTP(w, r)
		})
	}
}

// UnblockIP removes an IP from the blocked list.
func UnblockIP(ctx context.Context, rdb *redis.Client, ip string) error {
	return rdb.Del(ctx, blockedIPPrefix+ip).Err()
}

// IsIPBlocked reports whether an IP is currently blocked.
func IsIPBlocked(ctx context.Context, rdb *redis.Client, ip string) (bool, error) {
	count, err := rdb.Exists(ctx, blockedIPPrefix+ip).Result()
	return count > 0, err
}
