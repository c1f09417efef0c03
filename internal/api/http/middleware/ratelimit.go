package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/contacts-server/internal/api/http/response"
	"github.com/dtroode/contacts-server/internal/model"
)

// RateLimit is a fixed-window request limiter backed by redis counters.
// When redis is unavailable it fails open rather than blocking traffic.
type RateLimit struct {
	rdb            *redis.Client
	contextManager model.ContextManager
}

// NewRateLimit creates a rate limiter over the given redis client.
func NewRateLimit(rdb *redis.Client, contextManager model.ContextManager) *RateLimit {
	return &RateLimit{rdb: rdb, contextManager: contextManager}
}

// clientID keys authenticated requests by user ID and anonymous ones by
// the originating IP, honoring the first X-Forwarded-For hop.
func (m *RateLimit) clientID(r *http.Request) string {
	if userID, ok := m.contextManager.GetUserIDFromContext(r.Context()); ok {
		return "uid:" + userID.String()
	}
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.RemoteAddr
	}
	return "ip:" + strings.TrimSpace(strings.Split(ip, ",")[0])
}

// Limit returns a middleware allowing at most limit requests per window per
// client. Authenticated clients are keyed by user ID, anonymous ones by IP.
func (m *RateLimit) Limit(limit int, window time.Duration, keyPrefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := keyPrefix + ":" + m.clientID(r)

			count, err := m.rdb.Incr(ctx, key).Result()
			if err != nil {
				// Fail open when redis is unavailable.
				next.ServeHTTP(w, r)
				return
			}

			if count == 1 {
				m.rdb.Expire(ctx, key, window)
			}

			if count > int64(limit) {
				ttl, _ := m.rdb.TTL(ctx, key).Result()
				w.Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))
				response.Error(w, http.StatusTooManyRequests, "too many requests")
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-int(count)))

			next.ServeHTTP(w, r)
		})
	}
}
