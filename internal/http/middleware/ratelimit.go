package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chandrabharti/restaurant-api/internal/http/response"
	"github.com/chandrabharti/restaurant-api/internal/logger"
)

// RateLimiter is a fixed-window per-key counter backed by Redis. It guards
// the auth endpoints against credential stuffing and OTP harvesting.
type RateLimiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
}

func NewRateLimiter(client *redis.Client, requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, requests: requests, window: window}
}

// Middleware limits by client IP. A Redis outage fails open; losing the
// limiter must never take the login path down with it.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rateLimitKey(clientIP(r))

		allowed, err := rl.allow(r.Context(), key)
		if err != nil {
			logger.WarnContext(r.Context(), "Rate limiter unavailable, allowing request", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			response.RateLimit(w, "too many requests, try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
			return true, err
		}
	}
	return count <= int64(rl.requests), nil
}

// Keys are hashed so raw addresses never sit in Redis.
func rateLimitKey(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return fmt.Sprintf("ratelimit:%x", sum[:8])
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
