package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RateLimitType string

const (
	RateLimitTypeDefault RateLimitType = "default"
	RateLimitTypePublic  RateLimitType = "public"
	RateLimitTypeAuth    RateLimitType = "auth"
	RateLimitTypeBooking RateLimitType = "booking"
	RateLimitTypeAdmin   RateLimitType = "admin"
)

// Config holds per-type request budgets over a sliding window
type Config struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PublicRequests  int           `json:"public_requests"`
	AuthRequests    int           `json:"auth_requests"`
	BookingRequests int           `json:"booking_requests"`
	AdminRequests   int           `json:"admin_requests"`
	WhitelistedIPs  []string      `json:"whitelisted_ips"`
}

// Result is the outcome of a single budget check
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// slidingWindow trims expired entries, counts what is left, and admits the
// request only if the budget still has room. Runs atomically in Redis.
// ARGV: cutoff (ns), member (ns), limit, window ttl (s).
// Returns {admitted, used}.
var slidingWindow = redis.NewScript(`
	redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
	local used = redis.call('ZCARD', KEYS[1])
	local admitted = 0
	if used < tonumber(ARGV[3]) then
		redis.call('ZADD', KEYS[1], ARGV[2], ARGV[2])
		used = used + 1
		admitted = 1
	end
	redis.call('EXPIRE', KEYS[1], ARGV[4])
	return {admitted, used}
`)

// RateLimiter enforces sliding-window budgets backed by Redis sorted sets
type RateLimiter struct {
	client *redis.Client
	config *Config
}

func NewRateLimiter(client *redis.Client, config *Config) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
	}
}

// IsAllowed checks if the request is within the client's budget
func (r *RateLimiter) IsAllowed(ctx context.Context, clientIP string, limitType RateLimitType) (*Result, error) {
	limit := r.limitFor(limitType)
	resetAt := time.Now().Add(r.config.WindowDuration).Unix()

	if !r.config.Enabled || r.isWhitelisted(clientIP) {
		return &Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit,
			ResetTime: resetAt,
		}, nil
	}

	now := time.Now()
	key := fmt.Sprintf("cinebook:ratelimit:%s:%s", clientIP, limitType)

	// Nanosecond members keep concurrent requests from the same client
	// distinct in the sorted set
	raw, err := slidingWindow.Run(ctx, r.client, []string{key},
		now.Add(-r.config.WindowDuration).UnixNano(),
		now.UnixNano(),
		limit,
		int(r.config.WindowDuration.Seconds()),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}
	if len(raw) != 2 {
		return nil, fmt.Errorf("rate limit script: unexpected reply %v", raw)
	}

	admitted, used := raw[0] == 1, int(raw[1])
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   admitted,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: resetAt,
	}, nil
}

func (r *RateLimiter) limitFor(limitType RateLimitType) int {
	switch limitType {
	case RateLimitTypePublic:
		return r.config.PublicRequests
	case RateLimitTypeAuth:
		return r.config.AuthRequests
	case RateLimitTypeBooking:
		return r.config.BookingRequests
	case RateLimitTypeAdmin:
		return r.config.AdminRequests
	default:
		return r.config.DefaultRequests
	}
}

func (r *RateLimiter) isWhitelisted(ip string) bool {
	for _, allowed := range r.config.WhitelistedIPs {
		if ip == allowed {
			return true
		}
	}
	return false
}
