package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute

	rateLimitKeyPrefix = "ratelimit:"
)

// RejectionRecorder counts rate limited requests.
type RejectionRecorder interface {
	IncrRateLimitRejection(route string)
}

// RateLimiter is a fixed-window limiter keyed by client IP and backed by Redis,
// so every API instance shares the same counters.
type RateLimiter struct {
	client         *redis.Client
	name           string
	maxAttempts    int
	windowDuration time.Duration
	enabled        bool
	recorder       RejectionRecorder
}

// RateLimiterConfig configures a RateLimiter.
type RateLimiterConfig struct {
	// Name scopes the counters, e.g. "login".
	Name           string
	MaxAttempts    int
	WindowDuration time.Duration
	Enabled        bool
}

// NewRateLimiter creates a new rate limiter. recorder may be nil.
func NewRateLimiter(client *redis.Client, cfg RateLimiterConfig, recorder RejectionRecorder) *RateLimiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.WindowDuration <= 0 {
		cfg.WindowDuration = defaultWindowDuration
	}
	return &RateLimiter{
		client:         client,
		name:           cfg.Name,
		maxAttempts:    cfg.MaxAttempts,
		windowDuration: cfg.WindowDuration,
		enabled:        cfg.Enabled && client != nil,
		recorder:       recorder,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		allowed, retryAfter, err := rl.Allow(c.Request.Context(), clientIP)
		if err != nil {
			// Redis outages must not lock users out.
			slog.Warn("Rate limiter unavailable, allowing request", "limiter", rl.name, "error", err)
			c.Next()
			return
		}

		if !allowed {
			if rl.recorder != nil {
				rl.recorder.IncrRateLimitRejection(c.FullPath())
			}
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Round(time.Second).Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Error(
				"Too many requests. Please try again later.",
				string(domainerror.ErrCodeRateLimited),
			))
			return
		}

		c.Next()
	}
}

// Allow counts one attempt for key and reports whether it is within the limit.
// When the limit is exceeded it also returns the time until the window resets.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := fmt.Sprintf("%s%s:%s", rateLimitKeyPrefix, rl.name, key)

	attempts, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("increment rate limit counter: %w", err)
	}
	if attempts == 1 {
		if err := rl.client.Expire(ctx, redisKey, rl.windowDuration).Err(); err != nil {
			return false, 0, fmt.Errorf("set rate limit window: %w", err)
		}
	}

	if attempts <= int64(rl.maxAttempts) {
		return true, 0, nil
	}

	ttl, err := rl.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl <= 0 {
		ttl = rl.windowDuration
	}
	return false, ttl, nil
}
