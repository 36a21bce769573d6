package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leaguehub/server/internal/port/outbound"
	apperrors "github.com/leaguehub/server/internal/utils/errors"
	"github.com/leaguehub/server/internal/utils/metrics"
)

const (
	// RateLimitRemaining is the header for remaining requests.
	RateLimitRemaining = "X-RateLimit-Remaining"
	// RateLimitLimit is the header for the limit.
	RateLimitLimit = "X-RateLimit-Limit"
	// RetryAfter is the header for retry time.
	RetryAfter = "Retry-After"
)

// RateLimitConfig holds rate limit configuration.
type RateLimitConfig struct {
	// Limit is the maximum number of requests.
	Limit int
	// Window is the time window.
	Window time.Duration
	// KeyFunc generates the rate limit key from request.
	// Default uses client IP.
	KeyFunc func(*gin.Context) string
	// SkipFunc determines if the request should skip rate limiting.
	SkipFunc func(*gin.Context) bool

	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// RateLimit returns a middleware that limits requests using the given limiter.
// Limiter failures let the request through.
func RateLimit(limiter outbound.RateLimiterPort, cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string {
			return "ip:" + c.ClientIP()
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		if limiter == nil || (cfg.SkipFunc != nil && cfg.SkipFunc(c)) {
			c.Next()
			return
		}

		key := cfg.KeyFunc(c)
		ctx := c.Request.Context()

		allowed, err := limiter.Allow(ctx, key, cfg.Limit, cfg.Window)
		if err != nil {
			cfg.Logger.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		remaining, _ := limiter.GetRemaining(ctx, key, cfg.Limit, cfg.Window)
		c.Header(RateLimitLimit, strconv.Itoa(cfg.Limit))
		c.Header(RateLimitRemaining, strconv.Itoa(remaining))

		if !allowed {
			cfg.Metrics.RecordRateLimited()
			c.Header(RetryAfter, strconv.Itoa(int(cfg.Window.Seconds())))
			appErr := apperrors.RateLimited("too many requests, please try again later").WithDetails(map[string]any{
				"limit":          cfg.Limit,
				"window_seconds": int(cfg.Window.Seconds()),
			})
			c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
			return
		}

		c.Next()
	}
}

// RateLimitByUser returns a rate limiter that limits by user ID.
// Falls back to IP if user is not authenticated.
func RateLimitByUser(limiter outbound.RateLimiterPort, cfg RateLimitConfig) gin.HandlerFunc {
	cfg.KeyFunc = func(c *gin.Context) string {
		if userID := GetUserID(c); userID != uuid.Nil {
			return "user:" + userID.String()
		}
		return "ip:" + c.ClientIP()
	}
	return RateLimit(limiter, cfg)
}
