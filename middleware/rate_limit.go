package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ecom-admin/common"
	"ecom-admin/pkg/cache"
	"ecom-admin/pkg/log"

	"github.com/gin-gonic/gin"
)

type RateLimitConfig struct {
	WindowSize  time.Duration
	MaxRequests int64

	KeyPrefix    string
	KeyGenerator func(*gin.Context) string

	HeaderRemainingRequests string
	HeaderRetryAfter        string
	HeaderRateLimit         string

	SkipPaths     []string
	SkipCondition func(*gin.Context) bool

	OnLimitReached func(*gin.Context, RateLimitInfo)
}

type RateLimitInfo struct {
	Key        string
	Limit      int64
	Remaining  int64
	ResetTime  time.Time
	RetryAt    time.Time
	WindowSize time.Duration
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		WindowSize:              time.Minute,
		MaxRequests:             100,
		KeyPrefix:               "rate_limit:",
		KeyGenerator:            ipKeyGenerator,
		HeaderRemainingRequests: "X-RateLimit-Remaining",
		HeaderRetryAfter:        "X-RateLimit-Retry-After",
		HeaderRateLimit:         "X-RateLimit-Limit",
		SkipPaths:               []string{"/health"},
		OnLimitReached:          defaultOnLimitReached,
	}
}

// RateLimitWithLogger enforces a fixed-window limit keyed per client,
// logging every rejection.
func (m *middlewares) RateLimitWithLogger(config ...RateLimitConfig) gin.HandlerFunc {
	var cfg RateLimitConfig
	if len(config) > 0 {
		cfg = config[0]
	} else {
		cfg = DefaultRateLimitConfig()
	}

	if cfg.KeyGenerator == nil {
		cfg.KeyGenerator = ipKeyGenerator
	}
	if cfg.OnLimitReached == nil {
		cfg.OnLimitReached = defaultOnLimitReached
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rate_limit:"
	}
	if cfg.WindowSize == 0 {
		cfg.WindowSize = time.Minute
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 100
	}

	skipPaths := make(map[string]bool)
	for _, path := range cfg.SkipPaths {
		skipPaths[path] = true
	}

	onLimitReached := cfg.OnLimitReached
	logger := m.logger

	return func(c *gin.Context) {
		if skipPaths[c.Request.URL.Path] {
			c.Next()
			return
		}
		if cfg.SkipCondition != nil && cfg.SkipCondition(c) {
			c.Next()
			return
		}

		key := cfg.KeyPrefix + cfg.KeyGenerator(c)
		info, allowed := checkRateLimit(c.Request.Context(), m.cache, key, cfg)
		setRateLimitHeaders(c, cfg, info)

		if !allowed {
			if logger != nil {
				logger.Warn("rate limit exceeded",
					log.String("key", info.Key),
					log.Int64("limit", info.Limit),
					log.String("client_ip", c.ClientIP()),
					log.String("path", c.Request.URL.Path),
				)
			}
			onLimitReached(c, info)
			return
		}

		c.Next()
	}
}

// AuthRateLimits puts a tight per-IP window on the credential endpoints.
// The login throttle in the auth usecase counts per account; this one
// counts per client.
func (m *middlewares) AuthRateLimits() gin.HandlerFunc {
	return m.RateLimitWithLogger(RateLimitConfig{
		WindowSize:              5 * time.Minute,
		MaxRequests:             5,
		KeyPrefix:               "auth:",
		KeyGenerator:            ipKeyGenerator,
		HeaderRemainingRequests: "X-RateLimit-Remaining",
		HeaderRetryAfter:        "X-RateLimit-Retry-After",
		HeaderRateLimit:         "X-RateLimit-Limit",
		OnLimitReached: func(c *gin.Context, info RateLimitInfo) {
			retryAtISO := ""
			if !info.RetryAt.IsZero() {
				retryAtISO = info.RetryAt.Format(time.RFC3339)
			}
			c.JSON(http.StatusTooManyRequests, gin.H{
				"status":      http.StatusTooManyRequests,
				"code":        "AUTH_RATE_LIMIT_EXCEEDED",
				"description": "Too many authentication attempts. Please try again later.",
				"data": gin.H{
					"retry_at":            retryAtISO,
					"retry_after_seconds": int64(time.Until(info.RetryAt).Seconds()),
					"limit":               info.Limit,
					"remaining":           info.Remaining,
				},
			})
			c.Abort()
		},
	})
}

// AdminRateLimits covers the administration route groups, keyed per
// authenticated user.
func (m *middlewares) AdminRateLimits() gin.HandlerFunc {
	return m.RateLimitWithLogger(RateLimitConfig{
		WindowSize:   time.Minute,
		MaxRequests:  30,
		KeyPrefix:    "admin:",
		KeyGenerator: UserKeyGenerator,
	})
}

func checkRateLimit(ctx context.Context, cache cache.Client, key string, cfg RateLimitConfig) (RateLimitInfo, bool) {
	now := time.Now()
	windowStart := now.Truncate(cfg.WindowSize)
	resetTime := windowStart.Add(cfg.WindowSize)

	current, err := cache.Increment(ctx, key, 1, cfg.WindowSize)
	if err != nil {
		// A broken cache never blocks traffic.
		return RateLimitInfo{
			Key:        key,
			Limit:      cfg.MaxRequests,
			Remaining:  cfg.MaxRequests,
			ResetTime:  resetTime,
			WindowSize: cfg.WindowSize,
		}, true
	}

	remaining := cfg.MaxRequests - current
	if remaining < 0 {
		remaining = 0
	}

	info := RateLimitInfo{
		Key:        key,
		Limit:      cfg.MaxRequests,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAt:    resetTime,
		WindowSize: cfg.WindowSize,
	}
	return info, current <= cfg.MaxRequests
}

func setRateLimitHeaders(c *gin.Context, cfg RateLimitConfig, info RateLimitInfo) {
	if cfg.HeaderRateLimit != "" {
		c.Header(cfg.HeaderRateLimit, strconv.FormatInt(info.Limit, 10))
	}
	if cfg.HeaderRemainingRequests != "" {
		c.Header(cfg.HeaderRemainingRequests, strconv.FormatInt(info.Remaining, 10))
	}
	if cfg.HeaderRetryAfter != "" && info.Remaining == 0 && !info.RetryAt.IsZero() {
		retryAfterSeconds := int64(time.Until(info.RetryAt).Seconds())
		if retryAfterSeconds > 0 {
			c.Header(cfg.HeaderRetryAfter, strconv.FormatInt(retryAfterSeconds, 10))
		}
	}
}

func ipKeyGenerator(c *gin.Context) string {
	return c.ClientIP()
}

// UserKeyGenerator keys on the authenticated user, falling back to the
// client IP before authentication.
func UserKeyGenerator(c *gin.Context) string {
	if userID, exists := c.Get("user_id"); exists {
		return fmt.Sprintf("user:%v", userID)
	}
	return fmt.Sprintf("ip:%s", c.ClientIP())
}

func defaultOnLimitReached(c *gin.Context, info RateLimitInfo) {
	message := fmt.Sprintf("Too many requests. Limit %d requests per %v", info.Limit, info.WindowSize)

	c.Header("X-RateLimit-Limit", strconv.FormatInt(info.Limit, 10))
	c.Header("X-RateLimit-Remaining", "0")

	var retryAfter int64
	var retryAtISO string
	if !info.RetryAt.IsZero() {
		retryAfterDuration := time.Until(info.RetryAt)
		if retryAfterDuration > 0 {
			retryAfter = int64(retryAfterDuration.Seconds())
			c.Header("X-RateLimit-Retry-After", strconv.FormatInt(retryAfter, 10))
		}
		retryAtISO = info.RetryAt.Format(time.RFC3339)
	}

	common.Response(c, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", gin.H{
		"retry_after_seconds": retryAfter,
		"retry_at":            retryAtISO,
		"limit":               info.Limit,
		"remaining":           info.Remaining,
		"window_size":         info.WindowSize.String(),
	}, message)
}
