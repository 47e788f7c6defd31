package ratelimit

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopshout/shopshout/internal/config"
	"github.com/shopshout/shopshout/internal/observability/logger"
	"github.com/shopshout/shopshout/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// APILimiter throttles the public JSON API per client IP. It is inert when
// Redis is not configured so local setups keep working without one.
type APILimiter struct {
	bucket  *TokenBucket
	rate    float64
	burst   int
	log     *zap.Logger
	metrics *metrics.Metrics
}

type APILimiterParams struct {
	fx.In

	Config  config.Config
	Bucket  *TokenBucket `optional:"true"`
	Log     *zap.Logger
	Metrics *metrics.Metrics
}

func NewAPILimiter(p APILimiterParams) *APILimiter {
	if p.Bucket == nil {
		return nil
	}
	return &APILimiter{
		bucket:  p.Bucket,
		rate:    p.Config.RateLimitRPS,
		burst:   p.Config.RateLimitBurst,
		log:     p.Log,
		metrics: p.Metrics,
	}
}

// Middleware enforces the per-IP bucket. Redis failures let the request
// through; throttling is best effort and must never take the API down.
func (l *APILimiter) Middleware() gin.HandlerFunc {
	if l == nil || l.bucket == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "api:ip:" + c.ClientIP()

		res, err := l.bucket.Allow(ctx, key, l.rate, l.burst)
		if err != nil {
			logger.WithContext(ctx, l.log).Warn("rate limit check", zap.Error(err))
			c.Next()
			return
		}

		if !res.Allowed {
			l.metrics.RecordRateLimitDenied(ctx, c.FullPath(), "bucket_empty")
			c.Header("Retry-After", fmt.Sprintf("%d", int(math.Ceil(res.RetryAfter.Seconds()))))
			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", res.Limit))
			c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", res.Remaining))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate_limited",
			})
			return
		}

		l.metrics.RecordRateLimitAllowed(ctx, c.FullPath())
		c.Next()
	}
}
