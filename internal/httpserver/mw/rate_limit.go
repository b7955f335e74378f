package mw

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/zainmh-10/CreateAILab/internal/logger"
	"github.com/zainmh-10/CreateAILab/internal/metrics"
	"github.com/zainmh-10/CreateAILab/internal/ratelimit"
	"github.com/zainmh-10/CreateAILab/internal/utils"
)

type RateLimitConfig struct {
	Limiter    ratelimit.Limiter // nil => passthrough
	Policy     ratelimit.Policy
	TrustProxy bool // resolve IP from proxy headers when true
	Now        func() time.Time
}

// RateLimit caps requests per client IP. Limiter errors let the request through.
func RateLimit(cfg RateLimitConfig, log logger.Logger) func(http.Handler) http.Handler {
	if cfg.Limiter == nil || cfg.Policy.Limit <= 0 || cfg.Policy.Window <= 0 {
		log.Debug("RateLimit: disabled, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	limitStr := strconv.Itoa(cfg.Policy.Limit)
	prefix := "http:" + cfg.Policy.Name + ":"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := prefix + utils.ClientIP(r, cfg.TrustProxy)

			res, err := cfg.Limiter.Allow(r.Context(), key, cfg.Policy)
			if err != nil {
				log.Warn("RateLimit: limiter error, allowing request", logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", limitStr)
			if !res.Allowed {
				retry := int(math.Ceil(res.RetryAfter(cfg.Now()).Seconds()))
				if retry < 1 {
					retry = 1
				}
				metrics.IncRateLimitRejection(cfg.Policy.Name)
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				w.Header().Set("X-RateLimit-Remaining", "0")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(res.Remaining, 0)))
			next.ServeHTTP(w, r)
		})
	}
}
