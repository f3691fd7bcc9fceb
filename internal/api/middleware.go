package api

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/vivekpatel25/acac-war/pkg/logger"
	"github.com/vivekpatel25/acac-war/pkg/redis"
)

// Limiter decides whether a request may proceed
type Limiter interface {
	Allow(r *http.Request) bool
}

// TokenBucket is a process-wide token bucket
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket allows perSecond requests with the given burst
func NewTokenBucket(perSecond float64, burst int) *TokenBucket {
	return &TokenBucket{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Allow implements Limiter
func (t *TokenBucket) Allow(*http.Request) bool {
	return t.limiter.Allow()
}

// SharedWindow limits each client IP through Redis so that several API
// processes share one budget. Redis errors fail open to the local bucket.
type SharedWindow struct {
	limiter  *redis.RateLimiter
	limit    int
	fallback *TokenBucket
	logger   *logger.Logger
}

// NewSharedWindow allows limit requests per second per client IP
func NewSharedWindow(limiter *redis.RateLimiter, limit int, fallback *TokenBucket, log *logger.Logger) *SharedWindow {
	return &SharedWindow{limiter: limiter, limit: limit, fallback: fallback, logger: log}
}

// Allow implements Limiter
func (s *SharedWindow) Allow(r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	allowed, _, err := s.limiter.Allow(r.Context(), redis.APIRateLimit(host, s.limit, time.Second))
	if err != nil {
		s.logger.WithError(err).Warn("Shared rate limit unavailable")
		return s.fallback.Allow(r)
	}
	return allowed
}

// rateLimitMiddleware rejects requests over budget with 429
func rateLimitMiddleware(limiter Limiter, log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r) {
				log.WithField("path", r.URL.Path).Debug("Rate limited")
				w.Header().Set("Retry-After", "1")
				writeJSON(w, http.StatusTooManyRequests, map[string]string{
					"error": "Too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					writeJSON(w, http.StatusInternalServerError, map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
