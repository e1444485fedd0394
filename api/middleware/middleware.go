// Package middleware carries the HTTP cross-cutting concerns: request
// id propagation, access logging, panic recovery, CORS, per-client
// rate limiting, and principal resolution from the gateway headers.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"huerto/api/response"
	"huerto/config"
	"huerto/domain/shared"
	"huerto/infrastructure/persistence"
	"huerto/pkg/logger"
)

const (
	RequestIDHeader = "X-Request-ID"

	// Identity headers set by the upstream gateway after it verified
	// the caller. Token verification itself is outside this service.
	UserIDHeader    = "X-User-Id"
	UserEmailHeader = "X-User-Email"

	principalKey = "principal"
)

// RequestID assigns or propagates the request id and plants it in both
// the gin context and the request context, so SQL logs correlate with
// HTTP logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(response.RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(
			persistence.ContextWithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}

// Principal resolves the caller identity from the gateway headers. No
// headers means an anonymous request; the application services decide
// which operations demand a principal.
func Principal() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := shared.Principal{
			UserID: c.GetHeader(UserIDHeader),
			Email:  c.GetHeader(UserEmailHeader),
		}
		if !p.IsZero() {
			c.Set(principalKey, p)
		}
		c.Next()
	}
}

// PrincipalFromContext returns the resolved principal, zero when the
// request is anonymous.
func PrincipalFromContext(c *gin.Context) shared.Principal {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(shared.Principal); ok {
			return p
		}
	}
	return shared.Principal{}
}

// Logging writes one access log line per request, levelled by status.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		log := logger.WithRequestID(response.GetRequestID(c))

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("HTTP Request", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("HTTP Request", fields...)
		default:
			log.Info("HTTP Request", fields...)
		}
	}
}

// Recovery turns panics into opaque 500s.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				requestID := response.GetRequestID(c)

				logger.Error("panic recovered",
					zap.String("request_id", requestID),
					zap.Any("error", recovered),
					zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
					Success:   false,
					Error:     "INTERNAL_ERROR",
					Message:   "an unexpected error occurred",
					Code:      http.StatusInternalServerError,
					RequestID: requestID,
				})
			}
		}()

		c.Next()
	}
}

// CORS answers preflight and sets the allow headers per configuration.
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, o := range cfg.AllowOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}
		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		if cfg.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Access-Control-Allow-Methods", methods)
		c.Header("Access-Control-Allow-Headers", headers)
		c.Header("Access-Control-Max-Age", maxAge)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type rateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
}

func (rl *rateLimiter) getLimiter(ip string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(ip); ok {
		return limiter.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.rate, rl.burst)
	actual, _ := rl.limiters.LoadOrStore(ip, limiter)
	return actual.(*rate.Limiter)
}

// RateLimit throttles per client IP with a token bucket.
func RateLimit(cfg *config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	limiter := &rateLimiter{rate: rate.Limit(cfg.Rate), burst: cfg.Burst}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.getLimiter(ip).Allow() {
			requestID := response.GetRequestID(c)

			logger.Warn("rate limit exceeded",
				zap.String("request_id", requestID),
				zap.String("client_ip", ip))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Response{
				Success:   false,
				Error:     "RATE_LIMIT_EXCEEDED",
				Message:   "too many requests, please try again later",
				Code:      http.StatusTooManyRequests,
				RequestID: requestID,
			})
			return
		}

		c.Next()
	}
}
