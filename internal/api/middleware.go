package api

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"healthscore/internal/logger"
	"healthscore/internal/ratelimit"
)

// RequestLogger logs one line per request, at a level chosen by status
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []any{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if userID := c.Param("userID"); userID != "" {
			fields = append(fields, "user_id", userID)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

// AdminGuard checks X-Admin-Key. Failed attempts are counted both per
// X-Admin-Email and per client IP; either count reaching the limit locks the
// caller out.
func AdminGuard(adminKey string, limiter *ratelimit.LoginLimiter, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKey == "" {
			RespondError(c, http.StatusNotFound, CodeNotFound, errors.New("admin endpoints are disabled"))
			return
		}

		email := strings.TrimSpace(c.GetHeader("X-Admin-Email"))
		if email == "" {
			RespondError(c, http.StatusBadRequest, CodeBadRequest, errors.New("X-Admin-Email header required"))
			return
		}
		keys := []string{email, "ip:" + c.ClientIP()}

		ctx := c.Request.Context()
		var retryAfter time.Duration
		locked := false
		for _, key := range keys {
			ok, retry, err := limiter.Allowed(ctx, key)
			if err != nil {
				RespondError(c, http.StatusInternalServerError, CodeInternal, err)
				return
			}
			if !ok {
				locked = true
				retryAfter = max(retryAfter, retry)
			}
		}
		if locked {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Round(time.Second).Seconds())))
			RespondError(c, http.StatusTooManyRequests, CodeRateLimited,
				fmt.Errorf("too many failed attempts, retry in %s", retryAfter.Round(time.Second)))
			return
		}

		given := c.GetHeader("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(given), []byte(adminKey)) != 1 {
			remaining := limiter.MaxAttempts
			for _, key := range keys {
				left, err := limiter.RecordFailure(ctx, key)
				if err != nil {
					RespondError(c, http.StatusInternalServerError, CodeInternal, err)
					return
				}
				remaining = min(remaining, left)
			}
			if log != nil {
				log.Warn("admin key rejected", "email", email, "client_ip", c.ClientIP(), "attempts_left", remaining)
			}
			RespondError(c, http.StatusUnauthorized, CodeUnauthorized, errors.New("invalid admin key"))
			return
		}

		for _, key := range keys {
			if err := limiter.Reset(ctx, key); err != nil && log != nil {
				log.Warn("resetting admin attempts failed", "key", key, "error", err)
			}
		}
		c.Next()
	}
}
