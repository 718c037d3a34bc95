package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// KeyLimiter decides whether a request identified by key may proceed.
type KeyLimiter interface {
	Allow(key string) bool
}

// RateLimit rejects requests with 429 once the caller's bucket is empty.
// Callers are keyed by X-User-ID when present, else by client IP.
func RateLimit(l KeyLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}
			key := c.Request().Header.Get("X-User-ID")
			if key == "" {
				key = c.RealIP()
			}
			if !l.Allow(key) {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error": map[string]string{
						"code":    "ERR_RATE_LIMITED",
						"message": "Too many requests",
					},
				})
			}
			return next(c)
		}
	}
}
