package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "CryptoIntel/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover returns recovery middleware.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					perr, ok := r.(error)
					if !ok {
						perr = fmt.Errorf("%v", r)
					}
					l.Error("panic recovered",
						applogger.Error(perr),
						applogger.String("stack", string(debug.Stack())),
					)
					err = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"error": map[string]string{
							"code":    "ERR_INTERNAL",
							"message": "Internal Server Error",
						},
					})
				}
			}()
			return next(c)
		}
	}
}
