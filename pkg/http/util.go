package http

import "github.com/labstack/echo/v4"

// QueryString reads a query parameter or returns def when it is empty.
func QueryString(c echo.Context, name, def string) string {
	if v := c.QueryParam(name); v != "" {
		return v
	}
	return def
}
