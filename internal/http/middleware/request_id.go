package middleware

import (
	echo "github.com/labstack/echo/v4"

	"github.com/wabdine85-debug/kundenkartei-fahrschule/internal/util"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with a ULID unless the client supplied one.
// The id is echoed back in the response and available via c.Get("request_id")
// for handler logging.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(requestIDHeader)
			if id == "" {
				id = util.New()
			}
			c.Set("request_id", id)
			c.Response().Header().Set(requestIDHeader, id)
			return next(c)
		}
	}
}
