package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// Logging writes a concise structured line for each HTTP request.
func Logging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			// Commit the error response first so the logged status is the one the client sees.
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			log.Printf("request_id=%s method=%s path=%s remote_ip=%s status=%d bytes_out=%d latency=%s",
				RequestIDFromContext(c), req.Method, req.URL.Path, c.RealIP(), c.Response().Status, c.Response().Size, latency)

			return err
		}
	}
}
