package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/octobees/travel-buddy/api/internal/config"
)

// PathRateLimiter applies a token bucket limiter to requests whose route matches path.
// A zero config disables limiting.
func PathRateLimiter(path string, cfg config.RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	limiter := rate.NewLimiter(rate.Every(perRequest), cfg.Requests)
	var mu sync.Mutex

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() != path {
				return next(c)
			}

			mu.Lock()
			allowed := limiter.Allow()
			mu.Unlock()

			if !allowed {
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"status":  "error",
					"message": "rate limit exceeded",
				})
			}

			return next(c)
		}
	}
}

// RecommendationsRateLimiter limits the recommendations endpoint.
func RecommendationsRateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	return PathRateLimiter(RecommendationsPath, cfg)
}

// RecommendationsPath is the route served by the recommendations handler.
const RecommendationsPath = "/api/recommendations"
