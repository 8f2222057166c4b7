package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/travel-buddy/api/internal/config"
	"github.com/octobees/travel-buddy/api/internal/handler"
	middlewarepkg "github.com/octobees/travel-buddy/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Recommendations *handler.RecommendationsHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api", echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderXRequestID},
	}))
	api.POST("/recommendations", handlers.Recommendations.Create,
		middlewarepkg.RecommendationsRateLimiter(cfg.RateLimitRecommendations))
}
