package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/travel-buddy/api/internal/config"
	"github.com/octobees/travel-buddy/api/internal/handler"
	middlewarepkg "github.com/octobees/travel-buddy/api/internal/middleware"
	"github.com/octobees/travel-buddy/api/internal/provider"
	"github.com/octobees/travel-buddy/api/internal/router"
	"github.com/octobees/travel-buddy/api/internal/service"
	"github.com/octobees/travel-buddy/api/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// resty sets the timeout on the *http.Client it wraps, so each client gets
	// its own while the connection pool is shared.
	transport := http.DefaultTransport.(*http.Transport).Clone()
	client := upstream.NewClient(
		upstream.WithHTTPClient(&http.Client{Transport: transport}),
		upstream.WithTimeout(cfg.UpstreamTimeout),
		upstream.WithUserAgent(cfg.UserAgent),
	)
	placesClient := upstream.NewClient(
		upstream.WithHTTPClient(&http.Client{Transport: transport}),
		upstream.WithTimeout(cfg.PlacesTimeout),
		upstream.WithUserAgent(cfg.UserAgent),
	)

	geocoder := provider.NewNominatim(client, cfg.Upstreams.Nominatim)
	recommendations := service.NewRecommendationService(
		service.NewLocationResolver(geocoder, provider.NewWikipedia(client, cfg.Upstreams.Wikipedia)),
		service.NewWeatherAdvisor(provider.NewOpenMeteo(client, cfg.Upstreams.OpenMeteo)),
		service.NewCurrencyConverter(geocoder, provider.NewExchangeRates(client, cfg.Upstreams.ExchangeRate)),
		service.NewPlacesFinder(provider.NewOverpass(placesClient, cfg.Upstreams.Overpass), cfg.PlacesTimeout),
		service.RecommendationOptions{
			RadiusMeters:      cfg.PlacesRadiusMeters,
			Limit:             cfg.PlacesLimit,
			IncludePharmacies: cfg.SafetyPolicy == config.SafetyHospitalsAndPharmacies,
		},
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, router.Handlers{
		Recommendations: handler.NewRecommendationsHandler(recommendations),
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("listening on :%s", cfg.Port)
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
