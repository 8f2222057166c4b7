package service

import (
	"context"
	"log"

	"github.com/octobees/travel-buddy/api/internal/entity"
	"github.com/octobees/travel-buddy/api/internal/provider"
	"github.com/octobees/travel-buddy/api/internal/provider/overpass"
	"github.com/octobees/travel-buddy/api/internal/upstream"
)

// ReverseGeocoder resolves a coordinate to an address record.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, coord entity.Coordinate) (provider.ReverseResponse, error)
}

// ArticleSource finds encyclopedic summaries by free-text name.
type ArticleSource interface {
	SearchTitle(ctx context.Context, query string) (string, error)
	PageSummary(ctx context.Context, title string) (provider.Summary, error)
}

// WeatherSource returns current conditions for a coordinate.
type WeatherSource interface {
	Current(ctx context.Context, coord entity.Coordinate) (provider.CurrentWeather, error)
}

// RateSource returns USD-based exchange rates.
type RateSource interface {
	LatestUSD(ctx context.Context) (map[string]float64, error)
}

// FeatureSource runs tag-filtered radius queries.
type FeatureSource interface {
	Query(ctx context.Context, q overpass.Query) ([]provider.Element, error)
}

func logFallback(ctx context.Context, component, step string, err error) {
	log.Printf("request_id=%s component=%s step=%s fallback=true error=%v", upstream.RequestIDFrom(ctx), component, step, err)
}

func floatPtr(v float64) *float64 {
	return &v
}
