package service

import (
	"context"
	"errors"
	"strings"

	"github.com/octobees/travel-buddy/api/internal/entity"
	"github.com/octobees/travel-buddy/api/internal/provider"
)

// Defaults used when the locality or its summary cannot be resolved.
const (
	FallbackCity   = "Nearby Area"
	DefaultHistory = "Explore the local culture and hidden gems."
	DefaultImage   = "https://images.unsplash.com/photo-1476514525535-07fb3b4ae5f1"
)

// LocationResolver names the locality around a coordinate and attaches an
// encyclopedic summary and image.
type LocationResolver struct {
	geocoder ReverseGeocoder
	articles ArticleSource
}

// NewLocationResolver wires a resolver from its upstream sources.
func NewLocationResolver(geocoder ReverseGeocoder, articles ArticleSource) *LocationResolver {
	return &LocationResolver{geocoder: geocoder, articles: articles}
}

// Resolve never fails; each step keeps whatever the previous steps produced.
func (r *LocationResolver) Resolve(ctx context.Context, coord entity.Coordinate) entity.PlaceSummary {
	summary := entity.PlaceSummary{City: FallbackCity, History: DefaultHistory, Image: DefaultImage}

	geo, err := r.geocoder.Reverse(ctx, coord)
	if err != nil {
		logFallback(ctx, "location", "reverse_geocode", err)
		return summary
	}
	city := strings.TrimSpace(geo.Address.Locality())
	if city == "" {
		logFallback(ctx, "location", "reverse_geocode", errors.New("no locality in address"))
		return summary
	}
	summary.City = city

	title, err := r.articles.SearchTitle(ctx, city)
	if err != nil {
		if !errors.Is(err, provider.ErrNoArticle) {
			logFallback(ctx, "location", "article_search", err)
		}
		return summary
	}

	page, err := r.articles.PageSummary(ctx, title)
	if err != nil {
		logFallback(ctx, "location", "article_summary", err)
		return summary
	}

	if extract := strings.TrimSpace(page.Extract); extract != "" {
		summary.History = extract
	}
	switch {
	case page.OriginalImage != nil && page.OriginalImage.Source != "":
		summary.Image = page.OriginalImage.Source
	case page.Thumbnail != nil && page.Thumbnail.Source != "":
		summary.Image = page.Thumbnail.Source
	}
	return summary
}
