package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/octobees/travel-buddy/api/internal/entity"
	"github.com/octobees/travel-buddy/api/internal/provider/overpass"
	"github.com/octobees/travel-buddy/api/internal/service/scoring"
)

// Category is one tag-filtered point-of-interest search.
type Category struct {
	Name         string
	TagKey       string
	TagValue     string
	RadiusMeters int
	Limit        int
	// Fallback describes items that carry no descriptive tags at all.
	Fallback string
}

// PlacesFinder looks up named points of interest around a coordinate.
type PlacesFinder struct {
	source       FeatureSource
	queryTimeout time.Duration
}

// NewPlacesFinder wires a finder. queryTimeout is forwarded to the index as its
// server-side budget and may be zero.
func NewPlacesFinder(source FeatureSource, queryTimeout time.Duration) *PlacesFinder {
	return &PlacesFinder{source: source, queryTimeout: queryTimeout}
}

// Find returns up to cat.Limit named places, best documented first. Failures
// yield an empty slice; placeholder policy belongs to the caller.
func (f *PlacesFinder) Find(ctx context.Context, coord entity.Coordinate, cat Category) []entity.PlaceItem {
	elements, err := f.source.Query(ctx, overpass.Query{
		TagKey:       cat.TagKey,
		TagValue:     cat.TagValue,
		Center:       coord,
		RadiusMeters: cat.RadiusMeters,
		Limit:        cat.Limit,
		Timeout:      f.queryTimeout,
	})
	if err != nil {
		logFallback(ctx, "places", cat.Name, err)
		return []entity.PlaceItem{}
	}

	ranked := make([]rankedPlace, 0, len(elements))
	for _, el := range elements {
		name := strings.TrimSpace(el.Tags["name"])
		if name == "" {
			continue
		}
		item := entity.PlaceItem{
			Name:        name,
			Description: describe(el.Tags, cat),
			Price:       entity.DefaultPrice,
			Phone:       contactPhone(el.Tags),
			Website:     contactWebsite(el.Tags),
		}
		lat, lon, hasPosition := el.Position()
		if hasPosition {
			item.Latitude = floatPtr(lat)
			item.Longitude = floatPtr(lon)
		}
		score := scoring.ComputeScore(scoring.PlaceFeatures{
			HasPosition:  hasPosition,
			Street:       el.Tags["addr:street"],
			HouseNumber:  el.Tags["addr:housenumber"],
			Cuisine:      el.Tags["cuisine"],
			OpeningHours: el.Tags["opening_hours"],
			Phone:        item.Phone,
			Website:      item.Website,
		})
		ranked = append(ranked, rankedPlace{item: item, score: score.Total})
	}

	// Stable so equally scored places keep the index's order.
	slices.SortStableFunc(ranked, func(a, b rankedPlace) int {
		return cmp.Compare(b.score, a.score)
	})

	items := make([]entity.PlaceItem, 0, min(len(ranked), cat.Limit))
	for _, r := range ranked {
		if len(items) == cat.Limit {
			break
		}
		items = append(items, r.item)
	}
	return items
}

type rankedPlace struct {
	item  entity.PlaceItem
	score int
}

func describe(tags map[string]string, cat Category) string {
	for _, key := range []string{"cuisine", "addr:street", cat.TagKey} {
		if v := strings.TrimSpace(tags[key]); v != "" {
			return humanize(v)
		}
	}
	return cat.Fallback
}

// humanize turns OSM tag values like "pizza;italian" or "fast_food" into
// "Pizza, Italian" and "Fast Food".
func humanize(v string) string {
	v = strings.ReplaceAll(v, "_", " ")
	parts := strings.Split(v, ";")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	// Casers are stateful and must not be shared across goroutines.
	return cases.Title(language.English).String(strings.Join(parts, ", "))
}
