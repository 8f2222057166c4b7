package service

import (
	"context"
	"sync"

	"github.com/octobees/travel-buddy/api/internal/entity"
)

const (
	rentalOffsetDegrees   = 0.005
	transportRadiusMeters = 3000
	safetyLimit           = 3
)

// LocationSource, WeatherAdvice, CurrencySource and PlacesSource are the
// best-effort components the aggregator fans out to. None of them fail.
type (
	LocationSource interface {
		Resolve(ctx context.Context, coord entity.Coordinate) entity.PlaceSummary
	}
	WeatherAdvice interface {
		Resolve(ctx context.Context, coord entity.Coordinate) entity.WeatherReport
	}
	CurrencySource interface {
		Resolve(ctx context.Context, coord entity.Coordinate) entity.CurrencyInfo
	}
	PlacesSource interface {
		Find(ctx context.Context, coord entity.Coordinate, cat Category) []entity.PlaceItem
	}
)

// RecommendationOptions tunes the places searches.
type RecommendationOptions struct {
	RadiusMeters      int
	Limit             int
	IncludePharmacies bool
}

// categorySet holds the searches issued for each request.
type categorySet struct {
	food, hotels, hospitals, pharmacies, stations, busStations Category
}

func newCategorySet(opts RecommendationOptions) categorySet {
	return categorySet{
		food:        Category{Name: "food", TagKey: "amenity", TagValue: "restaurant", RadiusMeters: opts.RadiusMeters, Limit: opts.Limit, Fallback: "Local Spot"},
		hotels:      Category{Name: "hotels", TagKey: "tourism", TagValue: "hotel", RadiusMeters: opts.RadiusMeters, Limit: opts.Limit, Fallback: "Nearby"},
		hospitals:   Category{Name: "hospitals", TagKey: "amenity", TagValue: "hospital", RadiusMeters: opts.RadiusMeters, Limit: safetyLimit, Fallback: "Hospital"},
		pharmacies:  Category{Name: "pharmacies", TagKey: "amenity", TagValue: "pharmacy", RadiusMeters: opts.RadiusMeters, Limit: safetyLimit, Fallback: "Pharmacy"},
		stations:    Category{Name: "stations", TagKey: "public_transport", TagValue: "station", RadiusMeters: transportRadiusMeters, Limit: opts.Limit, Fallback: "Transit Station"},
		busStations: Category{Name: "bus_stations", TagKey: "amenity", TagValue: "bus_station", RadiusMeters: transportRadiusMeters, Limit: opts.Limit, Fallback: "Bus Station"},
	}
}

var (
	foodPlaceholder      = entity.PlaceItem{Name: "No restaurants found nearby", Description: "Try a busier area or check local listings.", Price: entity.DefaultPrice}
	hotelsPlaceholder    = entity.PlaceItem{Name: "No hotels found nearby", Description: "Try searching a nearby city center.", Price: entity.DefaultPrice}
	safetyPlaceholder    = entity.PlaceItem{Name: "Emergency", Description: "Dial 112 for emergency services.", Price: entity.DefaultPrice}
	transportPlaceholder = entity.PlaceItem{Name: "No stations found nearby", Description: "Consider taxis or ride-hailing apps.", Price: entity.DefaultPrice}
	rentalPlaceholder    = entity.PlaceItem{Name: "No rentals available", Description: "Check with your hotel for car hire.", Price: entity.DefaultPrice}
)

// RecommendationService assembles the full travel recommendation for a coordinate.
type RecommendationService struct {
	location   LocationSource
	weather    WeatherAdvice
	currency   CurrencySource
	places     PlacesSource
	categories categorySet
	pharmacies bool
}

// NewRecommendationService wires the aggregator. Zero radius or limit falls back to 3000m and 5.
func NewRecommendationService(location LocationSource, weather WeatherAdvice, currency CurrencySource, places PlacesSource, opts RecommendationOptions) *RecommendationService {
	if opts.RadiusMeters <= 0 {
		opts.RadiusMeters = 3000
	}
	if opts.Limit <= 0 {
		opts.Limit = 5
	}
	return &RecommendationService{
		location:   location,
		weather:    weather,
		currency:   currency,
		places:     places,
		categories: newCategorySet(opts),
		pharmacies: opts.IncludePharmacies,
	}
}

// Aggregate fans out to every component concurrently and joins before
// assembling the response. Cancelling ctx abandons in-flight upstream calls;
// the response is still complete, built from fallbacks.
func (s *RecommendationService) Aggregate(ctx context.Context, coord entity.Coordinate) entity.RecommendationResponse {
	var (
		wg   sync.WaitGroup
		resp entity.RecommendationResponse

		food, hotels, hospitals, pharmacies, transport []entity.PlaceItem
	)

	run := func(task func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task()
		}()
	}

	run(func() { resp.LocationInfo = s.location.Resolve(ctx, coord) })
	run(func() { resp.Weather = s.weather.Resolve(ctx, coord) })
	run(func() { resp.Currency = s.currency.Resolve(ctx, coord) })
	run(func() { food = s.places.Find(ctx, coord, s.categories.food) })
	run(func() { hotels = s.places.Find(ctx, coord, s.categories.hotels) })
	run(func() { hospitals = s.places.Find(ctx, coord, s.categories.hospitals) })
	if s.pharmacies {
		run(func() { pharmacies = s.places.Find(ctx, coord, s.categories.pharmacies) })
	}
	run(func() {
		transport = s.places.Find(ctx, coord, s.categories.stations)
		if len(transport) == 0 {
			transport = s.places.Find(ctx, coord, s.categories.busStations)
		}
	})

	wg.Wait()

	safety := make([]entity.PlaceItem, 0, len(hospitals)+len(pharmacies))
	safety = append(safety, hospitals...)
	safety = append(safety, pharmacies...)

	resp.Food = withPlaceholder(food, foodPlaceholder)
	resp.Hotels = withPlaceholder(hotels, hotelsPlaceholder)
	resp.Safety = withPlaceholder(safety, safetyPlaceholder)
	resp.Transport = withPlaceholder(transport, transportPlaceholder)
	resp.RentACar = withPlaceholder(RentalOffers(coord), rentalPlaceholder)
	return resp
}

// RentalOffers synthesizes the two rental desks placed diagonally around coord.
func RentalOffers(coord entity.Coordinate) []entity.PlaceItem {
	north := coord.Offset(rentalOffsetDegrees, rentalOffsetDegrees)
	south := coord.Offset(-rentalOffsetDegrees, -rentalOffsetDegrees)
	return []entity.PlaceItem{
		{
			Name:        "City Rentals",
			Description: "Economy and compact cars",
			Price:       "$40/day",
			Latitude:    floatPtr(north.Latitude),
			Longitude:   floatPtr(north.Longitude),
		},
		{
			Name:        "Luxury Wheels",
			Description: "Premium sedans and SUVs",
			Price:       "$120/day",
			Latitude:    floatPtr(south.Latitude),
			Longitude:   floatPtr(south.Longitude),
		},
	}
}

func withPlaceholder(items []entity.PlaceItem, placeholder entity.PlaceItem) []entity.PlaceItem {
	if len(items) == 0 {
		return []entity.PlaceItem{placeholder}
	}
	return items
}
