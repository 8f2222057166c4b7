package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/octobees/travel-buddy/api/internal/entity"
	"github.com/octobees/travel-buddy/api/internal/provider"
	"github.com/octobees/travel-buddy/api/internal/upstream"
)

type fixedLocation entity.PlaceSummary

func (f fixedLocation) Resolve(context.Context, entity.Coordinate) entity.PlaceSummary {
	return entity.PlaceSummary(f)
}

type fixedWeather struct{ report entity.WeatherReport }

func (f fixedWeather) Resolve(context.Context, entity.Coordinate) entity.WeatherReport {
	return f.report
}

type fixedCurrency entity.CurrencyInfo

func (f fixedCurrency) Resolve(context.Context, entity.Coordinate) entity.CurrencyInfo {
	return entity.CurrencyInfo(f)
}

type slowPlaces struct{ delay time.Duration }

func (s slowPlaces) Find(ctx context.Context, coord entity.Coordinate, cat Category) []entity.PlaceItem {
	time.Sleep(s.delay)
	return nil
}

func newStubService(places PlacesSource, opts RecommendationOptions) *RecommendationService {
	return NewRecommendationService(
		fixedLocation{City: "Lahore", History: "History.", Image: DefaultImage},
		fixedWeather{report: ClassifyWeather(floatPtr(20), intPtr(0))},
		fixedCurrency{Code: "PKR", Message: "1 USD ≈ 278.5 PKR"},
		places,
		opts,
	)
}

func place(name string) entity.PlaceItem {
	return entity.PlaceItem{Name: name, Description: "x", Price: entity.DefaultPrice}
}

func TestAggregate_PlaceholdersForEmptyLists(t *testing.T) {
	svc := newStubService(&placesStub{}, RecommendationOptions{IncludePharmacies: true})
	resp := svc.Aggregate(context.Background(), entity.Coordinate{Latitude: 10, Longitude: 20})

	checks := map[string]struct {
		items []entity.PlaceItem
		want  string
	}{
		"food":      {resp.Food, "No restaurants found nearby"},
		"hotels":    {resp.Hotels, "No hotels found nearby"},
		"safety":    {resp.Safety, "Emergency"},
		"transport": {resp.Transport, "No stations found nearby"},
	}
	for name, c := range checks {
		if len(c.items) != 1 || c.items[0].Name != c.want {
			t.Fatalf("%s: expected single placeholder %q, got %+v", name, c.want, c.items)
		}
	}
	if resp.LocationInfo.City != "Lahore" || resp.Currency.Code != "PKR" || resp.Weather.Condition != entity.ConditionClearCloudy {
		t.Fatalf("component results not assembled: %+v", resp)
	}
}

func TestAggregate_RentalOffsets(t *testing.T) {
	svc := newStubService(&placesStub{}, RecommendationOptions{})
	resp := svc.Aggregate(context.Background(), entity.Coordinate{Latitude: 10, Longitude: 20})

	if len(resp.RentACar) != 2 {
		t.Fatalf("expected two rental offers, got %+v", resp.RentACar)
	}
	city, luxury := resp.RentACar[0], resp.RentACar[1]
	if city.Name != "City Rentals" || city.Price != "$40/day" || *city.Latitude != 10.005 || *city.Longitude != 20.005 {
		t.Fatalf("unexpected first rental: %+v (%v,%v)", city, *city.Latitude, *city.Longitude)
	}
	if luxury.Name != "Luxury Wheels" || luxury.Price != "$120/day" || *luxury.Latitude != 9.995 || *luxury.Longitude != 19.995 {
		t.Fatalf("unexpected second rental: %+v (%v,%v)", luxury, *luxury.Latitude, *luxury.Longitude)
	}
}

func TestAggregate_TransportFallsBackToBusStations(t *testing.T) {
	places := &placesStub{byValue: map[string][]entity.PlaceItem{
		"bus_station": {place("Daewoo Terminal")},
	}}
	resp := newStubService(places, RecommendationOptions{}).Aggregate(context.Background(), entity.Coordinate{Latitude: 31.5, Longitude: 74.3})

	if len(resp.Transport) != 1 || resp.Transport[0].Name != "Daewoo Terminal" {
		t.Fatalf("expected bus station fallback, got %+v", resp.Transport)
	}
	searched := places.searchedValues()
	if searched["station"].RadiusMeters != 3000 || searched["bus_station"].RadiusMeters != 3000 {
		t.Fatalf("transport searches must use a 3000m radius: %+v", searched)
	}
}

func TestAggregate_StationsSkipBusFallback(t *testing.T) {
	places := &placesStub{byValue: map[string][]entity.PlaceItem{
		"station":     {place("Lahore Junction")},
		"bus_station": {place("Daewoo Terminal")},
	}}
	resp := newStubService(places, RecommendationOptions{}).Aggregate(context.Background(), entity.Coordinate{})

	if len(resp.Transport) != 1 || resp.Transport[0].Name != "Lahore Junction" {
		t.Fatalf("expected stations only, got %+v", resp.Transport)
	}
	if _, ok := places.searchedValues()["bus_station"]; ok {
		t.Fatalf("bus stations should not be searched when stations exist")
	}
}

func TestAggregate_SafetyPolicy(t *testing.T) {
	byValue := map[string][]entity.PlaceItem{
		"hospital": {place("Mayo Hospital")},
		"pharmacy": {place("Fazal Din")},
	}

	t.Run("hospitals and pharmacies", func(t *testing.T) {
		places := &placesStub{byValue: byValue}
		resp := newStubService(places, RecommendationOptions{IncludePharmacies: true}).Aggregate(context.Background(), entity.Coordinate{})
		if len(resp.Safety) != 2 || resp.Safety[0].Name != "Mayo Hospital" || resp.Safety[1].Name != "Fazal Din" {
			t.Fatalf("expected union of hospitals and pharmacies, got %+v", resp.Safety)
		}
		if places.searchedValues()["hospital"].Limit != 3 {
			t.Fatalf("expected hospital limit 3")
		}
	})

	t.Run("hospitals only", func(t *testing.T) {
		places := &placesStub{byValue: byValue}
		resp := newStubService(places, RecommendationOptions{}).Aggregate(context.Background(), entity.Coordinate{})
		if len(resp.Safety) != 1 || resp.Safety[0].Name != "Mayo Hospital" {
			t.Fatalf("expected hospitals only, got %+v", resp.Safety)
		}
		if _, ok := places.searchedValues()["pharmacy"]; ok {
			t.Fatalf("pharmacies should not be searched")
		}
	})
}

func TestAggregate_OptionsDefaults(t *testing.T) {
	places := &placesStub{}
	newStubService(places, RecommendationOptions{}).Aggregate(context.Background(), entity.Coordinate{})

	food := places.searchedValues()["restaurant"]
	if food.RadiusMeters != 3000 || food.Limit != 5 {
		t.Fatalf("unexpected default food search: %+v", food)
	}
}

func TestAggregate_RunsConcurrently(t *testing.T) {
	svc := newStubService(slowPlaces{delay: 150 * time.Millisecond}, RecommendationOptions{IncludePharmacies: true})

	start := time.Now()
	svc.Aggregate(context.Background(), entity.Coordinate{})
	// Transport issues two sequential searches; every other category runs in parallel.
	if elapsed := time.Since(start); elapsed > 600*time.Millisecond {
		t.Fatalf("expected concurrent fan-out, took %s", elapsed)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	places := &placesStub{byValue: map[string][]entity.PlaceItem{
		"restaurant": {place("Andaaz")},
		"hotel":      {place("Pearl Continental")},
	}}
	svc := newStubService(places, RecommendationOptions{IncludePharmacies: true})
	coord := entity.Coordinate{Latitude: 31.5, Longitude: 74.3}

	first := svc.Aggregate(context.Background(), coord)
	second := svc.Aggregate(context.Background(), coord)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical responses:\n%+v\n%+v", first, second)
	}
}

// newUpstreamService wires the real providers against a single fake upstream.
func newUpstreamService(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *RecommendationService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := upstream.NewClient(upstream.WithHTTPClient(server.Client()), upstream.WithTimeout(timeout))
	geocoder := provider.NewNominatim(client, server.URL)
	return NewRecommendationService(
		NewLocationResolver(geocoder, provider.NewWikipedia(client, server.URL)),
		NewWeatherAdvisor(provider.NewOpenMeteo(client, server.URL)),
		NewCurrencyConverter(geocoder, provider.NewExchangeRates(client, server.URL)),
		NewPlacesFinder(provider.NewOverpass(client, server.URL), timeout),
		RecommendationOptions{IncludePharmacies: true},
	)
}

func assertFullyDegraded(t *testing.T, resp entity.RecommendationResponse) {
	t.Helper()
	if resp.LocationInfo != (entity.PlaceSummary{City: FallbackCity, History: DefaultHistory, Image: DefaultImage}) {
		t.Fatalf("unexpected location fallback: %+v", resp.LocationInfo)
	}
	if !reflect.DeepEqual(resp.Weather, UnknownWeather()) {
		t.Fatalf("unexpected weather fallback: %+v", resp.Weather)
	}
	if resp.Currency != UnavailableCurrency() {
		t.Fatalf("unexpected currency fallback: %+v", resp.Currency)
	}
	for name, items := range map[string][]entity.PlaceItem{
		"food": resp.Food, "hotels": resp.Hotels, "rentacar": resp.RentACar,
		"safety": resp.Safety, "transport": resp.Transport,
	} {
		if len(items) == 0 {
			t.Fatalf("%s must never be empty", name)
		}
	}
	if resp.Food[0] != foodPlaceholder || resp.Safety[0] != safetyPlaceholder || resp.Transport[0] != transportPlaceholder {
		t.Fatalf("expected placeholders, got %+v %+v %+v", resp.Food, resp.Safety, resp.Transport)
	}
}

func TestAggregate_AllUpstreamsFailing(t *testing.T) {
	svc := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}, time.Second)

	assertFullyDegraded(t, svc.Aggregate(context.Background(), entity.Coordinate{Latitude: 31.5, Longitude: 74.3}))
}

func TestAggregate_BoundedBySlowUpstreams(t *testing.T) {
	release := make(chan struct{})
	svc := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 200*time.Millisecond)
	t.Cleanup(func() { close(release) })

	start := time.Now()
	resp := svc.Aggregate(context.Background(), entity.Coordinate{Latitude: 31.5, Longitude: 74.3})
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("aggregate not bounded by upstream timeout: %s", elapsed)
	}
	assertFullyDegraded(t, resp)
}

func TestAggregate_CancelledParent(t *testing.T) {
	release := make(chan struct{})
	svc := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 10*time.Second)
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	resp := svc.Aggregate(ctx, entity.Coordinate{Latitude: 31.5, Longitude: 74.3})
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("cancelled aggregate did not return promptly: %s", elapsed)
	}
	assertFullyDegraded(t, resp)
}
