package entity

import "encoding/json"

// Condition is the categorical weather label shown to travellers.
type Condition string

const (
	ConditionPleasant    Condition = "Pleasant"
	ConditionCold        Condition = "Chilly/Cold"
	ConditionHot         Condition = "Warm/Hot"
	ConditionRainy       Condition = "Rainy"
	ConditionClearCloudy Condition = "Clear/Cloudy"
	ConditionUnknown     Condition = "Unknown"
)

// DefaultPrice is shown for places without pricing information.
const DefaultPrice = "View Details"

// PlaceSummary describes the resolved locality and its encyclopedic summary.
type PlaceSummary struct {
	City    string `json:"city"`
	History string `json:"history"`
	Image   string `json:"image,omitempty"`
}

// WeatherReport carries current conditions and a derived packing list.
// A nil Temperature is rendered as "--".
type WeatherReport struct {
	Temperature *float64  `json:"-"`
	Condition   Condition `json:"condition"`
	Packing     []string  `json:"packing"`
}

// MarshalJSON renders the temperature as a number, or the "--" sentinel when unknown.
func (w WeatherReport) MarshalJSON() ([]byte, error) {
	var temp any = "--"
	if w.Temperature != nil {
		temp = *w.Temperature
	}
	return json.Marshal(struct {
		Temp      any       `json:"temp"`
		Condition Condition `json:"condition"`
		Packing   []string  `json:"packing"`
	}{Temp: temp, Condition: w.Condition, Packing: w.Packing})
}

// CurrencyInfo describes the local currency and its USD conversion.
type CurrencyInfo struct {
	Code    string `json:"currency"`
	Message string `json:"message"`
}

// PlaceItem is a single point of interest, or a placeholder when nothing was found.
type PlaceItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
}

// RecommendationResponse is the aggregated payload returned for a coordinate.
type RecommendationResponse struct {
	LocationInfo PlaceSummary  `json:"location_info"`
	Weather      WeatherReport `json:"weather"`
	Currency     CurrencyInfo  `json:"currency"`
	Food         []PlaceItem   `json:"food"`
	Hotels       []PlaceItem   `json:"hotels"`
	RentACar     []PlaceItem   `json:"rentacar"`
	Safety       []PlaceItem   `json:"safety"`
	Transport    []PlaceItem   `json:"transport"`
}
