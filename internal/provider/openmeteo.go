package provider

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/octobees/travel-buddy/api/internal/entity"
	"github.com/octobees/travel-buddy/api/internal/upstream"
)

// CurrentWeather holds the current temperature (Celsius) and WMO weather code.
type CurrentWeather struct {
	Temperature *float64 `json:"temperature"`
	WeatherCode *int     `json:"weathercode"`
}

type forecastResponse struct {
	CurrentWeather *CurrentWeather `json:"current_weather"`
}

// OpenMeteo fetches current conditions.
type OpenMeteo struct {
	caller  upstream.Caller
	baseURL string
}

// NewOpenMeteo constructs an Open-Meteo client rooted at baseURL.
func NewOpenMeteo(caller upstream.Caller, baseURL string) *OpenMeteo {
	return &OpenMeteo{caller: caller, baseURL: baseURL}
}

// Current returns the current conditions at coord.
func (o *OpenMeteo) Current(ctx context.Context, coord entity.Coordinate) (CurrentWeather, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	params.Set("current_weather", "true")

	var resp forecastResponse
	if err := o.caller.GetJSON(ctx, "open-meteo", o.baseURL+"/v1/forecast", params, &resp); err != nil {
		return CurrentWeather{}, err
	}
	if resp.CurrentWeather == nil {
		return CurrentWeather{}, upstream.Malformed("open-meteo", errors.New("response has no current_weather"))
	}
	return *resp.CurrentWeather, nil
}
