package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/octobees/travel-buddy/api/internal/entity"
)

const (
	baseCurrency       = "USD"
	defaultCountryCode = "US"
	rateUnavailable    = "Rate Unavailable"
)

var currencyByCountry = map[string]string{
	"US": "USD", "PK": "PKR", "IN": "INR", "GB": "GBP", "AE": "AED", "JP": "JPY",
	"CA": "CAD", "AU": "AUD", "NZ": "NZD", "CN": "CNY", "HK": "HKD", "SG": "SGD",
	"KR": "KRW", "TH": "THB", "MY": "MYR", "ID": "IDR", "PH": "PHP", "VN": "VND",
	"SA": "SAR", "QA": "QAR", "TR": "TRY", "EG": "EGP", "ZA": "ZAR", "MX": "MXN",
	"BR": "BRL", "CH": "CHF", "SE": "SEK", "NO": "NOK", "DK": "DKK", "PL": "PLN",
	"CZ": "CZK", "HU": "HUF", "RU": "RUB", "BD": "BDT", "LK": "LKR", "NP": "NPR",
	// Eurozone.
	"AT": "EUR", "BE": "EUR", "HR": "EUR", "CY": "EUR", "EE": "EUR", "FI": "EUR",
	"FR": "EUR", "DE": "EUR", "GR": "EUR", "IE": "EUR", "IT": "EUR", "LV": "EUR",
	"LT": "EUR", "LU": "EUR", "MT": "EUR", "NL": "EUR", "PT": "EUR", "SK": "EUR",
	"SI": "EUR", "ES": "EUR",
}

// CurrencyForCountry maps an ISO 3166-1 alpha-2 code to its ISO 4217 currency,
// defaulting to USD.
func CurrencyForCountry(countryCode string) string {
	if code, ok := currencyByCountry[strings.ToUpper(strings.TrimSpace(countryCode))]; ok {
		return code
	}
	return baseCurrency
}

// CurrencyConverter resolves the local currency and its USD rate.
type CurrencyConverter struct {
	geocoder ReverseGeocoder
	rates    RateSource
}

// NewCurrencyConverter wires a converter from its upstream sources.
func NewCurrencyConverter(geocoder ReverseGeocoder, rates RateSource) *CurrencyConverter {
	return &CurrencyConverter{geocoder: geocoder, rates: rates}
}

// Resolve returns the conversion message, or USD/"Rate Unavailable" on any failure.
func (c *CurrencyConverter) Resolve(ctx context.Context, coord entity.Coordinate) entity.CurrencyInfo {
	geo, err := c.geocoder.Reverse(ctx, coord)
	if err != nil {
		logFallback(ctx, "currency", "reverse_geocode", err)
		return UnavailableCurrency()
	}

	country := strings.ToUpper(strings.TrimSpace(geo.Address.CountryCode))
	if country == "" {
		country = defaultCountryCode
	}
	code := CurrencyForCountry(country)

	rates, err := c.rates.LatestUSD(ctx)
	if err != nil {
		logFallback(ctx, "currency", "exchange_rates", err)
		return UnavailableCurrency()
	}

	rate, ok := rates[code]
	if !ok {
		rate = 1
	}
	return entity.CurrencyInfo{
		Code:    code,
		Message: "1 " + baseCurrency + " ≈ " + strconv.FormatFloat(rate, 'f', -1, 64) + " " + code,
	}
}

// UnavailableCurrency is the info used when the rate cannot be resolved.
func UnavailableCurrency() entity.CurrencyInfo {
	return entity.CurrencyInfo{Code: baseCurrency, Message: rateUnavailable}
}
