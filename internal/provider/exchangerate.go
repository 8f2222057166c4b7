package provider

import (
	"context"
	"errors"

	"github.com/octobees/travel-buddy/api/internal/upstream"
)

// ExchangeRates fetches conversion rates against a base currency.
type ExchangeRates struct {
	caller  upstream.Caller
	baseURL string
}

// NewExchangeRates constructs an exchange-rate client rooted at baseURL.
func NewExchangeRates(caller upstream.Caller, baseURL string) *ExchangeRates {
	return &ExchangeRates{caller: caller, baseURL: baseURL}
}

// LatestUSD returns the currency-code to rate mapping with USD as base.
func (e *ExchangeRates) LatestUSD(ctx context.Context) (map[string]float64, error) {
	var resp struct {
		Base  string             `json:"base"`
		Rates map[string]float64 `json:"rates"`
	}
	if err := e.caller.GetJSON(ctx, "exchange-rate", e.baseURL+"/v4/latest/USD", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Rates == nil {
		return nil, upstream.Malformed("exchange-rate", errors.New("response has no rates"))
	}
	return resp.Rates, nil
}
