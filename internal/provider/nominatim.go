// Package provider contains typed clients for the third-party services the
// recommendation engine consumes. Each client returns upstream.Error values and
// leaves fallback policy to the caller.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/octobees/travel-buddy/api/internal/entity"
	"github.com/octobees/travel-buddy/api/internal/upstream"
)

// Address holds the locality fields of a reverse-geocoded coordinate.
type Address struct {
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	County      string `json:"county"`
	State       string `json:"state"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

// Locality returns the first non-empty of city, town, village and county.
func (a Address) Locality() string {
	for _, v := range []string{a.City, a.Town, a.Village, a.County} {
		if v != "" {
			return v
		}
	}
	return ""
}

// ReverseResponse is the subset of the Nominatim /reverse payload we consume.
type ReverseResponse struct {
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
	Error       string  `json:"error"`
}

// Nominatim reverse-geocodes coordinates. Concurrent lookups for the same
// coordinate share a single outbound call; nothing is kept once it returns.
type Nominatim struct {
	caller  upstream.Caller
	baseURL string
	group   singleflight.Group
}

// NewNominatim constructs a Nominatim client rooted at baseURL.
func NewNominatim(caller upstream.Caller, baseURL string) *Nominatim {
	return &Nominatim{caller: caller, baseURL: baseURL}
}

// Reverse resolves coord to an address record.
func (n *Nominatim) Reverse(ctx context.Context, coord entity.Coordinate) (ReverseResponse, error) {
	key := strconv.FormatFloat(coord.Latitude, 'f', 6, 64) + "," + strconv.FormatFloat(coord.Longitude, 'f', 6, 64)

	// The shared call must not die with whichever caller started it; the
	// client timeout still bounds it.
	shared := context.WithoutCancel(ctx)
	ch := n.group.DoChan(key, func() (any, error) {
		return n.reverse(shared, coord)
	})

	select {
	case <-ctx.Done():
		return ReverseResponse{}, upstream.Unavailable("nominatim", 0, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return ReverseResponse{}, res.Err
		}
		return res.Val.(ReverseResponse), nil
	}
}

func (n *Nominatim) reverse(ctx context.Context, coord entity.Coordinate) (ReverseResponse, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("accept-language", "en")

	var resp ReverseResponse
	if err := n.caller.GetJSON(ctx, "nominatim", n.baseURL+"/reverse", params, &resp); err != nil {
		return ReverseResponse{}, err
	}
	if resp.Error != "" {
		return ReverseResponse{}, upstream.Malformed("nominatim", fmt.Errorf("reverse geocode: %s", resp.Error))
	}
	if resp.Address == (Address{}) {
		return ReverseResponse{}, upstream.Malformed("nominatim", errors.New("response has no address"))
	}
	return resp, nil
}
