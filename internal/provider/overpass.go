package provider

import (
	"context"
	"errors"
	"net/url"

	"github.com/octobees/travel-buddy/api/internal/provider/overpass"
	"github.com/octobees/travel-buddy/api/internal/upstream"
)

// Center is the centroid reported for ways by "out center".
type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Element is a node or way returned by the Overpass interpreter.
type Element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *Center           `json:"center"`
	Tags   map[string]string `json:"tags"`
}

// Position returns the node position, or the way center.
func (e Element) Position() (lat, lon float64, ok bool) {
	if e.Lat != nil && e.Lon != nil {
		return *e.Lat, *e.Lon, true
	}
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon, true
	}
	return 0, 0, false
}

// Overpass runs tag-filtered radius queries against the feature index.
type Overpass struct {
	caller  upstream.Caller
	baseURL string
}

// NewOverpass constructs an Overpass client rooted at baseURL.
func NewOverpass(caller upstream.Caller, baseURL string) *Overpass {
	return &Overpass{caller: caller, baseURL: baseURL}
}

// Query executes q and returns the matched elements.
func (o *Overpass) Query(ctx context.Context, q overpass.Query) ([]Element, error) {
	ql, err := q.Build()
	if err != nil {
		return nil, err
	}

	var resp struct {
		Elements []Element `json:"elements"`
	}
	if err := o.caller.GetJSON(ctx, "overpass", o.baseURL+"/api/interpreter", url.Values{"data": {ql}}, &resp); err != nil {
		return nil, err
	}
	if resp.Elements == nil {
		return nil, upstream.Malformed("overpass", errors.New("response has no elements"))
	}
	return resp.Elements, nil
}
