package service

import (
	"context"
	"sync"

	"github.com/octobees/travel-buddy/api/internal/entity"
	"github.com/octobees/travel-buddy/api/internal/provider"
	"github.com/octobees/travel-buddy/api/internal/provider/overpass"
)

type geocoderStub struct {
	resp  provider.ReverseResponse
	err   error
	calls int
}

func (s *geocoderStub) Reverse(ctx context.Context, coord entity.Coordinate) (provider.ReverseResponse, error) {
	s.calls++
	return s.resp, s.err
}

type articlesStub struct {
	title       string
	searchErr   error
	summary     provider.Summary
	summaryErr  error
	searchCalls int
}

func (s *articlesStub) SearchTitle(ctx context.Context, query string) (string, error) {
	s.searchCalls++
	return s.title, s.searchErr
}

func (s *articlesStub) PageSummary(ctx context.Context, title string) (provider.Summary, error) {
	return s.summary, s.summaryErr
}

type weatherStub struct {
	current provider.CurrentWeather
	err     error
}

func (s *weatherStub) Current(ctx context.Context, coord entity.Coordinate) (provider.CurrentWeather, error) {
	return s.current, s.err
}

type ratesStub struct {
	rates map[string]float64
	err   error
}

func (s *ratesStub) LatestUSD(ctx context.Context) (map[string]float64, error) {
	return s.rates, s.err
}

type featuresStub struct {
	elements []provider.Element
	err      error
	last     overpass.Query
}

func (s *featuresStub) Query(ctx context.Context, q overpass.Query) ([]provider.Element, error) {
	s.last = q
	return s.elements, s.err
}

// placesStub answers Find by tag value and records which categories were searched.
type placesStub struct {
	mu       sync.Mutex
	byValue  map[string][]entity.PlaceItem
	searched []Category
}

func (s *placesStub) Find(ctx context.Context, coord entity.Coordinate, cat Category) []entity.PlaceItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searched = append(s.searched, cat)
	return s.byValue[cat.TagValue]
}

func (s *placesStub) searchedValues() map[string]Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Category, len(s.searched))
	for _, c := range s.searched {
		out[c.TagValue] = c
	}
	return out
}

func intPtr(v int) *int { return &v }
