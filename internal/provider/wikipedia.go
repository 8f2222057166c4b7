package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/octobees/travel-buddy/api/internal/upstream"
)

// ErrNoArticle is returned when a search yields no matching title.
var ErrNoArticle = errors.New("no matching article")

// Image is an image reference inside a page summary.
type Image struct {
	Source string `json:"source"`
}

// Summary is the subset of the REST page summary we consume.
type Summary struct {
	Title         string `json:"title"`
	Extract       string `json:"extract"`
	Thumbnail     *Image `json:"thumbnail"`
	OriginalImage *Image `json:"originalimage"`
}

// Wikipedia searches article titles and fetches page summaries.
type Wikipedia struct {
	caller  upstream.Caller
	baseURL string
}

// NewWikipedia constructs a Wikipedia client rooted at baseURL.
func NewWikipedia(caller upstream.Caller, baseURL string) *Wikipedia {
	return &Wikipedia{caller: caller, baseURL: baseURL}
}

// SearchTitle returns the best-matching article title for query.
func (w *Wikipedia) SearchTitle(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("action", "opensearch")
	params.Set("search", query)
	params.Set("limit", "1")
	params.Set("namespace", "0")
	params.Set("format", "json")

	// opensearch answers with [query, [titles], [descriptions], [urls]].
	var raw []json.RawMessage
	if err := w.caller.GetJSON(ctx, "wikipedia-search", w.baseURL+"/w/api.php", params, &raw); err != nil {
		return "", err
	}
	if len(raw) < 2 {
		return "", upstream.Malformed("wikipedia-search", errors.New("opensearch response missing titles"))
	}

	var titles []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return "", upstream.Malformed("wikipedia-search", fmt.Errorf("decode titles: %w", err))
	}
	if len(titles) == 0 || strings.TrimSpace(titles[0]) == "" {
		return "", ErrNoArticle
	}
	return titles[0], nil
}

// PageSummary fetches the summary for a canonical article title.
func (w *Wikipedia) PageSummary(ctx context.Context, title string) (Summary, error) {
	path := url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	var summary Summary
	if err := w.caller.GetJSON(ctx, "wikipedia-summary", w.baseURL+"/api/rest_v1/page/summary/"+path, nil, &summary); err != nil {
		return Summary{}, err
	}
	return summary, nil
}
