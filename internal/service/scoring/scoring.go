// Package scoring ranks points of interest by how much a traveller can learn
// about them before visiting.
package scoring

import (
	"net/url"
	"strings"
	"unicode"
)

const (
	categoryLocation = "location"
	categoryDetail   = "detail"
	categoryContact  = "contact"
)

var freeHostingDomains = []string{
	"wordpress.com",
	"blogspot.com",
	"wixsite.com",
	"weebly.com",
	"squarespace.com",
	"business.site",
	"godaddysites.com",
	"facebook.com",
	"instagram.com",
}

// PlaceFeatures captures the map signals used for ranking.
type PlaceFeatures struct {
	HasPosition  bool
	Street       string
	HouseNumber  string
	Cuisine      string
	OpeningHours string
	Phone        string
	Website      string
}

// ScoreResult reports the aggregate score and the per-category breakdown.
type ScoreResult struct {
	Total     int
	Breakdown map[string]int
}

// ComputeScore evaluates the provided features and returns the score breakdown.
// The maximum total is 60.
func ComputeScore(input PlaceFeatures) ScoreResult {
	breakdown := map[string]int{
		categoryLocation: scoreLocation(input),
		categoryDetail:   scoreDetail(input),
		categoryContact:  scoreContact(input),
	}

	total := 0
	for _, value := range breakdown {
		total += value
	}

	return ScoreResult{
		Total:     total,
		Breakdown: breakdown,
	}
}

func scoreLocation(input PlaceFeatures) int {
	score := 0
	if input.HasPosition {
		score += 10
	}
	if hasStreetAddress(input.Street, input.HouseNumber) {
		score += 10
	} else if strings.TrimSpace(input.Street) != "" {
		score += 5
	}
	return score
}

func scoreDetail(input PlaceFeatures) int {
	score := 0
	if strings.TrimSpace(input.Cuisine) != "" {
		score += 10
	}
	if strings.TrimSpace(input.OpeningHours) != "" {
		score += 10
	}
	return score
}

func scoreContact(input PlaceFeatures) int {
	score := 0
	if strings.TrimSpace(input.Phone) != "" {
		score += 10
	}
	switch {
	case highQualityDomain(input.Website):
		score += 10
	case strings.TrimSpace(input.Website) != "":
		score += 5
	}
	return score
}

func hasStreetAddress(street, houseNumber string) bool {
	if strings.TrimSpace(street) == "" {
		return false
	}
	for _, r := range houseNumber {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func highQualityDomain(raw string) bool {
	domain := extractDomain(raw)
	if domain == "" {
		return false
	}
	for _, bad := range freeHostingDomains {
		if domain == bad || strings.HasSuffix(domain, "."+bad) {
			return false
		}
	}
	return strings.Count(domain, ".") >= 1
}

func extractDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lowered := strings.ToLower(raw)
	if !strings.Contains(lowered, "://") {
		lowered = "https://" + lowered
	}
	parsed, err := url.Parse(lowered)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}
