package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Safety policies control which amenities populate the safety category.
const (
	SafetyHospitalsAndPharmacies = "hospitals+pharmacies"
	SafetyHospitalsOnly          = "hospitals"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// UpstreamURLs holds the base URL of every third-party provider.
type UpstreamURLs struct {
	Nominatim    string
	Wikipedia    string
	OpenMeteo    string
	ExchangeRate string
	Overpass     string
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port                     string
	UserAgent                string
	UpstreamTimeout          time.Duration
	PlacesTimeout            time.Duration
	ShutdownTimeout          time.Duration
	Upstreams                UpstreamURLs
	PlacesRadiusMeters       int
	PlacesLimit              int
	SafetyPolicy             string
	RateLimitRecommendations RateLimitConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		UserAgent: getEnv("USER_AGENT", "TravelBuddy/1.0"),
		Upstreams: UpstreamURLs{
			Nominatim:    strings.TrimRight(getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"), "/"),
			Wikipedia:    strings.TrimRight(getEnv("WIKIPEDIA_BASE_URL", "https://en.wikipedia.org"), "/"),
			OpenMeteo:    strings.TrimRight(getEnv("OPEN_METEO_BASE_URL", "https://api.open-meteo.com"), "/"),
			ExchangeRate: strings.TrimRight(getEnv("EXCHANGE_RATE_BASE_URL", "https://api.exchangerate-api.com"), "/"),
			Overpass:     strings.TrimRight(getEnv("OVERPASS_BASE_URL", "https://overpass-api.de"), "/"),
		},
		SafetyPolicy: strings.ToLower(getEnv("SAFETY_POLICY", SafetyHospitalsAndPharmacies)),
	}

	var err error
	if cfg.UpstreamTimeout, err = parseDuration("UPSTREAM_TIMEOUT", getEnv("UPSTREAM_TIMEOUT", "5s")); err != nil {
		return nil, err
	}
	if cfg.PlacesTimeout, err = parseDuration("PLACES_TIMEOUT", getEnv("PLACES_TIMEOUT", "8s")); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", getEnv("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return nil, err
	}
	if cfg.PlacesRadiusMeters, err = parsePositiveInt("PLACES_RADIUS_METERS", getEnv("PLACES_RADIUS_METERS", "3000")); err != nil {
		return nil, err
	}
	if cfg.PlacesLimit, err = parsePositiveInt("PLACES_LIMIT", getEnv("PLACES_LIMIT", "5")); err != nil {
		return nil, err
	}

	switch cfg.SafetyPolicy {
	case SafetyHospitalsAndPharmacies, SafetyHospitalsOnly:
	default:
		return nil, fmt.Errorf("invalid SAFETY_POLICY value: %q", cfg.SafetyPolicy)
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_RECOMMENDATIONS", "60/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RECOMMENDATIONS value: %w", err)
	}
	cfg.RateLimitRecommendations = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(key, input string) (time.Duration, error) {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s value: %q", key, input)
	}
	return d, nil
}

func parsePositiveInt(key, input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s value: %q", key, input)
	}
	return n, nil
}
