package service

import (
	"context"

	"github.com/octobees/travel-buddy/api/internal/entity"
)

// WMO codes for drizzle, rain, showers and thunderstorm.
var precipitationCodes = map[int]struct{}{
	51: {}, 53: {}, 55: {},
	61: {}, 63: {}, 65: {},
	80: {}, 81: {}, 82: {},
	95: {},
}

const (
	coldBelowC = 15.0
	hotAboveC  = 25.0
)

// WeatherAdvisor turns current conditions into a label and a packing list.
type WeatherAdvisor struct {
	source WeatherSource
}

// NewWeatherAdvisor wires an advisor from its upstream source.
func NewWeatherAdvisor(source WeatherSource) *WeatherAdvisor {
	return &WeatherAdvisor{source: source}
}

// Resolve returns the classified report, or the Unknown report on any failure.
func (a *WeatherAdvisor) Resolve(ctx context.Context, coord entity.Coordinate) entity.WeatherReport {
	current, err := a.source.Current(ctx, coord)
	if err != nil {
		logFallback(ctx, "weather", "current_weather", err)
		return UnknownWeather()
	}
	return ClassifyWeather(current.Temperature, current.WeatherCode)
}

// UnknownWeather is the report used when conditions are unavailable.
func UnknownWeather() entity.WeatherReport {
	return entity.WeatherReport{Condition: entity.ConditionUnknown, Packing: []string{"Essentials"}}
}

// ClassifyWeather derives the condition and packing list. Precipitation
// overrides the temperature label; clear-sky codes only relabel a Pleasant day.
func ClassifyWeather(temperature *float64, code *int) entity.WeatherReport {
	report := entity.WeatherReport{
		Temperature: temperature,
		Condition:   entity.ConditionPleasant,
		Packing:     []string{"Water Bottle", "Power Bank"},
	}

	if temperature != nil {
		switch t := *temperature; {
		case t < coldBelowC:
			report.Packing = append(report.Packing, "Warm Jacket", "Scarf")
			report.Condition = entity.ConditionCold
		case t > hotAboveC:
			report.Packing = append(report.Packing, "Sunscreen", "Hat", "Sunglasses")
			report.Condition = entity.ConditionHot
		}
	}

	if code == nil {
		return report
	}
	if _, rainy := precipitationCodes[*code]; rainy {
		report.Packing = append(report.Packing, "Umbrella")
		report.Condition = entity.ConditionRainy
	} else if *code <= 3 && report.Condition == entity.ConditionPleasant {
		report.Condition = entity.ConditionClearCloudy
	}
	return report
}
