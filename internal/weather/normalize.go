package weather

import (
	"math"
	"sort"
	"time"
)

const maxForecastDays = 5

// normalizeCurrent translates a raw current-conditions payload into the
// internal schema. Pure: same input always yields the same output.
// Temperatures are rounded to the nearest integer before storage; humidity,
// wind speed, pressure, visibility and icon are copied verbatim.
func normalizeCurrent(raw currentResponse) CurrentConditions {
	cc := CurrentConditions{
		ID:          raw.ID,
		Name:        raw.Name,
		Country:     raw.Sys.Country,
		Temperature: int(math.Round(raw.Main.Temp)),
		FeelsLike:   int(math.Round(raw.Main.FeelsLike)),
		Humidity:    raw.Main.Humidity,
		WindSpeed:   raw.Wind.Speed,
		Pressure:    raw.Main.Pressure,
		Visibility:  raw.Visibility,
	}
	// Upstream guarantees at least one condition entry; tolerate its absence
	// rather than panic on a malformed payload.
	if len(raw.Weather) > 0 {
		cc.Condition = raw.Weather[0].Main
		cc.Description = raw.Weather[0].Description
		cc.Icon = raw.Weather[0].Icon
	}
	return cc
}

// aggregateDaily collapses 3-hour interval samples into at most five daily
// records. Samples are grouped by UTC calendar date; the first five dates in
// ascending order are kept, which may include a partial first day when the
// query runs late in the day. Max/min temperatures are reduced over the
// whole group; all other fields come from the day's chronologically first
// sample. An empty input yields an empty result.
func aggregateDaily(samples []forecastSample) []DailyForecast {
	byDay := make(map[string][]forecastSample)
	for _, s := range samples {
		key := time.Unix(s.Dt, 0).UTC().Format("2006-01-02")
		byDay[key] = append(byDay[key], s)
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > maxForecastDays {
		keys = keys[:maxForecastDays]
	}

	forecast := make([]DailyForecast, 0, len(keys))
	for _, key := range keys {
		group := byDay[key]
		sort.Slice(group, func(i, j int) bool { return group[i].Dt < group[j].Dt })

		first := group[0]
		maxTemp, minTemp := first.Main.Temp, first.Main.Temp
		for _, s := range group[1:] {
			if s.Main.Temp > maxTemp {
				maxTemp = s.Main.Temp
			}
			if s.Main.Temp < minTemp {
				minTemp = s.Main.Temp
			}
		}

		day := DailyForecast{
			Date:      key,
			TempMax:   int(math.Round(maxTemp)),
			TempMin:   int(math.Round(minTemp)),
			Humidity:  first.Main.Humidity,
			WindSpeed: first.Wind.Speed,
		}
		if len(first.Weather) > 0 {
			day.Condition = first.Weather[0].Main
			day.Description = first.Weather[0].Description
			day.Icon = first.Weather[0].Icon
		}
		forecast = append(forecast, day)
	}
	return forecast
}
