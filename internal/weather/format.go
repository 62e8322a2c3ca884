package weather

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ConvertTemperature converts t between the two supported unit systems.
// Converting a value and back recovers the original within rounding
// tolerance. This is a display helper only: stored measurements are
// replaced by re-fetching under the new unit, never converted in place.
func ConvertTemperature(t float64, from, to Unit) float64 {
	if from == to {
		return t
	}
	if from == Metric && to == Imperial {
		return t*9/5 + 32
	}
	return (t - 32) * 5 / 9
}

// FormatTemperature renders a temperature with its unit symbol.
func FormatTemperature(t float64, unit Unit) string {
	symbol := "°C"
	if unit == Imperial {
		symbol = "°F"
	}
	return fmt.Sprintf("%d%s", int(math.Round(t)), symbol)
}

// FormatWindSpeed renders a wind speed with its unit symbol.
func FormatWindSpeed(speed float64, unit Unit) string {
	symbol := "m/s"
	if unit == Imperial {
		symbol = "mph"
	}
	return fmt.Sprintf("%d %s", int(math.Round(speed)), symbol)
}

// TitleDescription capitalizes a free-text condition description for display
// ("scattered clouds" -> "Scattered Clouds").
func TitleDescription(desc string) string {
	// cases.Caser is stateful; build one per call rather than sharing.
	return cases.Title(language.English).String(desc)
}

// IconURL returns the upstream icon image URL for an icon code.
func IconURL(icon string) string {
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", icon)
}
