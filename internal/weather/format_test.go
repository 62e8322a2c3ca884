package weather_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ozcanmengullu/weather-dashboard/internal/weather"
)

func TestConvertTemperature_IsOwnInverse(t *testing.T) {
	for _, temp := range []float64{-40, -17.5, 0, 12.3, 37, 100} {
		f := weather.ConvertTemperature(temp, weather.Metric, weather.Imperial)
		back := weather.ConvertTemperature(f, weather.Imperial, weather.Metric)
		assert.InDelta(t, temp, back, 0.0001, "round trip for %v", temp)
	}
}

func TestConvertTemperature_KnownValues(t *testing.T) {
	assert.InDelta(t, 32, weather.ConvertTemperature(0, weather.Metric, weather.Imperial), 0.0001)
	assert.InDelta(t, 212, weather.ConvertTemperature(100, weather.Metric, weather.Imperial), 0.0001)
	assert.InDelta(t, 0, weather.ConvertTemperature(32, weather.Imperial, weather.Metric), 0.0001)
	assert.Equal(t, 21.0, weather.ConvertTemperature(21.0, weather.Metric, weather.Metric))
}

func TestFormatTemperature(t *testing.T) {
	assert.Equal(t, "19°C", weather.FormatTemperature(18.6, weather.Metric))
	assert.Equal(t, "66°F", weather.FormatTemperature(65.5, weather.Imperial))
}

func TestFormatWindSpeed(t *testing.T) {
	assert.Equal(t, "4 m/s", weather.FormatWindSpeed(4.2, weather.Metric))
	assert.Equal(t, "9 mph", weather.FormatWindSpeed(9.4, weather.Imperial))
}

func TestTitleDescription(t *testing.T) {
	assert.Equal(t, "Scattered Clouds", weather.TitleDescription("scattered clouds"))
	assert.Equal(t, "Light Rain", weather.TitleDescription("light rain"))
}

func TestIconURL(t *testing.T) {
	assert.Equal(t, "https://openweathermap.org/img/wn/10d@2x.png", weather.IconURL("10d"))
}

func TestUnitToggle(t *testing.T) {
	assert.Equal(t, weather.Imperial, weather.Metric.Toggle())
	assert.Equal(t, weather.Metric, weather.Imperial.Toggle())
	assert.True(t, weather.Metric.Valid())
	assert.False(t, weather.Unit("kelvin").Valid())
}
