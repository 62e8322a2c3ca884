package weather

// Unit is the measurement system used for temperature and wind speed.
type Unit string

const (
	Metric   Unit = "metric"
	Imperial Unit = "imperial"
)

// Valid reports whether u is one of the two supported unit systems.
func (u Unit) Valid() bool {
	return u == Metric || u == Imperial
}

// Toggle returns the other unit system.
func (u Unit) Toggle() Unit {
	if u == Imperial {
		return Metric
	}
	return Imperial
}

// CurrentConditions is a snapshot of weather for one place at one instant.
// Temperature and FeelsLike are rounded to whole numbers; the unit is
// implicit from the session's unit preference, so a unit change requires a
// re-fetch rather than in-place conversion.
type CurrentConditions struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	Temperature int     `json:"temperature"`
	FeelsLike   int     `json:"feelsLike"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Icon        string  `json:"icon"`
	Pressure    int     `json:"pressure"`
	Visibility  int     `json:"visibility"`
}

// DailyForecast is one aggregated calendar day derived from 3-hour samples.
// Condition, description, icon, humidity and wind speed come from the
// chronologically first sample of the day, not an average.
type DailyForecast struct {
	Date        string  `json:"date"` // YYYY-MM-DD, UTC
	TempMax     int     `json:"tempMax"`
	TempMin     int     `json:"tempMin"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// Bundle is the combined result of one query: current conditions plus the
// aggregated 5-day forecast.
type Bundle struct {
	Current  CurrentConditions `json:"current"`
	Forecast []DailyForecast   `json:"forecast"`
}

// currentResponse mirrors the OpenWeatherMap current-conditions payload.
type currentResponse struct {
	ID      int64 `json:"id"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Visibility int    `json:"visibility"`
	Name       string `json:"name"`
}

// forecastResponse mirrors the OpenWeatherMap 5-day/3-hour forecast payload.
type forecastResponse struct {
	List []forecastSample `json:"list"`
}

// forecastSample is one raw 3-hour interval record.
type forecastSample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}
