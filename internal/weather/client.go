package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	owmCurrentURL  = "https://api.openweathermap.org/data/2.5/weather"
	owmForecastURL = "https://api.openweathermap.org/data/2.5/forecast"

	httpTimeout = 10 * time.Second
)

// Client fetches current conditions and forecasts from OpenWeatherMap.
// It performs no retries and no caching; every call is a fresh round trip.
type Client struct {
	apiKey      string
	currentURL  string
	forecastURL string
	client      *http.Client
}

// NewClient constructs a Client with the given API key using production URLs.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:      apiKey,
		currentURL:  owmCurrentURL,
		forecastURL: owmForecastURL,
		client:      &http.Client{Timeout: httpTimeout},
	}
}

// NewClientWithURLs constructs a Client pointing at custom endpoints (for tests).
func NewClientWithURLs(currentURL, forecastURL, apiKey string) *Client {
	return &Client{
		apiKey:      apiKey,
		currentURL:  currentURL,
		forecastURL: forecastURL,
		client:      &http.Client{Timeout: httpTimeout},
	}
}

// endpoint builds the request URL for one of the two upstream endpoints.
func (c *Client) endpoint(base, city string, unit Unit) string {
	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", c.apiKey)
	values.Set("units", string(unit))
	return base + "?" + values.Encode()
}

// doGet performs a GET request and decodes the JSON response into dst.
// Non-2xx responses surface as classified errors; transport failures are
// left unwrapped for Classify to mark as network failures.
func (c *Client) doGet(ctx context.Context, rawURL, city string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request for %s: %w", city, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(city, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding upstream response for %s: %w", city, err)
	}
	return nil
}

// FetchBundle retrieves current conditions and the aggregated 5-day forecast
// for the given city and unit system. The two upstream requests run in
// parallel; both must succeed. On failure the returned error is always a
// classified *Error.
func (c *Client) FetchBundle(ctx context.Context, city string, unit Unit) (*Bundle, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var rawCurrent currentResponse
	var rawForecast forecastResponse

	g.Go(func() error {
		return c.doGet(gCtx, c.endpoint(c.currentURL, city, unit), city, &rawCurrent)
	})
	g.Go(func() error {
		return c.doGet(gCtx, c.endpoint(c.forecastURL, city, unit), city, &rawForecast)
	})

	if err := g.Wait(); err != nil {
		return nil, Classify(city, err)
	}

	return &Bundle{
		Current:  normalizeCurrent(rawCurrent),
		Forecast: aggregateDaily(rawForecast.List),
	}, nil
}
