// Package openweather is an HTTP client for the OpenWeatherMap-shaped
// provider endpoints: current conditions, the 3-hour-step 5-day forecast,
// the optional one-call endpoint, and forward/reverse geocoding.
// It performs error normalization only; all aggregation happens downstream.
package openweather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5"
	defaultGeoURL  = "https://api.openweathermap.org/geo/1.0"
	defaultIconURL = "https://openweathermap.org"
)

// Config controls client construction.
type Config struct {
	APIKey  string
	BaseURL string // data endpoints; defaults to the public API
	GeoURL  string // geocoding endpoints; defaults to the public API
	IconURL string // icon image base; defaults to the public site

	// OneCallEnabled gates the optional richer endpoint. When false,
	// OneCall returns ErrOneCallDisabled without a network call.
	OneCallEnabled bool

	Timeout time.Duration
}

// Client issues requests to the weather provider. All calls carry
// units=metric and the given language code.
type Client struct {
	apiKey         string
	baseURL        string
	geoURL         string
	iconURL        string
	oneCallEnabled bool
	httpClient     *http.Client
	circuit        *gobreaker.CircuitBreaker
}

// New creates a Client. The API key is checked at call time, not here, so
// construction never fails.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.GeoURL == "" {
		cfg.GeoURL = defaultGeoURL
	}
	if cfg.IconURL == "" {
		cfg.IconURL = defaultIconURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:         cfg.APIKey,
		baseURL:        cfg.BaseURL,
		geoURL:         cfg.GeoURL,
		iconURL:        cfg.IconURL,
		oneCallEnabled: cfg.OneCallEnabled,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		circuit:        cb,
	}
}

// OneCallEnabled reports whether the richer endpoint is feature-flagged on.
func (c *Client) OneCallEnabled() bool {
	return c.oneCallEnabled
}

// IconURL returns the image URL for a provider icon code.
func (c *Client) IconURL(code string) string {
	return fmt.Sprintf("%s/img/wn/%s@2x.png", c.iconURL, code)
}

func (c *Client) dataURL(path string, values url.Values) string {
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")
	return fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())
}

// FetchCurrent retrieves current conditions for the given coordinates.
func (c *Client) FetchCurrent(ctx context.Context, lat, lon float64, lang string) (*Current, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("lang", lang)

	var cur Current
	if err := c.getJSON(ctx, c.dataURL("/weather", values), &cur); err != nil {
		return nil, err
	}
	return &cur, nil
}

// FetchForecast retrieves the 3-hour-step 5-day forecast for the given
// coordinates.
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64, lang string) (*Forecast, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("lang", lang)

	var fc Forecast
	if err := c.getJSON(ctx, c.dataURL("/forecast", values), &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}

// Geocode resolves a city name to coordinates. The first match wins; an
// empty match list maps to ErrLocationNotFound.
func (c *Client) Geocode(ctx context.Context, city string) (GeoPlace, error) {
	if c.apiKey == "" {
		return GeoPlace{}, ErrMissingAPIKey
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("limit", "1")
	values.Set("appid", c.apiKey)

	var matches []GeoPlace
	u := fmt.Sprintf("%s/direct?%s", c.geoURL, values.Encode())
	if err := c.getJSON(ctx, u, &matches); err != nil {
		return GeoPlace{}, err
	}
	if len(matches) == 0 {
		return GeoPlace{}, ErrLocationNotFound
	}
	return matches[0], nil
}

// ReverseGeocode resolves coordinates to a human-readable place. The first
// match wins; an empty match list maps to ErrLocationNotFound.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (GeoPlace, error) {
	if c.apiKey == "" {
		return GeoPlace{}, ErrMissingAPIKey
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("limit", "1")
	values.Set("appid", c.apiKey)

	var matches []GeoPlace
	u := fmt.Sprintf("%s/reverse?%s", c.geoURL, values.Encode())
	if err := c.getJSON(ctx, u, &matches); err != nil {
		return GeoPlace{}, err
	}
	if len(matches) == 0 {
		return GeoPlace{}, ErrLocationNotFound
	}
	return matches[0], nil
}
