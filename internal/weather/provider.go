package weather

import (
	"context"

	"github.com/krishimitra/farm-weather/internal/openweather"
)

// Provider abstracts the upstream weather service. *openweather.Client
// satisfies it; tests substitute fakes.
type Provider interface {
	FetchCurrent(ctx context.Context, lat, lon float64, lang string) (*openweather.Current, error)
	FetchForecast(ctx context.Context, lat, lon float64, lang string) (*openweather.Forecast, error)
	FetchOneCall(ctx context.Context, lat, lon float64, lang string) (*openweather.OneCall, error)
	Geocode(ctx context.Context, city string) (openweather.GeoPlace, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (openweather.GeoPlace, error)
	OneCallEnabled() bool
	IconURL(code string) string
}

// Store is the contract for keeping recent result bundles so the dashboard
// can show last known weather when a live fetch is unavailable.
type Store interface {
	SaveBundle(key string, b *Bundle)
	GetLatest(key string) (*Bundle, error)
}
