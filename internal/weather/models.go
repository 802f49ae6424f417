package weather

import (
	"fmt"
	"strings"
	"time"

	"github.com/krishimitra/farm-weather/internal/locale"
)

// Query identifies the subject of a fetch: either a city name or a
// coordinate pair.
type Query struct {
	City     string  `json:"city,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
	ByCoords bool    `json:"byCoords"`
}

// CityQuery builds a city-name query.
func CityQuery(name string) Query {
	return Query{City: strings.TrimSpace(name)}
}

// CoordsQuery builds a coordinate query.
func CoordsQuery(lat, lon float64) Query {
	return Query{Lat: lat, Lon: lon, ByCoords: true}
}

// Key returns a canonical string key for duplicate suppression and store
// indexing.
func (q Query) Key() string {
	if q.ByCoords {
		return fmt.Sprintf("coords:%.4f:%.4f", q.Lat, q.Lon)
	}
	return "city:" + strings.ToLower(q.City)
}

// DailySummary is one calendar day reduced from the day's forecast slots
// (or taken verbatim from the richer endpoint's per-day record).
type DailySummary struct {
	Date      string  `json:"date"` // "2006-01-02"
	Label     string  `json:"label"`
	TempMin   float64 `json:"tempMin"`
	TempMax   float64 `json:"tempMax"`
	Pop       float64 `json:"pop"` // 0-1, averaged
	Humidity  float64 `json:"humidityPercent"`
	WindSpeed float64 `json:"windSpeed"`
	Icon      string  `json:"icon"`
	IconURL   string  `json:"iconUrl"`
}

// HourlySummary is a thin projection of one forecast slot, not aggregated.
type HourlySummary struct {
	Timestamp time.Time `json:"timestamp"`
	Label     string    `json:"label"`
	Temp      float64   `json:"temperatureC"`
	Pop       float64   `json:"pop"`
	Icon      string    `json:"icon"`
	IconURL   string    `json:"iconUrl"`
}

// CurrentConditions is the "now" snapshot.
type CurrentConditions struct {
	Name    string  `json:"name"`
	State   string  `json:"state,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`

	Temp        float64 `json:"temperatureC"`
	FeelsLike   float64 `json:"feelsLikeC"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	IconURL     string  `json:"iconUrl"`

	Humidity   float64 `json:"humidityPercent"`
	WindSpeed  float64 `json:"windSpeed"`
	WindDeg    float64 `json:"windDeg"`
	Pressure   float64 `json:"pressureHpa"`
	Visibility int     `json:"visibilityMeters"`

	// DewPoint is the provider's measured value when available, the
	// Magnus-Tetens estimate otherwise, and nil when neither exists.
	DewPoint *float64 `json:"dewPointC,omitempty"`
	UVIndex  *float64 `json:"uvIndex,omitempty"`

	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`

	// Pop is carried over from the nearest forecast slot.
	Pop float64 `json:"pop"`
}

// PlanningAlerts holds three independent forward-looking conditions, each
// with up to five formatted timestamps as evidence. The conditions are not
// mutually exclusive.
type PlanningAlerts struct {
	Rain      bool     `json:"rain"`
	RainTimes []string `json:"rainTimes"`

	Sun      bool     `json:"sun"`
	SunTimes []string `json:"sunTimes"`

	ColdWind      bool     `json:"coldWind"`
	ColdWindTimes []string `json:"coldWindTimes"`
}

// Bundle is the full result of one query: current conditions plus the
// daily/hourly views and planning alerts.
type Bundle struct {
	Query Query       `json:"query"`
	Lang  locale.Lang `json:"lang"`

	Current CurrentConditions `json:"current"`
	Daily   []DailySummary    `json:"daily"`
	Hourly  []HourlySummary   `json:"hourly"`
	Alerts  PlanningAlerts    `json:"alerts"`

	// DaysAvailable is the genuine forecast horizon of this bundle:
	// 5 from the coarse feed, up to 7 when the richer endpoint supplied
	// true per-day records. Callers must not assume 7.
	DaysAvailable int `json:"daysAvailable"`

	FetchedAt time.Time `json:"fetchedAt"` // always UTC
}
