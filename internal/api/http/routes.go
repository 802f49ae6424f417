package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/krishimitra/farm-weather/internal/openweather"
	"github.com/krishimitra/farm-weather/internal/store"
	"github.com/krishimitra/farm-weather/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. defaultLang is
// substituted when a request carries no lang query parameter.
func RegisterRoutes(app *fiber.App, service *weather.Service, bundles *store.MemoryStore, defaultLang string) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/city", func(c *fiber.Ctx) error {
		var req cityQuery
		req.Name = c.Query("name")
		req.Lang = c.Query("lang", defaultLang)

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		bundle, err := service.SearchByCity(c.Context(), req.Name, req.Lang)
		if err != nil {
			return providerError(err)
		}
		return respondBundle(c, bundle)
	})

	v1.Get("/weather/coords", func(c *fiber.Ctx) error {
		req, err := parseCoordsQuery(c, defaultLang)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		bundle, err := service.SearchByCoordinates(c.Context(), req.Lat, req.Lon, req.Lang)
		if err != nil {
			return providerError(err)
		}
		return respondBundle(c, bundle)
	})

	// Last known weather for a location key, served from the in-memory
	// store when a live fetch is unavailable.
	v1.Get("/weather/last", func(c *fiber.Ctx) error {
		key := c.Query("key")
		if key == "" {
			return fiber.NewError(fiber.StatusBadRequest, "key query parameter is required")
		}

		bundle, err := bundles.GetLatest(key)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data for requested location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}
		return c.JSON(bundle)
	})
}

// respondBundle writes a completed bundle. A nil bundle means a duplicate of
// an in-flight query was suppressed before any result was committed; answer
// 202 so clients know a fetch is underway rather than serializing null.
func respondBundle(c *fiber.Ctx, b *weather.Bundle) error {
	if b == nil {
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "loading"})
	}
	return c.JSON(b)
}

// providerError maps pipeline errors onto HTTP statuses while keeping the
// descriptive message.
func providerError(err error) error {
	switch {
	case errors.Is(err, openweather.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, "location not found")
	case errors.Is(err, openweather.ErrInvalidAPIKey), errors.Is(err, openweather.ErrMissingAPIKey):
		return fiber.NewError(fiber.StatusBadGateway, "invalid API key")
	default:
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
}

// cityQuery holds query parameters for the city endpoint.
type cityQuery struct {
	Name string `validate:"required"`
	Lang string
}

// coordsQuery holds query parameters for the coordinates endpoint.
type coordsQuery struct {
	Lat  float64 `validate:"gte=-90,lte=90"`
	Lon  float64 `validate:"gte=-180,lte=180"`
	Lang string
}

func parseCoordsQuery(c *fiber.Ctx, defaultLang string) (coordsQuery, error) {
	var q coordsQuery

	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return q, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return q, errors.New("invalid lat")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return q, errors.New("invalid lon")
	}

	q.Lat = lat
	q.Lon = lon
	q.Lang = c.Query("lang", defaultLang)

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
