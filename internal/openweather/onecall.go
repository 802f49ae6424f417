package openweather

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ErrOneCallDisabled is returned when the richer endpoint is feature-flagged
// off. Callers treat it the same as any one-call failure: silent fallback to
// the coarse forecast path.
var ErrOneCallDisabled = errors.New("one-call endpoint disabled")

// FetchOneCall retrieves the richer daily/hourly/current payload, including
// UV index and dew point. Its failure must never abort an overall fetch.
func (c *Client) FetchOneCall(ctx context.Context, lat, lon float64, lang string) (*OneCall, error) {
	if !c.oneCallEnabled {
		return nil, ErrOneCallDisabled
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("lang", lang)
	values.Set("exclude", "minutely,alerts")

	var oc OneCall
	if err := c.getJSON(ctx, c.dataURL("/onecall", values), &oc); err != nil {
		return nil, err
	}
	return &oc, nil
}
