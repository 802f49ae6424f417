package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/krishimitra/farm-weather/internal/openweather"
	"github.com/krishimitra/farm-weather/internal/store"
	"github.com/krishimitra/farm-weather/internal/weather"
)

const currentJSON = `{
	"name": "Pune",
	"coord": {"lat": 18.52, "lon": 73.85},
	"weather": [{"main": "Clear", "description": "clear sky", "icon": "01d"}],
	"main": {"temp": 25, "feels_like": 26, "humidity": 60, "pressure": 1010},
	"wind": {"speed": 3, "deg": 200},
	"sys": {"country": "IN", "sunrise": 1718000000, "sunset": 1718040000},
	"visibility": 10000,
	"timezone": 19800
}`

// upstreamHandler serves minimal provider-shaped responses. onWeather, when
// set, runs before the current-conditions response is written.
func upstreamHandler(onWeather func(r *http.Request)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/direct":
			fmt.Fprint(w, `[{"name":"Pune","country":"IN","lat":18.52,"lon":73.85}]`)
		case "/reverse":
			fmt.Fprint(w, `[{"name":"Pune","state":"MH","country":"IN"}]`)
		case "/weather":
			if onWeather != nil {
				onWeather(r)
			}
			fmt.Fprint(w, currentJSON)
		case "/forecast":
			fmt.Fprint(w, `{"list":[],"city":{"name":"Pune","country":"IN","timezone":19800}}`)
		default:
			http.NotFound(w, r)
		}
	})
}

// liveApp wires routes against a stubbed upstream provider.
func liveApp(t *testing.T, defaultLang string, onWeather func(r *http.Request)) (*fiber.App, *weather.Service) {
	t.Helper()
	upstream := httptest.NewServer(upstreamHandler(onWeather))
	t.Cleanup(upstream.Close)

	client := openweather.New(openweather.Config{
		APIKey:  "test-key",
		BaseURL: upstream.URL,
		GeoURL:  upstream.URL,
	})
	svc := weather.NewService(client, nil)

	app := fiber.New()
	RegisterRoutes(app, svc, store.NewMemoryStore(10, time.Hour), defaultLang)
	return app, svc
}

func testApp() (*fiber.App, *store.MemoryStore) {
	app := fiber.New()

	bundles := store.NewMemoryStore(10, time.Hour)
	svc := weather.NewService(openweather.New(openweather.Config{}), bundles)
	RegisterRoutes(app, svc, bundles, "en")

	return app, bundles
}

func request(t *testing.T, app *fiber.App, url string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestCityQueryValidation(t *testing.T) {
	app, _ := testApp()

	resp := request(t, app, "/api/v1/weather/city")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing name: expected 400, got %d", resp.StatusCode)
	}
}

func TestCoordsQueryValidation(t *testing.T) {
	app, _ := testApp()

	tests := []struct {
		name string
		url  string
	}{
		{"missing params", "/api/v1/weather/coords"},
		{"non-numeric", "/api/v1/weather/coords?lat=abc&lon=73.85"},
		{"latitude out of range", "/api/v1/weather/coords?lat=95&lon=73.85"},
		{"longitude out of range", "/api/v1/weather/coords?lat=18.52&lon=200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := request(t, app, tt.url)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestMissingAPIKeyMapsToBadGateway(t *testing.T) {
	app, _ := testApp()

	resp := request(t, app, "/api/v1/weather/city?name=Pune")
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", resp.StatusCode)
	}
}

func TestDefaultLanguageApplied(t *testing.T) {
	var mu sync.Mutex
	var upstreamLang string
	app, _ := liveApp(t, "hi", func(r *http.Request) {
		mu.Lock()
		upstreamLang = r.URL.Query().Get("lang")
		mu.Unlock()
	})

	// No lang parameter: the configured default applies.
	resp := request(t, app, "/api/v1/weather/city?name=Pune")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Lang string `json:"lang"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Lang != "hi" {
		t.Errorf("bundle lang = %q, want hi", body.Lang)
	}

	mu.Lock()
	got := upstreamLang
	mu.Unlock()
	if got != "hi" {
		t.Errorf("upstream lang = %q, want hi", got)
	}

	// An explicit lang parameter still wins over the default.
	resp = request(t, app, "/api/v1/weather/city?name=Pune&lang=mr")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	mu.Lock()
	got = upstreamLang
	mu.Unlock()
	if got != "mr" {
		t.Errorf("upstream lang = %q, want mr", got)
	}
}

func TestInFlightDuplicateAnsweredAccepted(t *testing.T) {
	release := make(chan struct{})
	app, svc := liveApp(t, "en", func(r *http.Request) {
		<-release
	})

	type result struct {
		resp *http.Response
		err  error
	}
	first := make(chan result, 1)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/city?name=Pune", nil)
		resp, err := app.Test(req, -1)
		first <- result{resp, err}
	}()

	// Wait until the first query is claimed and in flight.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if state, _, _ := svc.Latest(); state == weather.StateLoading {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("first query never entered loading state")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// A duplicate with no committed result yet answers 202, not null.
	resp := request(t, app, "/api/v1/weather/city?name=Pune")
	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("in-flight duplicate: expected 202, got %d", resp.StatusCode)
	}

	close(release)
	r := <-first
	if r.err != nil {
		t.Fatalf("first query failed: %v", r.err)
	}
	if r.resp.StatusCode != http.StatusOK {
		t.Errorf("first query: expected 200, got %d", r.resp.StatusCode)
	}
}

func TestLastKnownWeather(t *testing.T) {
	app, bundles := testApp()

	resp := request(t, app, "/api/v1/weather/last")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing key: expected 400, got %d", resp.StatusCode)
	}

	resp = request(t, app, "/api/v1/weather/last?key=city:pune")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown key: expected 404, got %d", resp.StatusCode)
	}

	b := &weather.Bundle{FetchedAt: time.Now().UTC()}
	b.Current.Name = "Pune"
	bundles.SaveBundle("city:pune", b)

	resp = request(t, app, "/api/v1/weather/last?key=city:pune")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("seeded key: expected 200, got %d", resp.StatusCode)
	}
}
