package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/krishimitra/farm-weather/internal/locale"
	"github.com/krishimitra/farm-weather/internal/openweather"
)

// State is the fetch lifecycle state: idle until the first query, loading
// while one is in flight, then success or error.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Service orchestrates the pipeline: resolve the query, fetch current +
// forecast (+ optional one-call) concurrently, aggregate, and derive alerts.
//
// Two guards protect the shared result state. A request whose (query,
// language) key matches the in-flight or last successful request is
// suppressed without a network call. Every accepted request takes a
// monotonically increasing sequence number, and only the response matching
// the newest number is committed; superseded responses are dropped on
// arrival. There is no cancellation of the underlying HTTP calls.
type Service struct {
	provider Provider
	store    Store

	mu        sync.Mutex
	seq       uint64
	state     State
	lastKey   string
	lastQuery Query
	lastLang  locale.Lang
	bundle    *Bundle
	lastErr   error

	// now is swappable in tests.
	now func() time.Time
}

// NewService creates a Service. store may be nil when last-known-weather
// retention is not wanted.
func NewService(provider Provider, store Store) *Service {
	return &Service{
		provider: provider,
		store:    store,
		state:    StateIdle,
		now:      time.Now,
	}
}

// SearchByCity resolves a city name via geocoding and fetches its weather
// bundle.
func (s *Service) SearchByCity(ctx context.Context, name, langCode string) (*Bundle, error) {
	return s.search(ctx, CityQuery(name), langCode, false)
}

// SearchByCoordinates fetches the weather bundle for a coordinate pair,
// recovering a place name via reverse geocoding when possible.
func (s *Service) SearchByCoordinates(ctx context.Context, lat, lon float64, langCode string) (*Bundle, error) {
	return s.search(ctx, CoordsQuery(lat, lon), langCode, false)
}

// RefreshLatest re-fetches the most recent query, bypassing duplicate
// suppression. It is a no-op when no query has been made yet.
func (s *Service) RefreshLatest(ctx context.Context) (*Bundle, error) {
	s.mu.Lock()
	if s.lastKey == "" {
		s.mu.Unlock()
		return nil, nil
	}
	q, lang := s.lastQuery, s.lastLang
	s.mu.Unlock()

	return s.search(ctx, q, string(lang), true)
}

// Latest returns the current state and the last committed bundle or error.
func (s *Service) Latest() (State, *Bundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.bundle, s.lastErr
}

func (s *Service) search(ctx context.Context, q Query, langCode string, force bool) (*Bundle, error) {
	lang := locale.Resolve(langCode)
	key := q.Key() + "|" + string(lang)

	s.mu.Lock()
	// Duplicate suppression: same key as the in-flight or last successful
	// request is a no-op. Errors are not suppressed so callers may retry.
	if !force && key == s.lastKey && (s.state == StateLoading || s.state == StateSuccess) {
		bundle := s.bundle
		s.mu.Unlock()
		log.Printf("DEBUG: duplicate query %s suppressed", key)
		return bundle, nil
	}
	s.seq++
	mySeq := s.seq
	s.state = StateLoading
	s.lastKey = key
	s.lastQuery = q
	s.lastLang = lang
	s.mu.Unlock()

	bundle, err := s.fetch(ctx, q, lang)
	if err != nil {
		s.commitError(mySeq, err)
		return nil, err
	}

	s.commit(mySeq, key, bundle)
	return bundle, nil
}

func (s *Service) fetch(ctx context.Context, q Query, lang locale.Lang) (*Bundle, error) {
	lat, lon := q.Lat, q.Lon
	var place openweather.GeoPlace

	if q.ByCoords {
		// Reverse geocoding failure is non-fatal; weather proceeds on
		// coordinates alone.
		if p, err := s.provider.ReverseGeocode(ctx, lat, lon); err != nil {
			log.Printf("DEBUG: reverse geocoding failed for %.4f,%.4f: %v", lat, lon, err)
		} else {
			place = p
		}
	} else {
		p, err := s.provider.Geocode(ctx, q.City)
		if err != nil {
			return nil, fmt.Errorf("resolve city %q: %w", q.City, err)
		}
		place = p
		lat, lon = p.Lat, p.Lon
	}

	var (
		cur *openweather.Current
		fc  *openweather.Forecast
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cur, err = s.provider.FetchCurrent(gctx, lat, lon, string(lang))
		return err
	})
	g.Go(func() error {
		var err error
		fc, err = s.provider.FetchForecast(gctx, lat, lon, string(lang))
		return err
	})

	// The one-call request runs alongside when the feature flag is on; its
	// failure is isolated and the pipeline silently falls back to the
	// coarse feed.
	var oc *openweather.OneCall
	ocDone := make(chan struct{})
	if s.provider.OneCallEnabled() {
		go func() {
			defer close(ocDone)
			o, err := s.provider.FetchOneCall(ctx, lat, lon, string(lang))
			if err != nil {
				if !errors.Is(err, openweather.ErrOneCallDisabled) {
					log.Printf("DEBUG: one-call fetch failed for %.4f,%.4f: %v", lat, lon, err)
				}
				return
			}
			oc = o
		}()
	} else {
		close(ocDone)
	}

	if err := g.Wait(); err != nil {
		<-ocDone
		return nil, err
	}
	<-ocDone

	return s.buildBundle(q, lang, place, cur, fc, oc), nil
}

func (s *Service) buildBundle(q Query, lang locale.Lang, place openweather.GeoPlace, cur *openweather.Current, fc *openweather.Forecast, oc *openweather.OneCall) *Bundle {
	now := s.now()
	tz := time.FixedZone("local", cur.Timezone)

	var (
		daily  []DailySummary
		hourly []HourlySummary
	)
	if oc != nil && len(oc.Daily) > 0 {
		daily = dailyFromOneCall(oc.Daily, now, tz, lang, s.provider.IconURL)
	} else {
		daily = ToDaily(fc.List, now, tz, lang, CoarseDays, s.provider.IconURL)
	}
	if oc != nil && len(oc.Hourly) > 0 {
		hourly = hourlyFromOneCall(oc.Hourly, tz, lang, s.provider.IconURL)
	} else {
		hourly = ToHourly(fc.List, tz, lang, CoarseHours, s.provider.IconURL)
	}

	cc := CurrentConditions{
		Name:        cur.Name,
		Country:     cur.Sys.Country,
		Lat:         cur.Coord.Lat,
		Lon:         cur.Coord.Lon,
		FeelsLike:   cur.Main.FeelsLike,
		Condition:   cur.Condition().Main,
		Description: cur.Condition().Description,
		Icon:        cur.Condition().Icon,
		Humidity:    cur.Main.Humidity,
		WindSpeed:   cur.Wind.Speed,
		WindDeg:     cur.Wind.Deg,
		Pressure:    cur.Main.Pressure,
		Visibility:  cur.Visibility,
		Sunrise:     time.Unix(cur.Sys.Sunrise, 0).In(tz),
		Sunset:      time.Unix(cur.Sys.Sunset, 0).In(tz),
	}
	if cur.Main.Temp != nil {
		cc.Temp = *cur.Main.Temp
	}
	if place.Name != "" {
		cc.Name = place.Name
	}
	cc.State = place.State
	if place.Country != "" {
		cc.Country = place.Country
	}
	if cc.Icon != "" {
		cc.IconURL = s.provider.IconURL(cc.Icon)
	}
	if len(hourly) > 0 {
		cc.Pop = hourly[0].Pop
	}

	cc.DewPoint = resolveDewPoint(cur, oc)
	if oc != nil && oc.Current.UVI != nil {
		cc.UVIndex = oc.Current.UVI
	}

	return &Bundle{
		Query:         q,
		Lang:          lang,
		Current:       cc,
		Daily:         daily,
		Hourly:        hourly,
		Alerts:        Analyze(fc.List, now, tz, lang),
		DaysAvailable: len(daily),
		FetchedAt:     now.UTC(),
	}
}

// resolveDewPoint prefers the richer endpoint's measured dew point and falls
// back to the Magnus-Tetens estimate; when neither exists the field stays
// absent rather than guessed twice.
func resolveDewPoint(cur *openweather.Current, oc *openweather.OneCall) *float64 {
	if oc != nil && oc.Current.DewPoint != nil {
		return oc.Current.DewPoint
	}
	if cur.Main.Temp == nil {
		return nil
	}
	if dew, ok := EstimateDewPoint(*cur.Main.Temp, cur.Main.Humidity); ok {
		return &dew
	}
	return nil
}

func (s *Service) commit(mySeq uint64, key string, b *Bundle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mySeq != s.seq {
		log.Printf("DEBUG: stale result for %s discarded (seq %d < %d)", key, mySeq, s.seq)
		return
	}

	s.state = StateSuccess
	s.bundle = b
	s.lastErr = nil

	if s.store != nil {
		s.store.SaveBundle(b.Query.Key(), b)
	}
}

func (s *Service) commitError(mySeq uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mySeq != s.seq {
		log.Printf("DEBUG: stale error discarded: %v", err)
		return
	}

	s.state = StateError
	s.lastErr = err
}
