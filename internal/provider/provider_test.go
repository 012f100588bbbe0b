package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/nesthunt/nesthunt/internal/cache"
	"github.com/nesthunt/nesthunt/internal/config"
	"github.com/nesthunt/nesthunt/internal/model"
	"github.com/nesthunt/nesthunt/pkg/nominatim"
)

func testCaches() *Caches {
	return NewCaches(config.SuggestConfig{ProviderCacheTTLHrs: 24, DistanceCacheTTLHrs: 6})
}

func TestTravelHeuristicFallback(t *testing.T) {
	p := &travelProvider{cache: cache.New[int](time.Hour)}
	origin := model.LatLng{Lat: -37.8136, Lng: 144.9631}
	dest := model.LatLng{Lat: -37.8183, Lng: 145.1250} // ~14 km

	driving, err := p.TravelMinutes(context.Background(), origin, dest, model.ModeDriving)
	require.NoError(t, err)
	require.NotNil(t, driving)

	walking, err := p.TravelMinutes(context.Background(), origin, dest, model.ModeWalking)
	require.NoError(t, err)
	require.NotNil(t, walking)

	transit, err := p.TravelMinutes(context.Background(), origin, dest, model.ModePublicTransport)
	require.NoError(t, err)
	require.NotNil(t, transit)

	// Walking is slowest, driving fastest over 14 km.
	assert.Greater(t, *walking, *transit)
	assert.Greater(t, *transit, *driving)

	// Same inputs hit the cache.
	again, err := p.TravelMinutes(context.Background(), origin, dest, model.ModeDriving)
	require.NoError(t, err)
	assert.Equal(t, *driving, *again)
	assert.Equal(t, int64(1), p.cache.Stats().Hits)
}

func TestGeocodeNominatimFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"display_name":"100 Collins St, Melbourne VIC","lat":"-37.8140","lon":"144.9700"}]`))
	}))
	defer srv.Close()

	p := &geocodeProvider{
		nominatim: nominatim.NewClient("test", nominatim.WithBaseURL(srv.URL), nominatim.WithLimiter(rate.NewLimiter(rate.Inf, 1))),
		cache:     cache.New[model.GeocodeResult](time.Hour),
		timeout:   5 * time.Second,
	}

	got, err := p.Geocode(context.Background(), "100 collins st")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "100 Collins St, Melbourne VIC", got.NormalizedAddress)
	assert.Equal(t, 0.7, got.Confidence)

	// Cached on second call even if the server is gone.
	srv.Close()
	again, err := p.Geocode(context.Background(), "100 collins st")
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, got.Lat, again.Lat)
}

func TestGeocodeNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := &geocodeProvider{
		nominatim: nominatim.NewClient("test", nominatim.WithBaseURL(srv.URL), nominatim.WithLimiter(rate.NewLimiter(rate.Inf, 1))),
		cache:     cache.New[model.GeocodeResult](time.Hour),
		timeout:   5 * time.Second,
	}

	got, err := p.Geocode(context.Background(), "gibberish")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAutocompleteFallbackPlaceIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"display_name":"A","lat":"1","lon":"2"},
			{"display_name":"B","lat":"3","lon":"4"}
		]`))
	}))
	defer srv.Close()

	p := &autocompleteProvider{
		nominatim: nominatim.NewClient("test", nominatim.WithBaseURL(srv.URL), nominatim.WithLimiter(rate.NewLimiter(rate.Inf, 1))),
		cache:     cache.New[[]model.AutocompleteSuggestion](time.Hour),
		timeout:   5 * time.Second,
	}

	got, err := p.Autocomplete(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "osm-0", got[0].PlaceID)
	assert.Equal(t, "osm-1", got[1].PlaceID)
}

func TestAutocompleteNeverErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := &autocompleteProvider{
		nominatim: nominatim.NewClient("test", nominatim.WithBaseURL(srv.URL), nominatim.WithLimiter(rate.NewLimiter(rate.Inf, 1))),
		cache:     cache.New[[]model.AutocompleteSuggestion](time.Hour),
		timeout:   5 * time.Second,
	}

	got, err := p.Autocomplete(context.Background(), "a")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLifestyleMockDeterministic(t *testing.T) {
	p := &lifestyleProvider{
		cache: cache.New[model.LifestyleResult](time.Hour),
		now:   func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) },
	}

	a, err := p.LifestyleCount(context.Background(), -37.7984, 144.9781, []string{"cafe"})
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "2025-03-01", a.Date)
	assert.GreaterOrEqual(t, a.Count, 5)

	b, err := p.LifestyleCount(context.Background(), -37.7984, 144.9781, []string{"cafe"})
	require.NoError(t, err)
	assert.Equal(t, a.Count, b.Count)
}

func TestNewWiresFallbacksWithoutCredentials(t *testing.T) {
	cfg := &config.Config{
		Suggest: config.SuggestConfig{ProviderTimeoutSecs: 5, ProviderCacheTTLHrs: 24, DistanceCacheTTLHrs: 6},
	}
	set := New(cfg, testCaches())
	require.NotNil(t, set.Geocoder)
	require.NotNil(t, set.Travel)

	// No Google key: heuristic travel resolves immediately.
	m, err := set.Travel.TravelMinutes(context.Background(), model.LatLng{Lat: -37.8, Lng: 144.9}, model.LatLng{Lat: -37.81, Lng: 144.95}, model.ModeDriving)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Positive(t, *m)
}
