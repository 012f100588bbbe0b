// Package provider adapts external data services (geocoding, travel time,
// lifestyle counts) for the suggestion pipeline. Each provider degrades to a
// deterministic fallback when its credential is absent, and caches successful
// lookups in an injected TTL cache. A single failed call yields a nil metric;
// no retries are performed.
package provider

import (
	"context"
	"time"

	"github.com/nesthunt/nesthunt/internal/cache"
	"github.com/nesthunt/nesthunt/internal/config"
	"github.com/nesthunt/nesthunt/internal/model"
	"github.com/nesthunt/nesthunt/pkg/distancematrix"
	"github.com/nesthunt/nesthunt/pkg/foursquare"
	"github.com/nesthunt/nesthunt/pkg/mapbox"
	"github.com/nesthunt/nesthunt/pkg/nominatim"
)

// userAgent identifies this service to Nominatim, per its usage policy.
const userAgent = "nesthunt/1.0"

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	// Geocode returns nil without error when the address cannot be resolved.
	Geocode(ctx context.Context, query string) (*model.GeocodeResult, error)
}

// Autocompleter suggests address completions.
type Autocompleter interface {
	Autocomplete(ctx context.Context, query string) ([]model.AutocompleteSuggestion, error)
}

// TravelEstimator resolves travel minutes between two points for a mode. A
// nil result means the mode could not be resolved for the pair.
type TravelEstimator interface {
	TravelMinutes(ctx context.Context, origin, dest model.LatLng, mode model.TransportMode) (*int, error)
}

// LifestyleCounter counts lifestyle venues near a point.
type LifestyleCounter interface {
	LifestyleCount(ctx context.Context, lat, lng float64, categories []string) (*model.LifestyleResult, error)
}

// Caches bundles the per-provider TTL caches. One bundle is constructed at
// process start and shared by every request.
type Caches struct {
	Geocode      *cache.TTLCache[model.GeocodeResult]
	Autocomplete *cache.TTLCache[[]model.AutocompleteSuggestion]
	Distance     *cache.TTLCache[int]
	Lifestyle    *cache.TTLCache[model.LifestyleResult]
}

// NewCaches builds the provider cache bundle from configured TTLs.
func NewCaches(cfg config.SuggestConfig) *Caches {
	providerTTL := time.Duration(cfg.ProviderCacheTTLHrs) * time.Hour
	distanceTTL := time.Duration(cfg.DistanceCacheTTLHrs) * time.Hour
	return &Caches{
		Geocode:      cache.New[model.GeocodeResult](providerTTL),
		Autocomplete: cache.New[[]model.AutocompleteSuggestion](providerTTL),
		Distance:     cache.New[int](distanceTTL),
		Lifestyle:    cache.New[model.LifestyleResult](providerTTL),
	}
}

// Set holds one provider of each capability, wired per configuration.
type Set struct {
	Geocoder      Geocoder
	Autocompleter Autocompleter
	Travel        TravelEstimator
	Lifestyle     LifestyleCounter
}

// New wires the provider set from configuration: live clients where
// credentials exist, deterministic fallbacks elsewhere.
func New(cfg *config.Config, caches *Caches) *Set {
	timeout := time.Duration(cfg.Suggest.ProviderTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var mb mapbox.Client
	if cfg.Mapbox.Token != "" {
		mb = mapbox.NewClient(cfg.Mapbox.Token)
	}
	nomi := nominatim.NewClient(userAgent)

	var dm distancematrix.Client
	if cfg.Google.MapsAPIKey != "" {
		dm = distancematrix.NewClient(cfg.Google.MapsAPIKey)
	}

	var fsq foursquare.Client
	if cfg.Foursquare.APIKey != "" {
		fsq = foursquare.NewClient(cfg.Foursquare.APIKey)
	}

	geo := &geocodeProvider{mapbox: mb, nominatim: nomi, cache: caches.Geocode, timeout: timeout}
	return &Set{
		Geocoder:      geo,
		Autocompleter: &autocompleteProvider{mapbox: mb, nominatim: nomi, cache: caches.Autocomplete, timeout: timeout},
		Travel:        &travelProvider{client: dm, cache: caches.Distance, timeout: timeout},
		Lifestyle:     &lifestyleProvider{client: fsq, cache: caches.Lifestyle, timeout: timeout, now: time.Now},
	}
}
