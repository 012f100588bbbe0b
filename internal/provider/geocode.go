package provider

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nesthunt/nesthunt/internal/cache"
	"github.com/nesthunt/nesthunt/internal/model"
	"github.com/nesthunt/nesthunt/pkg/mapbox"
	"github.com/nesthunt/nesthunt/pkg/nominatim"
)

// nominatimConfidence is the fixed confidence assigned to fallback geocodes;
// Nominatim reports no relevance score.
const nominatimConfidence = 0.7

// geocodeProvider geocodes via Mapbox when a token is configured, otherwise
// via Nominatim. Successful lookups are cached; misses and errors are not.
type geocodeProvider struct {
	mapbox    mapbox.Client // nil without a token
	nominatim nominatim.Client
	cache     *cache.TTLCache[model.GeocodeResult]
	timeout   time.Duration
}

// Geocode implements Geocoder.
func (p *geocodeProvider) Geocode(ctx context.Context, query string) (*model.GeocodeResult, error) {
	key := "geo:" + query
	if cached, ok := p.cache.Get(key); ok {
		return &cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var result *model.GeocodeResult
	if p.mapbox != nil {
		loc, err := p.mapbox.Geocode(ctx, query)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, nil
		}
		result = &model.GeocodeResult{
			Lat:               loc.Lat,
			Lng:               loc.Lng,
			NormalizedAddress: loc.Label,
			Confidence:        loc.Relevance,
		}
	} else {
		places, err := p.nominatim.Search(ctx, query, 1)
		if err != nil {
			return nil, err
		}
		if len(places) == 0 {
			return nil, nil
		}
		result = &model.GeocodeResult{
			Lat:               places[0].Lat,
			Lng:               places[0].Lng,
			NormalizedAddress: places[0].Label,
			Confidence:        nominatimConfidence,
		}
	}

	p.cache.Set(key, *result)
	return result, nil
}

// autocompleteProvider completes addresses via Mapbox, or Nominatim without a
// token. It never fails upward: any error becomes an empty suggestion list.
type autocompleteProvider struct {
	mapbox    mapbox.Client // nil without a token
	nominatim nominatim.Client
	cache     *cache.TTLCache[[]model.AutocompleteSuggestion]
	timeout   time.Duration
}

// Autocomplete implements Autocompleter.
func (p *autocompleteProvider) Autocomplete(ctx context.Context, query string) ([]model.AutocompleteSuggestion, error) {
	key := "auto:" + query
	if cached, ok := p.cache.Get(key); ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var out []model.AutocompleteSuggestion
	if p.mapbox != nil {
		suggestions, err := p.mapbox.Autocomplete(ctx, query)
		if err != nil {
			zap.L().Debug("provider: autocomplete failed", zap.Error(err))
			return []model.AutocompleteSuggestion{}, nil
		}
		for _, s := range suggestions {
			out = append(out, model.AutocompleteSuggestion{Label: s.Label, PlaceID: s.PlaceID})
		}
	} else {
		places, err := p.nominatim.Search(ctx, query, 5)
		if err != nil {
			zap.L().Debug("provider: autocomplete fallback failed", zap.Error(err))
			return []model.AutocompleteSuggestion{}, nil
		}
		for i, pl := range places {
			out = append(out, model.AutocompleteSuggestion{Label: pl.Label, PlaceID: fmt.Sprintf("osm-%d", i)})
		}
	}
	if out == nil {
		out = []model.AutocompleteSuggestion{}
	}

	p.cache.Set(key, out)
	return out, nil
}
