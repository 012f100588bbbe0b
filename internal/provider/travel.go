package provider

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nesthunt/nesthunt/internal/cache"
	"github.com/nesthunt/nesthunt/internal/geomath"
	"github.com/nesthunt/nesthunt/internal/model"
	"github.com/nesthunt/nesthunt/pkg/distancematrix"
)

// travelProvider resolves travel minutes via the Distance Matrix API, or a
// haversine speed heuristic when no key is configured. A timeout or provider
// failure yields a nil result, the same as an explicit no-route answer.
type travelProvider struct {
	client  distancematrix.Client // nil without a key
	cache   *cache.TTLCache[int]
	timeout time.Duration
}

func googleMode(mode model.TransportMode) string {
	switch mode {
	case model.ModePublicTransport:
		return "transit"
	case model.ModeWalking:
		return "walking"
	default:
		return "driving"
	}
}

// TravelMinutes implements TravelEstimator.
func (p *travelProvider) TravelMinutes(ctx context.Context, origin, dest model.LatLng, mode model.TransportMode) (*int, error) {
	key := fmt.Sprintf("dist:%s:%f,%f->%f,%f", mode, origin.Lat, origin.Lng, dest.Lat, dest.Lng)
	if cached, ok := p.cache.Get(key); ok {
		return &cached, nil
	}

	if p.client == nil {
		km := geomath.HaversineKm(origin.Lat, origin.Lng, dest.Lat, dest.Lng)
		var minutes int
		switch mode {
		case model.ModeWalking:
			minutes = geomath.WalkingMinutes(km)
		case model.ModePublicTransport:
			minutes = geomath.TransitMinutes(km)
		default:
			minutes = geomath.DrivingMinutes(km)
		}
		p.cache.Set(key, minutes)
		return &minutes, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	minutes, err := p.client.TravelMinutes(ctx, origin.Lat, origin.Lng, dest.Lat, dest.Lng, googleMode(mode))
	if err != nil {
		zap.L().Debug("provider: travel lookup failed",
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
		return nil, nil
	}
	if minutes == nil {
		return nil, nil
	}
	p.cache.Set(key, *minutes)
	return minutes, nil
}
