package provider

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nesthunt/nesthunt/internal/cache"
	"github.com/nesthunt/nesthunt/internal/model"
	"github.com/nesthunt/nesthunt/pkg/foursquare"
)

// lifestyleProvider counts venues via Foursquare, or a deterministic mock
// when no key is configured.
type lifestyleProvider struct {
	client  foursquare.Client // nil without a key
	cache   *cache.TTLCache[model.LifestyleResult]
	timeout time.Duration
	now     func() time.Time
}

// LifestyleCount implements LifestyleCounter.
func (p *lifestyleProvider) LifestyleCount(ctx context.Context, lat, lng float64, categories []string) (*model.LifestyleResult, error) {
	sorted := append([]string(nil), categories...)
	sort.Strings(sorted)
	key := fmt.Sprintf("life:%f,%f:%s", lat, lng, strings.Join(sorted, ","))
	if cached, ok := p.cache.Get(key); ok {
		return &cached, nil
	}

	date := p.now().Format("2006-01-02")

	if p.client == nil {
		// Deterministic placeholder: denser toward whole-degree latitudes.
		count := int(math.Round(50 - math.Abs(math.Mod(lat, 1))*50))
		if count < 5 {
			count = 5
		}
		result := model.LifestyleResult{Count: count, Date: date}
		p.cache.Set(key, result)
		return &result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	count, err := p.client.VenueCount(ctx, lat, lng, categories)
	if err != nil {
		zap.L().Debug("provider: lifestyle lookup failed", zap.Error(err))
		return nil, nil
	}
	result := model.LifestyleResult{Count: count, Date: date}
	p.cache.Set(key, result)
	return &result, nil
}
