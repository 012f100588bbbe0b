package suggest

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/nesthunt/nesthunt/internal/catalog"
	"github.com/nesthunt/nesthunt/internal/model"
	"github.com/nesthunt/nesthunt/internal/provider"
	"github.com/nesthunt/nesthunt/internal/rent"
	"github.com/nesthunt/nesthunt/internal/safety"
)

// Fixed provenance labels for metrics resolved inside the aggregate path.
const (
	commuteSourceName   = "Google Distance Matrix"
	lifestyleSourceName = "Foursquare (mock)"
)

// aggregator fans out metric resolution across candidate areas and applies
// the commute cutoff. Candidates whose best commute exceeds the cutoff, or
// whose commute could not be resolved at all, are dropped.
type aggregator struct {
	travel        provider.TravelEstimator
	rent          *rent.Resolver
	maxConcurrent int
	now           func() time.Time
}

// aggregateResult is the outcome of one fan-out pass.
type aggregateResult struct {
	areas    []model.RankedArea
	filtered int
	warnings []string
}

// collect resolves metrics for every candidate concurrently. Surviving areas
// keep the candidate ordering (nearest first); scoring and ranking reorder
// them later. Warnings report non-exact rent tiers; callers decide whether to
// surface them.
func (ag *aggregator) collect(ctx context.Context, candidates []catalog.Area, workplace model.LatLng, modes []model.TransportMode, commuteMax int, homeType model.HomeType) (aggregateResult, error) {
	slots := make([]*model.RankedArea, len(candidates))
	var mu sync.Mutex
	result := aggregateResult{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ag.maxConcurrent)
	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			commuteByMode := make(map[string]*int, len(modes))
			for _, m := range modes {
				minutes, err := ag.travel.TravelMinutes(ctx, cand.Centroid, workplace, m)
				if err != nil {
					return eris.Wrap(err, "suggest: travel lookup")
				}
				commuteByMode[m.JSONKey()] = minutes
			}

			var commuteMin *int
			for _, v := range commuteByMode {
				if v == nil {
					continue
				}
				if commuteMin == nil || *v < *commuteMin {
					commuteMin = v
				}
			}
			if commuteMin == nil || *commuteMin > commuteMax {
				mu.Lock()
				result.filtered++
				mu.Unlock()
				return nil
			}

			res := ag.rent.Resolve(cand.ID, cand.RegionCode, homeType, cand.Name)
			rec := safety.Lookup(cand.ID)

			var safetyPct *float64
			safetyDate := safety.DefaultDate
			if rec != nil {
				safetyPct = &rec.SafetyPct
				safetyDate = rec.Date
			}

			nowStamp := ag.now().UTC().Format(time.RFC3339)
			area := &model.RankedArea{
				ID:       cand.ID,
				Name:     cand.Name,
				Centroid: cand.Centroid,
				Metrics: model.AreaMetrics{
					RentWeekly:    res.RentWeekly,
					SafetyPct:     safetyPct,
					CommuteMin:    commuteMin,
					CommuteByMode: commuteByMode,
					Sources: model.MetricSources{
						Rent:      model.SourceMeta{Name: res.SourceName, Date: res.Date, Method: res.Method},
						Safety:    model.SourceMeta{Name: safety.SourceName, Date: safetyDate},
						Lifestyle: model.SourceMeta{Name: lifestyleSourceName, Date: nowStamp},
						Commute:   model.SourceMeta{Name: commuteSourceName, Date: nowStamp},
					},
				},
			}

			mu.Lock()
			slots[i] = area
			switch res.Method {
			case model.MethodRegionFallback:
				result.warnings = append(result.warnings, "rent_region_fallback")
			case model.MethodEstimated:
				result.warnings = append(result.warnings, "rent_estimated")
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return aggregateResult{}, err
	}

	for _, a := range slots {
		if a != nil {
			result.areas = append(result.areas, *a)
		}
	}
	return result, nil
}
