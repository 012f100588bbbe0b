// Package suggest implements the suggestion pipeline: geocode the workplace,
// gather candidate areas, resolve metrics per area, score with TOPSIS, and
// rank by budget and commute fit.
package suggest

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nesthunt/nesthunt/internal/cache"
	"github.com/nesthunt/nesthunt/internal/catalog"
	"github.com/nesthunt/nesthunt/internal/config"
	"github.com/nesthunt/nesthunt/internal/model"
	"github.com/nesthunt/nesthunt/internal/provider"
	"github.com/nesthunt/nesthunt/internal/rent"
)

// ErrGeocodeFailed means the workplace address could not be resolved to a
// location. The HTTP layer maps it to 502.
var ErrGeocodeFailed = eris.New("suggest: geocode failed")

// tertiaryWeights are the fixed scoring weights. User weights influence only
// the cache key; ranking always uses this blend.
var tertiaryWeights = model.Weights{Rent: 0.40, Commute: 0.30, Safety: 0.18, Lifestyle: 0.12}

// commuteModeOrder fixes the tie-break order when picking the best commute
// mode for the fit summary.
var commuteModeOrder = []string{"driving", "publicTransport", "walking"}

// Service runs the suggestion pipeline. Responses are cached by canonical
// request hash.
type Service struct {
	geocoder provider.Geocoder
	agg      aggregator
	selector *catalog.Selector
	cache    *cache.TTLCache[model.SuggestResponse]
	topN     int
}

// NewService wires the pipeline from configuration.
func NewService(cfg config.SuggestConfig, providers *provider.Set, resolver *rent.Resolver, selector *catalog.Selector) *Service {
	topN := cfg.TopN
	if topN <= 0 {
		topN = 5
	}
	maxConcurrent := cfg.MaxConcurrentAreas
	if maxConcurrent <= 0 {
		maxConcurrent = 16
	}
	return &Service{
		geocoder: providers.Geocoder,
		agg: aggregator{
			travel:        providers.Travel,
			rent:          resolver,
			maxConcurrent: maxConcurrent,
			now:           time.Now,
		},
		selector: selector,
		cache:    cache.New[model.SuggestResponse](time.Duration(cfg.ResponseCacheTTLHrs) * time.Hour),
		topN:     topN,
	}
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// budgetPenalty penalizes areas off the user's weekly budget. Overshooting is
// five times worse than undershooting; the penalty saturates at 1. A missing
// budget or unresolved rent carries no penalty. overPct is set only when the
// rent exceeds the budget.
func budgetPenalty(budget *float64, rentWeekly *float64) (penalty float64, overPct *int) {
	if budget == nil || *budget == 0 || rentWeekly == nil {
		return 0, nil
	}
	overshoot := math.Max(0, *rentWeekly-*budget)
	undershoot := math.Max(0, *budget-*rentWeekly)
	denom := math.Max(*budget, 1)
	penalty = clamp01(2.5*(overshoot/denom) + 0.5*(undershoot/denom))
	if overshoot > 0 {
		pct := int(math.Round(100 * overshoot / denom))
		overPct = &pct
	}
	return penalty, overPct
}

// bestCommute picks the fastest resolved mode, preferring earlier modes in
// commuteModeOrder on ties.
func bestCommute(commuteByMode map[string]*int) (mode string, minutes int, ok bool) {
	for _, m := range commuteModeOrder {
		v, present := commuteByMode[m]
		if !present || v == nil {
			continue
		}
		if !ok || *v < minutes {
			mode, minutes, ok = m, *v, true
		}
	}
	return mode, minutes, ok
}

func fitSummary(overPct *int, commuteByMode map[string]*int) string {
	var parts []string
	if overPct != nil {
		parts = append(parts, fmt.Sprintf("Over budget by %d%%", *overPct))
	}
	if mode, minutes, ok := bestCommute(commuteByMode); ok {
		parts = append(parts, fmt.Sprintf("Fast %s commute (%d min)", mode, minutes))
	}
	if len(parts) == 0 {
		return "Balanced trade-offs"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " + " + p
	}
	return out
}

// Suggest runs the full pipeline for one request.
func (s *Service) Suggest(ctx context.Context, req model.UserRequest) (*model.SuggestResponse, error) {
	key := RequestHash(req)
	if cached, ok := s.cache.Get(key); ok {
		return &cached, nil
	}

	company, err := s.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		// A failing geocode collaborator is the same outcome as an address
		// that resolves to nothing: the workplace is unknown.
		zap.L().Warn("suggest: geocode provider failed",
			zap.String("address", req.Address),
			zap.Error(err),
		)
		return nil, ErrGeocodeFailed
	}
	if company == nil {
		return nil, ErrGeocodeFailed
	}

	var warnings []string
	if company.Confidence < model.LowConfidence {
		warnings = append(warnings, "low_confidence_geocode")
		company.Warning = "low_confidence"
	}

	workplace := model.LatLng{Lat: company.Lat, Lng: company.Lng}
	candidates := s.selector.Candidates(workplace)

	res, err := s.agg.collect(ctx, candidates, workplace, req.TransportModes, req.CommuteMax, req.HomeType)
	if err != nil {
		return nil, err
	}
	areas := res.areas
	warnings = append(warnings, res.warnings...)

	// All candidates eliminated: transit estimates are the least reliable, so
	// retry once without public transport before giving up.
	if len(areas) == 0 && len(req.TransportModes) > 1 {
		var reduced []model.TransportMode
		for _, m := range req.TransportModes {
			if m != model.ModePublicTransport {
				reduced = append(reduced, m)
			}
		}
		if len(reduced) > 0 {
			zap.L().Warn("suggest: empty pool, retrying without public transport",
				zap.String("address", req.Address),
				zap.Int("commuteMax", req.CommuteMax),
			)
			retry, err := s.agg.collect(ctx, candidates, workplace, reduced, req.CommuteMax, req.HomeType)
			if err != nil {
				return nil, err
			}
			areas = retry.areas
		}
	}

	items := make([]criterionItem, len(areas))
	for i, a := range areas {
		var commute *float64
		if a.Metrics.CommuteMin != nil {
			c := float64(*a.Metrics.CommuteMin)
			commute = &c
		}
		items[i] = criterionItem{
			ID:         a.ID,
			RentWeekly: a.Metrics.RentWeekly,
			CommuteMin: commute,
			SafetyPct:  a.Metrics.SafetyPct,
		}
	}
	scores := topsisScores(items, tertiaryWeights)

	budgetPenalties := make([]float64, len(areas))
	commutePenalties := make([]float64, len(areas))
	for i := range areas {
		a := &areas[i]
		a.Score = scores[a.ID]
		a.FitScore = int(math.Round(a.Score * 100))

		penalty, overPct := budgetPenalty(req.Budget, a.Metrics.RentWeekly)
		budgetPenalties[i] = penalty
		if a.Metrics.CommuteMin != nil {
			commutePenalties[i] = float64(*a.Metrics.CommuteMin) / math.Max(float64(req.CommuteMax), 1)
		} else {
			commutePenalties[i] = 1
		}
		a.FitSummary = fitSummary(overPct, a.Metrics.CommuteByMode)
	}

	order := make([]int, len(areas))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		i, j := order[x], order[y]
		if budgetPenalties[i] != budgetPenalties[j] {
			return budgetPenalties[i] < budgetPenalties[j]
		}
		if commutePenalties[i] != commutePenalties[j] {
			return commutePenalties[i] < commutePenalties[j]
		}
		return areas[i].FitScore > areas[j].FitScore
	})

	top := make([]model.RankedArea, 0, s.topN)
	for _, idx := range order {
		if len(top) == s.topN {
			break
		}
		top = append(top, areas[idx])
	}

	firstFive := make([]string, 0, 5)
	for _, c := range candidates {
		if len(firstFive) == 5 {
			break
		}
		firstFive = append(firstFive, c.Name)
	}

	response := model.SuggestResponse{
		Company:  *company,
		Areas:    top,
		Warnings: dedup(warnings),
		Debug: &model.DebugInfo{
			TotalCandidates:     len(candidates),
			FilteredByCommute:   res.filtered,
			Returned:            len(top),
			FirstFiveCandidates: firstFive,
		},
		Meta: &model.Meta{Disclaimer: model.Disclaimer{Safety: model.SafetyDisclaimer}},
	}

	s.cache.Set(key, response)
	return &response, nil
}

// dedup removes duplicate warnings, keeping first-seen order. Returns nil for
// an empty list so the field is omitted from JSON.
func dedup(warnings []string) []string {
	if len(warnings) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(warnings))
	var out []string
	for _, w := range warnings {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
