package suggest

import (
	"math"

	"github.com/nesthunt/nesthunt/internal/model"
)

// criterionItem is one area's raw criterion values. Nil means the criterion
// could not be resolved for that area; it carries no weight in scoring.
type criterionItem struct {
	ID         string
	RentWeekly *float64
	CommuteMin *float64
	SafetyPct  *float64
	Lifestyle  *float64
}

// minMaxNormalize scales present values to [0,1] across the candidate set,
// inverting for lower-is-better criteria. When every present value is equal,
// all of them normalize to the neutral 0.5 instead of dividing by zero. Nil
// stays nil.
func minMaxNormalize(values []*float64, invert bool) []*float64 {
	min, max := math.Inf(1), math.Inf(-1)
	present := 0
	for _, v := range values {
		if v == nil {
			continue
		}
		present++
		min = math.Min(min, *v)
		max = math.Max(max, *v)
	}
	out := make([]*float64, len(values))
	if present == 0 {
		return out
	}
	for i, v := range values {
		if v == nil {
			continue
		}
		var norm float64
		if max == min {
			norm = 0.5
		} else {
			norm = (*v - min) / (max - min)
			if invert {
				norm = 1 - norm
			}
		}
		n := norm
		out[i] = &n
	}
	return out
}

// topsisScores ranks areas by closeness to the ideal alternative. Per area,
// weights are renormalized over the criteria that actually have values, so a
// missing metric redistributes its weight instead of dragging the score to
// zero. Returns a score in [0,1] per area ID.
func topsisScores(items []criterionItem, weights model.Weights) map[string]float64 {
	scores := make(map[string]float64, len(items))
	if len(items) == 0 {
		return scores
	}

	weightSum := weights.Rent + weights.Commute + weights.Safety + weights.Lifestyle
	var w [4]float64
	if weightSum <= 0 {
		w = [4]float64{0.25, 0.25, 0.25, 0.25}
	} else {
		w = [4]float64{
			weights.Rent / weightSum,
			weights.Commute / weightSum,
			weights.Safety / weightSum,
			weights.Lifestyle / weightSum,
		}
	}

	rents := make([]*float64, len(items))
	commutes := make([]*float64, len(items))
	safeties := make([]*float64, len(items))
	lifestyles := make([]*float64, len(items))
	for i, it := range items {
		rents[i] = it.RentWeekly
		commutes[i] = it.CommuteMin
		safeties[i] = it.SafetyPct
		lifestyles[i] = it.Lifestyle
	}
	rentNorm := minMaxNormalize(rents, true)
	commuteNorm := minMaxNormalize(commutes, true)
	safetyNorm := minMaxNormalize(safeties, false)
	lifestyleNorm := minMaxNormalize(lifestyles, false)

	vectors := make([][4]float64, len(items))
	for i := range items {
		vals := [4]*float64{rentNorm[i], commuteNorm[i], safetyNorm[i], lifestyleNorm[i]}
		var sumPresent float64
		for j, v := range vals {
			if v != nil {
				sumPresent += w[j]
			}
		}
		wi := w
		if sumPresent == 0 {
			wi = [4]float64{0.25, 0.25, 0.25, 0.25}
		} else {
			for j, v := range vals {
				if v != nil {
					wi[j] = w[j] / sumPresent
				} else {
					wi[j] = 0
				}
			}
		}
		for j, v := range vals {
			if v != nil {
				vectors[i][j] = *v * wi[j]
			}
		}
	}

	var idealBest, idealWorst [4]float64
	for j := 0; j < 4; j++ {
		best, worst := math.Inf(-1), math.Inf(1)
		for i := range vectors {
			best = math.Max(best, vectors[i][j])
			worst = math.Min(worst, vectors[i][j])
		}
		idealBest[j] = best
		idealWorst[j] = worst
	}

	for i, it := range items {
		var dPlus, dMinus float64
		for j := 0; j < 4; j++ {
			dPlus += (vectors[i][j] - idealBest[j]) * (vectors[i][j] - idealBest[j])
			dMinus += (vectors[i][j] - idealWorst[j]) * (vectors[i][j] - idealWorst[j])
		}
		dPlus = math.Sqrt(dPlus)
		dMinus = math.Sqrt(dMinus)
		if dPlus+dMinus == 0 {
			scores[it.ID] = 0
			continue
		}
		scores[it.ID] = dMinus / (dPlus + dMinus)
	}
	return scores
}
