package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nesthunt/nesthunt/internal/model"
)

func fp(v float64) *float64 { return &v }

func TestMinMaxNormalize(t *testing.T) {
	out := minMaxNormalize([]*float64{fp(100), fp(200), fp(300)}, false)
	require.Len(t, out, 3)
	assert.Equal(t, 0.0, *out[0])
	assert.Equal(t, 0.5, *out[1])
	assert.Equal(t, 1.0, *out[2])
}

func TestMinMaxNormalizeInvert(t *testing.T) {
	out := minMaxNormalize([]*float64{fp(100), fp(300)}, true)
	assert.Equal(t, 1.0, *out[0])
	assert.Equal(t, 0.0, *out[1])
}

func TestMinMaxNormalizeDegenerate(t *testing.T) {
	// All present values equal: neutral 0.5, not a division by zero.
	out := minMaxNormalize([]*float64{fp(42), nil, fp(42)}, true)
	assert.Equal(t, 0.5, *out[0])
	assert.Nil(t, out[1])
	assert.Equal(t, 0.5, *out[2])
}

func TestMinMaxNormalizeAllNil(t *testing.T) {
	out := minMaxNormalize([]*float64{nil, nil}, false)
	assert.Nil(t, out[0])
	assert.Nil(t, out[1])
}

func TestTopsisDominantAreaWins(t *testing.T) {
	items := []criterionItem{
		{ID: "best", RentWeekly: fp(500), CommuteMin: fp(15), SafetyPct: fp(90)},
		{ID: "mid", RentWeekly: fp(600), CommuteMin: fp(30), SafetyPct: fp(70)},
		{ID: "worst", RentWeekly: fp(700), CommuteMin: fp(45), SafetyPct: fp(50)},
	}
	scores := topsisScores(items, model.Weights{Rent: 0.4, Commute: 0.3, Safety: 0.18, Lifestyle: 0.12})

	assert.Greater(t, scores["best"], scores["mid"])
	assert.Greater(t, scores["mid"], scores["worst"])
	for id, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0, id)
		assert.LessOrEqual(t, s, 1.0, id)
	}
}

func TestTopsisMissingMetricRedistributesWeight(t *testing.T) {
	// The area with no rent value is judged on its remaining criteria rather
	// than treated as having the worst possible rent.
	items := []criterionItem{
		{ID: "no-rent", CommuteMin: fp(10), SafetyPct: fp(95)},
		{ID: "full", RentWeekly: fp(500), CommuteMin: fp(40), SafetyPct: fp(40)},
		{ID: "pricey", RentWeekly: fp(900), CommuteMin: fp(45), SafetyPct: fp(35)},
	}
	scores := topsisScores(items, model.Weights{Rent: 0.4, Commute: 0.3, Safety: 0.18, Lifestyle: 0.12})

	assert.Greater(t, scores["no-rent"], scores["pricey"])
}

func TestTopsisIdenticalItemsScoreEqually(t *testing.T) {
	items := []criterionItem{
		{ID: "a", RentWeekly: fp(500), CommuteMin: fp(20), SafetyPct: fp(80)},
		{ID: "b", RentWeekly: fp(500), CommuteMin: fp(20), SafetyPct: fp(80)},
	}
	scores := topsisScores(items, model.Weights{Rent: 1, Commute: 1, Safety: 1, Lifestyle: 1})
	assert.Equal(t, scores["a"], scores["b"])
}

func TestTopsisUnnormalizedWeights(t *testing.T) {
	items := []criterionItem{
		{ID: "cheap", RentWeekly: fp(400), CommuteMin: fp(40)},
		{ID: "close", RentWeekly: fp(800), CommuteMin: fp(10)},
	}
	// Same ratios, different scales: scores must agree since weights are
	// normalized before use.
	a := topsisScores(items, model.Weights{Rent: 4, Commute: 3, Safety: 1.8, Lifestyle: 1.2})
	b := topsisScores(items, model.Weights{Rent: 0.4, Commute: 0.3, Safety: 0.18, Lifestyle: 0.12})
	assert.InDelta(t, a["cheap"], b["cheap"], 1e-9)
	assert.InDelta(t, a["close"], b["close"], 1e-9)
}

func TestTopsisEmpty(t *testing.T) {
	scores := topsisScores(nil, model.Weights{Rent: 1})
	assert.Empty(t, scores)
}
