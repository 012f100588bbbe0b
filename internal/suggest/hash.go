package suggest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/nesthunt/nesthunt/internal/model"
)

// RequestHash derives the response cache key for a request. The request is
// serialized with sorted keys so that two semantically identical requests
// always map to the same key; absent optional fields are omitted entirely.
func RequestHash(req model.UserRequest) string {
	modes := make([]string, len(req.TransportModes))
	for i, m := range req.TransportModes {
		modes[i] = string(m)
	}

	// Maps marshal with sorted keys, which gives the canonical form.
	fields := map[string]any{
		"address":        req.Address,
		"commuteMax":     req.CommuteMax,
		"transportModes": modes,
		"weights": map[string]float64{
			"rent":      req.Weights.Rent,
			"commute":   req.Weights.Commute,
			"safety":    req.Weights.Safety,
			"lifestyle": req.Weights.Lifestyle,
		},
	}
	if req.Budget != nil {
		fields["budget"] = *req.Budget
	}
	if req.HomeType != "" {
		fields["homeType"] = string(req.HomeType)
	}
	if req.MustHaves != nil {
		fields["mustHaves"] = req.MustHaves
	}

	payload, _ := json.Marshal(fields)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])[:16]
}
