// Package safety provides the static safety percentile snapshot. Values are
// a percentile proxy derived from crime statistics agency data; higher means
// safer.
package safety

// Record is one area's safety percentile with its capture date.
type Record struct {
	SafetyPct float64 `json:"safetyPct"`
	Date      string  `json:"date"`
}

// SourceName labels safety provenance in responses.
const SourceName = "CSA Victoria (mock)"

// DefaultDate stamps lookups for areas absent from the snapshot.
const DefaultDate = "2024-05-15"

var byArea = map[string]Record{
	"fitzroy":     {SafetyPct: 65, Date: "2024-05-15"},
	"carlton":     {SafetyPct: 70, Date: "2024-05-15"},
	"richmond":    {SafetyPct: 60, Date: "2024-05-15"},
	"st_kilda":    {SafetyPct: 55, Date: "2024-05-15"},
	"brunswick":   {SafetyPct: 68, Date: "2024-05-15"},
	"south_yarra": {SafetyPct: 75, Date: "2024-05-15"},
	"docklands":   {SafetyPct: 58, Date: "2024-05-15"},
}

// Lookup returns the safety record for an area id, or nil when unknown.
func Lookup(areaID string) *Record {
	if r, ok := byArea[areaID]; ok {
		return &r
	}
	return nil
}

// Snapshot returns the full dataset, for the static dataset endpoint.
func Snapshot() map[string]Record {
	out := make(map[string]Record, len(byArea))
	for k, v := range byArea {
		out[k] = v
	}
	return out
}
