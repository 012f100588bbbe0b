// Package model defines the request, response, and metric types shared across
// the suggestion pipeline.
package model

// TransportMode is a commute mode a user can select.
type TransportMode string

// Supported transport modes.
const (
	ModeDriving         TransportMode = "driving"
	ModePublicTransport TransportMode = "public transport"
	ModeWalking         TransportMode = "walking"
)

// ValidMode reports whether m is a recognized transport mode.
func ValidMode(m TransportMode) bool {
	switch m {
	case ModeDriving, ModePublicTransport, ModeWalking:
		return true
	}
	return false
}

// JSONKey returns the camel-case key used for this mode in commuteByMode maps.
func (m TransportMode) JSONKey() string {
	if m == ModePublicTransport {
		return "publicTransport"
	}
	return string(m)
}

// HomeType is the dwelling preference a user can state.
type HomeType string

// Supported home types. An empty HomeType means unspecified.
const (
	HomeStudio    HomeType = "studio"
	HomeOneBed    HomeType = "1 bed apartment"
	HomeTwoBed    HomeType = "2 bed apartment"
	HomeThreeBed  HomeType = "3 bed apartment"
	HomeTownhouse HomeType = "townhouse"
	HomeHouse     HomeType = "house"
)

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Weights holds the user's per-criterion preference weights. They need not sum
// to one; consumers normalize before use.
type Weights struct {
	Rent      float64 `json:"rent"`
	Commute   float64 `json:"commute"`
	Safety    float64 `json:"safety"`
	Lifestyle float64 `json:"lifestyle"`
}

// UserRequest is the input to the suggestion pipeline.
type UserRequest struct {
	Address        string          `json:"address"`
	CommuteMax     int             `json:"commuteMax"`
	TransportModes []TransportMode `json:"transportModes"`
	Budget         *float64        `json:"budget,omitempty"`
	HomeType       HomeType        `json:"homeType,omitempty"`
	MustHaves      []string        `json:"mustHaves,omitempty"`
	Weights        Weights         `json:"weights"`
}

// SourceMeta tags a resolved metric with its data source and, for rent, the
// fallback tier that produced the value.
type SourceMeta struct {
	Name   string `json:"name"`
	Date   string `json:"date"`
	Method string `json:"method,omitempty"`
}

// Rent resolution methods, in fallback order.
const (
	MethodExact          = "exact"
	MethodAreaFallback   = "area_fallback"
	MethodRegionFallback = "region_fallback"
	MethodEstimated      = "estimated"
	MethodMock           = "mock"
)

// MetricSources records provenance for each metric on an area.
type MetricSources struct {
	Rent      SourceMeta `json:"rent"`
	Safety    SourceMeta `json:"safety"`
	Lifestyle SourceMeta `json:"lifestyle"`
	Commute   SourceMeta `json:"commute"`
}

// AreaMetrics holds the resolved metrics for one candidate area. Nil pointers
// mean the metric could not be resolved; metrics are never defaulted to zero.
// CommuteByMode has an entry for every attempted mode, nil when the lookup
// returned nothing.
type AreaMetrics struct {
	RentWeekly     *float64        `json:"rentWeekly"`
	SafetyPct      *float64        `json:"safetyPct"`
	LifestyleCount *int            `json:"lifestyleCount"`
	CommuteMin     *int            `json:"commuteMin"`
	CommuteByMode  map[string]*int `json:"commuteByMode,omitempty"`
	Sources        MetricSources   `json:"sources"`
}

// RankedArea is one entry in the suggestion shortlist.
type RankedArea struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Centroid   LatLng      `json:"centroid"`
	Metrics    AreaMetrics `json:"metrics"`
	Score      float64     `json:"score"`
	FitScore   int         `json:"fitScore"`
	FitSummary string      `json:"fitSummary"`
}

// GeocodeResult is a resolved workplace location.
type GeocodeResult struct {
	Lat               float64 `json:"lat"`
	Lng               float64 `json:"lng"`
	NormalizedAddress string  `json:"normalizedAddress"`
	Confidence        float64 `json:"confidence"`
	Warning           string  `json:"warning,omitempty"`
}

// LowConfidence is the geocode confidence threshold below which a warning is
// attached to responses.
const LowConfidence = 0.5

// AutocompleteSuggestion is one address completion candidate.
type AutocompleteSuggestion struct {
	Label   string `json:"label"`
	PlaceID string `json:"placeId"`
}

// AutocompleteResponse wraps address completion results.
type AutocompleteResponse struct {
	Suggestions []AutocompleteSuggestion `json:"suggestions"`
}

// LifestyleResult is a venue count near a point with its capture date.
type LifestyleResult struct {
	Count int    `json:"count"`
	Date  string `json:"date"`
}

// DebugInfo exposes pipeline internals for troubleshooting.
type DebugInfo struct {
	TotalCandidates     int      `json:"totalCandidates"`
	FilteredByCommute   int      `json:"filteredByCommute"`
	Returned            int      `json:"returned"`
	FirstFiveCandidates []string `json:"firstFiveCandidates"`
}

// Disclaimer holds fixed data-quality disclaimers.
type Disclaimer struct {
	Safety string `json:"safety"`
}

// Meta holds response metadata.
type Meta struct {
	Disclaimer Disclaimer `json:"disclaimer"`
}

// SuggestResponse is the terminal output of the suggestion pipeline.
type SuggestResponse struct {
	Company  GeocodeResult `json:"company"`
	Areas    []RankedArea  `json:"areas"`
	Warnings []string      `json:"warnings,omitempty"`
	Debug    *DebugInfo    `json:"debug,omitempty"`
	Meta     *Meta         `json:"meta,omitempty"`
}

// SafetyDisclaimer is attached to every suggest response.
const SafetyDisclaimer = "Safety is a percentile proxy derived from CSA statistics; it does not guarantee personal safety."
