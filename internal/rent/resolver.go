package rent

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nesthunt/nesthunt/internal/model"
)

// Source names reported in resolution provenance.
const (
	datasetSourceName = "DFFH Rental Report 2025-Q1"
	mockSourceName    = "VIC Median Rent (mock)"
)

// Query is one dwelling-type/bedroom combination to look for, in preference
// order.
type Query struct {
	Dwelling string
	Bedrooms string
}

// QueriesForHomeType maps a home type to the dataset queries tried in order.
func QueriesForHomeType(ht model.HomeType) []Query {
	switch ht {
	case model.HomeStudio:
		return []Query{{"unit", "0"}, {"unit", "1"}, {"unit", BedroomsAll}}
	case model.HomeOneBed:
		return []Query{{"unit", "1"}, {"unit", BedroomsAll}}
	case model.HomeTwoBed:
		return []Query{{"unit", "2"}, {"unit", BedroomsAll}}
	case model.HomeThreeBed:
		return []Query{{"unit", "3"}, {"unit", BedroomsAll}}
	case model.HomeTownhouse:
		return []Query{{"house", "2"}, {"house", "3"}, {"house", BedroomsAll}}
	case model.HomeHouse:
		return []Query{{"house", BedroomsAll}}
	default:
		return []Query{{"unit", BedroomsAll}, {"house", BedroomsAll}}
	}
}

// bedroomScalers adjusts an all-bedroom median to a target bedroom count for
// the estimated tier.
var bedroomScalers = map[string]float64{
	"unit:0":    0.78,
	"unit:1":    0.90,
	"unit:2":    1.00,
	"unit:3":    1.18,
	"house:all": 1.00,
	"house:2":   1.00,
	"house:3":   1.10,
	"house:4+":  1.22,
}

// mockRentByArea is the last-resort static table.
var mockRentByArea = map[string]struct {
	rentWeekly float64
	date       string
}{
	"fitzroy":     {650, "2024-06-01"},
	"carlton":     {620, "2024-06-01"},
	"richmond":    {600, "2024-06-01"},
	"st_kilda":    {590, "2024-06-01"},
	"brunswick":   {570, "2024-06-01"},
	"south_yarra": {680, "2024-06-01"},
	"docklands":   {700, "2024-06-01"},
}

// MockRent is one entry of the static fallback table.
type MockRent struct {
	RentWeekly float64 `json:"rentWeekly"`
	Date       string  `json:"date"`
}

// MockTable returns a copy of the static fallback table, for the dataset
// endpoint when no CSV is loaded.
func MockTable() map[string]MockRent {
	out := make(map[string]MockRent, len(mockRentByArea))
	for id, m := range mockRentByArea {
		out[id] = MockRent{RentWeekly: m.rentWeekly, Date: m.date}
	}
	return out
}

// Resolution is the outcome of a rent lookup. RentWeekly is nil when no tier
// produced a value; Method records which tier won.
type Resolution struct {
	RentWeekly *float64
	Date       string
	Method     string
	SourceName string
}

// MethodCounts tallies how often each resolution method fires. Exposed for
// the dataset status command.
type MethodCounts struct {
	Exact          int64 `json:"exact"`
	AreaFallback   int64 `json:"area_fallback"`
	RegionFallback int64 `json:"region_fallback"`
	Estimated      int64 `json:"estimated"`
	Mock           int64 `json:"mock"`
}

// Resolver maps (area, home type) to a weekly rent estimate with provenance.
// The dataset is loaded once on first use; a missing or unreadable file
// degrades silently to the mock table.
type Resolver struct {
	csvPath string
	now     func() time.Time

	loadOnce sync.Once
	index    *Index

	mu     sync.Mutex
	counts MethodCounts
}

// NewResolver creates a Resolver backed by the rent CSV at csvPath.
func NewResolver(csvPath string) *Resolver {
	return &Resolver{csvPath: csvPath, now: time.Now}
}

// WithIndex installs a pre-built index, bypassing file loading. For tests.
func (r *Resolver) WithIndex(idx *Index) *Resolver {
	r.loadOnce.Do(func() {})
	r.index = idx
	return r
}

// WithNow sets a fixed clock for deterministic date stamps. For tests.
func (r *Resolver) WithNow(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Counts returns a snapshot of the per-method resolution tallies.
func (r *Resolver) Counts() MethodCounts {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts
}

// Loaded reports whether the dataset index is available (as opposed to
// mock-only operation) and the number of indexed areas.
func (r *Resolver) Loaded() (bool, int) {
	r.load()
	if r.index == nil {
		return false, 0
	}
	return true, len(r.index.ByArea)
}

func (r *Resolver) load() {
	r.loadOnce.Do(func() {
		idx, err := LoadIndex(r.csvPath)
		if err != nil {
			zap.L().Warn("rent: dataset unavailable, falling back to mock table",
				zap.String("path", r.csvPath),
				zap.Error(err),
			)
			return
		}
		r.index = idx
		zap.L().Info("rent: dataset loaded",
			zap.String("path", r.csvPath),
			zap.Int("areas", len(idx.ByArea)),
		)
	})
}

func (r *Resolver) bump(method string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch method {
	case model.MethodExact:
		r.counts.Exact++
	case model.MethodAreaFallback:
		r.counts.AreaFallback++
	case model.MethodRegionFallback:
		r.counts.RegionFallback++
	case model.MethodEstimated:
		r.counts.Estimated++
	case model.MethodMock:
		r.counts.Mock++
	}
}

// findMatch returns the first row matching any query exactly, then the first
// row matching any query's dwelling with an all-bedroom aggregate.
func findMatch(rows []Row, queries []Query) *Row {
	for _, q := range queries {
		for i := range rows {
			if rows[i].DwellingType == q.Dwelling && rows[i].Bedrooms == q.Bedrooms {
				return &rows[i]
			}
		}
	}
	for _, q := range queries {
		for i := range rows {
			if rows[i].DwellingType == q.Dwelling && rows[i].Bedrooms == BedroomsAll {
				return &rows[i]
			}
		}
	}
	return nil
}

func (r *Resolver) labelPeriod(row *Row) string {
	if row == nil || row.PeriodEnd == "" {
		return r.now().Format("2006-01-02")
	}
	return row.PeriodEnd
}

func (r *Resolver) datasetHit(row *Row, method string) Resolution {
	r.bump(method)
	rent := row.MedianWeeklyRent
	return Resolution{
		RentWeekly: &rent,
		Date:       r.labelPeriod(row),
		Method:     method,
		SourceName: datasetSourceName,
	}
}

// Resolve walks the fallback chain in fixed order and returns the first hit:
// exact area match, area all-bedroom fallback, region fallback, scaled
// estimate, static mock, then unknown.
func (r *Resolver) Resolve(areaID, regionCode string, homeType model.HomeType, areaName string) Resolution {
	r.load()
	queries := QueriesForHomeType(homeType)
	allFirst := []Query{{Dwelling: queries[0].Dwelling, Bedrooms: BedroomsAll}}

	if r.index != nil {
		// Tier 1: exact by area id, then by fuzzy name.
		if row := findMatch(r.index.ByArea[areaID], queries); row != nil {
			return r.datasetHit(row, model.MethodExact)
		}
		if areaName != "" {
			if row := findMatch(r.index.FuzzyName(areaName), queries); row != nil {
				return r.datasetHit(row, model.MethodExact)
			}
		}

		// Tier 2: all-bedroom aggregate for the first query's dwelling type.
		if row := findMatch(r.index.ByArea[areaID], allFirst); row != nil {
			return r.datasetHit(row, model.MethodAreaFallback)
		}
		if areaName != "" {
			if row := findMatch(r.index.FuzzyName(areaName), allFirst); row != nil {
				return r.datasetHit(row, model.MethodAreaFallback)
			}
		}

		// Tier 3: same two passes scoped to the region.
		if regionCode != "" {
			if row := findMatch(r.index.ByRegion[regionCode], queries); row != nil {
				return r.datasetHit(row, model.MethodRegionFallback)
			}
			if row := findMatch(r.index.ByRegion[regionCode], allFirst); row != nil {
				return r.datasetHit(row, model.MethodRegionFallback)
			}
		}

		// Tier 4: scale an all-bedroom row by the bedroom multiplier table.
		areaRows := r.index.ByArea[areaID]
		if len(areaRows) == 0 && areaName != "" {
			areaRows = r.index.FuzzyName(areaName)
		}
		if base := baseForEstimate(areaRows); base != nil {
			if est, ok := estimateFromAll(base, queries[0].Bedrooms); ok {
				r.bump(model.MethodEstimated)
				return Resolution{
					RentWeekly: &est,
					Date:       r.labelPeriod(base),
					Method:     model.MethodEstimated,
					SourceName: datasetSourceName,
				}
			}
		}
	}

	// Tier 5: static mock table.
	if mock, ok := mockRentByArea[areaID]; ok {
		r.bump(model.MethodMock)
		rent := mock.rentWeekly
		return Resolution{
			RentWeekly: &rent,
			Date:       mock.date,
			Method:     model.MethodMock,
			SourceName: mockSourceName,
		}
	}

	// Tier 6: unknown.
	r.bump(model.MethodMock)
	return Resolution{
		RentWeekly: nil,
		Date:       r.now().Format("2006-01-02"),
		Method:     model.MethodMock,
		SourceName: mockSourceName,
	}
}

// baseForEstimate picks the all-bedroom row used by the estimated tier, unit
// preferred over house.
func baseForEstimate(rows []Row) *Row {
	var houseAll *Row
	for i := range rows {
		if rows[i].Bedrooms != BedroomsAll {
			continue
		}
		switch rows[i].DwellingType {
		case "unit":
			return &rows[i]
		case "house":
			if houseAll == nil {
				houseAll = &rows[i]
			}
		}
	}
	return houseAll
}

// estimateFromAll scales base's median rent to the target bedroom count.
func estimateFromAll(base *Row, targetBedrooms string) (float64, bool) {
	scaler, ok := bedroomScalers[base.DwellingType+":"+targetBedrooms]
	if !ok {
		return 0, false
	}
	return math.Round(base.MedianWeeklyRent * scaler), true
}
