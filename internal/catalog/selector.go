package catalog

import (
	"sort"

	"github.com/nesthunt/nesthunt/internal/geomath"
	"github.com/nesthunt/nesthunt/internal/model"
)

// searchTier is one radius/cap attempt of the expanding search.
type searchTier struct {
	radiusKm float64
	cap      int
}

// Each tier re-scans the full catalog; results are not merged across tiers.
// The widening stops once the pool is large enough, bounding how far from the
// workplace suggestions can drift.
var tiers = []struct {
	tier    searchTier
	minPool int
}{
	{searchTier{radiusKm: 20, cap: 40}, 20},
	{searchTier{radiusKm: 25, cap: 80}, 10},
	{searchTier{radiusKm: 30, cap: 120}, 0},
}

// Selector finds candidate areas near a center point.
type Selector struct {
	areas []Area
}

// NewSelector creates a Selector over a fixed catalog.
func NewSelector(areas []Area) *Selector {
	return &Selector{areas: areas}
}

// Candidates returns areas near center ordered by ascending distance, using an
// expanding radius search: 20 km capped at 40, then 25 km capped at 80 if
// fewer than 20 found, then 30 km capped at 120 if fewer than 10. Ties keep
// catalog order.
func (s *Selector) Candidates(center model.LatLng) []Area {
	list := s.search(center, tiers[0].tier)
	for i := 1; i < len(tiers); i++ {
		if len(list) >= tiers[i-1].minPool {
			break
		}
		list = s.search(center, tiers[i].tier)
	}
	return list
}

func (s *Selector) search(center model.LatLng, t searchTier) []Area {
	type scored struct {
		area Area
		dist float64
	}
	var within []scored
	for _, a := range s.areas {
		d := geomath.HaversineKm(center.Lat, center.Lng, a.Centroid.Lat, a.Centroid.Lng)
		if d <= t.radiusKm {
			within = append(within, scored{area: a, dist: d})
		}
	}
	sort.SliceStable(within, func(i, j int) bool { return within[i].dist < within[j].dist })
	if len(within) > t.cap {
		within = within[:t.cap]
	}
	out := make([]Area, len(within))
	for i, w := range within {
		out[i] = w.area
	}
	return out
}
