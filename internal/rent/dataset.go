// Package rent resolves weekly rent estimates for candidate areas through a
// six-tier fallback chain over the state median-rent dataset.
package rent

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// Row is one record of the median rent dataset.
type Row struct {
	AreaID           string
	AreaName         string
	RegionCode       string
	DwellingType     string // "unit" or "house"
	Bedrooms         string // "0".."4+", or "all"
	MedianWeeklyRent float64
	PeriodEnd        string // ISO date
}

// BedroomsAll marks rows aggregated across all bedroom counts.
const BedroomsAll = "all"

// Index holds the rent dataset keyed three ways. It is read-only after
// construction.
type Index struct {
	ByArea   map[string][]Row
	ByRegion map[string][]Row
	ByName   map[string][]Row // keyed by normalized area name
}

var fold = cases.Fold()

// NormName lowercases and trims an area name for fuzzy matching.
func NormName(name string) string {
	return fold.String(strings.TrimSpace(name))
}

// LoadIndex reads the rent CSV at path and builds the three lookup maps.
func LoadIndex(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "rent: open dataset %s", path)
	}
	defer f.Close()
	return ReadIndex(f)
}

// ReadIndex parses rent CSV rows from r and builds the index. Columns are
// located by header name so column order does not matter.
func ReadIndex(r io.Reader) (*Index, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "rent: read header")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"area_id", "area_name", "dwelling_type", "bedrooms", "median_weekly_rent", "period_end"} {
		if _, ok := col[required]; !ok {
			return nil, eris.Errorf("rent: dataset missing column %q", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	idx := &Index{
		ByArea:   make(map[string][]Row),
		ByRegion: make(map[string][]Row),
		ByName:   make(map[string][]Row),
	}
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "rent: read row %d", line)
		}
		line++

		rentStr := field(rec, "median_weekly_rent")
		rentVal, err := strconv.ParseFloat(rentStr, 64)
		if err != nil {
			zap.L().Warn("rent: skipping row with bad rent value",
				zap.Int("line", line),
				zap.String("value", rentStr),
			)
			continue
		}

		row := Row{
			AreaID:           field(rec, "area_id"),
			AreaName:         field(rec, "area_name"),
			RegionCode:       field(rec, "region_code"),
			DwellingType:     field(rec, "dwelling_type"),
			Bedrooms:         field(rec, "bedrooms"),
			MedianWeeklyRent: rentVal,
			PeriodEnd:        field(rec, "period_end"),
		}
		if row.Bedrooms == "" {
			row.Bedrooms = BedroomsAll
		}

		if row.AreaID != "" {
			idx.ByArea[row.AreaID] = append(idx.ByArea[row.AreaID], row)
		}
		if row.RegionCode != "" {
			idx.ByRegion[row.RegionCode] = append(idx.ByRegion[row.RegionCode], row)
		}
		if nn := NormName(row.AreaName); nn != "" {
			idx.ByName[nn] = append(idx.ByName[nn], row)
		}
	}

	return idx, nil
}

// FuzzyName returns rows whose normalized name matches name directly, or
// failing that, by bidirectional substring containment. Substring matching
// can cross-match unrelated areas that share a word; first structural match
// still wins downstream.
func (idx *Index) FuzzyName(name string) []Row {
	if idx == nil || name == "" {
		return nil
	}
	n := NormName(name)
	if n == "" {
		return nil
	}
	if direct := idx.ByName[n]; len(direct) > 0 {
		return direct
	}
	keys := make([]string, 0, len(idx.ByName))
	for key := range idx.ByName {
		if strings.Contains(key, n) || strings.Contains(n, key) {
			keys = append(keys, key)
		}
	}
	// Sorted so repeated lookups see the same candidate ordering.
	sort.Strings(keys)
	var out []Row
	for _, key := range keys {
		out = append(out, idx.ByName[key]...)
	}
	return out
}
