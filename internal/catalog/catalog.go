// Package catalog holds the candidate area catalog and nearest-neighbor
// selection over it.
package catalog

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/nesthunt/nesthunt/internal/model"
)

// Area is one catalog entry: a suburb with a centroid coordinate. The catalog
// is read-only after load.
type Area struct {
	ID         string       `yaml:"id" json:"id"`
	Name       string       `yaml:"name" json:"name"`
	Centroid   model.LatLng `yaml:"centroid" json:"centroid"`
	RegionCode string       `yaml:"region_code,omitempty" json:"regionCode,omitempty"`
}

type catalogFile struct {
	Areas []Area `yaml:"areas"`
}

// Load reads a catalog from a YAML file. An empty path returns the compiled-in
// default catalog.
func Load(path string) ([]Area, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, eris.Wrap(err, "catalog: parse yaml")
	}
	if len(cf.Areas) == 0 {
		return nil, eris.New("catalog: no areas defined")
	}
	for i, a := range cf.Areas {
		if a.ID == "" || a.Name == "" {
			return nil, eris.Errorf("catalog: area %d missing id or name", i)
		}
	}
	return cf.Areas, nil
}

// Default returns the compiled-in Melbourne suburb catalog.
func Default() []Area {
	return []Area{
		{ID: "melbourne_cbd", Name: "Melbourne CBD", Centroid: model.LatLng{Lat: -37.8136, Lng: 144.9631}, RegionCode: "206041122"},
		{ID: "docklands", Name: "Docklands", Centroid: model.LatLng{Lat: -37.8141, Lng: 144.9425}, RegionCode: "206041123"},
		{ID: "southbank", Name: "Southbank", Centroid: model.LatLng{Lat: -37.8240, Lng: 144.9650}, RegionCode: "206041124"},
		{ID: "carlton", Name: "Carlton", Centroid: model.LatLng{Lat: -37.8000, Lng: 144.9667}, RegionCode: "206041107"},
		{ID: "fitzroy", Name: "Fitzroy", Centroid: model.LatLng{Lat: -37.7984, Lng: 144.9781}, RegionCode: "206011008"},
		{ID: "brunswick", Name: "Brunswick", Centroid: model.LatLng{Lat: -37.7650, Lng: 144.9612}, RegionCode: "206011003"},
		{ID: "richmond", Name: "Richmond", Centroid: model.LatLng{Lat: -37.8182, Lng: 145.0067}, RegionCode: "206021110"},
		{ID: "prahran", Name: "Prahran", Centroid: model.LatLng{Lat: -37.8520, Lng: 144.9922}, RegionCode: "206021125"},
		{ID: "south_yarra", Name: "South Yarra", Centroid: model.LatLng{Lat: -37.8386, Lng: 144.9926}, RegionCode: "206021126"},
		{ID: "st_kilda", Name: "St Kilda", Centroid: model.LatLng{Lat: -37.8676, Lng: 144.9809}, RegionCode: "206041130"},
		{ID: "footscray", Name: "Footscray", Centroid: model.LatLng{Lat: -37.8009, Lng: 144.8996}, RegionCode: "206031107"},
		{ID: "sunshine", Name: "Sunshine", Centroid: model.LatLng{Lat: -37.7790, Lng: 144.8320}, RegionCode: "206031115"},
		{ID: "werribee", Name: "Werribee", Centroid: model.LatLng{Lat: -37.9056, Lng: 144.6576}, RegionCode: "206031139"},
		{ID: "glen_waverley", Name: "Glen Waverley", Centroid: model.LatLng{Lat: -37.8771, Lng: 145.1640}, RegionCode: "206061128"},
		{ID: "box_hill", Name: "Box Hill", Centroid: model.LatLng{Lat: -37.8183, Lng: 145.1250}, RegionCode: "206061112"},
		{ID: "doncaster", Name: "Doncaster", Centroid: model.LatLng{Lat: -37.7881, Lng: 145.1231}, RegionCode: "206061116"},
		{ID: "clayton", Name: "Clayton", Centroid: model.LatLng{Lat: -37.9249, Lng: 145.1190}, RegionCode: "206061109"},
		{ID: "dandenong", Name: "Dandenong", Centroid: model.LatLng{Lat: -37.9884, Lng: 145.2140}, RegionCode: "206071112"},
		{ID: "frankston", Name: "Frankston", Centroid: model.LatLng{Lat: -38.1446, Lng: 145.1229}, RegionCode: "206071115"},
		{ID: "essendon", Name: "Essendon", Centroid: model.LatLng{Lat: -37.7477, Lng: 144.9191}, RegionCode: "206011009"},
	}
}
