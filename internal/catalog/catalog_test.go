package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultWhenPathEmpty(t *testing.T) {
	areas, err := Load("")
	require.NoError(t, err)
	assert.Len(t, areas, 20)
	assert.Equal(t, "melbourne_cbd", areas[0].ID)
	assert.Equal(t, "206041122", areas[0].RegionCode)
}

func TestLoadFromYAML(t *testing.T) {
	yaml := `
areas:
  - id: testville
    name: Testville
    centroid: { lat: -37.80, lng: 144.96 }
    region_code: "123456"
  - id: sampleton
    name: Sampleton
    centroid: { lat: -37.85, lng: 145.00 }
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	areas, err := Load(path)
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "testville", areas[0].ID)
	assert.Equal(t, "123456", areas[0].RegionCode)
	assert.InDelta(t, -37.85, areas[1].Centroid.Lat, 1e-9)
	assert.Empty(t, areas[1].RegionCode)
}

func TestLoadRejectsBadCatalog(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "empty", yaml: "areas: []"},
		{name: "missing id", yaml: "areas:\n  - name: NoID\n    centroid: { lat: 1, lng: 2 }"},
		{name: "not yaml", yaml: "{{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/catalog.yaml")
	assert.Error(t, err)
}
