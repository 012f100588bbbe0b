package mapbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocode(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantNil  bool
		wantErr  bool
		wantLat  float64
		wantConf float64
	}{
		{
			name:     "success",
			status:   http.StatusOK,
			body:     `{"features":[{"place_name":"Collins St, Melbourne","center":[144.9631,-37.8136],"relevance":0.96}]}`,
			wantLat:  -37.8136,
			wantConf: 0.96,
		},
		{
			name:     "missing relevance defaults",
			status:   http.StatusOK,
			body:     `{"features":[{"place_name":"Somewhere","center":[144.9,-37.8]}]}`,
			wantLat:  -37.8,
			wantConf: 0.7,
		},
		{
			name:    "no features",
			status:  http.StatusOK,
			body:    `{"features":[]}`,
			wantNil: true,
		},
		{
			name:    "server error",
			status:  http.StatusBadGateway,
			body:    `upstream broke`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient("test-token", WithBaseURL(srv.URL))
			loc, err := c.Geocode(context.Background(), "collins st")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, loc)
				return
			}
			require.NotNil(t, loc)
			assert.Equal(t, tt.wantLat, loc.Lat)
			assert.Equal(t, tt.wantConf, loc.Relevance)
		})
	}
}

func TestAutocomplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("autocomplete"))
		w.Write([]byte(`{"features":[{"place_name":"A","center":[1,2]},{"place_name":"B","center":[3,4]}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-token", WithBaseURL(srv.URL))
	got, err := c.Autocomplete(context.Background(), "coll")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Label)
	assert.Equal(t, "0", got[0].PlaceID)
	assert.Equal(t, "1", got[1].PlaceID)
}
