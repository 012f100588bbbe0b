package distancematrix

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTravelMinutes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    *int
		wantErr bool
	}{
		{
			name: "traffic duration preferred",
			body: `{"rows":[{"elements":[{"status":"OK","duration":{"value":600},"duration_in_traffic":{"value":900}}]}]}`,
			want: intp(15),
		},
		{
			name: "plain duration",
			body: `{"rows":[{"elements":[{"status":"OK","duration":{"value":610}}]}]}`,
			want: intp(10),
		},
		{
			name: "element not ok",
			body: `{"rows":[{"elements":[{"status":"ZERO_RESULTS"}]}]}`,
			want: nil,
		},
		{
			name: "empty rows",
			body: `{"rows":[]}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "transit", r.URL.Query().Get("mode"))
				assert.Equal(t, "test-key", r.URL.Query().Get("key"))
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient("test-key", WithBaseURL(srv.URL))
			got, err := c.TravelMinutes(context.Background(), -37.8, 144.9, -37.81, 144.96, "transit")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTravelMinutesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.TravelMinutes(context.Background(), 0, 0, 1, 1, "driving")
	assert.Error(t, err)
}

func intp(v int) *int { return &v }
