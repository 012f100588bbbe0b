// Package distancematrix wraps the Google Distance Matrix API for
// point-to-point travel times.
package distancematrix

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/distancematrix/json"

// Client resolves travel minutes between two points for a travel mode.
type Client interface {
	// TravelMinutes returns the travel time in minutes, or nil when the
	// provider has no route for the pair.
	TravelMinutes(ctx context.Context, originLat, originLng, destLat, destLng float64, mode string) (*int, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Distance Matrix client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type response struct {
	Rows []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration *struct {
				Value float64 `json:"value"`
			} `json:"duration"`
			DurationInTraffic *struct {
				Value float64 `json:"value"`
			} `json:"duration_in_traffic"`
		} `json:"elements"`
	} `json:"rows"`
}

// TravelMinutes implements Client.
func (c *httpClient) TravelMinutes(ctx context.Context, originLat, originLng, destLat, destLng float64, mode string) (*int, error) {
	params := url.Values{}
	params.Set("origins", fmt.Sprintf("%f,%f", originLat, originLng))
	params.Set("destinations", fmt.Sprintf("%f,%f", destLat, destLng))
	params.Set("mode", mode)
	params.Set("departure_time", "now")
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "distancematrix: create request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "distancematrix: request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, eris.Errorf("distancematrix: status %d: %s", resp.StatusCode, string(body))
	}

	var data response
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, eris.Wrap(err, "distancematrix: decode response")
	}

	if len(data.Rows) == 0 || len(data.Rows[0].Elements) == 0 {
		return nil, nil
	}
	el := data.Rows[0].Elements[0]
	if el.Status != "OK" {
		return nil, nil
	}
	var seconds float64
	switch {
	case el.DurationInTraffic != nil:
		seconds = el.DurationInTraffic.Value
	case el.Duration != nil:
		seconds = el.Duration.Value
	default:
		return nil, nil
	}
	minutes := int(math.Round(seconds / 60))
	return &minutes, nil
}
