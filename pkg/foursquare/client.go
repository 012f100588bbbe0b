// Package foursquare wraps the Foursquare Places search API for lifestyle
// venue counts.
package foursquare

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.foursquare.com/v3"

// Client counts venues near a point.
type Client interface {
	// VenueCount returns how many venues of the given categories sit within
	// the search radius of the point.
	VenueCount(ctx context.Context, lat, lng float64, categories []string) (int, error)
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

// NewClient creates a Foursquare Places client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type searchResponse struct {
	Results []json.RawMessage `json:"results"`
}

// VenueCount implements Client.
func (c *httpClient) VenueCount(ctx context.Context, lat, lng float64, categories []string) (int, error) {
	params := url.Values{}
	params.Set("ll", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("categories", strings.Join(categories, ","))
	params.Set("radius", "1000")
	params.Set("limit", "50")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/places/search?"+params.Encode(), nil)
	if err != nil {
		return 0, eris.Wrap(err, "foursquare: create request")
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, eris.Wrap(err, "foursquare: request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, eris.Errorf("foursquare: status %d: %s", resp.StatusCode, string(body))
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, eris.Wrap(err, "foursquare: decode response")
	}
	return len(data.Results), nil
}
