// Package mapbox wraps the Mapbox Places geocoding API.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// Location is a geocoded place.
type Location struct {
	Lat       float64
	Lng       float64
	Label     string
	Relevance float64
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Label   string
	PlaceID string
}

// Client performs forward geocoding and autocomplete lookups.
type Client interface {
	// Geocode resolves a free-text query to its best match, or nil when the
	// provider returned no features.
	Geocode(ctx context.Context, query string) (*Location, error)
	// Autocomplete returns up to five completion candidates for a partial
	// query.
	Autocomplete(ctx context.Context, query string) ([]Suggestion, error)
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
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a Mapbox Places client.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
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

type feature struct {
	PlaceName string     `json:"place_name"`
	Center    [2]float64 `json:"center"` // lng, lat
	Relevance *float64   `json:"relevance"`
}

type featureCollection struct {
	Features []feature `json:"features"`
}

func (c *httpClient) fetch(ctx context.Context, query string, params url.Values) (*featureCollection, error) {
	params.Set("access_token", c.token)
	u := fmt.Sprintf("%s/%s.json?%s", c.baseURL, url.PathEscape(query), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, eris.Wrap(err, "mapbox: create request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "mapbox: request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, eris.Errorf("mapbox: status %d: %s", resp.StatusCode, string(body))
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, eris.Wrap(err, "mapbox: decode response")
	}
	return &fc, nil
}

// Geocode implements Client.
func (c *httpClient) Geocode(ctx context.Context, query string) (*Location, error) {
	params := url.Values{}
	params.Set("limit", "1")
	fc, err := c.fetch(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if len(fc.Features) == 0 {
		return nil, nil
	}
	f := fc.Features[0]
	loc := &Location{
		Lat:       f.Center[1],
		Lng:       f.Center[0],
		Label:     f.PlaceName,
		Relevance: 0.7,
	}
	if f.Relevance != nil {
		loc.Relevance = *f.Relevance
	}
	return loc, nil
}

// Autocomplete implements Client.
func (c *httpClient) Autocomplete(ctx context.Context, query string) ([]Suggestion, error) {
	params := url.Values{}
	params.Set("autocomplete", "true")
	params.Set("limit", "5")
	fc, err := c.fetch(ctx, query, params)
	if err != nil {
		return nil, err
	}
	out := make([]Suggestion, 0, len(fc.Features))
	for i, f := range fc.Features {
		out = append(out, Suggestion{Label: f.PlaceName, PlaceID: fmt.Sprintf("%d", i)})
	}
	return out, nil
}
