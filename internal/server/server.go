// Package server exposes the suggestion pipeline over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/nesthunt/nesthunt/internal/catalog"
	"github.com/nesthunt/nesthunt/internal/provider"
	"github.com/nesthunt/nesthunt/internal/rent"
	"github.com/nesthunt/nesthunt/internal/suggest"
)

// Cache-Control values. Datasets are versioned by deployment, so clients may
// hold them indefinitely; provider-backed lookups get a day.
const (
	cacheControlDataset = "public, max-age=31536000, immutable"
	cacheControlDay     = "public, max-age=86400"
)

// Server holds the HTTP handler dependencies.
type Server struct {
	suggest       *suggest.Service
	geocoder      provider.Geocoder
	autocompleter provider.Autocompleter
	lifestyle     provider.LifestyleCounter
	rent          *rent.Resolver
	areasByID     map[string]catalog.Area
}

// New builds a Server over the pipeline and its providers.
func New(svc *suggest.Service, providers *provider.Set, resolver *rent.Resolver, areas []catalog.Area) *Server {
	byID := make(map[string]catalog.Area, len(areas))
	for _, a := range areas {
		byID[a.ID] = a
	}
	return &Server{
		suggest:       svc,
		geocoder:      providers.Geocoder,
		autocompleter: providers.Autocompleter,
		lifestyle:     providers.Lifestyle,
		rent:          resolver,
		areasByID:     byID,
	}
}

// Handler builds the router with middleware and all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/suggest", s.handleSuggest)
		r.Post("/geocode", s.handleGeocode)
		r.Post("/autocomplete", s.handleAutocomplete)
		r.Post("/lifestyle", s.handleLifestyle)
		r.Get("/rent", s.handleRentDataset)
		r.Get("/safety", s.handleSafetyDataset)
	})
	return r
}
