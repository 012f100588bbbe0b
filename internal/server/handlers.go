package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nesthunt/nesthunt/internal/model"
	"github.com/nesthunt/nesthunt/internal/rent"
	"github.com/nesthunt/nesthunt/internal/safety"
	"github.com/nesthunt/nesthunt/internal/suggest"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req model.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	resp, err := s.suggest.Suggest(r.Context(), req)
	if err != nil {
		if eris.Is(err, suggest.ErrGeocodeFailed) {
			writeError(w, http.StatusBadGateway, "geocode_failed")
			return
		}
		zap.L().Error("server: suggest failed",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "suggest_failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeError(w, http.StatusBadRequest, "invalid_query")
		return
	}

	result, err := s.geocoder.Geocode(r.Context(), req.Query)
	if err != nil || result == nil {
		if err != nil {
			zap.L().Warn("server: geocode failed", zap.Error(err))
		}
		writeError(w, http.StatusBadGateway, "geocode_failed")
		return
	}
	if result.Confidence < model.LowConfidence {
		result.Warning = "low_confidence"
	}
	w.Header().Set("Cache-Control", cacheControlDay)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	empty := model.AutocompleteResponse{Suggestions: []model.AutocompleteSuggestion{}}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeJSON(w, http.StatusOK, empty)
		return
	}

	suggestions, err := s.autocompleter.Autocomplete(r.Context(), req.Query)
	if err != nil {
		writeJSON(w, http.StatusOK, empty)
		return
	}
	w.Header().Set("Cache-Control", cacheControlDay)
	writeJSON(w, http.StatusOK, model.AutocompleteResponse{Suggestions: suggestions})
}

func (s *Server) handleLifestyle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AreaIDs    []string `json:"areaIds"`
		Categories []string `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusOK, map[string]*model.LifestyleResult{})
		return
	}

	results := make(map[string]*model.LifestyleResult, len(req.AreaIDs))
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(r.Context())
	for _, id := range req.AreaIDs {
		id := id
		g.Go(func() error {
			area, ok := s.areasByID[id]
			var res *model.LifestyleResult
			if ok {
				var err error
				res, err = s.lifestyle.LifestyleCount(ctx, area.Centroid.Lat, area.Centroid.Lng, req.Categories)
				if err != nil {
					res = nil
				}
			}
			mu.Lock()
			results[id] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	w.Header().Set("Cache-Control", cacheControlDay)
	writeJSON(w, http.StatusOK, results)
}

// handleRentDataset reports where rent figures come from: the loaded dataset
// (by size) or the full mock table.
func (s *Server) handleRentDataset(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", cacheControlDataset)
	if loaded, count := s.rent.Loaded(); loaded {
		writeJSON(w, http.StatusOK, map[string]any{"type": "vic_index", "count": count})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"type": "mock", "map": rent.MockTable()})
}

func (s *Server) handleSafetyDataset(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", cacheControlDataset)
	writeJSON(w, http.StatusOK, safety.Snapshot())
}
