// Package api exposes the forecasting engine over a thin JSON HTTP
// surface. Handlers never compute traffic values themselves: current
// status always comes from the status resolver, forecasts from the
// forecasters.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Ishaq7892/trafficsense/core/history"
	"github.com/Ishaq7892/trafficsense/core/logger"
	"github.com/Ishaq7892/trafficsense/core/model"
	"github.com/Ishaq7892/trafficsense/core/route"
	"github.com/Ishaq7892/trafficsense/core/status"
)

// AreaForecaster produces 24-hour area forecasts.
type AreaForecaster interface {
	Forecast(ctx context.Context, areaID string, target time.Time) ([]model.HourlyPrediction, error)
}

// WeeklyAnalyzer produces day-of-week traffic patterns.
type WeeklyAnalyzer interface {
	WeeklyPatterns(ctx context.Context, areaID string, now time.Time) ([]model.WeeklyPattern, error)
}

// LaneForecaster produces per-lane forecasts and congestion trends.
type LaneForecaster interface {
	Forecast(ctx context.Context, laneID string, target time.Time) ([]model.LaneHourlyPrediction, error)
	Trend(ctx context.Context, laneID string, hoursAhead int) (model.Trend, []model.LaneHourlyPrediction, error)
}

// StatusResolver is the single source of truth for current traffic.
type StatusResolver interface {
	Current(ctx context.Context, areaID string) (status.Current, error)
	CurrentLanes(ctx context.Context, laneIDs []string) map[string]model.LaneHourlyPrediction
}

// Recommender scores the configured target locations.
type Recommender interface {
	Recommend(ctx context.Context, target time.Time) ([]route.Recommendation, error)
}

// Handlers bundles the engine surfaces behind the HTTP API.
type Handlers struct {
	Catalog     history.Catalog
	Areas       AreaForecaster
	Weekly      WeeklyAnalyzer
	Lanes       LaneForecaster
	Status      StatusResolver
	Recommender Recommender
	TrendHours  int
	Log         logger.Logger
}

// NewMux builds the route table.
func (h *Handlers) NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/areas", h.listAreas)
	mux.HandleFunc("GET /api/areas/{id}", h.getArea)
	mux.HandleFunc("GET /api/areas/{id}/lanes", h.listLanes)
	mux.HandleFunc("GET /api/areas/{id}/forecast", h.areaForecast)
	mux.HandleFunc("GET /api/areas/{id}/weekly", h.areaWeekly)
	mux.HandleFunc("GET /api/areas/{id}/status", h.areaStatus)
	mux.HandleFunc("GET /api/areas/{id}/lanes/status", h.laneStatuses)
	mux.HandleFunc("GET /api/lanes/{id}/forecast", h.laneForecast)
	mux.HandleFunc("GET /api/lanes/{id}/trend", h.laneTrend)
	mux.HandleFunc("GET /api/recommendations", h.recommendations)
	return mux
}

func (h *Handlers) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Errorf("encode response: %v", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, history.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	h.Log.Errorf("request failed: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// lookupArea resolves the id path segment, writing 404 on a miss.
func (h *Handlers) lookupArea(w http.ResponseWriter, r *http.Request) (model.Area, bool) {
	area, err := h.Catalog.Area(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return model.Area{}, false
	}
	return area, true
}

func (h *Handlers) lookupLane(w http.ResponseWriter, r *http.Request) (model.Lane, bool) {
	lane, err := h.Catalog.Lane(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return model.Lane{}, false
	}
	return lane, true
}
