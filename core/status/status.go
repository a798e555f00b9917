// Package status resolves the traffic situation "right now". It is the
// single source of truth for current traffic: every surface displaying
// a current level must go through this resolver rather than reading raw
// records, so displayed values are always prediction-derived and
// consistent across pages.
package status

import (
	"context"
	"time"

	"github.com/Ishaq7892/trafficsense/core/logger"
	"github.com/Ishaq7892/trafficsense/core/model"
)

// AreaForecaster produces the 24-hour area forecast the resolver picks
// its current slot from.
type AreaForecaster interface {
	Forecast(ctx context.Context, areaID string, target time.Time) ([]model.HourlyPrediction, error)
}

// LaneForecaster produces per-lane forecasts with isolated failures.
type LaneForecaster interface {
	ForecastMany(ctx context.Context, laneIDs []string, target time.Time) map[string][]model.LaneHourlyPrediction
}

// Current is the resolved present-moment traffic status of an area.
type Current struct {
	Level        model.TrafficLevel `json:"traffic_level"`
	DisplayLevel string             `json:"display_level"`
	DensityScore float64            `json:"density_score"`
	Confidence   float64            `json:"confidence"`
}

// Resolver picks the forecast slot matching the current local hour.
type Resolver struct {
	areas AreaForecaster
	lanes LaneForecaster
	log   logger.Logger
	now   func() time.Time
}

// NewResolver creates a status resolver over the two forecasters.
func NewResolver(areas AreaForecaster, lanes LaneForecaster, log logger.Logger) *Resolver {
	return &Resolver{areas: areas, lanes: lanes, log: log, now: time.Now}
}

// Current returns the area's traffic status for the present hour. The
// forecast always yields a slot per hour, but a missing slot is still
// handled defensively with a fixed moderate default.
func (r *Resolver) Current(ctx context.Context, areaID string) (Current, error) {
	now := r.now()
	predictions, err := r.areas.Forecast(ctx, areaID, now)
	if err != nil {
		return Current{}, err
	}

	hour := now.Hour()
	for _, p := range predictions {
		if p.Hour == hour {
			return Current{
				Level:        p.Level,
				DisplayLevel: p.Level.Display(),
				DensityScore: p.Density,
				Confidence:   p.Confidence,
			}, nil
		}
	}

	r.log.Warnf("no forecast slot for hour %d in area %s, using default", hour, areaID)
	return Current{
		Level:        model.LevelMedium,
		DisplayLevel: model.LevelMedium.Display(),
		DensityScore: 50,
		Confidence:   0.3,
	}, nil
}

// CurrentLanes returns the present-hour prediction per lane. Lanes
// whose forecast failed or lacks the current slot are simply absent.
func (r *Resolver) CurrentLanes(ctx context.Context, laneIDs []string) map[string]model.LaneHourlyPrediction {
	now := r.now()
	forecasts := r.lanes.ForecastMany(ctx, laneIDs, now)
	hour := now.Hour()

	current := make(map[string]model.LaneHourlyPrediction, len(laneIDs))
	for _, id := range laneIDs {
		for _, p := range forecasts[id] {
			if p.Hour == hour {
				current[id] = p
				break
			}
		}
	}
	return current
}
