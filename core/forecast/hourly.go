// Package forecast produces heuristic 24-hour traffic predictions from
// historical records. Every forecast returns exactly one prediction per
// hour 0..23, either data-derived or from the typical-pattern tables,
// so callers can always index by hour.
package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Ishaq7892/trafficsense/core/classify"
	"github.com/Ishaq7892/trafficsense/core/history"
	"github.com/Ishaq7892/trafficsense/core/logger"
	"github.com/Ishaq7892/trafficsense/core/model"
)

// DefaultLookbackDays is the historical window behind every forecast.
const DefaultLookbackDays = 30

const maxConfidence = 0.95

// Hourly forecasts area traffic for each hour of a target date.
type Hourly struct {
	store        history.RecordStore
	lookbackDays int
	log          logger.Logger
}

// NewHourly creates a forecaster over the given record store. A
// non-positive lookback falls back to DefaultLookbackDays.
func NewHourly(store history.RecordStore, lookbackDays int, log logger.Logger) *Hourly {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &Hourly{store: store, lookbackDays: lookbackDays, log: log}
}

// Forecast returns 24 hourly predictions for the area on the target
// date, in hour order. The only error source is the record fetch; data
// sparsity is handled by the typical-pattern fallback.
func (f *Hourly) Forecast(ctx context.Context, areaID string, target time.Time) ([]model.HourlyPrediction, error) {
	from := target.AddDate(0, 0, -f.lookbackDays)
	records, err := f.store.TrafficRecords(ctx, areaID, from, target)
	if err != nil {
		return nil, fmt.Errorf("fetch traffic records for area %s: %w", areaID, err)
	}

	buckets := history.GroupByHour(records)
	weekend := classify.IsWeekend(target)

	predictions := make([]model.HourlyPrediction, 0, 24)
	for hour := 0; hour < 24; hour++ {
		b, ok := buckets[hour]
		if !ok || b.Count == 0 {
			predictions = append(predictions, model.HourlyPrediction{
				Hour:       hour,
				Level:      TypicalLevel(hour),
				Density:    TypicalDensity(hour),
				Confidence: fallbackConfidence,
			})
			continue
		}

		density := b.MeanDensity
		if weekend {
			density *= classify.WeekendFactor
		}
		density = model.ClampDensity(density)

		predictions = append(predictions, model.HourlyPrediction{
			Hour:       hour,
			Level:      classify.LevelFromDensity(density),
			Density:    round1(density),
			Confidence: round2(confidence(b.Count, b.DensityVariance, f.lookbackDays)),
		})
	}
	return predictions, nil
}

// confidence blends sample coverage and spread into a [0,0.95] trust
// score. It is a heuristic, not a statistical probability.
func confidence(count int, variance float64, lookbackDays int) float64 {
	coverage := float64(count) / float64(lookbackDays) * 0.7
	spread := (1 - math.Min(variance/100, 1)) * 0.3
	c := coverage + spread
	if c > maxConfidence {
		c = maxConfidence
	}
	if c < 0 {
		c = 0
	}
	return c
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
