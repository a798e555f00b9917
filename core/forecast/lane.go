package forecast

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Ishaq7892/trafficsense/core/classify"
	"github.com/Ishaq7892/trafficsense/core/history"
	"github.com/Ishaq7892/trafficsense/core/logger"
	"github.com/Ishaq7892/trafficsense/core/model"
)

// Trend classification threshold on the density delta between the two
// halves of the forecast window.
const trendThreshold = 10

// DefaultTrendHours is the horizon of the congestion-trend check.
const DefaultTrendHours = 3

// Lane forecasts traffic for individual lanes, adding a vehicle-count
// prediction and a short-horizon congestion trend on top of the hourly
// density forecast.
type Lane struct {
	store        history.RecordStore
	lookbackDays int
	log          logger.Logger
	now          func() time.Time
}

// NewLane creates a lane forecaster over the given record store.
func NewLane(store history.RecordStore, lookbackDays int, log logger.Logger) *Lane {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &Lane{store: store, lookbackDays: lookbackDays, log: log, now: time.Now}
}

// Forecast returns 24 hourly predictions for the lane on the target
// date, in hour order. Unlike the area forecast, the time-of-day factor
// table is applied to both the density and the vehicle count, since
// lane readings are raw per-hour measurements rather than a day mix.
func (f *Lane) Forecast(ctx context.Context, laneID string, target time.Time) ([]model.LaneHourlyPrediction, error) {
	from := target.AddDate(0, 0, -f.lookbackDays)
	records, err := f.store.LaneTrafficRecords(ctx, laneID, from, target)
	if err != nil {
		return nil, fmt.Errorf("fetch lane records for lane %s: %w", laneID, err)
	}

	buckets := history.GroupLaneByHour(records)
	weekend := classify.IsWeekend(target)

	predictions := make([]model.LaneHourlyPrediction, 0, 24)
	for hour := 0; hour < 24; hour++ {
		b, ok := buckets[hour]
		if !ok || b.Count == 0 {
			predictions = append(predictions, model.LaneHourlyPrediction{
				Hour:         hour,
				VehicleCount: TypicalVehicleCount(hour),
				Level:        TypicalLevel(hour),
				Density:      TypicalDensity(hour),
				Confidence:   fallbackConfidence,
			})
			continue
		}

		count := b.MeanVehicleCount
		density := b.MeanDensity
		if weekend {
			count *= classify.WeekendFactor
			density *= classify.WeekendFactor
		}
		factor := classify.TimeOfDayFactor(hour)
		count *= factor
		density = model.ClampDensity(density * factor)

		predictions = append(predictions, model.LaneHourlyPrediction{
			Hour:         hour,
			VehicleCount: int(math.Round(count)),
			Level:        classify.LevelFromDensity(density),
			Density:      round1(density),
			Confidence:   round2(confidence(b.Count, b.DensityVariance, f.lookbackDays)),
		})
	}
	return predictions, nil
}

// ForecastMany forecasts a set of lanes concurrently. A failed fetch
// for one lane yields an empty slice for that lane only and never
// aborts the others.
func (f *Lane) ForecastMany(ctx context.Context, laneIDs []string, target time.Time) map[string][]model.LaneHourlyPrediction {
	results := make(map[string][]model.LaneHourlyPrediction, len(laneIDs))
	var mu sync.Mutex
	var g errgroup.Group

	for _, id := range laneIDs {
		g.Go(func() error {
			predictions, err := f.Forecast(ctx, id, target)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				f.log.Errorf("lane %s forecast failed: %v", id, err)
				results[id] = []model.LaneHourlyPrediction{}
				return nil
			}
			results[id] = predictions
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Trend classifies the congestion direction over the next hoursAhead
// hours by comparing the first and second half of the forecast window.
// Fewer than two future slots always classify as stable.
func (f *Lane) Trend(ctx context.Context, laneID string, hoursAhead int) (model.Trend, []model.LaneHourlyPrediction, error) {
	if hoursAhead <= 0 {
		hoursAhead = DefaultTrendHours
	}
	now := f.now()
	predictions, err := f.Forecast(ctx, laneID, now)
	if err != nil {
		return "", nil, err
	}

	currentHour := now.Hour()
	var future []model.LaneHourlyPrediction
	for _, p := range predictions {
		if p.Hour >= currentHour && p.Hour < currentHour+hoursAhead {
			future = append(future, p)
		}
	}
	if len(future) > hoursAhead {
		future = future[:hoursAhead]
	}
	if len(future) < 2 {
		return model.TrendStable, future, nil
	}

	half := (len(future) + 1) / 2
	first := meanDensity(future[:half])
	second := meanDensity(future[half:])
	diff := second - first

	switch {
	case diff > trendThreshold:
		return model.TrendIncreasing, future, nil
	case diff < -trendThreshold:
		return model.TrendDecreasing, future, nil
	default:
		return model.TrendStable, future, nil
	}
}

func meanDensity(predictions []model.LaneHourlyPrediction) float64 {
	if len(predictions) == 0 {
		return 0
	}
	var sum float64
	for _, p := range predictions {
		sum += p.Density
	}
	return sum / float64(len(predictions))
}
