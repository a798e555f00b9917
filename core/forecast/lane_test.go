package forecast

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ishaq7892/trafficsense/core/model"
)

func laneRec(day, hour int, density float64, count int) model.LaneTrafficRecord {
	return model.LaneTrafficRecord{
		LaneID:       "l1",
		Timestamp:    time.Date(2025, 3, day, hour, 15, 0, 0, time.UTC),
		DensityScore: density,
		VehicleCount: count,
	}
}

func TestLaneForecastAppliesTimeOfDay(t *testing.T) {
	store := &fakeStore{laneRecords: map[string][]model.LaneTrafficRecord{
		"l1": {laneRec(3, 8, 50, 40), laneRec(4, 8, 50, 40)},
	}}
	f := NewLane(store, 30, nopLogger{})

	target := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	predictions, err := f.Forecast(context.Background(), "l1", target)
	require.NoError(t, err)
	require.Len(t, predictions, 24)

	// Morning rush: density 50*1.3=65, count 40*1.3=52.
	p := predictions[8]
	assert.Equal(t, model.LevelHigh, p.Level)
	assert.InDelta(t, 65.0, p.Density, 1e-9)
	assert.Equal(t, 52, p.VehicleCount)
}

func TestLaneForecastTypicalFallback(t *testing.T) {
	f := NewLane(&fakeStore{}, 30, nopLogger{})
	predictions, err := f.Forecast(context.Background(), "l1", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, predictions, 24)

	assert.Equal(t, 80, predictions[8].VehicleCount)
	assert.Equal(t, 15, predictions[2].VehicleCount)
	assert.Equal(t, 50, predictions[14].VehicleCount)
	for _, p := range predictions {
		assert.InDelta(t, 0.3, p.Confidence, 1e-9)
	}
}

func TestForecastManyIsolatesFailures(t *testing.T) {
	store := &fakeStore{
		laneRecords: map[string][]model.LaneTrafficRecord{
			"good": {laneRec(3, 8, 50, 40)},
		},
		laneErr: map[string]error{"bad": errors.New("boom")},
	}
	f := NewLane(store, 30, nopLogger{})

	results := f.ForecastMany(context.Background(), []string{"good", "bad"}, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	require.Len(t, results, 2)
	assert.Len(t, results["good"], 24)
	assert.Empty(t, results["bad"])
}

func TestTrendIncreasing(t *testing.T) {
	// Forecast densities at 10:00/11:00 around 30, 12:00 around 69.
	store := &fakeStore{laneRecords: map[string][]model.LaneTrafficRecord{
		"l1": {
			laneRec(3, 10, 30, 20),
			laneRec(3, 11, 30, 20),
			laneRec(3, 12, 60, 50),
		},
	}}
	f := NewLane(store, 30, nopLogger{})
	f.now = func() time.Time { return time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC) }

	trend, future, err := f.Trend(context.Background(), "l1", 3)
	require.NoError(t, err)
	assert.Equal(t, model.TrendIncreasing, trend)
	require.Len(t, future, 3)
	assert.Equal(t, 10, future[0].Hour)
}

func TestTrendDecreasing(t *testing.T) {
	store := &fakeStore{laneRecords: map[string][]model.LaneTrafficRecord{
		"l1": {
			laneRec(3, 10, 80, 70),
			laneRec(3, 11, 80, 70),
			laneRec(3, 12, 20, 10),
		},
	}}
	f := NewLane(store, 30, nopLogger{})
	f.now = func() time.Time { return time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC) }

	trend, _, err := f.Trend(context.Background(), "l1", 3)
	require.NoError(t, err)
	assert.Equal(t, model.TrendDecreasing, trend)
}

func TestTrendStableNearMidnight(t *testing.T) {
	// Only hour 23 is inside the window; fewer than two slots is stable.
	f := NewLane(&fakeStore{}, 30, nopLogger{})
	f.now = func() time.Time { return time.Date(2025, 3, 12, 23, 10, 0, 0, time.UTC) }

	trend, future, err := f.Trend(context.Background(), "l1", 3)
	require.NoError(t, err)
	assert.Equal(t, model.TrendStable, trend)
	assert.Len(t, future, 1)
}

func TestTrendStableWithinThreshold(t *testing.T) {
	store := &fakeStore{laneRecords: map[string][]model.LaneTrafficRecord{
		"l1": {
			laneRec(3, 10, 50, 40),
			laneRec(3, 11, 50, 40),
			laneRec(3, 12, 48, 40),
		},
	}}
	f := NewLane(store, 30, nopLogger{})
	f.now = func() time.Time { return time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC) }

	trend, _, err := f.Trend(context.Background(), "l1", 3)
	require.NoError(t, err)
	assert.Equal(t, model.TrendStable, trend)
}
