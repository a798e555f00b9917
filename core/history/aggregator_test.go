package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ishaq7892/trafficsense/core/model"
)

func rec(day, hour int, density float64) model.TrafficRecord {
	return model.TrafficRecord{
		AreaID:       "a1",
		Timestamp:    time.Date(2025, 3, day, hour, 15, 0, 0, time.UTC),
		DensityScore: density,
	}
}

func TestGroupByHour(t *testing.T) {
	records := []model.TrafficRecord{
		rec(1, 8, 60),
		rec(2, 8, 70),
		rec(3, 8, 65),
		rec(1, 9, 40),
	}
	buckets := GroupByHour(records)

	b, ok := buckets[8]
	if !ok {
		t.Fatal("missing bucket for hour 8")
	}
	assert.Equal(t, 3, b.Count)
	assert.InDelta(t, 65, b.MeanDensity, 1e-9)
	// population variance: ((-5)^2 + 5^2 + 0) / 3
	assert.InDelta(t, 50.0/3.0, b.DensityVariance, 1e-9)

	assert.Equal(t, 1, buckets[9].Count)
	assert.InDelta(t, 0, buckets[9].DensityVariance, 1e-9)

	if _, ok := buckets[10]; ok {
		t.Error("hour without samples must be absent")
	}
}

func TestGroupLaneByHour(t *testing.T) {
	records := []model.LaneTrafficRecord{
		{LaneID: "l1", Timestamp: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), DensityScore: 50, VehicleCount: 40},
		{LaneID: "l1", Timestamp: time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC), DensityScore: 70, VehicleCount: 60},
	}
	buckets := GroupLaneByHour(records)
	b := buckets[8]
	assert.Equal(t, 2, b.Count)
	assert.InDelta(t, 60, b.MeanDensity, 1e-9)
	assert.InDelta(t, 50, b.MeanVehicleCount, 1e-9)
	assert.InDelta(t, 100, b.DensityVariance, 1e-9)
}

func TestGroupByWeekday(t *testing.T) {
	// 2025-03-03 is a Monday, 2025-03-08 a Saturday.
	records := []model.TrafficRecord{
		rec(3, 8, 60),
		rec(3, 17, 80),
		rec(10, 8, 70),
		rec(8, 12, 30),
	}
	buckets := GroupByWeekday(records)

	mon := buckets[time.Monday]
	assert.Equal(t, 3, mon.Count)
	assert.InDelta(t, 70, mon.MeanDensity, 1e-9)
	assert.InDelta(t, 65, mon.HourMeans[8], 1e-9)
	assert.InDelta(t, 80, mon.HourMeans[17], 1e-9)

	sat := buckets[time.Saturday]
	assert.Equal(t, 1, sat.Count)
	if _, ok := buckets[time.Tuesday]; ok {
		t.Error("weekday without samples must be absent")
	}
}

func TestSummarize(t *testing.T) {
	records := []model.TrafficRecord{
		rec(1, 8, 60),
		rec(1, 8, 70),
		rec(1, 12, 30),
		rec(1, 17, 90),
	}
	s := Summarize(records)
	assert.Equal(t, 4, s.TotalRecords)
	assert.Equal(t, 17, s.BusiestHour)
	assert.Equal(t, 12, s.QuietestHour)
	assert.InDelta(t, 62.5, s.AvgDensity, 1e-9)
	assert.InDelta(t, 65, s.HourlyAvg[8], 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalRecords)
	assert.Empty(t, s.HourlyAvg)
}
