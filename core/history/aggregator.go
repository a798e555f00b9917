package history

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/Ishaq7892/trafficsense/core/model"
)

// HourBucket holds the per-hour statistics of a set of records.
type HourBucket struct {
	Count            int
	MeanDensity      float64
	DensityVariance  float64
	MeanVehicleCount float64
}

// DayBucket holds per-weekday statistics, including hourly means used
// to locate the peak hour of that day.
type DayBucket struct {
	Count       int
	MeanDensity float64
	HourMeans   map[int]float64
}

// DailySummary condenses one day of records for an area.
type DailySummary struct {
	HourlyAvg    map[int]float64
	BusiestHour  int
	QuietestHour int
	AvgDensity   float64
	TotalRecords int
}

// GroupByHour buckets area records by hour-of-day and computes mean and
// population variance per bucket. Hours without samples are absent.
func GroupByHour(records []model.TrafficRecord) map[int]HourBucket {
	densities := make(map[int][]float64)
	for _, r := range records {
		h := r.Timestamp.Hour()
		densities[h] = append(densities[h], r.DensityScore)
	}

	buckets := make(map[int]HourBucket, len(densities))
	for h, xs := range densities {
		mean := stat.Mean(xs, nil)
		buckets[h] = HourBucket{
			Count:           len(xs),
			MeanDensity:     mean,
			DensityVariance: popVariance(xs, mean),
		}
	}
	return buckets
}

// GroupLaneByHour buckets lane records by hour-of-day, carrying the
// vehicle-count mean alongside the density statistics.
func GroupLaneByHour(records []model.LaneTrafficRecord) map[int]HourBucket {
	densities := make(map[int][]float64)
	counts := make(map[int][]float64)
	for _, r := range records {
		h := r.Timestamp.Hour()
		densities[h] = append(densities[h], r.DensityScore)
		counts[h] = append(counts[h], float64(r.VehicleCount))
	}

	buckets := make(map[int]HourBucket, len(densities))
	for h, xs := range densities {
		mean := stat.Mean(xs, nil)
		buckets[h] = HourBucket{
			Count:            len(xs),
			MeanDensity:      mean,
			DensityVariance:  popVariance(xs, mean),
			MeanVehicleCount: stat.Mean(counts[h], nil),
		}
	}
	return buckets
}

// GroupByWeekday buckets area records by day-of-week.
func GroupByWeekday(records []model.TrafficRecord) map[time.Weekday]DayBucket {
	densities := make(map[time.Weekday][]float64)
	hourly := make(map[time.Weekday]map[int][]float64)
	for _, r := range records {
		wd := r.Timestamp.Weekday()
		h := r.Timestamp.Hour()
		densities[wd] = append(densities[wd], r.DensityScore)
		if hourly[wd] == nil {
			hourly[wd] = make(map[int][]float64)
		}
		hourly[wd][h] = append(hourly[wd][h], r.DensityScore)
	}

	buckets := make(map[time.Weekday]DayBucket, len(densities))
	for wd, xs := range densities {
		means := make(map[int]float64, len(hourly[wd]))
		for h, hs := range hourly[wd] {
			means[h] = stat.Mean(hs, nil)
		}
		buckets[wd] = DayBucket{
			Count:       len(xs),
			MeanDensity: stat.Mean(xs, nil),
			HourMeans:   means,
		}
	}
	return buckets
}

// Summarize condenses the records of a single day. It returns a zero
// summary when the slice is empty.
func Summarize(records []model.TrafficRecord) DailySummary {
	if len(records) == 0 {
		return DailySummary{HourlyAvg: map[int]float64{}}
	}

	hourly := make(map[int][]float64)
	total := 0.0
	for _, r := range records {
		h := r.Timestamp.Hour()
		hourly[h] = append(hourly[h], r.DensityScore)
		total += r.DensityScore
	}

	avg := make(map[int]float64, len(hourly))
	busiest, quietest := -1, -1
	for h, xs := range hourly {
		m := stat.Mean(xs, nil)
		avg[h] = m
		if busiest == -1 || m > avg[busiest] || (m == avg[busiest] && h < busiest) {
			busiest = h
		}
		if quietest == -1 || m < avg[quietest] || (m == avg[quietest] && h < quietest) {
			quietest = h
		}
	}

	return DailySummary{
		HourlyAvg:    avg,
		BusiestHour:  busiest,
		QuietestHour: quietest,
		AvgDensity:   total / float64(len(records)),
		TotalRecords: len(records),
	}
}

// popVariance is the population variance around the given mean. The
// confidence heuristic divides sample spread by a fixed scale, so the
// biased estimator matches the documented formula exactly.
func popVariance(xs []float64, mean float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return sum / float64(len(xs))
}
