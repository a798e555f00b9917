package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/Ishaq7892/trafficsense/core/classify"
	"github.com/Ishaq7892/trafficsense/core/history"
	"github.com/Ishaq7892/trafficsense/core/model"
)

// weeklyLookbackDays covers four full weeks of history.
const weeklyLookbackDays = 28

// defaultPeakHour is assumed when a day has no dominant hour.
const defaultPeakHour = 17

var dayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// WeeklyPatterns summarises the last four weeks of an area's records
// into one pattern per day of the week, Sunday first. Days without
// samples get a default pattern (quiet weekends, moderate weekdays).
func (f *Hourly) WeeklyPatterns(ctx context.Context, areaID string, now time.Time) ([]model.WeeklyPattern, error) {
	from := now.AddDate(0, 0, -weeklyLookbackDays)
	records, err := f.store.TrafficRecords(ctx, areaID, from, now)
	if err != nil {
		return nil, fmt.Errorf("fetch traffic records for area %s: %w", areaID, err)
	}

	buckets := history.GroupByWeekday(records)

	patterns := make([]model.WeeklyPattern, 0, 7)
	for day := 0; day < 7; day++ {
		weekend := day == 0 || day == 6
		b, ok := buckets[time.Weekday(day)]
		if !ok || b.Count == 0 {
			p := model.WeeklyPattern{
				Day:        dayNames[day],
				DayIndex:   day,
				AvgDensity: 55,
				PeakHour:   defaultPeakHour,
				Level:      model.LevelMedium,
			}
			if weekend {
				p.AvgDensity = 35
				p.Level = model.LevelLow
			}
			patterns = append(patterns, p)
			continue
		}

		peakHour := defaultPeakHour
		peakDensity := 0.0
		for hour := 0; hour < 24; hour++ {
			if m, ok := b.HourMeans[hour]; ok && m > peakDensity {
				peakDensity = m
				peakHour = hour
			}
		}

		patterns = append(patterns, model.WeeklyPattern{
			Day:        dayNames[day],
			DayIndex:   day,
			AvgDensity: round1(b.MeanDensity),
			PeakHour:   peakHour,
			Level:      classify.LevelFromDensity(b.MeanDensity),
		})
	}
	return patterns, nil
}
