// Package classify converts raw density measurements into discrete
// traffic levels. Contextual adjustments come from fixed data tables so
// they stay auditable and testable in isolation.
package classify

import (
	"time"

	"github.com/Ishaq7892/trafficsense/core/model"
)

// Level thresholds on the (adjusted) density score.
const (
	lowThreshold    = 35
	mediumThreshold = 65
)

// WeekendFactor dampens traffic on Saturdays and Sundays.
const WeekendFactor = 0.85

// hourBand maps an hour range [From,To) to a multiplicative factor.
type hourBand struct {
	From, To int
	Factor   float64
}

// timeOfDayBands covers morning rush, evening rush, lunch and late night.
var timeOfDayBands = []hourBand{
	{From: 7, To: 10, Factor: 1.3},
	{From: 17, To: 20, Factor: 1.4},
	{From: 12, To: 14, Factor: 1.15},
	{From: 23, To: 24, Factor: 0.5},
	{From: 0, To: 6, Factor: 0.5},
}

// categoryFactors adjust for the character of an area. Tourist areas
// are handled separately since their factor only applies on weekends.
var categoryFactors = map[model.AreaCategory]float64{
	model.CategoryHighway:     1.1,
	model.CategoryResidential: 0.9,
	model.CategoryCommercial:  1.15,
}

const touristWeekendFactor = 1.2

// TimeOfDayFactor returns the multiplier for the given hour, 1.0 when
// the hour falls outside every band.
func TimeOfDayFactor(hour int) float64 {
	for _, b := range timeOfDayBands {
		if hour >= b.From && hour < b.To {
			return b.Factor
		}
	}
	return 1.0
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Classify converts a raw density score into a traffic level, applying
// time-of-day, weekend and area-category adjustments in that order. A
// zero timestamp skips the time adjustments; an empty category skips
// the category adjustment. This is meant for single raw readings: the
// hourly forecaster classifies averaged means with LevelFromDensity
// instead, since averaged history already reflects the time-of-day mix.
func Classify(density float64, at time.Time, category model.AreaCategory) model.TrafficLevel {
	adjusted := model.ClampDensity(density)

	if !at.IsZero() {
		adjusted *= TimeOfDayFactor(at.Hour())
		if IsWeekend(at) {
			adjusted *= WeekendFactor
		}
	}

	if f, ok := categoryFactors[category]; ok {
		adjusted *= f
	} else if category == model.CategoryTourist && !at.IsZero() && IsWeekend(at) {
		adjusted *= touristWeekendFactor
	}

	if adjusted > 100 {
		adjusted = 100
	}
	return LevelFromDensity(adjusted)
}

// LevelFromDensity applies the bare thresholds with no adjustments.
func LevelFromDensity(density float64) model.TrafficLevel {
	if density < lowThreshold {
		return model.LevelLow
	}
	if density < mediumThreshold {
		return model.LevelMedium
	}
	return model.LevelHigh
}
