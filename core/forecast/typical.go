package forecast

import "github.com/Ishaq7892/trafficsense/core/model"

// Typical-pattern fallbacks for hours with no historical samples.
// Predictions built from these carry a fixed, depressed confidence.
const fallbackConfidence = 0.3

func isPeakHour(hour int) bool {
	return (hour >= 7 && hour < 10) || (hour >= 17 && hour < 20)
}

func isLateNight(hour int) bool {
	return hour >= 22 || hour < 6
}

// TypicalLevel returns the expected traffic level for an hour of day.
func TypicalLevel(hour int) model.TrafficLevel {
	switch {
	case isPeakHour(hour):
		return model.LevelHigh
	case isLateNight(hour):
		return model.LevelLow
	default:
		return model.LevelMedium
	}
}

// TypicalDensity returns the expected density score for an hour of day.
func TypicalDensity(hour int) float64 {
	switch {
	case isPeakHour(hour):
		return 75
	case isLateNight(hour):
		return 15
	default:
		return 45
	}
}

// TypicalVehicleCount returns the expected per-lane vehicle count for
// an hour of day.
func TypicalVehicleCount(hour int) int {
	switch {
	case isPeakHour(hour):
		return 80
	case isLateNight(hour):
		return 15
	default:
		return 50
	}
}
