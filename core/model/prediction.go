package model

// HourlyPrediction is one slot of a 24-hour area forecast. Predictions
// are recomputed on every request and never persisted by the engine.
type HourlyPrediction struct {
	Hour       int          `json:"hour"`
	Level      TrafficLevel `json:"predicted_level"`
	Density    float64      `json:"predicted_density"`
	Confidence float64      `json:"confidence"`
}

// LaneHourlyPrediction is one slot of a 24-hour lane forecast.
type LaneHourlyPrediction struct {
	Hour         int          `json:"hour"`
	VehicleCount int          `json:"predicted_vehicle_count"`
	Level        TrafficLevel `json:"predicted_level"`
	Density      float64      `json:"predicted_density"`
	Confidence   float64      `json:"confidence"`
}

// AreaMapping is the result of resolving a free-text location name to a
// known area. Confidence stays below 0.95 to reflect the heuristic
// nature of the match.
type AreaMapping struct {
	Input      string  `json:"input"`
	Area       string  `json:"area"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// Trend classifies the short-horizon congestion direction of a lane.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// WeeklyPattern summarises traffic behaviour for one day of the week.
type WeeklyPattern struct {
	Day        string       `json:"day"`
	DayIndex   int          `json:"day_index"`
	AvgDensity float64      `json:"avg_density"`
	PeakHour   int          `json:"peak_hour"`
	Level      TrafficLevel `json:"traffic_level"`
}
