package config

import "fmt"

// defaultTargetLocations are the circles scored by the recommender
// when the configuration does not name its own.
var defaultTargetLocations = []string{
	"Devegowda Circle",
	"Metagalli Signal Junction",
	"LIC Circle",
	"Krishnarajendra Circle Post Office",
	"Basavanahalli Junction",
}

// ForecastConfig tunes the forecasting engine.
type ForecastConfig struct {
	// LookbackDays is the historical window behind each forecast.
	LookbackDays int `json:"lookback_days"`
	// TrendHours is the horizon of the lane congestion-trend check.
	TrendHours int `json:"trend_hours"`
	// TargetLocations are the named places the recommender scores.
	TargetLocations []string `json:"target_locations"`
}

// SetDefaults applies sane defaults.
func (c *ForecastConfig) SetDefaults() {
	if c.LookbackDays <= 0 {
		c.LookbackDays = 30
	}
	if c.TrendHours <= 0 {
		c.TrendHours = 3
	}
	if len(c.TargetLocations) == 0 {
		c.TargetLocations = defaultTargetLocations
	}
}

// Validate checks field ranges.
func (c ForecastConfig) Validate() error {
	if c.LookbackDays > 365 {
		return fmt.Errorf("lookback_days must not exceed 365")
	}
	if c.TrendHours > 24 {
		return fmt.Errorf("trend_hours must not exceed 24")
	}
	return nil
}
