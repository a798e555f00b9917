package model

import (
	"fmt"
	"time"
)

// TrafficLevel is the discrete congestion classification.
type TrafficLevel string

const (
	LevelLow    TrafficLevel = "low"
	LevelMedium TrafficLevel = "medium"
	LevelHigh   TrafficLevel = "high"
)

// Valid reports whether the level is one of the known values.
func (l TrafficLevel) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// Display returns the user-facing wording for the level.
func (l TrafficLevel) Display() string {
	switch l {
	case LevelLow:
		return "clear"
	case LevelHigh:
		return "heavy"
	default:
		return "moderate"
	}
}

// ClampDensity forces a density score into the valid [0,100] range.
func ClampDensity(d float64) float64 {
	if d < 0 {
		return 0
	}
	if d > 100 {
		return 100
	}
	return d
}

// TrafficRecord is one uploaded density measurement for an area.
// Records are append-only; the engine only ever reads them.
type TrafficRecord struct {
	ID           string
	AreaID       string
	Timestamp    time.Time
	DensityScore float64
	Level        TrafficLevel
}

// Validate checks the record before it is appended to the store.
func (r TrafficRecord) Validate() error {
	if r.AreaID == "" {
		return fmt.Errorf("record must reference an area")
	}
	if r.Timestamp.IsZero() {
		return fmt.Errorf("record timestamp is required")
	}
	if r.DensityScore < 0 || r.DensityScore > 100 {
		return fmt.Errorf("density score %.2f out of range [0,100]", r.DensityScore)
	}
	if !r.Level.Valid() {
		return fmt.Errorf("unknown traffic level %q", r.Level)
	}
	return nil
}

// LaneTrafficRecord is one uploaded measurement for a single lane.
type LaneTrafficRecord struct {
	ID           string
	LaneID       string
	Timestamp    time.Time
	VehicleCount int
	DensityScore float64
	Level        TrafficLevel
	AvgSpeed     float64
}

// Validate checks the record before it is appended to the store.
func (r LaneTrafficRecord) Validate() error {
	if r.LaneID == "" {
		return fmt.Errorf("record must reference a lane")
	}
	if r.Timestamp.IsZero() {
		return fmt.Errorf("record timestamp is required")
	}
	if r.VehicleCount < 0 {
		return fmt.Errorf("vehicle count must not be negative")
	}
	if r.DensityScore < 0 || r.DensityScore > 100 {
		return fmt.Errorf("density score %.2f out of range [0,100]", r.DensityScore)
	}
	if r.AvgSpeed < 0 {
		return fmt.Errorf("average speed must not be negative")
	}
	if !r.Level.Valid() {
		return fmt.Errorf("unknown traffic level %q", r.Level)
	}
	return nil
}
