package model

import "fmt"

// AreaCategory describes the dominant character of an area. It drives
// contextual traffic adjustments and route alternatives.
type AreaCategory string

const (
	CategoryCentral     AreaCategory = "central"
	CategoryResidential AreaCategory = "residential"
	CategoryCommercial  AreaCategory = "commercial"
	CategoryHighway     AreaCategory = "highway"
	CategoryTourist     AreaCategory = "tourist"
	CategoryIndustrial  AreaCategory = "industrial"
	CategoryMixed       AreaCategory = "mixed"
)

// Valid reports whether the category is one of the known values.
func (c AreaCategory) Valid() bool {
	switch c {
	case CategoryCentral, CategoryResidential, CategoryCommercial,
		CategoryHighway, CategoryTourist, CategoryIndustrial, CategoryMixed:
		return true
	}
	return false
}

// LanePosition identifies one of the four fixed entry slots of a circle.
type LanePosition string

const (
	Lane1 LanePosition = "lane_1"
	Lane2 LanePosition = "lane_2"
	Lane3 LanePosition = "lane_3"
	Lane4 LanePosition = "lane_4"
)

// Valid reports whether the position is one of the four fixed slots.
func (p LanePosition) Valid() bool {
	switch p {
	case Lane1, Lane2, Lane3, Lane4:
		return true
	}
	return false
}

// Area is a monitored geographic zone, typically a multi-lane circle.
// Areas are seeded administratively and treated as read-only by the
// forecasting engine.
type Area struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Category  AreaCategory `json:"category"`
	Region    string       `json:"region"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	IsCircle  bool         `json:"is_circle"`
	LaneCount int          `json:"lane_count"`
}

// Validate checks that the area can be stored in the catalog.
func (a Area) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("area name is required")
	}
	if a.Category != "" && !a.Category.Valid() {
		return fmt.Errorf("unknown area category %q", a.Category)
	}
	if a.LaneCount < 0 {
		return fmt.Errorf("lane count must not be negative")
	}
	return nil
}

// Lane is a single monitored entry lane of a circle area.
type Lane struct {
	ID        string       `json:"id"`
	AreaID    string       `json:"area_id"`
	Position  LanePosition `json:"position"`
	Name      string       `json:"name"`
	Direction string       `json:"direction"`
}

// Validate checks that the lane can be stored in the catalog.
func (l Lane) Validate() error {
	if l.AreaID == "" {
		return fmt.Errorf("lane must belong to an area")
	}
	if !l.Position.Valid() {
		return fmt.Errorf("unknown lane position %q", l.Position)
	}
	return nil
}
