package classify

import (
	"testing"
	"time"

	"github.com/Ishaq7892/trafficsense/core/model"
)

func TestLevelFromDensity(t *testing.T) {
	cases := []struct {
		density float64
		want    model.TrafficLevel
	}{
		{0, model.LevelLow},
		{34.9, model.LevelLow},
		{35, model.LevelMedium},
		{64.9, model.LevelMedium},
		{65, model.LevelHigh},
		{100, model.LevelHigh},
	}
	for _, c := range cases {
		if got := LevelFromDensity(c.density); got != c.want {
			t.Errorf("LevelFromDensity(%v) = %s, want %s", c.density, got, c.want)
		}
	}
}

func TestTimeOfDayFactor(t *testing.T) {
	cases := []struct {
		hour int
		want float64
	}{
		{7, 1.3},
		{9, 1.3},
		{10, 1.0},
		{12, 1.15},
		{14, 1.0},
		{17, 1.4},
		{19, 1.4},
		{20, 1.0},
		{23, 0.5},
		{0, 0.5},
		{5, 0.5},
		{6, 1.0},
		{11, 1.0},
	}
	for _, c := range cases {
		if got := TimeOfDayFactor(c.hour); got != c.want {
			t.Errorf("TimeOfDayFactor(%d) = %v, want %v", c.hour, got, c.want)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	sat := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)
	sun := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	mon := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	if !IsWeekend(sat) || !IsWeekend(sun) {
		t.Error("saturday and sunday must be weekend")
	}
	if IsWeekend(mon) {
		t.Error("monday must not be weekend")
	}
}

func TestClassifyAdjustments(t *testing.T) {
	weekdayMorning := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	weekendMorning := time.Date(2025, 3, 8, 8, 0, 0, 0, time.UTC)

	// 50 * 1.3 = 65 crosses into high on a weekday rush hour.
	if got := Classify(50, weekdayMorning, ""); got != model.LevelHigh {
		t.Errorf("weekday rush = %s, want high", got)
	}
	// 50 * 1.3 * 0.85 = 55.25 stays medium on the weekend.
	if got := Classify(50, weekendMorning, ""); got != model.LevelMedium {
		t.Errorf("weekend rush = %s, want medium", got)
	}
	// Residential dampening: 50 * 0.9 = 45.
	if got := Classify(50, time.Time{}, model.CategoryResidential); got != model.LevelMedium {
		t.Errorf("residential = %s, want medium", got)
	}
	// Commercial boost crosses the high threshold: 60 * 1.15 = 69.
	if got := Classify(60, time.Time{}, model.CategoryCommercial); got != model.LevelHigh {
		t.Errorf("commercial = %s, want high", got)
	}
	// Tourist factor applies only on weekends.
	weekendNoon := time.Date(2025, 3, 8, 11, 0, 0, 0, time.UTC)
	weekdayNoon := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	// 60 * 0.85 * 1.2 = 61.2 medium; weekday 60 unadjusted medium.
	if got := Classify(60, weekendNoon, model.CategoryTourist); got != model.LevelMedium {
		t.Errorf("tourist weekend = %s, want medium", got)
	}
	// 64 * 0.85 * 1.2 = 65.28 high on weekend, medium on weekday.
	if got := Classify(64, weekendNoon, model.CategoryTourist); got != model.LevelHigh {
		t.Errorf("tourist weekend boost = %s, want high", got)
	}
	if got := Classify(64, weekdayNoon, model.CategoryTourist); got != model.LevelMedium {
		t.Errorf("tourist weekday = %s, want medium", got)
	}
}

func TestClassifyClampsInput(t *testing.T) {
	if got := Classify(150, time.Time{}, ""); got != model.LevelHigh {
		t.Errorf("out-of-range density = %s, want high", got)
	}
	if got := Classify(-5, time.Time{}, ""); got != model.LevelLow {
		t.Errorf("negative density = %s, want low", got)
	}
}
