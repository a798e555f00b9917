// Package route ranks a configured set of locations by forecast
// severity and turns them into avoid/proceed/ideal travel advice.
package route

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Ishaq7892/trafficsense/core/history"
	"github.com/Ishaq7892/trafficsense/core/logger"
	"github.com/Ishaq7892/trafficsense/core/model"
	"github.com/Ishaq7892/trafficsense/core/resolve"
)

// Verdict is the travel advice for one location.
type Verdict string

const (
	VerdictAvoid   Verdict = "avoid"
	VerdictProceed Verdict = "proceed"
	VerdictIdeal   Verdict = "ideal"
)

// maxAlternatives caps the alternative suggestions per avoided area.
const maxAlternatives = 2

// AreaForecaster produces the hourly forecasts recommendations rest on.
type AreaForecaster interface {
	Forecast(ctx context.Context, areaID string, target time.Time) ([]model.HourlyPrediction, error)
}

// Recommendation is the advice for a single target location.
type Recommendation struct {
	Area           string             `json:"area"`
	AreaID         string             `json:"area_id"`
	CurrentLevel   model.TrafficLevel `json:"current_level"`
	PredictedLevel model.TrafficLevel `json:"predicted_level"`
	Verdict        Verdict            `json:"recommendation"`
	Reason         string             `json:"reason"`
	Alternatives   []string           `json:"alternative_routes,omitempty"`
}

// Recommender resolves target location names against the catalog and
// scores them with current and next-hour forecasts.
type Recommender struct {
	catalog    history.Catalog
	forecaster AreaForecaster
	resolver   *resolve.Resolver
	targets    []string
	log        logger.Logger
	now        func() time.Time
}

// New creates a recommender over the configured target locations.
func New(catalog history.Catalog, forecaster AreaForecaster, resolver *resolve.Resolver, targets []string, log logger.Logger) *Recommender {
	return &Recommender{
		catalog:    catalog,
		forecaster: forecaster,
		resolver:   resolver,
		targets:    targets,
		log:        log,
		now:        time.Now,
	}
}

type resolvedPair struct {
	area    model.Area
	display string
}

// Recommend returns one recommendation per resolvable target location
// at the given time (zero means now). Locations whose forecast fails or
// lacks a current-hour slot are skipped silently.
func (r *Recommender) Recommend(ctx context.Context, target time.Time) ([]Recommendation, error) {
	if target.IsZero() {
		target = r.now()
	}

	pairs, err := r.resolveTargets(ctx)
	if err != nil {
		return nil, err
	}

	// Forecasts are independent per area; fetch them concurrently and
	// keep failures isolated to their own slot.
	forecasts := make([][]model.HourlyPrediction, len(pairs))
	var mu sync.Mutex
	var g errgroup.Group
	for i := range pairs {
		g.Go(func() error {
			predictions, err := r.forecaster.Forecast(ctx, pairs[i].area.ID, target)
			if err != nil {
				r.log.Errorf("recommendation forecast for %s failed: %v", pairs[i].area.Name, err)
				return nil
			}
			mu.Lock()
			forecasts[i] = predictions
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	hour := target.Hour()
	recommendations := make([]Recommendation, 0, len(pairs))
	for i, pair := range pairs {
		current := findHour(forecasts[i], hour)
		if current == nil {
			continue
		}
		next := findHour(forecasts[i], (hour+1)%24)
		recommendations = append(recommendations, r.build(pair, pairs, *current, next))
	}
	return recommendations, nil
}

// resolveTargets maps the configured names onto catalog areas, deduped
// by area id. When nothing resolves it falls back to all circle areas,
// or to every area if none are tagged as circles.
func (r *Recommender) resolveTargets(ctx context.Context) ([]resolvedPair, error) {
	var pairs []resolvedPair
	seen := make(map[string]bool)

	for _, name := range r.targets {
		area, err := r.catalog.AreaByName(ctx, name)
		if errors.Is(err, history.ErrNotFound) {
			mapping := r.resolver.Resolve(name)
			area, err = r.catalog.AreaByName(ctx, mapping.Area)
		}
		if errors.Is(err, history.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve target %q: %w", name, err)
		}
		if !seen[area.ID] {
			pairs = append(pairs, resolvedPair{area: area, display: name})
			seen[area.ID] = true
		}
	}

	if len(pairs) > 0 {
		return pairs, nil
	}

	areas, err := r.catalog.Areas(ctx)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	var circles []model.Area
	for _, a := range areas {
		if a.IsCircle {
			circles = append(circles, a)
		}
	}
	if len(circles) == 0 {
		circles = areas
	}
	for _, a := range circles {
		if !seen[a.ID] {
			pairs = append(pairs, resolvedPair{area: a, display: a.Name})
			seen[a.ID] = true
		}
	}
	return pairs, nil
}

func (r *Recommender) build(pair resolvedPair, all []resolvedPair, current model.HourlyPrediction, next *model.HourlyPrediction) Recommendation {
	rec := Recommendation{
		Area:           pair.display,
		AreaID:         pair.area.ID,
		CurrentLevel:   current.Level,
		PredictedLevel: current.Level,
	}
	if next != nil {
		rec.PredictedLevel = next.Level
	}

	switch current.Level {
	case model.LevelHigh:
		rec.Verdict = VerdictAvoid
		rec.Reason = fmt.Sprintf("Heavy traffic expected (%.1f%% density)", current.Density)
		rec.Alternatives = r.alternatives(pair, all)
	case model.LevelLow:
		rec.Verdict = VerdictIdeal
		rec.Reason = fmt.Sprintf("Clear roads (%.1f%% density)", current.Density)
	default:
		rec.Verdict = VerdictProceed
		if next != nil && next.Level == model.LevelHigh {
			rec.Reason = "Moderate now, but expect heavy traffic in 1 hour"
		} else {
			rec.Reason = fmt.Sprintf("Moderate traffic (%.1f%% density)", current.Density)
		}
	}
	return rec
}

// alternatives picks up to two other resolved locations that are not
// highways; drivers avoiding a congested circle should not be sent
// onto a corridor.
func (r *Recommender) alternatives(pair resolvedPair, all []resolvedPair) []string {
	var alts []string
	for _, other := range all {
		if other.area.ID == pair.area.ID {
			continue
		}
		if r.resolver.Characteristics(other.area.Name).Category == model.CategoryHighway {
			continue
		}
		alts = append(alts, other.display)
		if len(alts) == maxAlternatives {
			break
		}
	}
	return alts
}

func findHour(predictions []model.HourlyPrediction, hour int) *model.HourlyPrediction {
	for i := range predictions {
		if predictions[i].Hour == hour {
			return &predictions[i]
		}
	}
	return nil
}
