// Package resolve maps arbitrary free-text location names onto the
// fixed set of monitored areas. Resolution is a total function: any
// input yields a mapping, falling back to pattern detection and finally
// to the central area, never to an error.
package resolve

import (
	"regexp"
	"strings"

	"github.com/Ishaq7892/trafficsense/core/model"
)

// maxConfidence caps every mapping; a heuristic match is never certain.
const maxConfidence = 0.95

// fallbackThreshold triggers pattern detection when no area scored
// better through name similarity or keywords.
const fallbackThreshold = 0.3

// Fallback pattern detectors, checked in order.
var (
	highwayPattern     = regexp.MustCompile(`(?i)highway|expressway|nh-|sh-|route|corridor`)
	centralPattern     = regexp.MustCompile(`(?i)central|downtown|city center|main|mg road|brigade`)
	commercialPattern  = regexp.MustCompile(`(?i)market|commercial|shopping|mall|business|trade`)
	industrialPattern  = regexp.MustCompile(`(?i)industrial|warehouse|factory|peenya|whitefield`)
	residentialPattern = regexp.MustCompile(`(?i)layout|colony|nagar|puram|extension|stage|block`)
	touristPattern     = regexp.MustCompile(`(?i)temple|hill|park|garden|tourist|monument`)
)

// Resolver scores free-text names against the known-area table.
type Resolver struct {
	profiles []Profile
	defaults Profile
}

// New returns a resolver over the built-in area table.
func New() *Resolver {
	return &Resolver{profiles: knownAreas, defaults: knownAreas[0]}
}

// Resolve maps a free-text name to the best-matching known area.
func (r *Resolver) Resolve(input string) model.AreaMapping {
	normalized := strings.ToLower(strings.TrimSpace(input))

	best := struct {
		area   string
		score  float64
		reason string
	}{area: r.defaults.Name, reason: "default"}

	for _, p := range r.profiles {
		score := nameSimilarity(normalized, strings.ToLower(p.Name))
		reason := "name similarity"

		for _, kw := range p.Keywords {
			if !strings.Contains(normalized, kw) {
				continue
			}
			kwScore := 0.7 + 0.2*float64(len(kw))/float64(len(normalized))
			if kwScore > score {
				score = kwScore
				reason = "keyword: " + kw
			}
		}

		if score > best.score {
			best.area = p.Name
			best.score = score
			best.reason = reason
		}
	}

	if best.score < fallbackThreshold {
		best.area, best.score, best.reason = r.patternFallback(normalized)
	}

	confidence := best.score
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	return model.AreaMapping{
		Input:      input,
		Area:       best.area,
		Confidence: confidence,
		Reason:     best.reason,
	}
}

// ResolveAll maps a batch of names, keyed by normalized input.
func (r *Resolver) ResolveAll(inputs []string) map[string]model.AreaMapping {
	mappings := make(map[string]model.AreaMapping, len(inputs))
	for _, in := range inputs {
		mappings[strings.ToLower(strings.TrimSpace(in))] = r.Resolve(in)
	}
	return mappings
}

// Characteristics returns the profile of a known area, defaulting to
// the central area for unknown names.
func (r *Resolver) Characteristics(areaName string) Profile {
	for _, p := range r.profiles {
		if p.Name == areaName {
			return p
		}
	}
	return r.defaults
}

// patternFallback picks an area for names that matched nothing in the
// table, using ordered category detectors.
func (r *Resolver) patternFallback(name string) (area string, score float64, reason string) {
	checks := []struct {
		re       *regexp.Regexp
		category model.AreaCategory
		reason   string
	}{
		{highwayPattern, model.CategoryHighway, "highway pattern"},
		{centralPattern, model.CategoryCentral, "central area pattern"},
		{commercialPattern, model.CategoryCommercial, "commercial pattern"},
		{industrialPattern, model.CategoryIndustrial, "industrial pattern"},
		{residentialPattern, model.CategoryResidential, "residential pattern"},
		{touristPattern, model.CategoryTourist, "tourist pattern"},
	}
	for _, c := range checks {
		if c.re.MatchString(name) {
			return r.firstOfCategory(c.category), 0.6, c.reason
		}
	}
	return r.defaults.Name, 0.4, "default central"
}

// firstOfCategory returns the first table entry of the given category,
// falling back to the default area.
func (r *Resolver) firstOfCategory(cat model.AreaCategory) string {
	for _, p := range r.profiles {
		if p.Category == cat {
			return p.Name
		}
	}
	return r.defaults.Name
}

// nameSimilarity scores how close two normalized names are: exact match
// 1.0, containment 0.8, otherwise shared-word overlap scaled by 0.6.
func nameSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.8
	}

	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	shared := 0
	for _, w := range wordsA {
		for _, v := range wordsB {
			if w == v {
				shared++
				break
			}
		}
	}
	if shared == 0 {
		return 0
	}
	longest := len(wordsA)
	if len(wordsB) > longest {
		longest = len(wordsB)
	}
	return 0.6 * float64(shared) / float64(longest)
}
