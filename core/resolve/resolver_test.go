package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ishaq7892/trafficsense/core/model"
)

func TestResolveExactName(t *testing.T) {
	r := New()
	m := r.Resolve("Gokulam")
	if m.Area != "Gokulam" {
		t.Fatalf("expected Gokulam, got %s", m.Area)
	}
	if m.Confidence != 0.95 {
		t.Errorf("exact match confidence = %v, want capped 0.95", m.Confidence)
	}
	if m.Reason != "name similarity" {
		t.Errorf("reason = %q", m.Reason)
	}
}

func TestResolveContainment(t *testing.T) {
	r := New()
	m := r.Resolve("Mysore Palace")
	assert.Equal(t, "Mysore Palace Area", m.Area)
	assert.InDelta(t, 0.8, m.Confidence, 1e-9)
}

func TestResolveKeyword(t *testing.T) {
	r := New()
	m := r.Resolve("Whitefield Industrial Area")
	if m.Area != "Hebbal" {
		t.Fatalf("expected Hebbal, got %s (%s)", m.Area, m.Reason)
	}
	if m.Reason != "keyword: industrial" {
		t.Errorf("reason = %q", m.Reason)
	}
	// 0.7 + 0.2*len("industrial")/len(input)
	assert.InDelta(t, 0.7+0.2*10.0/26.0, m.Confidence, 1e-9)
}

func TestResolvePatternFallback(t *testing.T) {
	r := New()
	m := r.Resolve("Peenya Factory Zone")
	assert.Equal(t, "Hebbal", m.Area)
	assert.Equal(t, "industrial pattern", m.Reason)
	assert.InDelta(t, 0.6, m.Confidence, 1e-9)
}

func TestResolveDefault(t *testing.T) {
	r := New()
	for _, input := range []string{"", "   ", "qwxz"} {
		m := r.Resolve(input)
		if m.Area != "Mysore Palace Area" {
			t.Errorf("Resolve(%q) = %s, want default central", input, m.Area)
		}
		assert.InDelta(t, 0.4, m.Confidence, 1e-9)
		assert.Equal(t, "default central", m.Reason)
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := New()
	first := r.Resolve("residential layout")
	for i := 0; i < 10; i++ {
		if got := r.Resolve("residential layout"); got != first {
			t.Fatalf("resolution not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestResolveAll(t *testing.T) {
	r := New()
	mappings := r.ResolveAll([]string{"  Gokulam ", "KRS Road"})
	if len(mappings) != 2 {
		t.Fatalf("expected 2 mappings, got %d", len(mappings))
	}
	if m, ok := mappings["gokulam"]; !ok || m.Area != "Gokulam" {
		t.Errorf("normalized key lookup failed: %+v", mappings)
	}
}

func TestCharacteristics(t *testing.T) {
	r := New()
	assert.Equal(t, model.CategoryHighway, r.Characteristics("KRS Road").Category)
	assert.Equal(t, "Mysore Palace Area", r.Characteristics("Nowhere").Name)
}
