package rules

import "fmt"

// Table is the type-by-type interaction matrix. Rules live in a flat
// slice indexed a*typeCount+b so the cache-invalidation contract stays
// visible and cheap to test. CalculateForce is pure and safe to call
// from concurrent readers; mutation (SetRule, Reset, presets) is not.
type Table struct {
	typeCount int
	rules     []Rule

	// Per-type maximum activation distance over active rules with that
	// type as source. Rebuilt lazily; sizes each particle's query
	// window, so it must never underestimate.
	maxDistance      []float64
	hasInteraction   []bool
	maxDistanceValid bool
}

// NewTable creates an all-inert table for typeCount particle types.
func NewTable(typeCount int) *Table {
	if typeCount <= 0 {
		panic(fmt.Sprintf("rules: non-positive type count %d", typeCount))
	}
	t := &Table{
		typeCount:      typeCount,
		rules:          make([]Rule, typeCount*typeCount),
		maxDistance:    make([]float64, typeCount),
		hasInteraction: make([]bool, typeCount),
	}
	for i := range t.rules {
		t.rules[i] = NewRule()
	}
	return t
}

// TypeCount returns the number of particle types the table covers.
func (t *Table) TypeCount() int { return t.typeCount }

func (t *Table) index(a, b int) int { return a*t.typeCount + b }

func (t *Table) validType(a int) bool { return a >= 0 && a < t.typeCount }

// Rule returns a copy of the rule for the ordered pair (a, b).
func (t *Table) Rule(a, b int) (Rule, bool) {
	if !t.validType(a) || !t.validType(b) {
		return Rule{}, false
	}
	return t.rules[t.index(a, b)], true
}

// SetRule merges p onto the existing rule for (a, b): unset fields are
// retained, MinDistance is clamped, Active is recomputed and the
// max-distance cache is invalidated. With p.Symmetric the reverse pair
// is written with the same attraction/repulsion and asymmetry, which
// deliberately overwrites any distinct reverse rule. Out-of-range types
// no-op and report false.
func (t *Table) SetRule(a, b int, p Params) bool {
	if !t.validType(a) || !t.validType(b) {
		return false
	}
	r := &t.rules[t.index(a, b)]
	if p.Attraction != nil {
		r.Attraction = *p.Attraction
	}
	if p.Repulsion != nil {
		r.Repulsion = *p.Repulsion
	}
	if p.ActivationDistance != nil {
		r.ActivationDistance = *p.ActivationDistance
	}
	if p.MinDistance != nil {
		r.MinDistance = *p.MinDistance
	}
	if r.MinDistance < MinDistanceFloor {
		r.MinDistance = MinDistanceFloor
	}
	if p.Falloff != nil {
		r.Falloff = *p.Falloff
	}
	if p.Asymmetry != nil {
		asym := *p.Asymmetry
		if asym < 0 {
			asym = 0
		} else if asym > 1 {
			asym = 1
		}
		r.Asymmetry = asym
	}
	r.recomputeActive()
	t.maxDistanceValid = false

	if p.Symmetric && a != b {
		mirrored := p
		mirrored.Symmetric = false
		asym := r.Asymmetry
		mirrored.Asymmetry = &asym
		t.SetRule(b, a, mirrored)
	}
	return true
}

// CalculateForce evaluates the rule for ordered pair (a, b) at the
// given distance. Zero for inactive pairs, invalid types, and anything
// beyond the activation distance; distance is clamped to the rule's
// MinDistance before evaluation. Pure function.
func (t *Table) CalculateForce(a, b int, distance float64) float64 {
	if !t.validType(a) || !t.validType(b) {
		return 0
	}
	r := t.rules[t.index(a, b)]
	if !r.Active || distance > r.ActivationDistance {
		return 0
	}
	if distance < r.MinDistance {
		distance = r.MinDistance
	}
	return r.Evaluate(distance)
}

// MaxInteractionDistance returns the largest activation distance over
// all active rules with t as the source type. Exact by construction:
// the cache is rebuilt from the full matrix whenever stale.
func (t *Table) MaxInteractionDistance(typ int) float64 {
	if !t.validType(typ) {
		return 0
	}
	if !t.maxDistanceValid {
		t.rebuildCache()
	}
	return t.maxDistance[typ]
}

// HasActiveInteractions reports whether any rule with t as source is
// active. The solver uses this row as its cheap early-out.
func (t *Table) HasActiveInteractions(typ int) bool {
	if !t.validType(typ) {
		return false
	}
	if !t.maxDistanceValid {
		t.rebuildCache()
	}
	return t.hasInteraction[typ]
}

func (t *Table) rebuildCache() {
	for a := 0; a < t.typeCount; a++ {
		maxDist := 0.0
		has := false
		for b := 0; b < t.typeCount; b++ {
			r := t.rules[t.index(a, b)]
			if !r.Active {
				continue
			}
			has = true
			if r.ActivationDistance > maxDist {
				maxDist = r.ActivationDistance
			}
		}
		t.maxDistance[a] = maxDist
		t.hasInteraction[a] = has
	}
	t.maxDistanceValid = true
}

// Reset returns every pair to the inert default rule.
func (t *Table) Reset() {
	for i := range t.rules {
		t.rules[i] = NewRule()
	}
	t.maxDistanceValid = false
}

// Clone returns a deep copy of the table, cache state included.
func (t *Table) Clone() *Table {
	c := NewTable(t.typeCount)
	copy(c.rules, t.rules)
	c.maxDistanceValid = false
	return c
}

// Export returns a flat copy of the rule matrix for the serialization
// boundary.
func (t *Table) Export() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Import replaces the whole matrix. Reports false on a size mismatch.
func (t *Table) Import(rs []Rule) bool {
	if len(rs) != len(t.rules) {
		return false
	}
	copy(t.rules, rs)
	t.maxDistanceValid = false
	return true
}
