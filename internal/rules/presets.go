package rules

import "math/rand"

// PresetRule is one entry of a preset's rule list, addressed by ordered
// type pair.
type PresetRule struct {
	A, B int
	Params
}

func f(v float64) *float64  { return &v }
func fo(v Falloff) *Falloff { return &v }

// ApplyPreset resets the table and installs the named preset. Unknown
// names report false and leave the table reset.
func (t *Table) ApplyPreset(name string) bool {
	t.Reset()
	switch name {
	case "basic_attraction":
		t.applyBasicAttraction()
	case "orbital":
		t.applyOrbital()
	case "segregation":
		t.applySegregation()
	case "food_chain":
		t.applyFoodChain()
	case "crystal":
		t.applyCrystal()
	default:
		return false
	}
	return true
}

// PresetNames lists the built-in presets in display order.
func PresetNames() []string {
	return []string{"basic_attraction", "orbital", "segregation", "food_chain", "crystal"}
}

// ApplyCustomPreset resets the table and installs an arbitrary rule
// list, replacing the built-in scenarios wholesale.
func (t *Table) ApplyCustomPreset(list []PresetRule) {
	t.Reset()
	for _, pr := range list {
		t.SetRule(pr.A, pr.B, pr.Params)
	}
}

// Every type mildly attracts every other, with short-range repulsion
// keeping clusters loose. Fully Newton-symmetric.
func (t *Table) applyBasicAttraction() {
	for a := 0; a < t.typeCount; a++ {
		for b := 0; b < t.typeCount; b++ {
			t.SetRule(a, b, Params{
				Attraction:         f(0.6),
				Repulsion:          f(0.3),
				ActivationDistance: f(80),
				MinDistance:        f(5),
				Falloff:            fo(Linear),
				Asymmetry:          f(1),
			})
		}
	}
}

// Type 0 is a heavy attractor; everything else orbits it under an
// inverse-square pull but ignores its peers.
func (t *Table) applyOrbital() {
	for b := 1; b < t.typeCount; b++ {
		t.SetRule(b, 0, Params{
			Attraction:         f(40),
			ActivationDistance: f(300),
			MinDistance:        f(10),
			Falloff:            fo(InverseSquare),
			Asymmetry:          f(0),
		})
	}
}

// Like attracts like, unlike repels: stable same-type islands.
func (t *Table) applySegregation() {
	for a := 0; a < t.typeCount; a++ {
		for b := 0; b < t.typeCount; b++ {
			if a == b {
				t.SetRule(a, b, Params{
					Attraction:         f(0.8),
					Repulsion:          f(0.4),
					ActivationDistance: f(60),
					MinDistance:        f(4),
					Falloff:            fo(Linear),
					Asymmetry:          f(1),
				})
			} else {
				t.SetRule(a, b, Params{
					Repulsion:          f(0.7),
					ActivationDistance: f(40),
					MinDistance:        f(4),
					Falloff:            fo(Linear),
					Asymmetry:          f(1),
				})
			}
		}
	}
}

// Each type chases the next modulo typeCount while its prey flees it
// weakly. The deliberately broken force symmetry is what produces the
// chase dynamics.
func (t *Table) applyFoodChain() {
	n := t.typeCount
	for a := 0; a < n; a++ {
		prey := (a + 1) % n
		t.SetRule(a, prey, Params{
			Attraction:         f(1.0),
			ActivationDistance: f(120),
			MinDistance:        f(6),
			Falloff:            fo(Linear),
			Asymmetry:          f(0.3),
		})
		t.SetRule(prey, a, Params{
			Repulsion:          f(0.8),
			ActivationDistance: f(90),
			MinDistance:        f(6),
			Falloff:            fo(Linear),
			Asymmetry:          f(0),
		})
	}
}

// Tight same-type binding at a fixed spacing produces lattice growth:
// strong short-range repulsion against a constant attraction plateau.
func (t *Table) applyCrystal() {
	for a := 0; a < t.typeCount; a++ {
		t.SetRule(a, a, Params{
			Attraction:         f(1.2),
			Repulsion:          f(2.0),
			ActivationDistance: f(30),
			MinDistance:        f(8),
			Falloff:            fo(Exponential),
			Asymmetry:          f(1),
		})
	}
}

// Randomize replaces every pair's attraction with a uniform value in
// [-strength, strength] on a linear falloff. Mirrors the random force
// matrix a fresh particle-life world starts from.
func (t *Table) Randomize(rng *rand.Rand, strength, activation float64) {
	for a := 0; a < t.typeCount; a++ {
		for b := 0; b < t.typeCount; b++ {
			v := (rng.Float64()*2 - 1) * strength
			p := Params{
				ActivationDistance: f(activation),
				MinDistance:        f(5),
				Falloff:            fo(Linear),
				Asymmetry:          f(0),
			}
			if v >= 0 {
				p.Attraction = f(v)
				p.Repulsion = f(0)
			} else {
				p.Attraction = f(0)
				p.Repulsion = f(-v)
			}
			t.SetRule(a, b, p)
		}
	}
}

// Mutate perturbs each pair's attraction and repulsion with gaussian
// noise, clamped to [-limit, limit].
func (t *Table) Mutate(rng *rand.Rand, sigma, limit float64) {
	clamp := func(v float64) float64 {
		if v > limit {
			return limit
		}
		if v < -limit {
			return -limit
		}
		return v
	}
	for i := range t.rules {
		r := &t.rules[i]
		r.Attraction = clamp(r.Attraction + rng.NormFloat64()*sigma)
		r.Repulsion = clamp(r.Repulsion + rng.NormFloat64()*sigma)
		r.recomputeActive()
	}
	t.maxDistanceValid = false
}
