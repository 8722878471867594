package rules

import "math"

// Falloff selects the closed-form shape of a rule's force curve.
type Falloff int

const (
	InverseSquare Falloff = iota
	Linear
	Constant
	Exponential
	Sigmoid
)

// MinDistanceFloor is the smallest permitted distance clamp. Rules are
// never evaluated closer than this, keeping every falloff finite.
const MinDistanceFloor = 0.1

// activeEpsilon: below this combined magnitude a rule exerts nothing.
const activeEpsilon = 1e-6

func (f Falloff) String() string {
	switch f {
	case InverseSquare:
		return "inverse_square"
	case Linear:
		return "linear"
	case Constant:
		return "constant"
	case Exponential:
		return "exponential"
	case Sigmoid:
		return "sigmoid"
	}
	return "unknown"
}

// ParseFalloff maps a config string to a Falloff. Unknown names map to
// InverseSquare, the same default Evaluate uses.
func ParseFalloff(name string) Falloff {
	switch name {
	case "linear":
		return Linear
	case "constant":
		return Constant
	case "exponential":
		return Exponential
	case "sigmoid":
		return Sigmoid
	default:
		return InverseSquare
	}
}

// Rule holds the force-law parameters for one ordered type pair (A, B).
// Positive evaluated force pulls A toward B; negative pushes away.
// Asymmetry controls how much of the reaction B feels: 0 means B feels
// nothing (the one-way default for user rules), 1 restores Newton's
// third law exactly.
type Rule struct {
	Attraction         float64
	Repulsion          float64
	ActivationDistance float64
	MinDistance        float64
	Falloff            Falloff
	Asymmetry          float64
	Active             bool
}

// NewRule returns an inert rule with safe defaults. Rules are value
// types: every table slot owns its own copy.
func NewRule() Rule {
	return Rule{
		ActivationDistance: 50,
		MinDistance:        1,
		Falloff:            InverseSquare,
		Asymmetry:          0,
	}
}

// Params carries optional overrides for Table.SetRule. Nil fields keep
// the existing rule's value.
type Params struct {
	Attraction         *float64
	Repulsion          *float64
	ActivationDistance *float64
	MinDistance        *float64
	Falloff            *Falloff
	Asymmetry          *float64
	Symmetric          bool
}

// Evaluate computes the scalar force of the rule at the given distance.
// Distance is assumed already clamped to MinDistance and within
// ActivationDistance; Table.CalculateForce handles both.
func (r Rule) Evaluate(distance float64) float64 {
	switch r.Falloff {
	case Linear:
		t := 1 - distance/r.ActivationDistance
		return r.Attraction*t - r.Repulsion*t*t
	case Constant:
		return r.Attraction - r.Repulsion
	case Exponential:
		scale := r.ActivationDistance / 3
		return r.Attraction*math.Exp(-distance/scale) -
			r.Repulsion*math.Exp(-2*distance/scale)
	case Sigmoid:
		steep := r.ActivationDistance / 10
		mid := r.ActivationDistance / 2
		att := r.Attraction / (1 + math.Exp((distance-mid)/steep))
		rep := r.Repulsion / (1 + math.Exp((distance-2*r.MinDistance)/steep))
		return att - rep
	default: // InverseSquare, also the unknown-falloff fallback
		d2 := distance * distance
		return r.Attraction/d2 - r.Repulsion/(d2*distance)
	}
}

func (r *Rule) recomputeActive() {
	r.Active = math.Abs(r.Attraction) > activeEpsilon ||
		math.Abs(r.Repulsion) > activeEpsilon
}
