package integrators

import (
	"github.com/san-kum/particlelab/internal/particle"
	"github.com/san-kum/particlelab/internal/spatial"
)

// Scheme selects the numerical integration method.
type Scheme int

const (
	Euler Scheme = iota
	Verlet
	RK4
)

// Boundary selects what happens at the world edges.
type Boundary int

const (
	None Boundary = iota // default for this domain: open world
	Reflect
	Wrap
	Absorb
	Attract
)

// attractStiffness scales the soft-boundary restoring acceleration per
// unit of penetration depth.
const attractStiffness = 10.0

// ParseScheme maps a config string to a Scheme, defaulting to Euler.
func ParseScheme(name string) Scheme {
	switch name {
	case "verlet":
		return Verlet
	case "rk4":
		return RK4
	default:
		return Euler
	}
}

// ParseBoundary maps a config string to a Boundary, defaulting to None.
func ParseBoundary(name string) Boundary {
	switch name {
	case "reflect":
		return Reflect
	case "wrap":
		return Wrap
	case "absorb":
		return Absorb
	case "attract":
		return Attract
	default:
		return None
	}
}

// Config is the integrator's exposed configuration. ConstraintIters is
// accepted for future positional constraints and currently no-ops.
type Config struct {
	Scheme          Scheme
	Boundary        Boundary
	Damping         float64 // multiplicative velocity decay per step, (0,1]
	SubSteps        int     // >= 1, splits one physics step internally
	ConstraintIters int
	Elasticity      float64 // velocity retained on reflect, [0,1]
}

// DefaultConfig mirrors the common particle-life setup: explicit Euler,
// open world, light damping.
func DefaultConfig() Config {
	return Config{
		Scheme:     Euler,
		Boundary:   None,
		Damping:    0.98,
		SubSteps:   1,
		Elasticity: 0.8,
	}
}

// Integrator advances particle state under a fixed scheme and boundary
// policy. Sub-stepping happens entirely inside Integrate: the dt the
// caller passes is the outer fixed step.
type Integrator struct {
	cfg Config
}

// New clamps cfg into its valid ranges and returns an Integrator.
func New(cfg Config) *Integrator {
	if cfg.SubSteps < 1 {
		cfg.SubSteps = 1
	}
	if cfg.Damping <= 0 || cfg.Damping > 1 {
		cfg.Damping = 1
	}
	if cfg.Elasticity < 0 {
		cfg.Elasticity = 0
	} else if cfg.Elasticity > 1 {
		cfg.Elasticity = 1
	}
	return &Integrator{cfg: cfg}
}

// Config returns the clamped configuration in effect.
func (in *Integrator) Config() Config { return in.cfg }

// SetConfig replaces the configuration, applying the same clamping as New.
func (in *Integrator) SetConfig(cfg Config) { in.cfg = New(cfg).cfg }

// Integrate advances every active particle by dt using the current
// accelerations. The step is split into SubSteps equal sub-steps; the
// boundary policy runs after the scheme advance inside every sub-step,
// so boundary corrections always see the freshest position.
func (in *Integrator) Integrate(store *particle.Store, bounds spatial.Rect, dt float64) {
	h := dt / float64(in.cfg.SubSteps)
	for s := 0; s < in.cfg.SubSteps; s++ {
		for i := 0; i < store.Count(); i++ {
			if !store.Active[i] {
				continue
			}
			switch in.cfg.Scheme {
			case Verlet:
				in.stepVerlet(store, i, h)
			case RK4:
				in.stepRK4(store, i, h)
			default:
				in.stepEuler(store, i, h)
			}
			in.applyBoundary(store, bounds, i, h)
		}
	}
	for c := 0; c < in.cfg.ConstraintIters; c++ {
		// Reserved for positional constraints.
	}
}
