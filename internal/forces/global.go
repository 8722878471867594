package forces

import "math"

// Globals configures the additive force passes that run after the
// pairwise pass. Each is independently toggleable.
type Globals struct {
	GravityEnabled bool
	GravityX       float64
	GravityY       float64

	DragEnabled bool
	Drag        float64 // velocity-proportional, >= 0

	CentralEnabled  bool
	CentralX        float64
	CentralY        float64
	CentralStrength float64 // negative repels

	VortexEnabled  bool
	VortexX        float64
	VortexY        float64
	VortexStrength float64 // sign selects spin direction
}

// Impulse is a one-shot radial kick, consumed by the next Solve.
type Impulse struct {
	X, Y     float64
	Radius   float64
	Strength float64 // positive pushes outward
}

// AddImpulse queues a localized impulse for the next force pass.
func (s *Solver) AddImpulse(imp Impulse) {
	s.impulses = append(s.impulses, imp)
}

func (s *Solver) globalPass(dt float64) {
	g := s.Globals
	if !g.GravityEnabled && !g.DragEnabled && !g.CentralEnabled && !g.VortexEnabled {
		return
	}
	st := s.store
	for i := 0; i < st.Count(); i++ {
		if !st.Active[i] {
			continue
		}
		if g.GravityEnabled {
			st.AX[i] += g.GravityX
			st.AY[i] += g.GravityY
		}
		if g.DragEnabled {
			st.AX[i] -= g.Drag * st.VX[i]
			st.AY[i] -= g.Drag * st.VY[i]
		}
		if g.CentralEnabled {
			dx := g.CentralX - st.X[i]
			dy := g.CentralY - st.Y[i]
			d := math.Hypot(dx, dy)
			if d > 1e-6 {
				st.AX[i] += g.CentralStrength * dx / d
				st.AY[i] += g.CentralStrength * dy / d
			}
		}
		if g.VortexEnabled {
			dx := st.X[i] - g.VortexX
			dy := st.Y[i] - g.VortexY
			d := math.Hypot(dx, dy)
			if d > 1e-6 {
				st.AX[i] += g.VortexStrength * -dy / d
				st.AY[i] += g.VortexStrength * dx / d
			}
		}
	}
}

func (s *Solver) impulsePass() {
	if len(s.impulses) == 0 {
		return
	}
	st := s.store
	for _, imp := range s.impulses {
		if imp.Radius <= 0 {
			continue
		}
		r2 := imp.Radius * imp.Radius
		for i := 0; i < st.Count(); i++ {
			if !st.Active[i] {
				continue
			}
			dx := st.X[i] - imp.X
			dy := st.Y[i] - imp.Y
			d2 := dx*dx + dy*dy
			if d2 > r2 || d2 < 1e-12 {
				continue
			}
			d := math.Sqrt(d2)
			falloff := 1 - d/imp.Radius
			st.ApplyForce(i, imp.Strength*falloff*dx/d, imp.Strength*falloff*dy/d)
		}
	}
	s.impulses = s.impulses[:0]
}
