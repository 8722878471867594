package integrators

import (
	"math"

	"github.com/san-kum/particlelab/internal/particle"
	"github.com/san-kum/particlelab/internal/spatial"
)

func (in *Integrator) applyBoundary(st *particle.Store, bounds spatial.Rect, i int, h float64) {
	switch in.cfg.Boundary {
	case Reflect:
		in.reflect(st, bounds, i)
	case Wrap:
		wrap(st, bounds, i)
	case Absorb:
		absorb(st, bounds, i)
	case Attract:
		attract(st, bounds, i, h)
	}
}

// reflect clamps the particle inside the bounds, inset by its visual
// size, and bounces the offending velocity component scaled by the
// elasticity coefficient.
func (in *Integrator) reflect(st *particle.Store, b spatial.Rect, i int) {
	margin := st.Size[i]
	minX, maxX := b.X+margin, b.X+b.Width-margin
	minY, maxY := b.Y+margin, b.Y+b.Height-margin

	if st.X[i] < minX {
		st.X[i] = minX
		st.VX[i] = -st.VX[i] * in.cfg.Elasticity
	} else if st.X[i] > maxX {
		st.X[i] = maxX
		st.VX[i] = -st.VX[i] * in.cfg.Elasticity
	}
	if st.Y[i] < minY {
		st.Y[i] = minY
		st.VY[i] = -st.VY[i] * in.cfg.Elasticity
	} else if st.Y[i] > maxY {
		st.Y[i] = maxY
		st.VY[i] = -st.VY[i] * in.cfg.Elasticity
	}
}

// wrap teleports a particle that left one edge to the opposite edge.
// Previous positions shift with it so Verlet sees no phantom velocity.
func wrap(st *particle.Store, b spatial.Rect, i int) {
	x := math.Mod(st.X[i]-b.X, b.Width)
	if x < 0 {
		x += b.Width
	}
	y := math.Mod(st.Y[i]-b.Y, b.Height)
	if y < 0 {
		y += b.Height
	}
	st.PrevX[i] += (b.X + x) - st.X[i]
	st.PrevY[i] += (b.Y + y) - st.Y[i]
	st.X[i] = b.X + x
	st.Y[i] = b.Y + y
}

// absorb removes a particle that fully left the bounds. The rest of
// its integration for this step is skipped by removal.
func absorb(st *particle.Store, b spatial.Rect, i int) {
	if st.X[i] < b.X || st.X[i] > b.X+b.Width ||
		st.Y[i] < b.Y || st.Y[i] > b.Y+b.Height {
		st.Remove(i)
	}
}

// attract applies a restoring acceleration proportional to penetration
// depth instead of hard-clamping, so there is no velocity discontinuity.
func attract(st *particle.Store, b spatial.Rect, i int, h float64) {
	if st.X[i] < b.X {
		st.VX[i] += attractStiffness * (b.X - st.X[i]) * h
	} else if st.X[i] > b.X+b.Width {
		st.VX[i] -= attractStiffness * (st.X[i] - b.X - b.Width) * h
	}
	if st.Y[i] < b.Y {
		st.VY[i] += attractStiffness * (b.Y - st.Y[i]) * h
	} else if st.Y[i] > b.Y+b.Height {
		st.VY[i] -= attractStiffness * (st.Y[i] - b.Y - b.Height) * h
	}
}
