package integrators

import "github.com/san-kum/particlelab/internal/particle"

// stepEuler is the explicit scheme: position advances on the current
// velocity, then velocity absorbs acceleration and damping.
func (in *Integrator) stepEuler(st *particle.Store, i int, h float64) {
	st.PrevX[i], st.PrevY[i] = st.X[i], st.Y[i]
	st.X[i] += st.VX[i] * h
	st.Y[i] += st.VY[i] * h
	st.VX[i] = (st.VX[i] + st.AX[i]*h) * in.cfg.Damping
	st.VY[i] = (st.VY[i] + st.AY[i]*h) * in.cfg.Damping
}

// stepVerlet advances on position history. The velocity arrays are
// kept coherent from the position delta so boundary handling and
// scheme switches keep working.
func (in *Integrator) stepVerlet(st *particle.Store, i int, h float64) {
	// A particle whose history equals its position but carries velocity
	// was just created or externally rewritten: reconcile the history
	// before stepping, otherwise that velocity is silently lost.
	if st.PrevX[i] == st.X[i] && st.PrevY[i] == st.Y[i] &&
		(st.VX[i] != 0 || st.VY[i] != 0) {
		st.PrevX[i] = st.X[i] - st.VX[i]*h
		st.PrevY[i] = st.Y[i] - st.VY[i]*h
	}
	curX, curY := st.X[i], st.Y[i]
	st.X[i] = curX + (curX-st.PrevX[i])*in.cfg.Damping + st.AX[i]*h*h
	st.Y[i] = curY + (curY-st.PrevY[i])*in.cfg.Damping + st.AY[i]*h*h
	st.PrevX[i], st.PrevY[i] = curX, curY
	st.VX[i] = (st.X[i] - curX) / h
	st.VY[i] = (st.Y[i] - curY) / h
}

// stepRK4 runs the classical four-stage scheme on (position, velocity)
// with the acceleration held constant over the sub-step, which is what
// the solver provides.
func (in *Integrator) stepRK4(st *particle.Store, i int, h float64) {
	ax, ay := st.AX[i], st.AY[i]
	vx, vy := st.VX[i], st.VY[i]

	k1x, k1y := vx, vy
	k2x, k2y := vx+ax*h/2, vy+ay*h/2
	k3x, k3y := vx+ax*h/2, vy+ay*h/2
	k4x, k4y := vx+ax*h, vy+ay*h

	st.PrevX[i], st.PrevY[i] = st.X[i], st.Y[i]
	st.X[i] += h / 6 * (k1x + 2*k2x + 2*k3x + k4x)
	st.Y[i] += h / 6 * (k1y + 2*k2y + 2*k3y + k4y)
	st.VX[i] = (vx + ax*h) * in.cfg.Damping
	st.VY[i] = (vy + ay*h) * in.cfg.Damping
}
