package forces

import (
	"math"

	"github.com/san-kum/particlelab/internal/particle"
	"github.com/san-kum/particlelab/internal/rules"
	"github.com/san-kum/particlelab/internal/spatial"
)

const (
	// minDistSq guards the pairwise pass against singular directions.
	minDistSq = 1e-4
	// minForce: magnitudes below this are not worth the writes.
	minForce = 1e-4
)

// Solver accumulates accelerations from the interaction matrix and the
// global force passes. The pairwise pass is deterministic for a fixed
// particle iteration order and a fixed neighbor ordering; it is not
// invariant under reordering, because asymmetric reactions mutate
// neighbor accelerations mid-pass.
type Solver struct {
	store *particle.Store
	table *rules.Table
	tree  *spatial.Quadtree

	Globals  Globals
	impulses []Impulse

	queryBuf []spatial.Point
}

// NewSolver wires the solver to its collaborators. The tree is read
// only; rebuilding it each step is the pipeline's job.
func NewSolver(store *particle.Store, table *rules.Table, tree *spatial.Quadtree) *Solver {
	return &Solver{store: store, table: table, tree: tree}
}

// Solve runs one full force pass: reset all accelerations, the
// asymmetric pairwise pass in index order, then the global passes.
func (s *Solver) Solve(dt float64) {
	s.store.ClearAccelerations()
	s.pairwisePass()
	s.globalPass(dt)
	s.impulsePass()
}

func (s *Solver) pairwisePass() {
	st := s.store
	for i := 0; i < st.Count(); i++ {
		if !st.Active[i] {
			continue
		}
		typ := st.Type[i]
		if !s.table.HasActiveInteractions(typ) {
			continue
		}
		maxDist := s.table.MaxInteractionDistance(typ)
		if maxDist <= 0 {
			continue
		}

		x, y := st.X[i], st.Y[i]
		s.queryBuf = s.tree.Query(spatial.CircleRegion{X: x, Y: y, Radius: maxDist}, s.queryBuf[:0])

		for _, p := range s.queryBuf {
			j := p.Index
			if j == i || !st.Active[j] {
				continue
			}
			rule, ok := s.table.Rule(typ, st.Type[j])
			if !ok || !rule.Active {
				continue
			}

			dx := st.X[j] - x
			dy := st.Y[j] - y
			distSq := dx*dx + dy*dy
			if distSq < minDistSq {
				continue
			}
			dist := math.Sqrt(distSq)
			if dist > rule.ActivationDistance {
				continue
			}

			f := s.table.CalculateForce(typ, st.Type[j], dist)
			if math.Abs(f) < minForce {
				continue
			}

			ux, uy := dx/dist, dy/dist
			st.AX[i] += f * ux / st.Mass[i]
			st.AY[i] += f * uy / st.Mass[i]

			// Newton's third law is opt-in: the neighbor feels the
			// reaction only to the degree the rule asks for it.
			if rule.Asymmetry > 0 {
				scale := f * rule.Asymmetry / st.Mass[j]
				st.AX[j] -= scale * ux
				st.AY[j] -= scale * uy
			}
		}
	}
}

// ImpulseCount reports how many one-shot impulses are pending.
func (s *Solver) ImpulseCount() int { return len(s.impulses) }
