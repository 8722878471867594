package engine

import (
	"time"

	"github.com/san-kum/particlelab/internal/forces"
	"github.com/san-kum/particlelab/internal/integrators"
	"github.com/san-kum/particlelab/internal/particle"
	"github.com/san-kum/particlelab/internal/rules"
	"github.com/san-kum/particlelab/internal/spatial"
)

const (
	quadtreeCapacity = 8
	quadtreeMaxDepth = 8
)

// Engine owns the physics pipeline: spatial rebuild, force solve,
// lifespan update, integration. Single-threaded; the only concurrency
// boundary is the optional Executor, which runs its own Engine.
type Engine struct {
	store      *particle.Store
	table      *rules.Table
	tree       *spatial.Quadtree
	solver     *forces.Solver
	integrator *integrators.Integrator
	bounds     spatial.Rect

	metrics   metricsAccumulator
	published Metrics
}

// New assembles an engine over a fresh store and rule table.
func New(bounds spatial.Rect, maxParticles, typeCount int, icfg integrators.Config) *Engine {
	store := particle.NewStore(maxParticles, typeCount)
	table := rules.NewTable(typeCount)
	tree := spatial.NewQuadtree(bounds, quadtreeCapacity, quadtreeMaxDepth)
	return &Engine{
		store:      store,
		table:      table,
		tree:       tree,
		solver:     forces.NewSolver(store, table, tree),
		integrator: integrators.New(icfg),
		bounds:     bounds,
	}
}

func (e *Engine) Store() *particle.Store              { return e.store }
func (e *Engine) Rules() *rules.Table                 { return e.table }
func (e *Engine) Solver() *forces.Solver              { return e.solver }
func (e *Engine) Integrator() *integrators.Integrator { return e.integrator }
func (e *Engine) Bounds() spatial.Rect                { return e.bounds }

// SetBounds replaces the world rectangle; the spatial index follows.
func (e *Engine) SetBounds(b spatial.Rect) {
	e.bounds = b
	e.tree.SetBounds(b)
}

// Step runs one fixed physics step of dt seconds.
func (e *Engine) Step(dt float64) {
	t0 := time.Now()
	e.rebuildIndex()
	t1 := time.Now()
	e.solver.Solve(dt)
	t2 := time.Now()
	e.store.UpdateLifespans(dt)
	e.integrator.Integrate(e.store, e.bounds, dt)
	t3 := time.Now()

	e.metrics.observe(t1.Sub(t0), t2.Sub(t1), t3.Sub(t2))
	e.maybePublish(t3)
}

func (e *Engine) rebuildIndex() {
	e.tree.Clear()
	st := e.store
	for i := 0; i < st.Count(); i++ {
		if st.Active[i] {
			e.tree.Insert(spatial.Point{Index: i, X: st.X[i], Y: st.Y[i]})
		}
	}
}
