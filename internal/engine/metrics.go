package engine

import "time"

// Metrics is the once-per-second snapshot of per-phase timings exposed
// to external consumers (the renderer reads, never writes physics).
type Metrics struct {
	SpatialRebuild time.Duration // mean per step over the window
	ForceSolve     time.Duration
	Integration    time.Duration
	Render         time.Duration
	StepsPerSecond int
	TotalSteps     uint64
}

type metricsAccumulator struct {
	spatial    time.Duration
	solve      time.Duration
	integrate  time.Duration
	render     time.Duration
	steps      int
	renderObs  int
	totalSteps uint64
	windowFrom time.Time
}

func (m *metricsAccumulator) observe(spatial, solve, integrate time.Duration) {
	if m.windowFrom.IsZero() {
		m.windowFrom = time.Now()
	}
	m.spatial += spatial
	m.solve += solve
	m.integrate += integrate
	m.steps++
	m.totalSteps++
}

// ObserveRender folds an externally measured render duration into the
// current window.
func (e *Engine) ObserveRender(d time.Duration) {
	e.metrics.render += d
	e.metrics.renderObs++
}

func (e *Engine) maybePublish(now time.Time) {
	m := &e.metrics
	if m.windowFrom.IsZero() || now.Sub(m.windowFrom) < time.Second {
		return
	}
	pub := Metrics{
		StepsPerSecond: m.steps,
		TotalSteps:     m.totalSteps,
	}
	if m.steps > 0 {
		n := time.Duration(m.steps)
		pub.SpatialRebuild = m.spatial / n
		pub.ForceSolve = m.solve / n
		pub.Integration = m.integrate / n
	}
	if m.renderObs > 0 {
		pub.Render = m.render / time.Duration(m.renderObs)
	}
	e.published = pub

	m.spatial, m.solve, m.integrate, m.render = 0, 0, 0, 0
	m.steps, m.renderObs = 0, 0
	m.windowFrom = now
}

// Metrics returns the most recently published window.
func (e *Engine) Metrics() Metrics { return e.published }

// StepCount returns the total number of physics steps ever run,
// independent of the publish window.
func (e *Engine) StepCount() uint64 { return e.metrics.totalSteps }
