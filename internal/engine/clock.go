package engine

// Clock constants. Frame deltas above the clamp are treated as tab
// suspends, not simulation time; the catch-up cap bounds worst-case
// work per frame.
const (
	MaxFrameDeltaMS = 100.0
	MaxCatchUpSteps = 5
)

// Clock is the fixed-timestep scheduler. The host calls Update once
// per frame with the wall-clock delta in milliseconds; the clock runs
// zero or more whole physics steps and exposes the interpolation
// fraction left over. With an Offloader attached, steps run on the
// external executor instead and whole-state snapshots flow back.
type Clock struct {
	engine      *Engine
	fixedStepMS float64
	timeScale   float64
	accumulator float64
	running     bool

	offload *Offloader

	backlogs  uint64
	onBacklog func(discardedMS float64)
}

// NewClock builds a stopped clock around the engine. fixedStepMS must
// be positive; anything else is programmer error.
func NewClock(e *Engine, fixedStepMS float64) *Clock {
	if fixedStepMS <= 0 {
		panic("engine: non-positive fixed step")
	}
	return &Clock{engine: e, fixedStepMS: fixedStepMS, timeScale: 1}
}

// Start begins scheduling. Calling it while running has no effect.
func (c *Clock) Start() { c.running = true }

// Stop halts scheduling of new steps. An in-flight offloaded batch is
// not recalled; its response is still applied on arrival.
func (c *Clock) Stop() { c.running = false }

// Running reports the scheduler state.
func (c *Clock) Running() bool { return c.running }

// FixedStepMS returns the configured step size in milliseconds.
func (c *Clock) FixedStepMS() float64 { return c.fixedStepMS }

// SetTimeScale rescales accumulation. Negative values clamp to zero:
// time does not run backwards.
func (c *Clock) SetTimeScale(s float64) {
	if s < 0 {
		s = 0
	}
	c.timeScale = s
}

// TimeScale returns the current accumulation scale.
func (c *Clock) TimeScale() float64 { return c.timeScale }

// OnBacklog registers a warning callback for discarded catch-up time.
func (c *Clock) OnBacklog(fn func(discardedMS float64)) { c.onBacklog = fn }

// Backlogs counts how many times catch-up time has been discarded.
func (c *Clock) Backlogs() uint64 { return c.backlogs }

// SetOffloader attaches (or with nil, detaches) the external executor
// path. While attached, physics never runs in-process.
func (c *Clock) SetOffloader(o *Offloader) { c.offload = o }

// Alpha is the interpolation fraction in [0,1) for blending the last
// two physics states. Offload mode has no sub-step state to blend, so
// it reports 0.
func (c *Clock) Alpha() float64 {
	if c.offload != nil {
		return 0
	}
	return c.accumulator / c.fixedStepMS
}

// Update advances the clock by one frame delta (milliseconds) and
// returns how many physics steps were scheduled.
func (c *Clock) Update(deltaMS float64) int {
	// Responses from an earlier batch apply even when stopped; only
	// engine teardown discards them.
	if c.offload != nil {
		for _, snap := range c.offload.Poll() {
			c.engine.Restore(snap)
		}
	}
	if !c.running {
		return 0
	}

	if deltaMS < 0 {
		deltaMS = 0
	} else if deltaMS > MaxFrameDeltaMS {
		deltaMS = MaxFrameDeltaMS
	}
	c.accumulator += deltaMS * c.timeScale

	if c.offload != nil {
		return c.updateOffloaded()
	}

	steps := 0
	for c.accumulator >= c.fixedStepMS && steps < MaxCatchUpSteps {
		c.engine.Step(c.fixedStepMS / 1000)
		c.accumulator -= c.fixedStepMS
		steps++
	}
	if steps == MaxCatchUpSteps && c.accumulator >= c.fixedStepMS {
		discarded := c.accumulator
		c.accumulator = 0
		c.backlogs++
		if c.onBacklog != nil {
			c.onBacklog(discarded)
		}
	}
	return steps
}

func (c *Clock) updateOffloaded() int {
	due := int(c.accumulator / c.fixedStepMS)
	if due == 0 {
		return 0
	}
	// Time is consumed whether or not the request lands: a missing
	// executor means this batch silently fails to advance, it must not
	// pile up as a synthetic backlog.
	c.accumulator -= float64(due) * c.fixedStepMS
	if !c.offload.Request(StepRequest{Steps: due, FixedStepMS: c.fixedStepMS}) {
		return 0
	}
	return due
}
