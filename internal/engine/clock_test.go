package engine

import (
	"testing"

	"github.com/san-kum/particlelab/internal/integrators"
	"github.com/san-kum/particlelab/internal/particle"
	"github.com/san-kum/particlelab/internal/spatial"
)

func testEngine() *Engine {
	return New(spatial.Rect{X: 0, Y: 0, Width: 200, Height: 200}, 64, 3, integrators.DefaultConfig())
}

func TestClockBacklogCapsAtFiveSteps(t *testing.T) {
	e := testEngine()
	c := NewClock(e, 16)
	c.Start()

	var discarded float64
	c.OnBacklog(func(ms float64) { discarded = ms })

	steps := c.Update(1000)

	if steps != MaxCatchUpSteps {
		t.Errorf("expected exactly %d steps, got %d", MaxCatchUpSteps, steps)
	}
	if e.StepCount() != MaxCatchUpSteps {
		t.Errorf("engine ran %d steps", e.StepCount())
	}
	if c.Backlogs() != 1 {
		t.Errorf("expected 1 backlog warning, got %d", c.Backlogs())
	}
	if discarded <= 0 {
		t.Error("backlog callback should report the discarded time")
	}
	if c.Alpha() != 0 {
		t.Errorf("accumulator must reset to 0 after backlog, alpha = %f", c.Alpha())
	}
}

func TestClockAccumulatesAcrossFrames(t *testing.T) {
	e := testEngine()
	c := NewClock(e, 16)
	c.Start()

	if steps := c.Update(10); steps != 0 {
		t.Errorf("10ms < 16ms should run 0 steps, got %d", steps)
	}
	if steps := c.Update(10); steps != 1 {
		t.Errorf("20ms total should run 1 step, got %d", steps)
	}

	alpha := c.Alpha()
	if alpha < 0 || alpha >= 1 {
		t.Errorf("alpha out of [0,1): %f", alpha)
	}
	// 4ms of the 20 remain.
	if want := 4.0 / 16.0; alpha != want {
		t.Errorf("alpha = %f, want %f", alpha, want)
	}
}

func TestClockDeltaClamp(t *testing.T) {
	e := testEngine()
	c := NewClock(e, 16)
	c.Start()

	// A tab-suspend spike clamps to 100ms: 6 due, 5 run, 1 discarded...
	// 100/16 = 6.25 due, capped at 5 with backlog.
	steps := c.Update(50000)
	if steps != MaxCatchUpSteps {
		t.Errorf("clamped delta should still cap at %d steps, got %d", MaxCatchUpSteps, steps)
	}

	// Negative deltas contribute nothing.
	if steps := c.Update(-50); steps != 0 {
		t.Errorf("negative delta ran %d steps", steps)
	}
}

func TestClockStoppedRunsNothing(t *testing.T) {
	e := testEngine()
	c := NewClock(e, 16)

	if steps := c.Update(100); steps != 0 {
		t.Errorf("stopped clock ran %d steps", steps)
	}

	c.Start()
	c.Start() // idempotent
	if !c.Running() {
		t.Error("clock should be running")
	}
	c.Stop()
	c.Stop()
	if c.Running() {
		t.Error("clock should be stopped")
	}
}

func TestTimeScale(t *testing.T) {
	e := testEngine()
	c := NewClock(e, 16)
	c.Start()

	c.SetTimeScale(2)
	if steps := c.Update(16); steps != 2 {
		t.Errorf("doubled time should run 2 steps, got %d", steps)
	}

	c.SetTimeScale(-5)
	if c.TimeScale() != 0 {
		t.Errorf("negative time scale must clamp to 0, got %f", c.TimeScale())
	}
	if steps := c.Update(100); steps != 0 {
		t.Errorf("frozen time ran %d steps", steps)
	}
}

func TestClockStepMovesParticles(t *testing.T) {
	e := testEngine()
	idx, _ := e.Store().Create(particle.Params{X: 50, Y: 50, VX: 10})
	c := NewClock(e, 16)
	c.Start()

	c.Update(16)

	if e.Store().X[idx] <= 50 {
		t.Errorf("particle did not move: x = %f", e.Store().X[idx])
	}
}

func TestNewClockPanicsOnBadStep(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-positive fixed step")
		}
	}()
	NewClock(testEngine(), 0)
}
