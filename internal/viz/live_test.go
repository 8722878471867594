package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/particlelab/internal/engine"
	"github.com/san-kum/particlelab/internal/integrators"
	"github.com/san-kum/particlelab/internal/particle"
	"github.com/san-kum/particlelab/internal/spatial"
)

func testModel(t *testing.T) Model {
	t.Helper()
	bounds := spatial.Rect{X: -50, Y: -50, Width: 100, Height: 100}
	eng := engine.New(bounds, 16, 3, integrators.DefaultConfig())
	if _, err := eng.Store().Create(particle.Params{X: 0, Y: 0, Type: 1}); err != nil {
		t.Fatal(err)
	}
	clock := engine.NewClock(eng, 16)
	return NewModel(eng, clock, "soup", "neon", 1)
}

func TestDrawRasterizesWorldBounds(t *testing.T) {
	m := testModel(t)
	m.draw()

	lit := 0
	for row := range m.canvas.Grid {
		for col := range m.canvas.Grid[row] {
			if m.canvas.Grid[row][col] == 0x2800 {
				continue
			}
			lit++
			if m.canvas.Types[row][col] != 1 {
				t.Errorf("expected type 1 cell, got %d", m.canvas.Types[row][col])
			}
		}
	}
	// one particle at the world center lands in exactly one cell
	if lit != 1 {
		t.Fatalf("expected 1 lit cell, got %d", lit)
	}
}

func TestViewRendersStats(t *testing.T) {
	m := testModel(t)
	out := m.View()

	if strings.Contains(out, "%!") {
		t.Error("view contains a mis-formatted value")
	}
	for _, want := range []string{"SOUP", "Steps/s", "Particles", "Backlogs"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
