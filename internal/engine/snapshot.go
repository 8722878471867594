package engine

import (
	"github.com/san-kum/particlelab/internal/particle"
	"github.com/san-kum/particlelab/internal/rules"
)

// Snapshot carries the full simulation state across the execution
// boundary: the particle buffer plus the rule matrix, copied
// field-for-field.
type Snapshot struct {
	Particles *particle.Buffer
	Rules     []rules.Rule
	TypeCount int
}

// Capture serializes the engine's state into a Snapshot that shares no
// memory with it.
func (e *Engine) Capture() *Snapshot {
	return &Snapshot{
		Particles: e.store.Export(),
		Rules:     e.table.Export(),
		TypeCount: e.table.TypeCount(),
	}
}

// Restore replaces the engine's particle and rule state wholesale from
// a snapshot. Reports false on a rule-matrix size mismatch (particles
// are restored regardless; the store resizes itself to the buffer).
func (e *Engine) Restore(s *Snapshot) bool {
	e.store.Import(s.Particles)
	return e.table.Import(s.Rules)
}
