package particle

import (
	"math"
	"testing"
)

func TestCreateRecyclesFreedSlot(t *testing.T) {
	s := NewStore(2, 1)

	a, err := s.Create(Params{X: 1})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	b, err := s.Create(Params{X: 2})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if a != 0 || b != 1 {
		t.Fatalf("expected indices 0,1 got %d,%d", a, b)
	}

	if _, err := s.Create(Params{}); err != ErrCapacity {
		t.Errorf("expected ErrCapacity, got %v", err)
	}

	if !s.Remove(0) {
		t.Fatal("remove(0) failed")
	}

	c, err := s.Create(Params{X: 3})
	if err != nil {
		t.Fatalf("create after remove failed: %v", err)
	}
	if c != 0 {
		t.Errorf("expected recycled index 0, got %d", c)
	}
	if s.ActiveCount() != 2 {
		t.Errorf("expected 2 active, got %d", s.ActiveCount())
	}
}

func TestRemoveInvalidIndex(t *testing.T) {
	s := NewStore(4, 1)
	idx, _ := s.Create(Params{})

	tests := []struct {
		name  string
		index int
		want  bool
	}{
		{"negative", -1, false},
		{"beyond count", 3, false},
		{"valid", idx, true},
		{"already removed", idx, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Remove(tt.index); got != tt.want {
				t.Errorf("Remove(%d) = %v, want %v", tt.index, got, tt.want)
			}
		})
	}
}

func TestCreateBatchStopsAtCapacity(t *testing.T) {
	s := NewStore(3, 1)
	got := s.CreateBatch(5, func(i int) Params {
		return Params{X: float64(i)}
	})
	if len(got) != 3 {
		t.Errorf("expected 3 created, got %d", len(got))
	}
}

func TestCreateDefaults(t *testing.T) {
	s := NewStore(1, 2)
	idx, err := s.Create(Params{Type: 5})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	snap, ok := s.GetParticle(idx)
	if !ok {
		t.Fatal("snapshot missing")
	}
	if snap.Mass != 1 {
		t.Errorf("zero mass should default to 1, got %f", snap.Mass)
	}
	if snap.Type != 0 {
		t.Errorf("out-of-range type should clamp to 0, got %d", snap.Type)
	}
	if !math.IsInf(snap.Lifespan, 1) {
		t.Errorf("zero lifespan should default to infinite, got %f", snap.Lifespan)
	}
}

func TestUpdateParticlePartialFields(t *testing.T) {
	s := NewStore(1, 2)
	idx, _ := s.Create(Params{X: 1, Y: 2, VX: 3})

	nx := 10.0
	nt := 1
	if !s.UpdateParticle(idx, Update{X: &nx, Type: &nt}) {
		t.Fatal("update failed")
	}

	snap, _ := s.GetParticle(idx)
	if snap.X != 10 {
		t.Errorf("X not updated: %f", snap.X)
	}
	if snap.Y != 2 || snap.VX != 3 {
		t.Error("unset fields must be retained")
	}
	if snap.Type != 1 {
		t.Errorf("type not updated: %d", snap.Type)
	}

	if s.UpdateParticle(99, Update{X: &nx}) {
		t.Error("update of invalid index should fail")
	}
}

func TestRemoveByType(t *testing.T) {
	s := NewStore(6, 3)
	for i := 0; i < 6; i++ {
		s.Create(Params{Type: i % 3})
	}
	if got := s.RemoveByType(1); got != 2 {
		t.Errorf("expected 2 removed, got %d", got)
	}
	if s.ActiveCount() != 4 {
		t.Errorf("expected 4 active, got %d", s.ActiveCount())
	}
}

func TestFindInRadius(t *testing.T) {
	s := NewStore(4, 2)
	s.Create(Params{X: 0, Y: 0, Type: 0})
	s.Create(Params{X: 3, Y: 4, Type: 1}) // distance 5
	s.Create(Params{X: 10, Y: 0, Type: 0})
	s.Create(Params{X: 1, Y: 1, Type: 1})

	all := s.FindInRadius(0, 0, 5, -1)
	if len(all) != 3 {
		t.Errorf("expected 3 in radius, got %d", len(all))
	}

	typed := s.FindInRadius(0, 0, 5, 1)
	if len(typed) != 2 {
		t.Errorf("expected 2 of type 1, got %d", len(typed))
	}
}

func TestUpdateLifespans(t *testing.T) {
	s := NewStore(3, 1)
	s.Create(Params{Lifespan: 0.5})
	s.Create(Params{Lifespan: 2.0})
	s.Create(Params{}) // infinite

	if removed := s.UpdateLifespans(1.0); removed != 1 {
		t.Errorf("expected 1 expired, got %d", removed)
	}
	if s.ActiveCount() != 2 {
		t.Errorf("expected 2 active, got %d", s.ActiveCount())
	}

	// The infinite particle must survive any amount of time.
	if removed := s.UpdateLifespans(1e12); removed != 1 {
		t.Errorf("expected only the finite particle to expire, got %d", removed)
	}
	if s.ActiveCount() != 1 {
		t.Errorf("expected 1 active, got %d", s.ActiveCount())
	}
}

func TestApplyForceDividesByMass(t *testing.T) {
	s := NewStore(1, 1)
	idx, _ := s.Create(Params{Mass: 2})
	s.ApplyForce(idx, 4, -2)
	snap, _ := s.GetParticle(idx)
	if snap.AX != 2 || snap.AY != -1 {
		t.Errorf("expected accel (2,-1), got (%f,%f)", snap.AX, snap.AY)
	}
}

func TestResetClearsEverything(t *testing.T) {
	s := NewStore(2, 1)
	s.Create(Params{})
	s.Remove(0)
	s.Reset(5)

	if s.Capacity() != 5 || s.Count() != 0 || s.ActiveCount() != 0 {
		t.Errorf("reset state wrong: cap=%d count=%d active=%d",
			s.Capacity(), s.Count(), s.ActiveCount())
	}
	idx, err := s.Create(Params{})
	if err != nil || idx != 0 {
		t.Errorf("fresh store should allocate index 0, got %d (%v)", idx, err)
	}
}

func TestNewStorePanicsOnBadCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-positive capacity")
		}
	}()
	NewStore(0, 1)
}
