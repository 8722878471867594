package particle

import (
	"errors"
	"fmt"
	"math"
)

// InfiniteLifespan marks a particle that never expires from age.
var InfiniteLifespan = math.Inf(1)

// ErrCapacity is returned by Create when the store is full and the
// free-list is empty. Callers decide whether to drop or retry later.
var ErrCapacity = errors.New("particle: store at capacity")

// Store owns all per-particle state in parallel arrays. Index is
// identity: stable while a particle is active, recycled after removal.
// The store knows nothing about rules or forces.
type Store struct {
	X, Y     []float64
	VX, VY   []float64
	AX, AY   []float64
	PrevX    []float64
	PrevY    []float64
	Mass     []float64
	Size     []float64
	Type     []int
	Active   []bool
	Lifespan []float64
	Props    [4][]float64

	count     int // high-water mark of ever-used slots, not the active count
	active    int
	capacity  int
	typeCount int
	freeList  []int
}

// Params describes a particle to create. Zero Mass defaults to 1 and
// zero Lifespan defaults to infinite.
type Params struct {
	X, Y     float64
	VX, VY   float64
	Mass     float64
	Size     float64
	Type     int
	Lifespan float64
	Props    [4]float64
}

// Update carries optional field overrides for UpdateParticle. Nil
// fields are left untouched.
type Update struct {
	X, Y     *float64
	VX, VY   *float64
	Mass     *float64
	Size     *float64
	Type     *int
	Lifespan *float64
}

// Snapshot is a read-only copy of one particle row.
type Snapshot struct {
	Index    int
	X, Y     float64
	VX, VY   float64
	AX, AY   float64
	Mass     float64
	Size     float64
	Type     int
	Lifespan float64
	Props    [4]float64
}

// NewStore creates a store for up to capacity particles with types in
// [0, typeCount). Non-positive arguments are programmer error.
func NewStore(capacity, typeCount int) *Store {
	if capacity <= 0 {
		panic(fmt.Sprintf("particle: non-positive capacity %d", capacity))
	}
	if typeCount <= 0 {
		panic(fmt.Sprintf("particle: non-positive type count %d", typeCount))
	}
	s := &Store{capacity: capacity, typeCount: typeCount}
	s.alloc()
	return s
}

func (s *Store) alloc() {
	n := s.capacity
	s.X = make([]float64, n)
	s.Y = make([]float64, n)
	s.VX = make([]float64, n)
	s.VY = make([]float64, n)
	s.AX = make([]float64, n)
	s.AY = make([]float64, n)
	s.PrevX = make([]float64, n)
	s.PrevY = make([]float64, n)
	s.Mass = make([]float64, n)
	s.Size = make([]float64, n)
	s.Type = make([]int, n)
	s.Active = make([]bool, n)
	s.Lifespan = make([]float64, n)
	for i := range s.Props {
		s.Props[i] = make([]float64, n)
	}
	s.freeList = s.freeList[:0]
	s.count = 0
	s.active = 0
}

// Capacity returns the maximum number of particles the store can hold.
func (s *Store) Capacity() int { return s.capacity }

// TypeCount returns the number of particle types the store accepts.
func (s *Store) TypeCount() int { return s.typeCount }

// Count returns the high-water mark of ever-used slots.
func (s *Store) Count() int { return s.count }

// ActiveCount returns the number of currently active particles.
func (s *Store) ActiveCount() int { return s.active }

// Reset reallocates all arrays for the given capacity and clears the
// free-list. All existing particles are discarded.
func (s *Store) Reset(capacity int) {
	if capacity <= 0 {
		panic(fmt.Sprintf("particle: non-positive capacity %d", capacity))
	}
	s.capacity = capacity
	s.alloc()
}

// Create allocates a particle slot, preferring recycled indices. It
// returns ErrCapacity when no slot is free; the store never grows.
func (s *Store) Create(p Params) (int, error) {
	var idx int
	switch {
	case len(s.freeList) > 0:
		idx = s.freeList[len(s.freeList)-1]
		s.freeList = s.freeList[:len(s.freeList)-1]
	case s.count < s.capacity:
		idx = s.count
		s.count++
	default:
		return -1, ErrCapacity
	}

	if p.Mass == 0 {
		p.Mass = 1
	}
	if p.Type < 0 || p.Type >= s.typeCount {
		p.Type = 0
	}
	if p.Lifespan == 0 {
		p.Lifespan = InfiniteLifespan
	}

	s.X[idx], s.Y[idx] = p.X, p.Y
	s.VX[idx], s.VY[idx] = p.VX, p.VY
	s.AX[idx], s.AY[idx] = 0, 0
	s.PrevX[idx], s.PrevY[idx] = p.X, p.Y
	s.Mass[idx] = p.Mass
	s.Size[idx] = p.Size
	s.Type[idx] = p.Type
	s.Lifespan[idx] = p.Lifespan
	for i := range s.Props {
		s.Props[i][idx] = p.Props[i]
	}
	s.Active[idx] = true
	s.active++
	return idx, nil
}

// CreateBatch creates up to n particles from the generator, stopping
// early on capacity exhaustion. The returned indices may be fewer than
// requested.
func (s *Store) CreateBatch(n int, gen func(i int) Params) []int {
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		idx, err := s.Create(gen(i))
		if err != nil {
			break
		}
		indices = append(indices, idx)
	}
	return indices
}

// Remove deactivates a particle and returns its index to the free-list.
// It reports false for out-of-range or already-inactive indices.
func (s *Store) Remove(index int) bool {
	if index < 0 || index >= s.count || !s.Active[index] {
		return false
	}
	s.Active[index] = false
	s.active--
	s.freeList = append(s.freeList, index)
	return true
}

// RemoveByType removes every active particle of the given type and
// returns how many were removed.
func (s *Store) RemoveByType(t int) int {
	removed := 0
	for i := 0; i < s.count; i++ {
		if s.Active[i] && s.Type[i] == t {
			if s.Remove(i) {
				removed++
			}
		}
	}
	return removed
}

// UpdateParticle applies the non-nil fields of u to an active particle.
func (s *Store) UpdateParticle(index int, u Update) bool {
	if index < 0 || index >= s.count || !s.Active[index] {
		return false
	}
	if u.X != nil {
		s.X[index] = *u.X
	}
	if u.Y != nil {
		s.Y[index] = *u.Y
	}
	if u.VX != nil {
		s.VX[index] = *u.VX
	}
	if u.VY != nil {
		s.VY[index] = *u.VY
	}
	if u.Mass != nil && *u.Mass > 0 {
		s.Mass[index] = *u.Mass
	}
	if u.Size != nil {
		s.Size[index] = *u.Size
	}
	if u.Type != nil && *u.Type >= 0 && *u.Type < s.typeCount {
		s.Type[index] = *u.Type
	}
	if u.Lifespan != nil {
		s.Lifespan[index] = *u.Lifespan
	}
	return true
}

// GetParticle returns a snapshot of an active particle, or false.
func (s *Store) GetParticle(index int) (Snapshot, bool) {
	if index < 0 || index >= s.count || !s.Active[index] {
		return Snapshot{}, false
	}
	snap := Snapshot{
		Index: index,
		X:     s.X[index], Y: s.Y[index],
		VX: s.VX[index], VY: s.VY[index],
		AX: s.AX[index], AY: s.AY[index],
		Mass:     s.Mass[index],
		Size:     s.Size[index],
		Type:     s.Type[index],
		Lifespan: s.Lifespan[index],
	}
	for i := range s.Props {
		snap.Props[i] = s.Props[i][index]
	}
	return snap, true
}

// ApplyForce adds an instantaneous acceleration contribution f/m to an
// active particle.
func (s *Store) ApplyForce(index int, fx, fy float64) bool {
	if index < 0 || index >= s.count || !s.Active[index] {
		return false
	}
	s.AX[index] += fx / s.Mass[index]
	s.AY[index] += fy / s.Mass[index]
	return true
}

// FindInRadius scans all active particles and returns the indices
// within radius r of (x, y), optionally restricted to one type
// (typeFilter < 0 matches all). Linear scan: fine for ad-hoc queries,
// the force loop uses the spatial index instead.
func (s *Store) FindInRadius(x, y, r float64, typeFilter int) []int {
	r2 := r * r
	var out []int
	for i := 0; i < s.count; i++ {
		if !s.Active[i] {
			continue
		}
		if typeFilter >= 0 && s.Type[i] != typeFilter {
			continue
		}
		dx := s.X[i] - x
		dy := s.Y[i] - y
		if dx*dx+dy*dy <= r2 {
			out = append(out, i)
		}
	}
	return out
}

// UpdateLifespans decrements finite lifespans by dt and removes
// particles whose lifespan reaches zero. Returns the removal count.
func (s *Store) UpdateLifespans(dt float64) int {
	removed := 0
	for i := 0; i < s.count; i++ {
		if !s.Active[i] || math.IsInf(s.Lifespan[i], 1) {
			continue
		}
		s.Lifespan[i] -= dt
		if s.Lifespan[i] <= 0 {
			if s.Remove(i) {
				removed++
			}
		}
	}
	return removed
}

// ClearAccelerations zeroes the acceleration arrays for every slot up
// to the high-water mark. Run once at the start of each force pass.
func (s *Store) ClearAccelerations() {
	for i := 0; i < s.count; i++ {
		s.AX[i] = 0
		s.AY[i] = 0
	}
}
