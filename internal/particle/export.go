package particle

// Buffer is the wire form of a Store: a field-for-field copy of every
// array up to the high-water mark, no compression. It is what crosses
// the worker boundary and what run storage persists.
type Buffer struct {
	Capacity  int
	TypeCount int
	Count     int

	X, Y     []float64
	VX, VY   []float64
	PrevX    []float64
	PrevY    []float64
	Mass     []float64
	Size     []float64
	Type     []int
	Active   []bool
	Lifespan []float64
	Props    [4][]float64
}

// Export copies the store into a fresh Buffer. The store stays usable;
// the buffer shares nothing with it.
func (s *Store) Export() *Buffer {
	n := s.count
	b := &Buffer{
		Capacity:  s.capacity,
		TypeCount: s.typeCount,
		Count:     n,
		X:         append([]float64(nil), s.X[:n]...),
		Y:         append([]float64(nil), s.Y[:n]...),
		VX:        append([]float64(nil), s.VX[:n]...),
		VY:        append([]float64(nil), s.VY[:n]...),
		PrevX:     append([]float64(nil), s.PrevX[:n]...),
		PrevY:     append([]float64(nil), s.PrevY[:n]...),
		Mass:      append([]float64(nil), s.Mass[:n]...),
		Size:      append([]float64(nil), s.Size[:n]...),
		Type:      append([]int(nil), s.Type[:n]...),
		Active:    append([]bool(nil), s.Active[:n]...),
		Lifespan:  append([]float64(nil), s.Lifespan[:n]...),
	}
	for i := range s.Props {
		b.Props[i] = append([]float64(nil), s.Props[i][:n]...)
	}
	return b
}

// Import replaces the store's entire contents with the buffer,
// reallocating if the capacity differs and rebuilding the free-list
// from the active flags. The previous state is discarded wholesale.
func (s *Store) Import(b *Buffer) {
	if b.Capacity != s.capacity || b.TypeCount != s.typeCount {
		s.capacity = b.Capacity
		s.typeCount = b.TypeCount
		s.alloc()
	}
	n := b.Count
	copy(s.X, b.X[:n])
	copy(s.Y, b.Y[:n])
	copy(s.VX, b.VX[:n])
	copy(s.VY, b.VY[:n])
	copy(s.PrevX, b.PrevX[:n])
	copy(s.PrevY, b.PrevY[:n])
	copy(s.Mass, b.Mass[:n])
	copy(s.Size, b.Size[:n])
	copy(s.Type, b.Type[:n])
	copy(s.Active, b.Active[:n])
	copy(s.Lifespan, b.Lifespan[:n])
	for i := range s.Props {
		copy(s.Props[i], b.Props[i][:n])
	}

	s.count = n
	s.active = 0
	s.freeList = s.freeList[:0]
	for i := 0; i < n; i++ {
		if s.Active[i] {
			s.active++
		} else {
			s.freeList = append(s.freeList, i)
		}
	}
}
