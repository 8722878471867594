package spatial

// Point is a positional reference into the particle store. The tree
// never owns particle data; it is invalid as soon as positions change
// and must be rebuilt.
type Point struct {
	Index int
	X, Y  float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func (r Rect) intersects(o Rect) bool {
	return r.X < o.X+o.Width && r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height && r.Y+r.Height > o.Y
}

// Region is the query shape contract: a bounding rectangle for
// broad-phase pruning plus an exact inclusion test.
type Region interface {
	Bounds() Rect
	Contains(x, y float64) bool
}

// RectRegion queries an axis-aligned box.
type RectRegion struct{ Rect }

func (r RectRegion) Bounds() Rect               { return r.Rect }
func (r RectRegion) Contains(x, y float64) bool { return r.contains(x, y) }

// CircleRegion queries a disc; its bounds are the circumscribing box.
type CircleRegion struct {
	X, Y, Radius float64
}

func (c CircleRegion) Bounds() Rect {
	return Rect{X: c.X - c.Radius, Y: c.Y - c.Radius, Width: 2 * c.Radius, Height: 2 * c.Radius}
}

func (c CircleRegion) Contains(x, y float64) bool {
	dx := x - c.X
	dy := y - c.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

const (
	// Children are laid out at child+0..child+3 in NW, NE, SW, SE
	// order. A point on a split line belongs to the higher-index side
	// (x >= midX, y >= midY), for insert and descent alike.
	childNW = 0
	childNE = 1
	childSW = 2
	childSE = 3

	noChild = -1
)

type node struct {
	bounds Rect
	points []Point
	child  int // arena index of first child, noChild while leaf
	depth  int
}

// Quadtree subdivides the world bounds for sublinear region queries.
// Nodes live in a flat arena and reference children by index, so Clear
// is a length reset rather than a tree teardown. Rebuilt from scratch
// every physics step.
type Quadtree struct {
	bounds   Rect
	capacity int
	maxDepth int
	nodes    []node
	free     [][]Point // recycled point slices, keyed by nothing: plain stack
}

// NewQuadtree creates a tree covering bounds. capacity is the leaf
// point capacity before subdivision; maxDepth bounds recursion so
// coincident points degrade to one fat leaf instead of infinite splits.
func NewQuadtree(bounds Rect, capacity, maxDepth int) *Quadtree {
	if capacity < 1 {
		capacity = 1
	}
	if maxDepth < 1 {
		maxDepth = 1
	}
	q := &Quadtree{bounds: bounds, capacity: capacity, maxDepth: maxDepth}
	q.Clear()
	return q
}

// Clear resets the tree to a single empty leaf over the world bounds.
// Node and point storage is recycled, not freed.
func (q *Quadtree) Clear() {
	for i := range q.nodes {
		if q.nodes[i].points != nil {
			q.free = append(q.free, q.nodes[i].points[:0])
			q.nodes[i].points = nil
		}
	}
	q.nodes = q.nodes[:0]
	q.nodes = append(q.nodes, node{bounds: q.bounds, points: q.takePoints(), child: noChild})
}

// SetBounds replaces the world bounds and clears the tree.
func (q *Quadtree) SetBounds(bounds Rect) {
	q.bounds = bounds
	q.Clear()
}

// Bounds returns the root bounds.
func (q *Quadtree) Bounds() Rect { return q.bounds }

func (q *Quadtree) takePoints() []Point {
	if n := len(q.free); n > 0 {
		p := q.free[n-1]
		q.free = q.free[:n-1]
		return p
	}
	return make([]Point, 0, q.capacity)
}

// Insert adds a point reference. Points outside the root bounds are
// dropped silently.
func (q *Quadtree) Insert(p Point) {
	if !q.bounds.contains(p.X, p.Y) {
		return
	}
	idx := 0
	for {
		n := &q.nodes[idx]
		if n.child != noChild {
			idx = n.child + q.childFor(n.bounds, p.X, p.Y)
			continue
		}
		if len(n.points) < q.capacity || n.depth >= q.maxDepth {
			n.points = append(n.points, p)
			return
		}
		q.subdivide(idx)
		// Re-read after subdivide: the arena may have been regrown.
		idx = q.nodes[idx].child + q.childFor(q.nodes[idx].bounds, p.X, p.Y)
	}
}

func (q *Quadtree) childFor(b Rect, x, y float64) int {
	midX := b.X + b.Width/2
	midY := b.Y + b.Height/2
	c := 0
	if x >= midX {
		c |= 1
	}
	if y >= midY {
		c |= 2
	}
	return c
}

func (q *Quadtree) subdivide(idx int) {
	b := q.nodes[idx].bounds
	depth := q.nodes[idx].depth
	hw, hh := b.Width/2, b.Height/2

	first := len(q.nodes)
	q.nodes = append(q.nodes,
		node{bounds: Rect{b.X, b.Y, hw, hh}, points: q.takePoints(), child: noChild, depth: depth + 1},
		node{bounds: Rect{b.X + hw, b.Y, hw, hh}, points: q.takePoints(), child: noChild, depth: depth + 1},
		node{bounds: Rect{b.X, b.Y + hh, hw, hh}, points: q.takePoints(), child: noChild, depth: depth + 1},
		node{bounds: Rect{b.X + hw, b.Y + hh, hw, hh}, points: q.takePoints(), child: noChild, depth: depth + 1},
	)

	n := &q.nodes[idx]
	n.child = first
	for _, p := range n.points {
		ci := first + q.childFor(n.bounds, p.X, p.Y)
		q.nodes[ci].points = append(q.nodes[ci].points, p)
	}
	q.free = append(q.free, n.points[:0])
	n.points = nil
}

// Query appends every stored point matched by region to dst and
// returns it. Order is unspecified. An empty tree yields dst unchanged.
func (q *Quadtree) Query(region Region, dst []Point) []Point {
	return q.queryNode(0, region, region.Bounds(), dst)
}

func (q *Quadtree) queryNode(idx int, region Region, broad Rect, dst []Point) []Point {
	n := &q.nodes[idx]
	if !n.bounds.intersects(broad) {
		return dst
	}
	if n.child != noChild {
		for c := 0; c < 4; c++ {
			dst = q.queryNode(n.child+c, region, broad, dst)
		}
		return dst
	}
	for _, p := range n.points {
		if region.Contains(p.X, p.Y) {
			dst = append(dst, p)
		}
	}
	return dst
}

// Len reports how many points the tree currently holds.
func (q *Quadtree) Len() int {
	total := 0
	for i := range q.nodes {
		total += len(q.nodes[i].points)
	}
	return total
}
