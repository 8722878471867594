package spatial

import (
	"math/rand"
	"testing"
)

func worldTree() *Quadtree {
	return NewQuadtree(Rect{0, 0, 100, 100}, 4, 6)
}

func TestQueryEmptyTree(t *testing.T) {
	q := worldTree()
	got := q.Query(RectRegion{Rect{0, 0, 100, 100}}, nil)
	if len(got) != 0 {
		t.Errorf("empty tree query returned %d points", len(got))
	}
}

func TestClearThenQueryIsEmpty(t *testing.T) {
	q := worldTree()
	for i := 0; i < 50; i++ {
		q.Insert(Point{Index: i, X: float64(i * 2), Y: float64(i)})
	}
	q.Clear()

	regions := []Region{
		RectRegion{Rect{0, 0, 100, 100}},
		CircleRegion{X: 50, Y: 50, Radius: 200},
		RectRegion{Rect{-10, -10, 5, 5}},
	}
	for _, r := range regions {
		if got := q.Query(r, nil); len(got) != 0 {
			t.Errorf("cleared tree returned %d points", len(got))
		}
	}
	if q.Len() != 0 {
		t.Errorf("cleared tree Len = %d", q.Len())
	}
}

func TestInsertOutsideBoundsIsDropped(t *testing.T) {
	q := worldTree()
	q.Insert(Point{Index: 0, X: -1, Y: 50})
	q.Insert(Point{Index: 1, X: 50, Y: 101})
	q.Insert(Point{Index: 2, X: 100, Y: 50}) // right edge is exclusive
	if q.Len() != 0 {
		t.Errorf("expected all out-of-bounds points dropped, Len = %d", q.Len())
	}
}

func TestQueryMatchesBruteForce(t *testing.T) {
	q := worldTree()
	rng := rand.New(rand.NewSource(7))

	points := make([]Point, 500)
	for i := range points {
		points[i] = Point{Index: i, X: rng.Float64() * 100, Y: rng.Float64() * 100}
		q.Insert(points[i])
	}

	regions := []Region{
		CircleRegion{X: 50, Y: 50, Radius: 10},
		CircleRegion{X: 0, Y: 0, Radius: 30},
		RectRegion{Rect{20, 20, 15, 40}},
		CircleRegion{X: 99, Y: 99, Radius: 5},
	}

	for _, region := range regions {
		want := make(map[int]bool)
		for _, p := range points {
			if region.Contains(p.X, p.Y) {
				want[p.Index] = true
			}
		}

		got := q.Query(region, nil)
		if len(got) != len(want) {
			t.Errorf("query returned %d points, brute force found %d", len(got), len(want))
		}
		seen := make(map[int]bool)
		for _, p := range got {
			if seen[p.Index] {
				t.Errorf("point %d returned twice", p.Index)
			}
			seen[p.Index] = true
			if !want[p.Index] {
				t.Errorf("point %d should not match region", p.Index)
			}
		}
	}
}

func TestBoundaryPointBelongsToOneChild(t *testing.T) {
	q := worldTree()
	// Force subdivision, then place points exactly on the split lines.
	for i := 0; i < 5; i++ {
		q.Insert(Point{Index: i, X: float64(i), Y: float64(i)})
	}
	q.Insert(Point{Index: 10, X: 50, Y: 50})
	q.Insert(Point{Index: 11, X: 50, Y: 10})
	q.Insert(Point{Index: 12, X: 10, Y: 50})

	got := q.Query(RectRegion{Rect{0, 0, 100, 100}}, nil)
	counts := make(map[int]int)
	for _, p := range got {
		counts[p.Index]++
	}
	for _, idx := range []int{10, 11, 12} {
		if counts[idx] != 1 {
			t.Errorf("split-line point %d returned %d times", idx, counts[idx])
		}
	}
}

func TestCoincidentPointsStopAtMaxDepth(t *testing.T) {
	q := NewQuadtree(Rect{0, 0, 64, 64}, 2, 3)
	// Far beyond capacity at a single position: must not recurse forever,
	// and every copy must survive.
	for i := 0; i < 100; i++ {
		q.Insert(Point{Index: i, X: 33.3, Y: 33.3})
	}
	got := q.Query(CircleRegion{X: 33.3, Y: 33.3, Radius: 1}, nil)
	if len(got) != 100 {
		t.Errorf("expected 100 coincident points, got %d", len(got))
	}
}

func TestSetBoundsClears(t *testing.T) {
	q := worldTree()
	q.Insert(Point{Index: 0, X: 10, Y: 10})
	q.SetBounds(Rect{0, 0, 10, 10})
	if q.Len() != 0 {
		t.Errorf("SetBounds should clear, Len = %d", q.Len())
	}
	q.Insert(Point{Index: 1, X: 5, Y: 5})
	if q.Len() != 1 {
		t.Errorf("insert after SetBounds failed, Len = %d", q.Len())
	}
}

func BenchmarkInsertAndQuery(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	points := make([]Point, 2000)
	for i := range points {
		points[i] = Point{Index: i, X: rng.Float64() * 100, Y: rng.Float64() * 100}
	}
	q := worldTree()
	var buf []Point

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Clear()
		for _, p := range points {
			q.Insert(p)
		}
		buf = q.Query(CircleRegion{X: 50, Y: 50, Radius: 20}, buf[:0])
	}
}
