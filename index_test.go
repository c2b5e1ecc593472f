package imagemap

import (
	"math/rand"
	"testing"
)

func pointsAt(coords ...[2]float64) []LayoutPoint {
	pts := make([]LayoutPoint, len(coords))
	for i, c := range coords {
		pts[i] = LayoutPoint{Position: Vec2{X: c[0], Y: c[1]}, ImageIndex: i}
	}
	return pts
}

func bruteNearest(pts []LayoutPoint, x, y float64) float64 {
	best := -1.0
	for _, p := range pts {
		dx, dy := p.Position.X-x, p.Position.Y-y
		if d := dx*dx + dy*dy; best < 0 || d < best {
			best = d
		}
	}
	return best
}

func TestNearestTriangle(t *testing.T) {
	ix := BuildIndex(pointsAt([2]float64{0, 0}, [2]float64{100, 0}, [2]float64{50, 100}))
	if !ix.Triangulated() {
		t.Fatal("three non-collinear points should triangulate")
	}
	tests := []struct {
		x, y float64
		want int
	}{
		{10, 10, 0},
		{90, 5, 1},
		{50, 90, 2},
		{-500, -500, 0},
		{1000, 0, 1},
	}
	for _, tt := range tests {
		got, ok := ix.Nearest(tt.x, tt.y)
		if !ok || got != tt.want {
			t.Errorf("Nearest(%v, %v) = %d, %v; want %d", tt.x, tt.y, got, ok, tt.want)
		}
	}
}

func TestNearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pts := make([]LayoutPoint, 150)
	for i := range pts {
		pts[i] = LayoutPoint{Position: Vec2{X: rng.Float64() * 1000, Y: rng.Float64() * 800}}
	}
	ix := BuildIndex(pts)
	if !ix.Triangulated() {
		t.Fatal("random points should triangulate")
	}

	prev := -1
	for q := 0; q < 500; q++ {
		x, y := rng.Float64()*1200-100, rng.Float64()*1000-100
		got, ok := ix.NearestFrom(x, y, prev)
		if !ok {
			t.Fatal("NearestFrom reported empty index")
		}
		p := pts[got].Position
		dx, dy := p.X-x, p.Y-y
		if d, want := dx*dx+dy*dy, bruteNearest(pts, x, y); !approxEqual(d, want, 1e-9) {
			t.Fatalf("query (%v, %v): got point %d at dist2 %v, brute force %v", x, y, got, d, want)
		}
		prev = got
	}
}

func TestNearestFallbackScan(t *testing.T) {
	tests := []struct {
		name string
		pts  []LayoutPoint
	}{
		{"single", pointsAt([2]float64{5, 5})},
		{"pair", pointsAt([2]float64{0, 0}, [2]float64{100, 0})},
		{"collinear", pointsAt([2]float64{0, 0}, [2]float64{10, 10}, [2]float64{20, 20}, [2]float64{30, 30})},
		{"coincident", pointsAt([2]float64{7, 7}, [2]float64{7, 7}, [2]float64{7, 7})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := BuildIndex(tt.pts)
			if ix.Triangulated() {
				t.Fatal("degenerate input should not triangulate")
			}
			if ix.Len() != len(tt.pts) {
				t.Errorf("Len = %d, want %d", ix.Len(), len(tt.pts))
			}
			got, ok := ix.Nearest(21, 19)
			if !ok {
				t.Fatal("Nearest reported empty index")
			}
			p := tt.pts[got].Position
			dx, dy := p.X-21, p.Y-19
			if d := dx*dx + dy*dy; !approxEqual(d, bruteNearest(tt.pts, 21, 19), epsilon) {
				t.Errorf("Nearest = %d, not a nearest point", got)
			}
		})
	}
}

func TestNearestEmptyIndex(t *testing.T) {
	ix := BuildIndex(nil)
	if i, ok := ix.Nearest(0, 0); ok || i != -1 {
		t.Errorf("Nearest on empty index = %d, %v; want -1, false", i, ok)
	}
}

func TestNilIndexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("querying a nil index did not panic")
		}
	}()
	var ix *SpatialIndex
	ix.Nearest(0, 0)
}

func TestNearestFromIgnoresBadStart(t *testing.T) {
	ix := BuildIndex(pointsAt([2]float64{0, 0}, [2]float64{100, 0}, [2]float64{50, 100}))
	for _, start := range []int{-5, 3, 99} {
		if got, _ := ix.NearestFrom(95, 2, start); got != 1 {
			t.Errorf("NearestFrom start %d = %d, want 1", start, got)
		}
	}
}

func TestIndexPosition(t *testing.T) {
	ix := BuildIndex(pointsAt([2]float64{3, 4}, [2]float64{5, 6}))
	if p := ix.Position(1); p != (Vec2{X: 5, Y: 6}) {
		t.Errorf("Position(1) = %v", p)
	}
}

func TestNearestCocircularMatchesBruteForce(t *testing.T) {
	tests := []struct {
		name   string
		coords [][2]float64
	}{
		{"ring30", ring(30, 400, 300, 250)},
		{"hexagon with center", append(ring(6, 400, 300, 200), [2]float64{400, 300})},
		{"grid", grid(6, 5, 120)},
		{"two rings", append(ring(16, 400, 300, 100), ring(16, 400, 300, 220)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := pointsAt(tt.coords...)
			ix := BuildIndex(pts)
			rng := rand.New(rand.NewSource(11))
			prev := -1
			for q := 0; q < 3000; q++ {
				x, y := rng.Float64()*1000-100, rng.Float64()*800-100
				got, ok := ix.NearestFrom(x, y, prev)
				if !ok {
					t.Fatal("NearestFrom reported empty index")
				}
				p := pts[got].Position
				dx, dy := p.X-x, p.Y-y
				d, want := dx*dx+dy*dy, bruteNearest(pts, x, y)
				if d > want*(1+1e-9)+1e-9 {
					t.Fatalf("query (%v, %v): got point %d at dist2 %v, brute force %v", x, y, got, d, want)
				}
				prev = got
			}
		})
	}
}

func TestRingTriangulates(t *testing.T) {
	ix := BuildIndex(pointsAt(ring(30, 400, 300, 250)...))
	if !ix.Triangulated() {
		t.Fatal("cocircular points should triangulate")
	}
	// 30 hull vertices and no interior ones: n-2 triangles, 2n-3 edges.
	if n := len(ix.Edges()); n != 57 {
		t.Errorf("len(Edges) = %d, want 57", n)
	}
}
