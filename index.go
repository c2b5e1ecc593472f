package imagemap

// SpatialIndex answers nearest-point queries over a fixed set of layout
// positions. It is read-only after construction; rebuild it whenever any
// position changes.
//
// With three or more distinct, non-collinear positions the index walks the
// Delaunay graph greedily, which reaches the nearest point because every
// non-nearest vertex has a Delaunay neighbor closer to the query. Smaller
// or collinear inputs, and meshes that fail validation, fall back to a
// linear scan.
type SpatialIndex struct {
	points    [][2]float64
	tri       *triangulation
	neighbors [][]int
	entry     int // a vertex present in the triangulation
}

// BuildIndex indexes the positions of points. It never returns nil; an
// index over zero points refuses every query.
func BuildIndex(points []LayoutPoint) *SpatialIndex {
	ix := &SpatialIndex{points: toCoordinatePairs(points)}
	tri, ok := triangulate(ix.points)
	if !ok {
		return ix
	}
	ix.tri = tri
	ix.neighbors = tri.neighbors()
	ix.entry = tri.triangles[0]
	return ix
}

// Len returns the number of indexed points.
func (ix *SpatialIndex) Len() int {
	ix.mustBeBuilt()
	return len(ix.points)
}

// Triangulated reports whether queries use the Delaunay walk rather than a
// linear scan.
func (ix *SpatialIndex) Triangulated() bool {
	ix.mustBeBuilt()
	return ix.tri != nil
}

// Position returns the indexed position of point i.
func (ix *SpatialIndex) Position(i int) Vec2 {
	ix.mustBeBuilt()
	return Vec2{X: ix.points[i][0], Y: ix.points[i][1]}
}

// Nearest returns the index of the point closest to (x, y). It reports
// false when the index is empty.
func (ix *SpatialIndex) Nearest(x, y float64) (int, bool) {
	return ix.NearestFrom(x, y, -1)
}

// NearestFrom is like Nearest but starts the walk at point start, typically
// the previous answer, which makes queries from a moving pointer cheap.
// Out-of-range starts are ignored.
func (ix *SpatialIndex) NearestFrom(x, y float64, start int) (int, bool) {
	ix.mustBeBuilt()
	if len(ix.points) == 0 {
		return -1, false
	}
	if ix.tri == nil {
		return ix.scan(x, y), true
	}

	cur := ix.entry
	if start >= 0 && start < len(ix.neighbors) && len(ix.neighbors[start]) > 0 {
		cur = start
	}
	best := ix.dist2(cur, x, y)
	for {
		next := -1
		for _, n := range ix.neighbors[cur] {
			if d := ix.dist2(n, x, y); d < best {
				best = d
				next = n
			}
		}
		if next < 0 {
			return cur, true
		}
		cur = next
	}
}

func (ix *SpatialIndex) scan(x, y float64) int {
	best := 0
	bestDist := ix.dist2(0, x, y)
	for i := 1; i < len(ix.points); i++ {
		if d := ix.dist2(i, x, y); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func (ix *SpatialIndex) dist2(i int, x, y float64) float64 {
	dx := ix.points[i][0] - x
	dy := ix.points[i][1] - y
	return dx*dx + dy*dy
}

// mustBeBuilt panics on a nil index: querying before the first layout pass
// is a bug in the caller, and any answer would be misleading.
func (ix *SpatialIndex) mustBeBuilt() {
	if ix == nil {
		panic("imagemap: spatial index queried before it was built")
	}
}
