package imagemap

import "math"

// Segment is a line segment in screen pixels.
type Segment struct {
	A, B Vec2
}

// Edges returns the triangulation edges for the debug overlay. It is empty
// when the index fell back to a linear scan.
func (ix *SpatialIndex) Edges() []Segment {
	ix.mustBeBuilt()
	if ix.tri == nil {
		return nil
	}
	pairs := ix.tri.edges()
	out := make([]Segment, len(pairs))
	for i, e := range pairs {
		out[i] = Segment{A: ix.Position(e[0]), B: ix.Position(e[1])}
	}
	return out
}

// VoronoiEdges returns the edges of the Voronoi diagram dual to the
// triangulation, clipped to bounds. Cells on the convex hull extend to the
// bounds along rays perpendicular to the hull edge.
func (ix *SpatialIndex) VoronoiEdges(bounds Rect) []Segment {
	ix.mustBeBuilt()
	t := ix.tri
	if t == nil {
		return nil
	}

	centers := make([]Vec2, t.len())
	for i := range centers {
		c := t.circumcenter(i)
		centers[i] = Vec2{X: c.X, Y: c.Y}
	}

	// Long enough to leave any bounds from any circumcenter.
	far := 4 * (bounds.Width + bounds.Height + math.Abs(bounds.X) + math.Abs(bounds.Y) + 1)

	var out []Segment
	for e := range t.triangles {
		h := t.halfedges[e]
		if h >= 0 && h < e {
			continue
		}
		a := centers[e/3]
		var b Vec2
		if h >= 0 {
			b = centers[h/3]
		} else {
			// Hull edge: the ray leaves on the side away from the
			// triangle's third vertex.
			from := t.points[t.triangles[e]]
			to := t.points[t.triangles[nextHalfedge(e)]]
			opp := t.points[t.triangles[nextHalfedge(nextHalfedge(e))]]
			dx, dy := to.X-from.X, to.Y-from.Y
			l := math.Hypot(dx, dy)
			if l == 0 {
				continue
			}
			if (opp.X-from.X)*dy-(opp.Y-from.Y)*dx > 0 {
				dx, dy = -dx, -dy
			}
			b = Vec2{X: a.X + dy/l*far, Y: a.Y - dx/l*far}
		}
		if s, ok := clipSegment(Segment{A: a, B: b}, bounds); ok {
			out = append(out, s)
		}
	}
	return out
}

// clipSegment clips s to r with the Liang-Barsky algorithm.
func clipSegment(s Segment, r Rect) (Segment, bool) {
	dx := s.B.X - s.A.X
	dy := s.B.Y - s.A.Y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, s.A.X - r.X},
		{dx, r.Right() - s.A.X},
		{-dy, s.A.Y - r.Y},
		{dy, r.Bottom() - s.A.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return Segment{}, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return Segment{}, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return Segment{}, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return Segment{
		A: Vec2{X: s.A.X + t0*dx, Y: s.A.Y + t0*dy},
		B: Vec2{X: s.A.X + t1*dx, Y: s.A.Y + t1*dy},
	}, true
}
