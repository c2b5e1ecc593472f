package imagemap

import (
	"math"

	"github.com/fogleman/delaunay"
)

// triangulation wraps a delaunator-style mesh: triangle t owns half-edges
// 3t, 3t+1 and 3t+2, half-edge e runs from triangles[e] to
// triangles[nextHalfedge(e)], and halfedges[e] is the twin in the
// neighboring triangle or -1 on the hull.
type triangulation struct {
	points    []delaunay.Point
	triangles []int
	halfedges []int
}

// triangulate returns the Delaunay mesh of points, or false when none
// exists: fewer than three distinct points, collinear or non-finite input,
// or a mesh that fails the structural check in valid.
func triangulate(points [][2]float64) (*triangulation, bool) {
	if len(points) < 3 {
		return nil, false
	}
	input := make([]delaunay.Point, len(points))
	for i, p := range points {
		if !finite(p[0]) || !finite(p[1]) {
			return nil, false
		}
		input[i] = delaunay.Point{X: p[0], Y: p[1]}
	}
	if coincident(points) {
		return nil, false
	}
	d, err := delaunay.Triangulate(input)
	if err != nil || len(d.Triangles) == 0 {
		return nil, false
	}
	t := &triangulation{points: input, triangles: d.Triangles, halfedges: d.Halfedges}
	if !t.valid() {
		return nil, false
	}
	return t, true
}

// coincident reports whether every point equals the first. The library
// cannot pick a second seed for such input.
func coincident(points [][2]float64) bool {
	for _, p := range points[1:] {
		if p != points[0] {
			return false
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// valid checks that the mesh is a planar triangulation of every distinct
// input point: half-edges pair up, the triangle count matches Euler's
// formula for the hull size, and each point missing from the mesh is a
// duplicate of one that is present.
func (t *triangulation) valid() bool {
	if len(t.halfedges) != len(t.triangles) || len(t.triangles)%3 != 0 {
		return false
	}
	present := make([]bool, len(t.points))
	vertices := 0
	for _, v := range t.triangles {
		if !present[v] {
			present[v] = true
			vertices++
		}
	}
	hull := 0
	for e, h := range t.halfedges {
		if h < 0 {
			hull++
			continue
		}
		if t.halfedges[h] != e || t.triangles[e] != t.triangles[nextHalfedge(h)] {
			return false
		}
	}
	if t.len() != 2*vertices-2-hull {
		return false
	}
	for i, ok := range present {
		if ok {
			continue
		}
		twin := false
		for j, q := range t.points {
			if present[j] && math.Abs(q.X-t.points[i].X) <= 1e-9 && math.Abs(q.Y-t.points[i].Y) <= 1e-9 {
				twin = true
				break
			}
		}
		if !twin {
			return false
		}
	}
	return true
}

func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

func (t *triangulation) len() int {
	return len(t.triangles) / 3
}

// neighbors returns, for every input point, the points it shares a mesh
// edge with. Duplicates left out of the mesh have none.
func (t *triangulation) neighbors() [][]int {
	adj := make([][]int, len(t.points))
	for _, e := range t.edges() {
		adj[e[0]] = append(adj[e[0]], e[1])
		adj[e[1]] = append(adj[e[1]], e[0])
	}
	return adj
}

// edges returns every mesh edge once. Interior edges are visited from both
// sides; only the half-edge with the smaller id is kept.
func (t *triangulation) edges() [][2]int {
	var out [][2]int
	for e := range t.triangles {
		if h := t.halfedges[e]; h >= 0 && h < e {
			continue
		}
		out = append(out, [2]int{t.triangles[e], t.triangles[nextHalfedge(e)]})
	}
	return out
}

func (t *triangulation) circumcenter(tri int) delaunay.Point {
	a := t.points[t.triangles[3*tri]]
	b := t.points[t.triangles[3*tri+1]]
	c := t.points[t.triangles[3*tri+2]]

	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	bl := bx*bx + by*by
	cl := cx*cx + cy*cy
	d := 2 * (bx*cy - by*cx)
	if d == 0 {
		return delaunay.Point{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
	}
	return delaunay.Point{
		X: a.X + (cy*bl-by*cl)/d,
		Y: a.Y + (bx*cl-cx*bl)/d,
	}
}
