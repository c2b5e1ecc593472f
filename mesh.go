package imagemap

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// circleSegments is the number of fan triangles used for a full circle.
const circleSegments = 48

// meshBuilder accumulates untextured triangles for one DrawTriangles call.
// Buffers are reused across frames (high-water mark, never shrinks).
type meshBuilder struct {
	verts []ebiten.Vertex
	inds  []uint16
}

func (b *meshBuilder) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

func (b *meshBuilder) empty() bool {
	return len(b.inds) == 0
}

// vertex appends one vertex mapped to the center of the white pixel and
// returns its index. Colors are premultiplied here.
func (b *meshBuilder) vertex(x, y float64, c Color) uint16 {
	b.verts = append(b.verts, ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R * c.A),
		ColorG: float32(c.G * c.A),
		ColorB: float32(c.B * c.A),
		ColorA: float32(c.A),
	})
	return uint16(len(b.verts) - 1)
}

// polygon appends a filled convex polygon as a fan around points[0].
func (b *meshBuilder) polygon(points []Vec2, c Color) {
	verts, inds := buildPolygonFan(points, c)
	base := uint16(len(b.verts))
	b.verts = append(b.verts, verts...)
	for _, i := range inds {
		b.inds = append(b.inds, base+i)
	}
}

// circle appends a filled circle.
func (b *meshBuilder) circle(center Vec2, radius float64, c Color) {
	if radius <= 0 {
		return
	}
	pts := make([]Vec2, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = Vec2{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	b.polygon(pts, c)
}

// segment appends a line from p to q as a quad of the given width.
func (b *meshBuilder) segment(p, q Vec2, width float64, c Color) {
	nx, ny := perpendicular(p, q)
	hw := width / 2
	v0 := b.vertex(p.X+nx*hw, p.Y+ny*hw, c)
	v1 := b.vertex(p.X-nx*hw, p.Y-ny*hw, c)
	v2 := b.vertex(q.X-nx*hw, q.Y-ny*hw, c)
	v3 := b.vertex(q.X+nx*hw, q.Y+ny*hw, c)
	b.inds = append(b.inds, v0, v1, v2, v0, v2, v3)
}

// dashedCircle appends a circle outline split into dashes of roughly dash
// pixels separated by gaps of the same length.
func (b *meshBuilder) dashedCircle(center Vec2, radius, width, dash float64, c Color) {
	if radius <= 0 || dash <= 0 {
		return
	}
	n := int(math.Round(math.Pi * radius / dash)) // dash+gap pairs
	if n < 2 {
		n = 2
	}
	step := 2 * math.Pi / float64(2*n)
	at := func(a float64) Vec2 {
		return Vec2{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	for i := 0; i < n; i++ {
		a0 := float64(2*i) * step
		b.segment(at(a0), at(a0+step), width, c)
	}
}

// draw submits the accumulated triangles to dst.
func (b *meshBuilder) draw(dst *ebiten.Image) {
	if b.empty() {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(b.verts, b.inds, ensureWhitePixel(), op)
}

// buildPolygonFan triangulates a convex polygon as a fan around vertex 0.
func buildPolygonFan(points []Vec2, c Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}

	verts := make([]ebiten.Vertex, n)
	inds := make([]uint16, (n-2)*3)
	for i, p := range points {
		verts[i] = ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: float32(c.R * c.A),
			ColorG: float32(c.G * c.A),
			ColorB: float32(c.B * c.A),
			ColorA: float32(c.A),
		}
	}

	// Fan triangulation: vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16(i + 2)
	}
	return verts, inds
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

// --- White pixel singleton (no sync.Once: drawing is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
