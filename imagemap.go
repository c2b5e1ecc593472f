package imagemap

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default stroke color of the hint circle.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// withAlpha returns a copy of c with its alpha multiplied by a.
func (c Color) withAlpha(a float64) Color {
	c.A *= a
	return c
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

// Vec2 is a 2D vector in screen pixels, used for positions, offsets and
// force accumulation.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in screen pixels. The coordinate system
// has its origin at the top-left, with Y increasing downward. A Rect with
// zero width or height is valid and describes a line or a single point.
type Rect struct {
	X, Y, Width, Height float64
}

// RectFromBounds builds a Rect from its (left, top, right, bottom) edges.
// Edges given in the wrong order are swapped.
func RectFromBounds(left, top, right, bottom float64) Rect {
	if right < left {
		left, right = right, left
	}
	if bottom < top {
		top, bottom = bottom, top
	}
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Clamp returns (x, y) moved to the nearest point inside the rectangle.
func (r Rect) Clamp(x, y float64) (float64, float64) {
	return clamp(x, r.X, r.Right()), clamp(y, r.Y, r.Bottom())
}

// Intersect returns the overlap of r and other. The result has zero size
// when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := math.Max(r.X, other.X)
	top := math.Max(r.Y, other.Y)
	right := math.Min(r.Right(), other.Right())
	bottom := math.Min(r.Bottom(), other.Bottom())
	if right < left {
		right = left
	}
	if bottom < top {
		bottom = top
	}
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(math.Min(v, hi), lo)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
