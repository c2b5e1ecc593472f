package imagemap

import "math"

// DefaultRegionRadius is the radius given to a region whose input omits one.
const DefaultRegionRadius = 0.05

// Point is a location normalized to an image's own width and height. Both
// coordinates lie in [0, 1]. The zero Point is the image's top-left corner.
type Point struct {
	x, y float64
}

// NewPoint returns the normalized point (x, y). It fails with
// ErrCodeInvalidPoint when either coordinate is outside [0, 1] or NaN.
func NewPoint(x, y float64) (Point, error) {
	if !inUnit(x) {
		return Point{}, newError(ErrCodeInvalidPoint, "x out of bounds: %v", x)
	}
	if !inUnit(y) {
		return Point{}, newError(ErrCodeInvalidPoint, "y out of bounds: %v", y)
	}
	return Point{x: x, y: y}, nil
}

// MustPoint is like NewPoint but panics on invalid input. Intended for
// literals in examples and tests.
func MustPoint(x, y float64) Point {
	p, err := NewPoint(x, y)
	if err != nil {
		panic(err)
	}
	return p
}

// X returns the normalized horizontal coordinate.
func (p Point) X() float64 { return p.x }

// Y returns the normalized vertical coordinate.
func (p Point) Y() float64 { return p.y }

func inUnit(v float64) bool {
	return v >= 0 && v <= 1 // false for NaN
}

// Region is a point of interest inside an image together with its radius.
// The radius is normalized like the center and doubles as the region's
// relaxation weight.
type Region struct {
	Center Point
	Radius float64
}

// NewRegion returns a region around center. A zero radius is replaced by
// DefaultRegionRadius; negative, infinite or NaN radii fail with
// ErrCodeInvalidRegion.
func NewRegion(center Point, radius float64) (Region, error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return Region{}, newError(ErrCodeInvalidRegion, "radius must be a non-negative number, got %v", radius)
	}
	if radius == 0 {
		radius = DefaultRegionRadius
	}
	return Region{Center: center, Radius: radius}, nil
}

// AnnotatedImage is one image of the map and its regions of interest, as
// described by the manifest. Regions may be edited between layout passes.
type AnnotatedImage struct {
	ID      string
	Regions []Region
}

// AddRegion appends a region.
func (img *AnnotatedImage) AddRegion(r Region) {
	img.Regions = append(img.Regions, r)
}

// RemoveRegion deletes the region at index i, preserving the order of the
// remaining regions.
func (img *AnnotatedImage) RemoveRegion(i int) error {
	if i < 0 || i >= len(img.Regions) {
		return newError(ErrCodeIndexOutOfRange, "region %d of image %q (has %d)", i, img.ID, len(img.Regions))
	}
	img.Regions = append(img.Regions[:i], img.Regions[i+1:]...)
	return nil
}

// ImageSize is an image's intrinsic size in pixels. The zero value means the
// size is unknown (the image has not loaded or failed to load).
type ImageSize struct {
	Width, Height float64
}

// Known reports whether the size has been resolved to a usable area.
func (s ImageSize) Known() bool {
	return s.Width > 0 && s.Height > 0
}

// ResolvedImage pairs an annotated image with its intrinsic size.
type ResolvedImage struct {
	Image *AnnotatedImage
	Size  ImageSize
}
