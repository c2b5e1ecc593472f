package imagemap

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// ImageTransform places an image on screen relative to its layout point:
// the image is scaled uniformly by Scale and its top-left corner sits at
// (OffsetX, OffsetY) from the point's screen position. Because the offset
// is relative, moving a layout point carries its image along with it.
type ImageTransform struct {
	OffsetX, OffsetY float64
	Scale            float64
}

// Origin returns the screen position of the image's top-left corner when
// its layout point sits at anchor.
func (t ImageTransform) Origin(anchor Vec2) Vec2 {
	return Vec2{X: anchor.X + t.OffsetX, Y: anchor.Y + t.OffsetY}
}

// Matrix returns the affine matrix [a, b, c, d, tx, ty] that maps intrinsic
// image pixels to screen pixels for a layout point at anchor.
func (t ImageTransform) Matrix(anchor Vec2) [6]float64 {
	o := t.Origin(anchor)
	return [6]float64{t.Scale, 0, 0, t.Scale, o.X, o.Y}
}

// ScreenToImage converts a screen position to normalized image coordinates
// for an image of the given intrinsic size anchored at anchor. The result
// is not clamped and lies outside [0, 1] when the position is off the image.
func (t ImageTransform) ScreenToImage(anchor Vec2, size ImageSize, sx, sy float64) (float64, float64) {
	if !size.Known() {
		return 0, 0
	}
	inv := invertAffine(t.Matrix(anchor))
	px, py := transformPoint(inv, sx, sy)
	return px / size.Width, py / size.Height
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// scaleAffine returns the matrix for a uniform or non-uniform scale.
func scaleAffine(sx, sy float64) [6]float64 {
	return [6]float64{sx, 0, 0, sy, 0, 0}
}
