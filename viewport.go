package imagemap

import "math"

// Placement is where one region lands on screen before relaxation.
type Placement struct {
	// Transform positions the owning image relative to Position.
	Transform ImageTransform
	// Position is the region's center in screen pixels.
	Position Vec2
	// Bounds is where Position may move: the scaled image's footprint
	// clamped to the viewport.
	Bounds Rect
}

// PlaceRegion maps a normalized point of an image with the given intrinsic
// size into the viewport. The image is scaled to cover the viewport
// (the larger of the width and height ratios), inflated by margin, and
// centered. Margins below 1 are treated as 1.
func PlaceRegion(viewport Rect, size ImageSize, p Point, margin float64) Placement {
	if !size.Known() {
		return Placement{}
	}
	if margin < 1 || math.IsNaN(margin) {
		margin = 1
	}

	widthScale := viewport.Width / size.Width
	heightScale := viewport.Height / size.Height
	scale := math.Max(widthScale, heightScale) * margin

	widthDiff := viewport.Width - size.Width*scale
	heightDiff := viewport.Height - size.Height*scale
	left := viewport.X + widthDiff/2
	top := viewport.Y + heightDiff/2

	x := left + p.X()*size.Width*scale
	y := top + p.Y()*size.Height*scale

	footprint := RectFromBounds(left, top, left+size.Width*scale, top+size.Height*scale)
	bounds := footprint.Intersect(viewport)

	return Placement{
		Transform: ImageTransform{OffsetX: left - x, OffsetY: top - y, Scale: scale},
		Position:  Vec2{X: x, Y: y},
		Bounds:    bounds,
	}
}
