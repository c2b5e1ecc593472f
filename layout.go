package imagemap

// LayoutPoint is one region of one image placed on screen. Positions are
// only changed by Relax; a new layout pass replaces the whole slice.
type LayoutPoint struct {
	Transform ImageTransform
	Position  Vec2
	Bounds    Rect
	// Weight is the normalized region radius times the cover scale. Relax
	// only compares weights; a pixel radius also needs the image's longer
	// intrinsic side.
	Weight float64

	ImageIndex  int // index into the images passed to ComputeLayout
	RegionIndex int // index into that image's Regions
}

// Origin returns the screen position of the image's top-left corner.
func (p LayoutPoint) Origin() Vec2 {
	return p.Transform.Origin(p.Position)
}

// LayoutConfig controls placement and relaxation.
type LayoutConfig struct {
	// Margin inflates the cover scale so relaxation can move images without
	// exposing the viewport edges. Must be >= 1.
	Margin float64 `toml:"margin"`
	// Rounds is the fixed number of relaxation rounds per layout pass.
	Rounds int         `toml:"rounds"`
	Relax  RelaxConfig `toml:"relax"`
}

// DefaultLayoutConfig returns the tuning used by the map viewer.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Margin: 1.1,
		Rounds: 40,
		Relax:  DefaultRelaxConfig(),
	}
}

// ComputeLayout places every region of every image with a known size inside
// viewport and relaxes the result. Images whose size is unknown are skipped.
// Points are ordered by image, then by region.
func ComputeLayout(images []ResolvedImage, viewport Rect, cfg LayoutConfig) []LayoutPoint {
	var points []LayoutPoint
	for i, img := range images {
		if img.Image == nil || !img.Size.Known() {
			continue
		}
		for j, r := range img.Image.Regions {
			pl := PlaceRegion(viewport, img.Size, r.Center, cfg.Margin)
			points = append(points, LayoutPoint{
				Transform:   pl.Transform,
				Position:    pl.Position,
				Bounds:      pl.Bounds,
				Weight:      r.Radius * pl.Transform.Scale,
				ImageIndex:  i,
				RegionIndex: j,
			})
		}
	}
	Relax(points, cfg.Rounds, cfg.Relax)
	return points
}

// toCoordinatePairs flattens layout positions for index construction.
func toCoordinatePairs(points []LayoutPoint) [][2]float64 {
	pairs := make([][2]float64, len(points))
	for i := range points {
		pairs[i] = [2]float64{points[i].Position.X, points[i].Position.Y}
	}
	return pairs
}
