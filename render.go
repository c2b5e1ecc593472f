package imagemap

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	hintFillColor   = Color{R: 0xbb / 255.0, G: 0xbb / 255.0, B: 0xbb / 255.0, A: 1}
	hintStrokeColor = ColorWhite

	debugPointColor    = Color{R: 1, G: 0.2, B: 0.2, A: 1}
	debugEdgeColor     = Color{R: 1, G: 1, B: 1, A: 0.6}
	debugWeightColor   = Color{R: 0.3, G: 0.8, B: 1, A: 0.8}
	debugSelectedColor = Color{R: 0.3, G: 0.8, B: 1, A: 0.35}
)

const (
	hintDashLength   = 6
	debugPointRadius = 3
)

// source is one image's current texture. The decoded image is uploaded
// lazily on the next Draw.
type source struct {
	pending image.Image
	tex     *ebiten.Image
	width   int
	height  int
	full    bool
}

// EbitenRenderer draws the selected image and the hint circle with ebiten.
// DrawImage only marks the offscreen frame stale; the costly composition
// runs once in the next Draw. The hint is drawn on top every frame.
type EbitenRenderer struct {
	// Background fills the parts of the frame no image covers.
	Background Color

	cfg     Config
	sources []source
	// layoutSizes are the sizes the layout was computed with. A full
	// resolution source is scaled down to them.
	layoutSizes []ImageSize

	sel    Selection
	hasSel bool
	dirty  bool
	frame  *ebiten.Image

	hint Hint
	fade *HintFade
	mesh meshBuilder

	points   []LayoutPoint
	index    *SpatialIndex
	viewport Rect

	compositions int
}

// NewEbitenRenderer returns a renderer for n images.
func NewEbitenRenderer(n int, cfg Config) *EbitenRenderer {
	return &EbitenRenderer{
		Background:  Color{R: 0, G: 0, B: 0, A: 1},
		cfg:         cfg,
		sources:     make([]source, n),
		layoutSizes: make([]ImageSize, n),
		fade:        NewHintFade(cfg.Hint.Interval.D()),
	}
}

// SetSource installs a decoded image for image i. The first source of an
// image fixes its layout size; later sources replace the texture and are
// scaled to that size.
func (r *EbitenRenderer) SetSource(i int, img image.Image) {
	if i < 0 || i >= len(r.sources) || img == nil {
		return
	}
	b := img.Bounds()
	if !r.layoutSizes[i].Known() {
		r.layoutSizes[i] = ImageSize{Width: float64(b.Dx()), Height: float64(b.Dy())}
	}
	s := &r.sources[i]
	if s.tex != nil {
		s.tex.Deallocate()
		s.tex = nil
	}
	s.pending = img
	s.width, s.height = b.Dx(), b.Dy()
	if r.hasSel && r.sel.Point.ImageIndex == i {
		r.dirty = true
	}
}

// DrawImage implements Renderer.
func (r *EbitenRenderer) DrawImage(sel Selection) {
	r.sel = sel
	r.hasSel = true
	r.dirty = true
}

// DrawHint implements Renderer.
func (r *EbitenRenderer) DrawHint(h Hint) {
	r.hint = h
	if !h.Visible {
		r.fade.Jump(0)
		return
	}
	r.fade.Set(h.Opacity)
}

// LayoutChanged implements LayoutObserver.
func (r *EbitenRenderer) LayoutChanged(points []LayoutPoint, index *SpatialIndex, viewport Rect) {
	r.points = points
	r.index = index
	r.viewport = viewport
	r.dirty = true
}

// Compositions returns how many times the frame was recomposed.
func (r *EbitenRenderer) Compositions() int {
	return r.compositions
}

// Update advances the hint fade by dt seconds.
func (r *EbitenRenderer) Update(dt float32) {
	r.fade.Update(dt)
}

// Draw renders the current frame and hint onto screen.
func (r *EbitenRenderer) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if r.frame == nil || r.frame.Bounds().Dx() != b.Dx() || r.frame.Bounds().Dy() != b.Dy() {
		if r.frame != nil {
			r.frame.Deallocate()
		}
		r.frame = ebiten.NewImage(b.Dx(), b.Dy())
		r.dirty = true
	}
	if r.dirty {
		r.compose()
		r.dirty = false
	}
	screen.DrawImage(r.frame, nil)
	r.drawHint(screen)
}

// compose redraws the offscreen frame from the current selection.
func (r *EbitenRenderer) compose() {
	r.compositions++
	r.frame.Fill(r.Background.toRGBA())
	if r.hasSel {
		r.drawSelection(r.frame)
	}
	if r.cfg.Debug {
		r.drawDebugOverlay(r.frame)
	}
}

func (r *EbitenRenderer) drawSelection(dst *ebiten.Image) {
	p := r.sel.Point
	i := p.ImageIndex
	if i < 0 || i >= len(r.sources) {
		return
	}
	tex := r.texture(i)
	if tex == nil {
		return
	}
	s := r.sources[i]
	ls := r.layoutSizes[i]

	var op ebiten.DrawImageOptions
	op.Filter = ebiten.FilterLinear
	op.GeoM = geoM(sourceMatrix(p, ls, s.width, s.height))
	dst.DrawImage(tex, &op)
}

// sourceMatrix maps the pixels of a source of the given size to screen: the
// source is first scaled to the size the layout was computed with.
func sourceMatrix(p LayoutPoint, layoutSize ImageSize, w, h int) [6]float64 {
	return multiplyAffine(
		p.Transform.Matrix(p.Position),
		scaleAffine(layoutSize.Width/float64(w), layoutSize.Height/float64(h)),
	)
}

func (r *EbitenRenderer) texture(i int) *ebiten.Image {
	s := &r.sources[i]
	if s.tex == nil && s.pending != nil {
		s.tex = ebiten.NewImageFromImage(s.pending)
		s.pending = nil
	}
	return s.tex
}

func (r *EbitenRenderer) drawHint(screen *ebiten.Image) {
	alpha := r.fade.Value()
	if !r.hint.Visible || alpha <= 0 {
		return
	}
	radius := r.cfg.Hint.Radius
	r.mesh.reset()
	r.mesh.circle(r.hint.Position, radius, hintFillColor.withAlpha(alpha))
	r.mesh.dashedCircle(r.hint.Position, radius, r.cfg.Hint.LineWidth, hintDashLength, hintStrokeColor.withAlpha(alpha))
	r.mesh.draw(screen)
}

// drawDebugOverlay draws the Voronoi partition, every layout point and its
// weight circle, with the selected point's circle filled.
func (r *EbitenRenderer) drawDebugOverlay(dst *ebiten.Image) {
	if r.index == nil {
		return
	}
	r.mesh.reset()
	for _, e := range r.index.VoronoiEdges(r.viewport) {
		r.mesh.segment(e.A, e.B, 1, debugEdgeColor)
	}
	for i, p := range r.points {
		radius := r.weightRadius(p)
		if r.hasSel && i == r.sel.Index {
			r.mesh.circle(p.Position, radius, debugSelectedColor)
		}
		r.mesh.dashedCircle(p.Position, radius, 1, 4, debugWeightColor)
		r.mesh.circle(p.Position, debugPointRadius, debugPointColor)
	}
	r.mesh.draw(dst)
}

// weightRadius converts a point's weight to screen pixels: the region
// radius relative to the longer side of the displayed image.
func (r *EbitenRenderer) weightRadius(p LayoutPoint) float64 {
	if p.ImageIndex < 0 || p.ImageIndex >= len(r.layoutSizes) {
		return 0
	}
	s := r.layoutSizes[p.ImageIndex]
	return p.Weight * math.Max(s.Width, s.Height)
}

// geoM converts an affine matrix [a, b, c, d, tx, ty] to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
