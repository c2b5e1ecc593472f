package imagemap

import (
	"time"

	"github.com/charmbracelet/log"
)

// EventSink is the optional bridge for selection changes, e.g. into an ECS
// world. It is called after the renderer has been signalled.
type EventSink interface {
	EmitSelection(event SelectionEvent)
}

// SelectionEvent reports that a different image (or the same image after a
// forced redraw) was drawn.
type SelectionEvent struct {
	Index       int    // layout point index
	ImageIndex  int    // index into the map's images
	RegionIndex int    // index into that image's regions
	ImageID     string // the image's source
	Position    Vec2   // the layout point's screen position
	Forced      bool   // redraw forced by layout, resize or a refreshed source
}

// LayoutObserver may be implemented by a Renderer that needs the layout
// itself, such as a debug overlay. It is called after every layout change,
// before the resulting draw signal.
type LayoutObserver interface {
	LayoutChanged(points []LayoutPoint, index *SpatialIndex, viewport Rect)
}

// Map is the top-level object that owns the images, their resolved sizes,
// the current layout, the spatial index and the interaction controller.
//
// A Map is driven from a single loop: load completions, pointer events,
// resizes and Advance must not be called concurrently.
type Map struct {
	images   []*AnnotatedImage
	sizes    []ImageSize
	viewport Rect
	cfg      Config

	renderer Renderer
	ctrl     *Controller
	barrier  *LoadBarrier
	sink     EventSink
	logger   *log.Logger

	points    []LayoutPoint
	index     *SpatialIndex
	ready     bool
	sinceTick time.Duration
}

// NewMap creates a map over images that draws through r. No layout happens
// until every image has reported through ImageLoaded or ImageFailed; a map
// without images is laid out immediately.
func NewMap(images []*AnnotatedImage, viewport Rect, cfg Config, r Renderer) *Map {
	m := &Map{
		images:   images,
		sizes:    make([]ImageSize, len(images)),
		viewport: viewport,
		cfg:      cfg,
		renderer: r,
		ctrl:     NewController(cfg.Hint, r),
		logger:   discardLogger,
	}
	m.barrier = NewLoadBarrier(len(images), m.firstLayout)
	m.barrier.Arm()
	return m
}

// SetLogger sets the logger for layout and load diagnostics.
func (m *Map) SetLogger(l *log.Logger) {
	if l == nil {
		l = discardLogger
	}
	m.logger = l
}

// SetEventSink sets the optional selection bridge.
func (m *Map) SetEventSink(sink EventSink) {
	m.sink = sink
}

// Images returns the map's images. The returned slice MUST NOT be mutated,
// though regions of its images may be edited followed by Relayout.
func (m *Map) Images() []*AnnotatedImage { return m.images }

// Size returns the resolved size of image i; zero when unknown.
func (m *Map) Size(i int) ImageSize { return m.sizes[i] }

// Viewport returns the current viewport.
func (m *Map) Viewport() Rect { return m.viewport }

// Ready reports whether the first layout pass has run.
func (m *Map) Ready() bool { return m.ready }

// Points returns the current layout. The returned slice MUST NOT be mutated.
func (m *Map) Points() []LayoutPoint { return m.points }

// Index returns the current spatial index, nil before the first layout.
func (m *Map) Index() *SpatialIndex { return m.index }

// State returns the interaction state.
func (m *Map) State() InteractionState { return m.ctrl.State() }

// Barrier returns the load barrier.
func (m *Map) Barrier() *LoadBarrier { return m.barrier }

// ImageLoaded records the intrinsic size of image i. Only the first report
// of each image counts.
func (m *Map) ImageLoaded(i int, width, height float64) {
	if i < 0 || i >= len(m.images) || m.barrier.Reported(i) {
		return
	}
	m.sizes[i] = ImageSize{Width: width, Height: height}
	m.barrier.Done(i)
}

// ImageFailed records that image i will never load. Its regions are left
// out of every layout.
func (m *Map) ImageFailed(i int, err error) {
	if i < 0 || i >= len(m.images) || m.barrier.Reported(i) {
		return
	}
	m.logger.Warn("image excluded from layout", "index", i, "src", m.images[i].ID, "err", err)
	m.sizes[i] = ImageSize{}
	m.barrier.Done(i)
}

// ImageRefreshed notes that a higher-resolution source replaced image i in
// the renderer and redraws if that image is on screen.
func (m *Map) ImageRefreshed(i int) {
	if !m.ready {
		return
	}
	sel := m.ctrl.State().LastSelected
	if sel < 0 || sel >= len(m.points) || m.points[sel].ImageIndex != i {
		return
	}
	m.emit(m.ctrl.Redraw(), true)
}

func (m *Map) firstLayout() {
	m.ready = true
	m.logger.Debug("all images reported", "images", len(m.images), "regions", countRegions(m.images))
	m.Relayout()
}

// Resize lays the map out again for a new viewport. It is ignored until the
// first layout pass, which will use the latest viewport.
func (m *Map) Resize(viewport Rect) {
	m.viewport = viewport
	if !m.ready {
		return
	}
	m.Relayout()
}

// Relayout recomputes placement, relaxation and the index from the current
// regions and viewport, clears the hint and forces a redraw.
func (m *Map) Relayout() {
	if !m.ready {
		return
	}
	stats := debugStats{imageCount: len(m.images), rounds: m.cfg.Layout.Rounds}

	resolved := make([]ResolvedImage, len(m.images))
	for i, img := range m.images {
		resolved[i] = ResolvedImage{Image: img, Size: m.sizes[i]}
		if !m.sizes[i].Known() {
			stats.skipped++
		}
	}

	t0 := time.Now()
	m.points = ComputeLayout(resolved, m.viewport, m.cfg.Layout)
	stats.placeTime = time.Since(t0)

	t0 = time.Now()
	m.index = BuildIndex(m.points)
	stats.indexTime = time.Since(t0)
	stats.pointCount = len(m.points)
	stats.triangulated = m.index.Triangulated()
	m.debugLog(stats)

	m.sinceTick = 0
	m.observeLayout()
	m.emit(m.ctrl.SetLayout(m.points, m.index, m.viewport.Center()), true)
}

// Relax runs extra relaxation rounds on the current layout, rebuilds the
// index and forces a redraw. The hint is kept.
func (m *Map) Relax(rounds int) {
	if !m.ready || rounds <= 0 {
		return
	}
	Relax(m.points, rounds, m.cfg.Layout.Relax)
	m.index = BuildIndex(m.points)
	m.logger.Debug("relaxed", "rounds", rounds, "points", len(m.points))
	m.observeLayout()
	m.emit(m.ctrl.Relayout(m.points, m.index), true)
}

// PointerMove handles a pointer or touch position in screen pixels.
// Ignored before the first layout pass.
func (m *Map) PointerMove(x, y float64) Decision {
	if !m.ready {
		return Decision{Selected: -1}
	}
	m.sinceTick = 0
	d := m.ctrl.PointerMove(x, y)
	m.emit(d, false)
	return d
}

// PointerLeave handles the pointer leaving the map.
func (m *Map) PointerLeave() {
	if !m.ready {
		return
	}
	m.ctrl.PointerLeave()
}

// Advance feeds elapsed time to the hint decay, delivering one tick per
// configured interval. It reports whether the hint is still fading.
func (m *Map) Advance(dt time.Duration) bool {
	if !m.ctrl.Ticking() {
		m.sinceTick = 0
		return false
	}
	interval := m.cfg.Hint.Interval.D()
	if interval <= 0 {
		interval = DefaultHintConfig().Interval.D()
	}
	m.sinceTick += dt
	for m.sinceTick >= interval && m.ctrl.Ticking() {
		m.sinceTick -= interval
		m.ctrl.Tick()
	}
	return m.ctrl.Ticking()
}

// DrawCount returns how many times the renderer was asked to draw an image.
func (m *Map) DrawCount() int { return m.ctrl.DrawCount() }

func (m *Map) observeLayout() {
	if o, ok := m.renderer.(LayoutObserver); ok {
		o.LayoutChanged(m.points, m.index, m.viewport)
	}
}

func (m *Map) emit(d Decision, forced bool) {
	if !d.Redraw {
		return
	}
	if m.cfg.Debug {
		debugCheckSelection(Selection{Index: d.Selected}, m.points)
	}
	if m.sink == nil {
		return
	}
	p := m.points[d.Selected]
	m.sink.EmitSelection(SelectionEvent{
		Index:       d.Selected,
		ImageIndex:  p.ImageIndex,
		RegionIndex: p.RegionIndex,
		ImageID:     m.images[p.ImageIndex].ID,
		Position:    p.Position,
		Forced:      forced,
	})
}
