package imagemap

import "time"

// Renderer receives draw decisions from the Controller. DrawImage is
// assumed to be expensive (full image composition) and is only signalled
// when the selection changes or a redraw is forced. DrawHint is a cheap
// overlay update.
type Renderer interface {
	DrawImage(sel Selection)
	DrawHint(h Hint)
}

// Selection identifies the layout point whose image should be shown.
type Selection struct {
	Index int // index into the layout points
	Point LayoutPoint
}

// Hint describes the fading circle drawn at the last pointer position.
// Visible is false when no circle should be drawn.
type Hint struct {
	Position Vec2
	Opacity  float64
	Visible  bool
}

// HintConfig controls the hint circle and its decay.
type HintConfig struct {
	// StartOpacity is the opacity set by every pointer move.
	StartOpacity float64 `toml:"start_opacity"`
	// Step is subtracted from the opacity on every decay tick.
	Step float64 `toml:"step"`
	// Interval is the time between decay ticks.
	Interval Duration `toml:"interval"`
	// Radius and LineWidth size the circle in screen pixels.
	Radius    float64 `toml:"radius"`
	LineWidth float64 `toml:"line_width"`
}

// DefaultHintConfig returns a hint that fades from 0.5 to 0 over 25 ticks
// of 200ms.
func DefaultHintConfig() HintConfig {
	return HintConfig{
		StartOpacity: 0.5,
		Step:         0.02,
		Interval:     Duration(200 * time.Millisecond),
		Radius:       45,
		LineWidth:    2,
	}
}

// InteractionState is the controller's mutable state.
type InteractionState struct {
	Hint    Vec2    // last pointer position; meaningful when HasHint
	HasHint bool    // false once the pointer left or the hint faded out
	Opacity float64 // current hint opacity, 0 when idle
	// LastSelected is the layout point index last sent to DrawImage, or -1.
	LastSelected int
}

// Idle reports whether no hint is fading.
func (s InteractionState) Idle() bool {
	return s.Opacity <= 0
}

// DecayTick returns the state after one decay tick: the opacity drops by
// step, and once it reaches zero the hint is cleared. Residues smaller than
// a millionth of a step are treated as zero so that a start opacity which is
// an exact multiple of the step fades out in exactly start/step ticks.
func DecayTick(s InteractionState, step float64) InteractionState {
	if s.Opacity <= 0 {
		s.Opacity = 0
		s.HasHint = false
		return s
	}
	s.Opacity -= step
	if s.Opacity <= step*1e-6 {
		s.Opacity = 0
		s.HasHint = false
	}
	return s
}

// Decision is the outcome of a pointer event.
type Decision struct {
	Selected int     // selected layout point, -1 when nothing can be selected
	Opacity  float64 // hint opacity after the event
	Redraw   bool    // whether DrawImage was signalled
}

// Controller turns pointer positions into draw decisions. It is not safe
// for concurrent use: the host must deliver pointer events and decay ticks
// one at a time, from the same loop.
type Controller struct {
	cfg      HintConfig
	renderer Renderer

	state   InteractionState
	ticking bool

	points   []LayoutPoint
	index    *SpatialIndex
	fallback Vec2 // query location when no pointer is active
	draws    int
}

// NewController creates a controller that signals r. It ignores pointer
// events until SetLayout is called.
func NewController(cfg HintConfig, r Renderer) *Controller {
	return &Controller{
		cfg:      cfg,
		renderer: r,
		state:    InteractionState{LastSelected: -1},
	}
}

// State returns a copy of the current state.
func (c *Controller) State() InteractionState {
	return c.state
}

// Ticking reports whether the host should keep delivering decay ticks.
func (c *Controller) Ticking() bool {
	return c.ticking
}

// Ready reports whether a layout has been installed.
func (c *Controller) Ready() bool {
	return c.index != nil
}

// DrawCount returns how many times DrawImage has been signalled.
func (c *Controller) DrawCount() int {
	return c.draws
}

// SetLayout installs a new layout and its index, clears any stale hint, and
// forces a redraw of the image nearest to fallback.
func (c *Controller) SetLayout(points []LayoutPoint, index *SpatialIndex, fallback Vec2) Decision {
	c.points = points
	c.index = index
	c.fallback = fallback
	c.state = InteractionState{LastSelected: -1}
	c.ticking = false
	return c.redraw(true)
}

// Relayout installs moved positions for the same set of points, keeping the
// hint, and forces a redraw. Use SetLayout when the point set itself changed.
func (c *Controller) Relayout(points []LayoutPoint, index *SpatialIndex) Decision {
	c.points = points
	c.index = index
	if c.state.LastSelected >= len(points) {
		c.state.LastSelected = -1
	}
	return c.redraw(true)
}

// PointerMove records a new hint position at full starting opacity and
// redraws if the nearest image changed. Events before SetLayout are ignored.
func (c *Controller) PointerMove(x, y float64) Decision {
	if c.index == nil {
		return Decision{Selected: -1}
	}
	c.state.Hint = Vec2{X: x, Y: y}
	c.state.HasHint = true
	c.state.Opacity = c.cfg.StartOpacity
	c.ticking = c.state.Opacity > 0
	return c.redraw(false)
}

// PointerLeave clears the hint position immediately. A decay already in
// progress keeps ticking down to zero, but nothing is drawn for it.
func (c *Controller) PointerLeave() {
	if !c.state.HasHint {
		return
	}
	c.state.HasHint = false
	c.renderer.DrawHint(Hint{})
}

// Tick applies one decay tick. It returns false once the hint has faded
// out, after which the host should stop ticking until the next move.
func (c *Controller) Tick() bool {
	if !c.ticking {
		return false
	}
	c.state = DecayTick(c.state, c.cfg.Step)
	if c.state.Idle() {
		c.ticking = false
		c.renderer.DrawHint(Hint{})
		return false
	}
	c.renderer.DrawHint(c.hint())
	return true
}

// Redraw forces DrawImage for the current selection, e.g. after a
// higher-resolution source replaced the displayed image.
func (c *Controller) Redraw() Decision {
	if c.index == nil {
		return Decision{Selected: -1}
	}
	return c.redraw(true)
}

func (c *Controller) redraw(force bool) Decision {
	q := c.fallback
	if c.state.HasHint {
		q = c.state.Hint
	}
	i, ok := c.index.NearestFrom(q.X, q.Y, c.state.LastSelected)
	if !ok {
		c.state.LastSelected = -1
		return Decision{Selected: -1, Opacity: c.state.Opacity}
	}

	d := Decision{Selected: i, Opacity: c.state.Opacity}
	if force || i != c.state.LastSelected {
		c.state.LastSelected = i
		c.draws++
		c.renderer.DrawImage(Selection{Index: i, Point: c.points[i]})
		d.Redraw = true
	}
	c.renderer.DrawHint(c.hint())
	return d
}

func (c *Controller) hint() Hint {
	if !c.state.HasHint || c.state.Opacity <= 0 {
		return Hint{}
	}
	return Hint{Position: c.state.Hint, Opacity: c.state.Opacity, Visible: true}
}
