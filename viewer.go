package imagemap

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Viewer runs a Map inside an ebiten game loop. It implements ebiten.Game:
// Update drains decoded images into the map, runs the test script, feeds
// pointer input and advances the hint decay; Layout turns window size
// changes into map resizes; Draw renders and captures screenshots.
type Viewer struct {
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// ExitWhenScriptDone ends the game loop once an attached test script
	// has finished.
	ExitWhenScriptDone bool

	cfg      Config
	images   []*AnnotatedImage
	m        *Map
	renderer *EbitenRenderer
	loader   *Loader
	logger   *log.Logger

	results chan LoadResult
	cancel  context.CancelFunc
	started bool
	sized   []bool

	width, height int

	input           pointerTracker
	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewViewer creates a viewer for images whose sources are read from fsys.
func NewViewer(images []*AnnotatedImage, fsys fs.FS, cfg Config) *Viewer {
	r := NewEbitenRenderer(len(images), cfg)
	return &Viewer{
		ScreenshotDir: "screenshots",
		cfg:           cfg,
		images:        images,
		m:             NewMap(images, Rect{}, cfg, r),
		renderer:      r,
		loader:        NewLoader(fsys, cfg.Loader),
		logger:        discardLogger,
		sized:         make([]bool, len(images)),
	}
}

// SetLogger sets the logger of the viewer, its map and its loader.
func (v *Viewer) SetLogger(l *log.Logger) {
	v.logger = l
	v.m.SetLogger(l)
	v.loader.SetLogger(l)
}

// Map returns the viewer's map.
func (v *Viewer) Map() *Map { return v.m }

// Renderer returns the viewer's renderer.
func (v *Viewer) Renderer() *EbitenRenderer { return v.renderer }

// Start begins decoding images in the background. Update calls it with a
// background context if it was not called before.
func (v *Viewer) Start(ctx context.Context) {
	if v.started {
		return
	}
	v.started = true
	ctx, v.cancel = context.WithCancel(ctx)
	// Room for a preview and a full source per image, so loading never
	// waits on the game loop.
	v.results = make(chan LoadResult, 2*len(v.images)+1)
	go func() {
		err := v.loader.Load(ctx, v.images, v.results)
		if err != nil && !errors.Is(err, context.Canceled) {
			v.logger.Error("loading stopped", "err", err)
		}
	}()
}

// Close stops background loading.
func (v *Viewer) Close() {
	if v.cancel != nil {
		v.cancel()
	}
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	if !v.started {
		v.Start(context.Background())
	}
	v.drainResults()

	if v.testRunner != nil {
		v.testRunner.step(v)
		if v.ExitWhenScriptDone && v.testRunner.Done() && len(v.screenshotQueue) == 0 {
			return ebiten.Termination
		}
	}

	v.processInput()

	tick := time.Second / time.Duration(ebiten.TPS())
	v.m.Advance(tick)
	v.renderer.Update(float32(tick.Seconds()))
	return nil
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.renderer.Draw(screen)
	if v.cfg.Debug {
		v.drawStats(screen)
	}
	v.flushScreenshots(screen)
}

// Layout implements ebiten.Game. A changed window size lays the map out
// again.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.width || outsideHeight != v.height {
		v.width, v.height = outsideWidth, outsideHeight
		v.m.Resize(Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	}
	return outsideWidth, outsideHeight
}

// drainResults hands every result decoded so far to the map without
// blocking.
func (v *Viewer) drainResults() {
	for {
		select {
		case res, ok := <-v.results:
			if !ok {
				v.results = nil
				return
			}
			v.handleResult(res)
		default:
			return
		}
	}
}

// handleResult routes one decoded source. The first source of an image
// sizes it for layout; later ones only refresh the texture.
func (v *Viewer) handleResult(res LoadResult) {
	i := res.Index
	if i < 0 || i >= len(v.sized) {
		return
	}
	if res.Err != nil {
		if v.sized[i] {
			v.logger.Warn("keeping preview; full source failed", "src", v.images[i].ID, "err", res.Err)
			return
		}
		v.m.ImageFailed(i, res.Err)
		return
	}

	v.renderer.SetSource(i, res.Image)
	if !v.sized[i] {
		v.sized[i] = true
		v.m.ImageLoaded(i, float64(res.Width), float64(res.Height))
		return
	}
	v.m.ImageRefreshed(i)
}
