package imagemap

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// FixedSize disables window resizing.
	FixedSize bool
}

// Run opens a window and runs v until the window is closed or an attached
// test script finishes with ExitWhenScriptDone set.
func Run(v *Viewer, cfg RunConfig) error {
	defer v.Close()

	if cfg.Title == "" {
		cfg.Title = "imagemap"
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1024, 768
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if !cfg.FixedSize {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(v)
}
