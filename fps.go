package imagemap

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawStats prints FPS, TPS and map counters in the top-left corner.
// Only drawn in debug mode.
func (v *Viewer) drawStats(screen *ebiten.Image) {
	st := v.m.State()
	mode := "linear"
	if ix := v.m.Index(); ix != nil && ix.Triangulated() {
		mode = "delaunay"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f\nTPS: %.1f\npoints: %d (%s)\nselected: %d\ndraws: %d\ncompositions: %d\nhint: %.2f",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		len(v.m.Points()), mode,
		st.LastSelected, v.m.DrawCount(), v.renderer.Compositions(), st.Opacity,
	))
}
