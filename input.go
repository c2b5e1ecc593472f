package imagemap

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// pointerAction is what a frame's pointer sample means for the map.
type pointerAction uint8

const (
	pointerNone  pointerAction = iota
	pointerMoved               // position changed while over the map
	pointerLeft                // pointer left the map or the touch ended
)

// pointerTracker turns per-frame pointer samples into move and leave
// events. A stationary pointer produces no events, so the hint is not
// refreshed while the cursor rests.
type pointerTracker struct {
	inside bool
	lastX  float64
	lastY  float64

	touchIDs []ebiten.TouchID
	touching bool
}

// sample feeds the pointer position of one frame. inside is false when the
// pointer is off the map or absent.
func (p *pointerTracker) sample(x, y float64, inside bool) pointerAction {
	if !inside {
		if p.inside {
			p.inside = false
			return pointerLeft
		}
		return pointerNone
	}
	if p.inside && x == p.lastX && y == p.lastY {
		return pointerNone
	}
	p.inside = true
	p.lastX, p.lastY = x, y
	return pointerMoved
}

// processInput is called from Viewer.Update. Injected events take priority
// over real input for the frame they are consumed in.
func (v *Viewer) processInput() {
	if v.processInjectedInput() {
		return
	}

	// The first active touch wins over the mouse while any finger is down.
	v.input.touchIDs = ebiten.AppendTouchIDs(v.input.touchIDs[:0])
	if len(v.input.touchIDs) > 0 {
		v.input.touching = true
		tx, ty := ebiten.TouchPosition(v.input.touchIDs[0])
		v.apply(v.input.sample(float64(tx), float64(ty), true))
		return
	}
	if v.input.touching {
		v.input.touching = false
		v.apply(v.input.sample(0, 0, false))
		return
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	inside := ebiten.IsFocused() && v.m.Viewport().Contains(x, y)
	v.apply(v.input.sample(x, y, inside))
}

func (v *Viewer) apply(action pointerAction) {
	switch action {
	case pointerMoved:
		v.m.PointerMove(v.input.lastX, v.input.lastY)
	case pointerLeft:
		v.m.PointerLeave()
	}
}
