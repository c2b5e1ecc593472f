package imagemap

// syntheticPointerEvent is a single injected pointer sample. Screen
// coordinates are used, matching what a test script sees in screenshots.
type syntheticPointerEvent struct {
	screenX, screenY float64
	leave            bool
}

// InjectMove queues a pointer move to the given screen coordinates. The
// event is consumed on the next frame's input processing, in place of real
// input.
func (v *Viewer) InjectMove(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectLeave queues the pointer leaving the map.
func (v *Viewer) InjectLeave() {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{leave: true})
}

// InjectSweep queues moves linearly interpolated from (fromX, fromY) to
// (toX, toY), one per frame, both ends included. Minimum frames is 2.
func (v *Viewer) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		v.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer tracker. Returns true if an event was consumed (real
// input should be skipped).
func (v *Viewer) processInjectedInput() bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	if evt.leave {
		v.apply(v.input.sample(0, 0, false))
		return true
	}
	v.apply(v.input.sample(evt.screenX, evt.screenY, true))
	return true
}
