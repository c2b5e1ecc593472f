package imagemap

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// HintFade smooths the displayed hint opacity between decay ticks. The
// controller lowers the opacity in discrete steps; the fade interpolates
// from the displayed value to each new step over one tick interval so the
// circle fades continuously. Rises (a new pointer move) are applied at once.
//
// Like all animation here, there is no global manager: the owner calls
// Update(dt) every frame.
type HintFade struct {
	tween    *gween.Tween
	fn       ease.TweenFunc
	duration float32
	value    float64
	target   float64
	Done     bool
}

// NewHintFade returns a fade that reaches each new target over d.
func NewHintFade(d time.Duration) *HintFade {
	return &HintFade{fn: ease.Linear, duration: float32(d.Seconds()), Done: true}
}

// Value returns the opacity to draw this frame.
func (f *HintFade) Value() float64 {
	return f.value
}

// Target returns the opacity the fade is heading to.
func (f *HintFade) Target() float64 {
	return f.target
}

// Set retargets the fade. Targets above the displayed value are applied
// immediately; lower targets are tweened to.
func (f *HintFade) Set(target float64) {
	if target >= f.value || f.duration <= 0 {
		f.Jump(target)
		return
	}
	f.target = target
	f.tween = gween.New(float32(f.value), float32(target), f.duration, f.fn)
	f.Done = false
}

// Jump sets the displayed value without tweening.
func (f *HintFade) Jump(v float64) {
	f.value = v
	f.target = v
	f.tween = nil
	f.Done = true
}

// Update advances the fade by dt seconds.
func (f *HintFade) Update(dt float32) {
	if f.Done || f.tween == nil {
		return
	}
	val, finished := f.tween.Update(dt)
	f.value = float64(val)
	if finished {
		f.value = f.target
		f.tween = nil
		f.Done = true
	}
}
