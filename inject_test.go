package imagemap

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	c := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestInjectMove(t *testing.T) {
	v := loadedViewer(t)
	p := v.Map().Points()[0]
	v.InjectMove(p.Position.X, p.Position.Y)
	if len(v.injectQueue) != 1 {
		t.Fatalf("queue = %d, want 1", len(v.injectQueue))
	}
	if !v.processInjectedInput() {
		t.Fatal("event not consumed")
	}
	if len(v.injectQueue) != 0 {
		t.Error("queue not drained")
	}
	st := v.Map().State()
	if !st.HasHint || st.Hint != p.Position || st.LastSelected != 0 {
		t.Errorf("state = %+v, want hint at point 0", st)
	}
	if v.processInjectedInput() {
		t.Error("empty queue consumed an event")
	}
}

func TestInjectLeave(t *testing.T) {
	v := loadedViewer(t)
	v.InjectMove(100, 100)
	v.InjectLeave()
	v.processInjectedInput()
	v.processInjectedInput()
	if v.Map().State().HasHint {
		t.Error("hint kept after injected leave")
	}
}

func TestInjectSweep(t *testing.T) {
	v := NewViewer(nil, nil, DefaultConfig())
	v.InjectSweep(0, 0, 100, 50, 5)
	if len(v.injectQueue) != 5 {
		t.Fatalf("queue = %d, want 5", len(v.injectQueue))
	}
	first, last := v.injectQueue[0], v.injectQueue[4]
	if first.screenX != 0 || first.screenY != 0 || last.screenX != 100 || last.screenY != 50 {
		t.Errorf("sweep ends = %+v, %+v", first, last)
	}
	if mid := v.injectQueue[2]; mid.screenX != 50 || mid.screenY != 25 {
		t.Errorf("sweep middle = %+v", mid)
	}

	v.injectQueue = nil
	v.InjectSweep(0, 0, 10, 10, 1)
	if len(v.injectQueue) != 2 {
		t.Errorf("minimum sweep = %d frames, want 2", len(v.injectQueue))
	}
}
