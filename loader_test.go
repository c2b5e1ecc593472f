package imagemap

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// loadAll runs the loader to completion and groups results by image.
func loadAll(t *testing.T, l *Loader, images []*AnnotatedImage) map[int][]LoadResult {
	t.Helper()
	out := make(chan LoadResult, 4*len(images)+1)
	if err := l.Load(context.Background(), images, out); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := make(map[int][]LoadResult)
	for r := range out {
		got[r.Index] = append(got[r.Index], r)
	}
	return got
}

func TestLoaderSmallImage(t *testing.T) {
	fsys := fstest.MapFS{"a.png": {Data: pngBytes(t, 100, 50)}}
	l := NewLoader(fsys, DefaultLoaderConfig())
	got := loadAll(t, l, []*AnnotatedImage{{ID: "a.png"}})

	rs := got[0]
	if len(rs) != 1 {
		t.Fatalf("results = %d, want 1", len(rs))
	}
	r := rs[0]
	if r.Err != nil || !r.Full || r.Width != 100 || r.Height != 50 {
		t.Errorf("result = %+v", r)
	}
	if r.Size() != (ImageSize{Width: 100, Height: 50}) {
		t.Errorf("Size = %v", r.Size())
	}
}

func TestLoaderGeneratesPreview(t *testing.T) {
	fsys := fstest.MapFS{"big.png": {Data: pngBytes(t, 1000, 500)}}
	cfg := DefaultLoaderConfig()
	cfg.PreviewMaxDim = 480
	got := loadAll(t, NewLoader(fsys, cfg), []*AnnotatedImage{{ID: "big.png"}})

	rs := got[0]
	if len(rs) != 2 {
		t.Fatalf("results = %d, want preview and full", len(rs))
	}
	if rs[0].Full || rs[0].Width != 480 || rs[0].Height != 240 {
		t.Errorf("preview = %dx%d full=%v, want 480x240", rs[0].Width, rs[0].Height, rs[0].Full)
	}
	if !rs[1].Full || rs[1].Width != 1000 || rs[1].Height != 500 {
		t.Errorf("full = %dx%d full=%v, want 1000x500", rs[1].Width, rs[1].Height, rs[1].Full)
	}
}

func TestLoaderPreviewDisabled(t *testing.T) {
	fsys := fstest.MapFS{"big.png": {Data: pngBytes(t, 1000, 500)}}
	cfg := DefaultLoaderConfig()
	cfg.PreviewMaxDim = 0
	got := loadAll(t, NewLoader(fsys, cfg), []*AnnotatedImage{{ID: "big.png"}})
	if rs := got[0]; len(rs) != 1 || !rs[0].Full {
		t.Errorf("results = %+v, want the full image only", rs)
	}
}

func TestLoaderLowResPrefix(t *testing.T) {
	fsys := fstest.MapFS{
		"photos/a.png":     {Data: pngBytes(t, 1000, 500)},
		"photos/low.a.png": {Data: pngBytes(t, 50, 25)},
	}
	got := loadAll(t, NewLoader(fsys, DefaultLoaderConfig()), []*AnnotatedImage{{ID: "photos/a.png"}})

	rs := got[0]
	if len(rs) != 2 {
		t.Fatalf("results = %d, want 2", len(rs))
	}
	if rs[0].Full || rs[0].Width != 50 {
		t.Errorf("first result = %dx%d full=%v, want the 50x25 preview", rs[0].Width, rs[0].Height, rs[0].Full)
	}
	if !rs[1].Full || rs[1].Width != 1000 {
		t.Errorf("second result = %dx%d full=%v, want the full image", rs[1].Width, rs[1].Height, rs[1].Full)
	}
}

func TestLoaderFailures(t *testing.T) {
	fsys := fstest.MapFS{
		"ok.png":     {Data: pngBytes(t, 10, 10)},
		"broken.png": {Data: []byte("not a png")},
	}
	images := []*AnnotatedImage{{ID: "ok.png"}, {ID: "missing.png"}, {ID: "broken.png"}, {ID: ""}}
	got := loadAll(t, NewLoader(fsys, DefaultLoaderConfig()), images)

	if rs := got[0]; len(rs) != 1 || rs[0].Err != nil {
		t.Errorf("ok.png = %+v", rs)
	}
	for i := 1; i < len(images); i++ {
		rs := got[i]
		if len(rs) != 1 {
			t.Errorf("image %d: results = %d, want 1", i, len(rs))
			continue
		}
		if !IsCode(rs[0].Err, ErrCodeImageLoad) || !rs[0].Full {
			t.Errorf("image %d: result = %+v, want IMAGE_LOAD error", i, rs[0])
		}
	}
}

func TestLoaderCancelled(t *testing.T) {
	fsys := fstest.MapFS{"a.png": {Data: pngBytes(t, 10, 10)}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := make(chan LoadResult) // never read
	err := NewLoader(fsys, DefaultLoaderConfig()).Load(ctx, []*AnnotatedImage{{ID: "a.png"}}, out)
	if err == nil {
		t.Error("Load on a cancelled context returned nil")
	}
	if _, ok := <-out; ok {
		t.Error("out not closed")
	}
}

func TestLowResName(t *testing.T) {
	l := NewLoader(fstest.MapFS{}, DefaultLoaderConfig())
	tests := map[string]string{
		"a.jpg":      "low.a.jpg",
		"dir/b.webp": "dir/low.b.webp",
		"x/y/z.png":  "x/y/low.z.png",
	}
	for in, want := range tests {
		if got := l.lowResName(in); got != want {
			t.Errorf("lowResName(%q) = %q, want %q", in, got, want)
		}
	}
	l.Config.LowResPrefix = ""
	if got := l.lowResName("a.jpg"); got != "" {
		t.Errorf("lowResName without prefix = %q", got)
	}
}
