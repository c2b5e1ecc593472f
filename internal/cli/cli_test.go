package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/imagemap"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

const testManifest = `{
  "images": [
    {"src": "a.png", "points": [{"x": 0.25, "y": 0.25, "radius": 0.1}, {"center": {"x": 0.75, "y": 0.75}}]},
    {"src": "b.png", "points": [{"x": 0.5, "y": 0.5}]},
    {"src": "c.png"}
  ]
}`

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")
	defer SetVersion("", "", "")

	if version != "1.0.0" {
		t.Errorf("version = %q, want %q", version, "1.0.0")
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want %q", commit, "abc123")
	}
	if date != "2024-01-01" {
		t.Errorf("date = %q, want %q", date, "2024-01-01")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand(&bytes.Buffer{})
	for _, name := range []string{"view", "layout", "validate"} {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Error("missing --verbose flag")
	}
}

func TestRunValidate(t *testing.T) {
	fsys := fstest.MapFS{
		"images.json": {Data: []byte(testManifest)},
		"a.png":       {Data: pngBytes(t, 4, 4)},
		"b.png":       {Data: pngBytes(t, 4, 4)},
		"c.png":       {Data: pngBytes(t, 4, 4)},
	}

	var out bytes.Buffer
	if err := runValidate(fsys, "images.json", true, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "3 images, 3 regions") {
		t.Errorf("summary missing, got:\n%s", got)
	}
	if !strings.Contains(got, "c.png: no regions") {
		t.Errorf("region-less image not reported, got:\n%s", got)
	}
}

func TestRunValidate_MissingFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"images.json": {Data: []byte(testManifest)},
		"a.png":       {Data: pngBytes(t, 4, 4)},
	}

	var out bytes.Buffer
	err := runValidate(fsys, "images.json", true, &out)
	if err == nil {
		t.Fatal("expected error for missing sources")
	}
	if !strings.Contains(out.String(), "b.png: missing") {
		t.Errorf("missing file not reported, got:\n%s", out.String())
	}

	// Without --files the manifest alone is checked.
	out.Reset()
	if err := runValidate(fsys, "images.json", false, &out); err != nil {
		t.Errorf("unexpected error without file check: %v", err)
	}
}

func TestRunValidate_InvalidManifest(t *testing.T) {
	fsys := fstest.MapFS{
		"images.json": {Data: []byte(`{"images": [{"src": "a.png", "points": [{"x": 1.5, "y": 0}]}]}`)},
	}
	err := runValidate(fsys, "images.json", false, &bytes.Buffer{})
	if !imagemap.IsCode(err, imagemap.ErrCodeInvalidManifest) {
		t.Errorf("expected INVALID_MANIFEST, got %v", err)
	}
}

func TestRunLayout(t *testing.T) {
	fsys := fstest.MapFS{
		"images.json": {Data: []byte(testManifest)},
		"a.png":       {Data: pngBytes(t, 40, 30)},
		"b.png":       {Data: pngBytes(t, 30, 40)},
		// c.png is missing: it fails to load and is left out.
	}

	var out bytes.Buffer
	ctx := imagemap.WithLogger(context.Background(), imagemap.NewLogger(&bytes.Buffer{}, log.DebugLevel))
	err := runLayout(ctx, fsys, imagemap.DefaultConfig(), imagemap.Rect{Width: 800, Height: 600}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 { // header + 3 points
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "POINT") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "a.png") || !strings.Contains(lines[3], "b.png") {
		t.Errorf("points not ordered by image:\n%s", out.String())
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "images.json")
	if err := os.WriteFile(path, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	root := newRootCommand(&bytes.Buffer{})
	root.SetOut(&out)
	root.SetArgs([]string{"validate", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out.String(), "3 images, 3 regions") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout.Rounds != imagemap.DefaultConfig().Layout.Rounds {
		t.Error("empty path should give defaults")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "imagemap.toml")
	if err := os.WriteFile(path, []byte("debug = true\n[layout]\nrounds = 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Debug || cfg.Layout.Rounds != 10 {
		t.Errorf("config not applied: %+v", cfg)
	}
}
