package imagemap

import (
	"context"
	"errors"
	"image"
	"io/fs"
	"path"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register the webp decoder
	"golang.org/x/sync/errgroup"

	_ "image/jpeg" // register the jpeg decoder
	_ "image/png"  // register the png decoder
)

// LoaderConfig controls progressive image loading.
type LoaderConfig struct {
	// Concurrency bounds how many images are decoded at once.
	Concurrency int `toml:"concurrency"`
	// PreviewMaxDim is the longest side of a generated preview. Zero
	// disables generated previews: the full image is delivered directly.
	PreviewMaxDim int `toml:"preview_max_dim"`
	// LowResPrefix names the pre-rendered preview of "dir/a.jpg" as
	// "dir/<prefix>a.jpg".
	LowResPrefix string `toml:"low_res_prefix"`
}

// DefaultLoaderConfig returns the loader defaults.
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		Concurrency:   4,
		PreviewMaxDim: 480,
		LowResPrefix:  "low.",
	}
}

// LoadResult is one decoded source for one image. An image produces a
// preview (Full false) followed by its full-resolution source, or a single
// result with Full true when no smaller preview exists. A failed image
// produces a single result with Err set.
type LoadResult struct {
	Index  int // index into the images passed to Load
	Image  image.Image
	Full   bool
	Width  int
	Height int
	Err    error
}

// Size returns the decoded size as an ImageSize.
func (r LoadResult) Size() ImageSize {
	return ImageSize{Width: float64(r.Width), Height: float64(r.Height)}
}

// Loader decodes the images of a manifest from a file system.
type Loader struct {
	FS     fs.FS
	Config LoaderConfig
	logger *log.Logger
}

// NewLoader returns a loader reading image sources (AnnotatedImage.ID)
// relative to the root of fsys.
func NewLoader(fsys fs.FS, cfg LoaderConfig) *Loader {
	return &Loader{FS: fsys, Config: cfg, logger: discardLogger}
}

// SetLogger sets the logger used for per-image progress.
func (l *Loader) SetLogger(logger *log.Logger) {
	l.logger = logger
}

// Load decodes every image with bounded concurrency and sends results to
// out, closing it when done. A failing image never stops the others; Load
// only returns an error when ctx is cancelled.
func (l *Loader) Load(ctx context.Context, images []*AnnotatedImage, out chan<- LoadResult) error {
	defer close(out)

	limit := l.Config.Concurrency
	if limit <= 0 {
		limit = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, img := range images {
		src := ""
		if img != nil {
			src = img.ID
		}
		g.Go(func() error {
			return l.loadOne(ctx, i, src, out)
		})
	}
	return g.Wait()
}

func (l *Loader) loadOne(ctx context.Context, i int, src string, out chan<- LoadResult) error {
	send := func(r LoadResult) error {
		r.Index = i
		select {
		case out <- r:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if src == "" {
		return send(LoadResult{Full: true, Err: newError(ErrCodeImageLoad, "image %d has no source", i)})
	}

	// A pre-rendered preview is delivered before decoding the full source.
	previewSent := false
	if lowName := l.lowResName(src); lowName != "" {
		if img, err := decodeImage(l.FS, lowName); err == nil {
			b := img.Bounds()
			if err := send(LoadResult{Image: img, Width: b.Dx(), Height: b.Dy()}); err != nil {
				return err
			}
			previewSent = true
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("preview unusable", "src", lowName, "err", err)
		}
	}

	full, err := decodeImage(l.FS, src)
	if err != nil {
		l.logger.Warn("image failed to load", "src", src, "err", err)
		return send(LoadResult{Full: true, Err: wrapError(ErrCodeImageLoad, err, "image %d (%s)", i, src)})
	}
	b := full.Bounds()

	if !previewSent && l.Config.PreviewMaxDim > 0 &&
		(b.Dx() > l.Config.PreviewMaxDim || b.Dy() > l.Config.PreviewMaxDim) {
		preview := imaging.Fit(full, l.Config.PreviewMaxDim, l.Config.PreviewMaxDim, imaging.Lanczos)
		pb := preview.Bounds()
		if err := send(LoadResult{Image: preview, Width: pb.Dx(), Height: pb.Dy()}); err != nil {
			return err
		}
	}

	l.logger.Debug("image loaded", "src", src, "width", b.Dx(), "height", b.Dy())
	return send(LoadResult{Image: full, Full: true, Width: b.Dx(), Height: b.Dy()})
}

func (l *Loader) lowResName(src string) string {
	if l.Config.LowResPrefix == "" {
		return ""
	}
	dir, file := path.Split(src)
	return dir + l.Config.LowResPrefix + file
}

// decodeImage decodes name from fsys, applying EXIF orientation.
func decodeImage(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return imaging.Decode(f, imaging.AutoOrientation(true))
}
