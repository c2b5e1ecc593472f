package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phanxgames/imagemap"
)

func newLayoutCmd() *cobra.Command {
	var (
		configPath    string
		width, height float64
	)

	cmd := &cobra.Command{
		Use:   "layout <dir>",
		Short: "Compute the map layout without opening a window",
		Long: `Compute the map layout without opening a window.

Every image in the directory's images.json is decoded to learn its size, the
layout is computed for a viewport of --width by --height pixels, and one line
is printed per point of interest with its final screen position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			viewport := imagemap.Rect{Width: width, Height: height}
			if viewport.Empty() {
				return fmt.Errorf("viewport must have a positive size, got %vx%v", width, height)
			}
			return runLayout(cmd.Context(), os.DirFS(args[0]), cfg, viewport, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().Float64Var(&width, "width", 1024, "viewport width")
	cmd.Flags().Float64Var(&height, "height", 768, "viewport height")

	return cmd
}

// discardRenderer satisfies imagemap.Renderer for headless layouts.
type discardRenderer struct{}

func (discardRenderer) DrawImage(imagemap.Selection) {}
func (discardRenderer) DrawHint(imagemap.Hint)       {}

// runLayout loads the manifest and images from fsys, lays them out and
// writes a table of points to w.
func runLayout(ctx context.Context, fsys fs.FS, cfg imagemap.Config, viewport imagemap.Rect, w io.Writer) error {
	logger := imagemap.LoggerFromContext(ctx)

	images, err := imagemap.LoadManifest(fsys, imagemap.ManifestName)
	if err != nil {
		return err
	}

	m := imagemap.NewMap(images, viewport, cfg, discardRenderer{})
	m.SetLogger(logger)

	loader := imagemap.NewLoader(fsys, cfg.Loader)
	loader.SetLogger(logger)
	results := make(chan imagemap.LoadResult, 2*len(images)+1)
	errc := make(chan error, 1)
	go func() { errc <- loader.Load(ctx, images, results) }()

	// The first result of each image sizes it, exactly as in the viewer.
	for res := range results {
		if res.Err != nil {
			m.ImageFailed(res.Index, res.Err)
			continue
		}
		m.ImageLoaded(res.Index, float64(res.Width), float64(res.Height))
	}
	if err := <-errc; err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POINT\tIMAGE\tREGION\tX\tY\tWEIGHT\tSCALE")
	for i, p := range m.Points() {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.1f\t%.1f\t%.2f\t%.3f\n",
			i, images[p.ImageIndex].ID, p.RegionIndex,
			p.Position.X, p.Position.Y, p.Weight, p.Transform.Scale)
	}
	return tw.Flush()
}
