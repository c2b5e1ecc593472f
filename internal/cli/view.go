package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/imagemap"
)

func newViewCmd() *cobra.Command {
	var (
		configPath    string
		debug         bool
		width, height int
		script        string
		screenshotDir string
		exitAfter     bool
	)

	cmd := &cobra.Command{
		Use:   "view <dir>",
		Short: "Open a directory of annotated images as an interactive map",
		Long: `Open a directory of annotated images as an interactive map.

The directory must contain an images.json manifest listing every image and
its points of interest. Image paths in the manifest are relative to the
directory. Moving the pointer shows the image whose point is nearest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := imagemap.LoggerFromContext(cmd.Context())
			dir := args[0]

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if debug {
				cfg.Debug = true
			}

			fsys := os.DirFS(dir)
			images, err := imagemap.LoadManifest(fsys, imagemap.ManifestName)
			if err != nil {
				return err
			}
			logger.Info("manifest loaded", "dir", dir, "images", len(images))

			v := imagemap.NewViewer(images, fsys, cfg)
			v.SetLogger(logger)
			v.ScreenshotDir = screenshotDir
			if script != "" {
				data, err := os.ReadFile(script)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				runner, err := imagemap.LoadTestScript(data)
				if err != nil {
					return err
				}
				v.SetTestRunner(runner)
				v.ExitWhenScriptDone = exitAfter
			}
			v.Start(cmd.Context())

			return imagemap.Run(v, imagemap.RunConfig{
				Title:  "imagemap - " + dir,
				Width:  width,
				Height: height,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().BoolVar(&debug, "debug", false, "draw the layout overlay and per-frame stats")
	cmd.Flags().IntVar(&width, "width", 1024, "initial window width")
	cmd.Flags().IntVar(&height, "height", 768, "initial window height")
	cmd.Flags().StringVar(&script, "script", "", "JSON test script to run")
	cmd.Flags().StringVar(&screenshotDir, "screenshots", "screenshots", "directory for script screenshots")
	cmd.Flags().BoolVar(&exitAfter, "exit", false, "exit when the test script is done")

	return cmd
}
