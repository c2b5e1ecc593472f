package cli

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phanxgames/imagemap"
)

func newValidateCmd() *cobra.Command {
	var checkFiles bool

	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Check an images.json manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			fsys := os.DirFS(filepath.Dir(abs))
			return runValidate(fsys, filepath.Base(abs), checkFiles, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&checkFiles, "files", false, "also check that every image source exists")

	return cmd
}

func runValidate(fsys fs.FS, name string, checkFiles bool, w io.Writer) error {
	images, err := imagemap.LoadManifest(fsys, name)
	if err != nil {
		return err
	}

	regions := 0
	var missing []string
	for _, img := range images {
		regions += len(img.Regions)
		if checkFiles {
			if _, err := fs.Stat(fsys, img.ID); err != nil {
				missing = append(missing, img.ID)
			}
		}
	}

	fmt.Fprintf(w, "%s: %d images, %d regions\n", name, len(images), regions)
	for _, img := range images {
		if len(img.Regions) == 0 {
			fmt.Fprintf(w, "  %s: no regions (never selectable)\n", img.ID)
		}
	}
	if len(missing) > 0 {
		for _, src := range missing {
			fmt.Fprintf(w, "  %s: missing\n", src)
		}
		return fmt.Errorf("%d image sources missing", len(missing))
	}
	return nil
}
