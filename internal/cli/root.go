// Package cli implements the imagemap command-line interface.
//
// # Commands
//
// The main commands are:
//   - view: Open a directory of annotated images as an interactive map
//   - layout: Compute the layout headlessly and print every point
//   - validate: Check a manifest and report what it contains
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/imagemap"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// Typically called by main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the imagemap CLI with the process arguments.
func Execute(ctx context.Context) error {
	return newRootCommand(os.Stderr).ExecuteContext(ctx)
}

// newRootCommand builds the command tree. Logs go to logOut.
func newRootCommand(logOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "imagemap",
		Short:        "imagemap shows annotated images as an interactive map",
		Long:         `imagemap lays out a directory of images by their points of interest and shows the image whose point is nearest the pointer.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(imagemap.WithLogger(ctx, imagemap.NewLogger(logOut, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("imagemap %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newViewCmd())
	root.AddCommand(newLayoutCmd())
	root.AddCommand(newValidateCmd())

	return root
}
