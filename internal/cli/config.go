package cli

import (
	"os"
	"path/filepath"

	"github.com/phanxgames/imagemap"
)

// loadConfig returns the defaults, overlaid by the TOML file at path when
// path is not empty.
func loadConfig(path string) (imagemap.Config, error) {
	if path == "" {
		return imagemap.DefaultConfig(), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return imagemap.Config{}, err
	}
	return imagemap.LoadConfig(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}
