package imagemap

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration written as a string ("200ms") in TOML.
type Duration time.Duration

// D returns the value as a time.Duration.
func (d Duration) D() time.Duration { return time.Duration(d) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config is the complete viewer configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Hint   HintConfig   `toml:"hint"`
	Loader LoaderConfig `toml:"loader"`
	// Debug draws the triangulation overlay and logs per-pass stats.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Layout: DefaultLayoutConfig(),
		Hint:   DefaultHintConfig(),
		Loader: DefaultLoaderConfig(),
	}
}

// LoadConfig reads a TOML file from fsys and overlays it on DefaultConfig.
// Keys absent from the file keep their defaults. The result is validated.
func LoadConfig(fsys fs.FS, path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return cfg, fmt.Errorf("imagemap: read config %s: %w", path, err)
	}
	if err := cfg.Decode(data); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode overlays TOML data onto cfg and validates the result. Unknown keys
// are rejected so typos do not pass silently.
func (cfg *Config) Decode(data []byte) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return wrapError(ErrCodeInvalidConfig, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return newError(ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate reports every invalid setting, joined.
func (cfg Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, newError(ErrCodeInvalidConfig, format, args...))
		}
	}

	l := cfg.Layout
	check(l.Margin >= 1, "layout.margin must be >= 1, got %v", l.Margin)
	check(l.Rounds >= 0, "layout.rounds must be >= 0, got %d", l.Rounds)
	check(l.Relax.SpringConstant >= 0, "layout.relax.spring_constant must be >= 0")
	check(l.Relax.MaxForceComponent > 0, "layout.relax.max_force_component must be > 0")
	check(l.Relax.MaxMovementPerRound > 0, "layout.relax.max_movement_per_round must be > 0")
	check(l.Relax.BoundaryStrength >= 0, "layout.relax.boundary_strength must be >= 0")

	h := cfg.Hint
	check(h.StartOpacity > 0 && h.StartOpacity <= 1, "hint.start_opacity must be in (0, 1], got %v", h.StartOpacity)
	check(h.Step > 0, "hint.step must be > 0, got %v", h.Step)
	check(h.Interval > 0, "hint.interval must be > 0, got %v", h.Interval.D())
	check(h.Radius > 0, "hint.radius must be > 0")

	check(cfg.Loader.Concurrency > 0, "loader.concurrency must be > 0, got %d", cfg.Loader.Concurrency)
	check(cfg.Loader.PreviewMaxDim >= 0, "loader.preview_max_dim must be >= 0")

	return errors.Join(errs...)
}
