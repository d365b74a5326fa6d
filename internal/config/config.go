// Package config loads lyread.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file searched for.
const FileName = "lyread.toml"

// ErrNotFound is returned by Find when no lyread.toml exists up to the
// filesystem root.
var ErrNotFound = errors.New(FileName + " not found")

type Read struct {
	DropUnknown  bool `toml:"drop_unknown"`
	NormalizeNFC bool `toml:"normalize_nfc"`
}

type Output struct {
	Format string `toml:"format"` // pretty|json|yaml|msgpack
	Color  string `toml:"color"`  // auto|on|off
}

type Batch struct {
	Jobs       int      `toml:"jobs"` // 0 = GOMAXPROCS
	Cache      bool     `toml:"cache"`
	Extensions []string `toml:"extensions"`
}

type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Config mirrors lyread.toml.
type Config struct {
	Read   Read   `toml:"read"`
	Output Output `toml:"output"`
	Batch  Batch  `toml:"batch"`
	Log    Log    `toml:"log"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `toml:"-"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Output: Output{Format: "pretty", Color: "auto"},
		Batch:  Batch{Extensions: []string{".ly", ".ily", ".lyi"}},
		Log:    Log{Level: "warn"},
	}
}

// Find walks up from startDir to locate lyread.toml.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	// пустой список расширений в файле означает «по умолчанию»
	if meta.IsDefined("batch", "extensions") && len(cfg.Batch.Extensions) == 0 {
		cfg.Batch.Extensions = Default().Batch.Extensions
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads lyread.toml starting at dir. A missing file
// yields the defaults.
func Discover(dir string) (Config, error) {
	path, err := Find(dir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if !slices.Contains([]string{"pretty", "json", "yaml", "msgpack"}, c.Output.Format) {
		return fmt.Errorf("invalid [output].format %q (expected: pretty|json|yaml|msgpack)", c.Output.Format)
	}
	if !slices.Contains([]string{"auto", "on", "off"}, c.Output.Color) {
		return fmt.Errorf("invalid [output].color %q (expected: auto|on|off)", c.Output.Color)
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("invalid [batch].jobs %d: must be >= 0", c.Batch.Jobs)
	}
	for _, ext := range c.Batch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("invalid [batch].extensions entry %q: must start with '.'", ext)
		}
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("invalid [log].level %q (expected: debug|info|warn|error)", c.Log.Level)
	}
	return nil
}
