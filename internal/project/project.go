// Package project discovers and decodes a bulloak.toml project file,
// supplying per-run defaults for the scaffold/check flags (spec.md §6.3,
// SPEC_FULL.md §10.3). Discovery walks parent directories until a
// manifest is found or the filesystem root is reached.
package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project file bulloak looks for.
const ManifestName = "bulloak.toml"

// Config holds the defaults a bulloak.toml file may override. Every
// field mirrors a CLI flag from spec.md §6.3; CLI flags always win over
// these values, which in turn win over the built-in defaults.
type Config struct {
	SolidityVersion string `toml:"solidity_version"`
	VmSkip          bool   `toml:"vm_skip"`
	SkipModifiers   bool   `toml:"skip_modifiers"`
	Stdout          bool   `toml:"stdout"`
	Color           string `toml:"color"` // "auto" | "on" | "off"
}

// Default returns the built-in defaults used when no manifest is found
// and no flag overrides them (spec.md §6.3: solidity-version 0.8.0).
func Default() Config {
	return Config{SolidityVersion: "0.8.0", Color: "auto"}
}

// Find walks up from dir looking for a bulloak.toml: check dir, then
// each parent in turn, stopping at the filesystem root.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads and decodes the manifest at path into Default()'s base
// values, so a manifest that sets only one field leaves the rest at
// their built-in defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromDir discovers and loads a manifest starting at dir, returning
// the built-in defaults unchanged if none is found. A missing file is
// not an error; a malformed one is.
func LoadFromDir(dir string) (Config, error) {
	path, ok := Find(dir)
	if !ok {
		return Default(), nil
	}
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	return cfg, nil
}
