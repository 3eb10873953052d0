package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// Load builds the effective configuration: defaults, then the config file
// named by -config or found in a standard location, then flags.
func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	}

	applyFlags(cfg)
	cfg.Scene.Name = normalizeScene(cfg.Scene.Name)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// LoadFile reads one config file over the defaults. Relative paths in the
// file are taken from the file's directory. Unknown keys and scene names
// are rejected here so the error can name the file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	var before []string
	for _, p := range cfg.paths() {
		before = append(before, *p)
	}
	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i, p := range cfg.paths() {
		if *p != before[i] && *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}

	cfg.Scene.Name = normalizeScene(cfg.Scene.Name)
	if !knownScene(cfg.Scene.Name) {
		return nil, fmt.Errorf("%s: %w %q (want one of %s)",
			path, ErrUnknownScene, cfg.Scene.Name, strings.Join(Scenes, ", "))
	}
	return cfg, nil
}

// paths lists the file system settings, in a fixed order.
func (c *Config) paths() []*string {
	return []*string{
		&c.Scene.HeightMap,
		&c.Snapshot.OutputDir,
		&c.Logging.LogFile,
	}
}

func normalizeScene(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	for _, path := range []string{fileName, filepath.Join(ConfigDir(), fileName)} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Nightfield")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Nightfield")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nightfield")
	}
	return filepath.Join(home, ".config", "nightfield")
}

// loadFromFile decodes a YAML file over cfg. Keys absent from the file keep
// their current values; keys cfg does not have are an error.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}
