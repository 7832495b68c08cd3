package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load resolves the config file (the -config flag, then the search
// locations), merges it over the defaults and applies flag overrides.
func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	cfg, err := fromFile(path)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg)
	cfg.Validate()
	return cfg, nil
}

// LoadFile is Load without flags: defaults merged with the YAML file at
// path. An empty path yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg, err := fromFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Validate()
	return cfg, nil
}

func fromFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing candidate, or "".
func findConfigFile() string {
	for _, path := range []string{
		"skyrig.yaml",
		"config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	} {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "SkyRig")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "SkyRig")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "skyrig")
	}
	return filepath.Join(home, ".config", "skyrig")
}

// loadFromFile overlays the YAML at path onto cfg. Keys missing from the
// file keep their current values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	return nil
}
