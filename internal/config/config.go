package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/vidyasagar/histnav/internal/theme"
	"gopkg.in/yaml.v3"
)

// Config holds histnav user configuration.
type Config struct {
	Theme        string `yaml:"theme"`
	MaxURLLength int    `yaml:"max_url_length"` // in runes, 0 disables the limit
	Suggestions  int    `yaml:"suggestions"`    // recent inputs offered by the TUI prompt
	LogLevel     string `yaml:"log_level"`
	path         string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:        "default",
		MaxURLLength: 2048,
		Suggestions:  32,
		LogLevel:     "info",
	}
}

// Load reads configuration from path. An empty path means the standard
// location; a missing file there, or no standard location at all, is not
// an error and yields the defaults. Nothing is ever written back.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return &cfg, nil
		}
		path = filepath.Join(dir, "config.yaml")
	}
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks values that cannot be used as given.
func (c *Config) Validate() error {
	if !theme.Has(c.Theme) {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	if c.MaxURLLength < 0 {
		return fmt.Errorf("max_url_length must not be negative, got %d", c.MaxURLLength)
	}
	if c.Suggestions < 0 {
		return fmt.Errorf("suggestions must not be negative, got %d", c.Suggestions)
	}
	return nil
}

// Path returns the file the configuration was looked up at.
func (c *Config) Path() string {
	return c.path
}

func configDir() (string, error) {
	if runtime.GOOS != "darwin" && runtime.GOOS != "windows" {
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, "histnav"), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", "histnav")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			dir = filepath.Join(appData, "histnav")
		} else {
			dir = filepath.Join(home, ".histnav")
		}
	default:
		dir = filepath.Join(home, ".config", "histnav")
	}

	return dir, nil
}
