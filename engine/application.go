package engine

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/oxide/engine/core"
)

const (
	DefaultWidth   = 1280
	DefaultHeight  = 720
	DefaultName    = "oxide"
	DefaultBackend = "glfw"
)

type ApplicationConfig struct {
	// The application name used as window title.
	Name string `toml:"name"`
	// Window starting width.
	Width int `toml:"width"`
	// Window starting height.
	Height int `toml:"height"`
	// Fullscreen is a runtime choice and never read from a config file.
	Fullscreen bool `toml:"-"`
	VSync      bool `toml:"vsync"`
	// MaxFPS caps the frame rate when vsync is off. Zero means unbounded.
	MaxFPS int `toml:"max_fps"`
	// Directory of the daily log files, if applicable.
	LogDirectory string `toml:"log_directory"`
	LogLevel     string `toml:"log_level"`
	// Backend is the name of the platform backend to open.
	Backend string `toml:"backend"`
}

func DefaultConfig() ApplicationConfig {
	return ApplicationConfig{
		Name:    DefaultName,
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		VSync:   true,
		Backend: DefaultBackend,
	}
}

func (c ApplicationConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", core.ErrInvalidConfig, c.Width, c.Height)
	}
	if c.MaxFPS < 0 {
		return fmt.Errorf("%w: max fps must be positive or zero for unbounded, got %d", core.ErrInvalidConfig, c.MaxFPS)
	}
	if c.Backend == "" {
		return fmt.Errorf("%w: no platform backend selected", core.ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a TOML config file on top of the defaults. Unknown keys
// are rejected.
func LoadConfig(path string) (ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ApplicationConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (ApplicationConfig, error) {
	cfg := DefaultConfig()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return ApplicationConfig{}, fmt.Errorf("%w: %w", core.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return ApplicationConfig{}, err
	}
	return cfg, nil
}
