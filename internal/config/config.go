package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/confetti/internal/confetti"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512
	WindowTitle  = "Confetti - Enter: start, S: stop, Space: pause, R: remove, G: gradient, O: open config, Esc/Q: quit"

	SurfaceName = "confetti-canvas"

	MaxCount      = 150
	Speed         = 2.0
	FrameInterval = 15 * time.Millisecond
	Alpha         = 1.0

	BurstCount    = 50
	BurstDuration = 3 * time.Second
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	MaxCount      int           `yaml:"max_count"`
	Speed         float64       `yaml:"speed"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	Alpha         float64       `yaml:"alpha"`
	Gradient      bool          `yaml:"gradient"`
	Palette       []string      `yaml:"palette"`
	SurfaceName   string        `yaml:"surface_name"`

	Window WindowConfig `yaml:"window"`
	Sound  SoundConfig  `yaml:"sound"`
	Burst  BurstConfig  `yaml:"burst"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type SoundConfig struct {
	Enabled bool `yaml:"enabled"`
	// Volume is in beep's log2 steps: 0 leaves the level alone, -1 halves it.
	Volume float64 `yaml:"volume"`
}

// BurstConfig is what the start key asks for. Zero fields mean "not given".
type BurstConfig struct {
	Min      int           `yaml:"min"`
	Max      int           `yaml:"max"`
	Duration time.Duration `yaml:"duration"`
}

func Default() *Config {
	return &Config{
		MaxCount:      MaxCount,
		Speed:         Speed,
		FrameInterval: FrameInterval,
		Alpha:         Alpha,
		Palette: []string{
			"#1e90ff", "#6b8e23", "#ffd700", "#ffc0cb", "#6a5acd", "#add8e6",
			"#ee82ee", "#98fb98", "#4682b4", "#f4a460", "#d2691e", "#dc143c",
		},
		SurfaceName: SurfaceName,
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
		},
		Sound: SoundConfig{Enabled: true, Volume: -1},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.MaxCount <= 0:
		return fmt.Errorf("%w: max_count must be positive, got %d", ErrInvalid, c.MaxCount)
	case c.FrameInterval <= 0:
		return fmt.Errorf("%w: frame_interval must be positive, got %v", ErrInvalid, c.FrameInterval)
	case c.Alpha < 0 || c.Alpha > 1:
		return fmt.Errorf("%w: alpha must be within [0, 1], got %v", ErrInvalid, c.Alpha)
	case len(c.Palette) == 0:
		return fmt.Errorf("%w: palette is empty", ErrInvalid)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Burst.Min < 0 || c.Burst.Max < 0 || c.Burst.Duration < 0:
		return fmt.Errorf("%w: burst values must not be negative", ErrInvalid)
	}
	if _, err := c.palette(); err != nil {
		return err
	}
	return nil
}

func (c *Config) palette() ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(c.Palette))
	for _, s := range c.Palette {
		col, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("%w: palette color %q: %v", ErrInvalid, s, err)
		}
		r, g, b := col.RGB255()
		out = append(out, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return out, nil
}

// Settings converts the config into animator settings.
func (c *Config) Settings() (confetti.Settings, error) {
	palette, err := c.palette()
	if err != nil {
		return confetti.Settings{}, err
	}
	return confetti.Settings{
		MaxCount:      c.MaxCount,
		Speed:         c.Speed,
		FrameInterval: c.FrameInterval,
		Alpha:         c.Alpha,
		Gradient:      c.Gradient,
		Palette:       palette,
	}, nil
}

// StartOptions is the burst the start key requests.
func (c *Config) StartOptions() confetti.StartOptions {
	return confetti.StartOptions{
		Duration: c.Burst.Duration,
		Min:      c.Burst.Min,
		Max:      c.Burst.Max,
	}
}
