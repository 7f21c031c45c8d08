package canopy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

// Config holds window and engine settings, usually read from a TOML file:
//
//	title = "demo"
//	width = 1280
//	height = 720
//	debug = true
//	log_level = "debug"
//	msaa = 4
type Config struct {
	Title              string `toml:"title"`
	Width              int    `toml:"width"`
	Height             int    `toml:"height"`
	Debug              bool   `toml:"debug"`
	LogLevel           string `toml:"log_level"`
	SuspendOnFocusLost bool   `toml:"suspend_on_focus_lost"`
	MSAA               int    `toml:"msaa"`

	// FlipY converts scene coordinates (y up) to screen coordinates (y down)
	// when drawing through EbitenRenderer.
	FlipY bool `toml:"flip_y"`

	// ScreenshotDir is where EbitenRenderer.Screenshot writes PNGs.
	ScreenshotDir string `toml:"screenshot_dir"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Title:              "canopy",
		Width:              1280,
		Height:             720,
		LogLevel:           "info",
		SuspendOnFocusLost: true,
		FlipY:              true,
		ScreenshotDir:      "screenshots",
	}
}

// LoadConfig reads a TOML config file from path. A missing file is not an
// error: the defaults are returned instead.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("no config file found, using defaults", "path", path)
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("canopy: failed to read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("canopy: config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML data over the defaults. Keys absent from data
// keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("canopy: failed to parse config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("canopy: invalid resolution %dx%d", cfg.Width, cfg.Height)
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("canopy: invalid log level %q: %w", cfg.LogLevel, err)
	}
	cfg.MSAA = floorPow2(cfg.MSAA)
	return cfg, nil
}

// Apply sets the package log level from the config.
func (c Config) Apply() {
	if lvl, err := log.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
}

// floorPow2 rounds n down to a power of two. Values below 2 disable
// multisampling and return 0.
func floorPow2(n int) int {
	if n < 2 {
		return 0
	}
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}
