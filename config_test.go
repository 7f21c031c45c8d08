package canopy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("resolution = %dx%d, want 1280x720", cfg.Width, cfg.Height)
	}
	if cfg.MSAA != 0 || cfg.Debug {
		t.Errorf("MSAA/Debug = %d/%v, want 0/false", cfg.MSAA, cfg.Debug)
	}
	if !cfg.SuspendOnFocusLost || !cfg.FlipY {
		t.Error("SuspendOnFocusLost and FlipY should default to true")
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
title = "demo"
width = 800
height = 600
debug = true
log_level = "debug"
msaa = 6
suspend_on_focus_lost = false
`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Title != "demo" || cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.Debug || cfg.LogLevel != "debug" || cfg.SuspendOnFocusLost {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.MSAA != 4 {
		t.Errorf("MSAA = %d, want 4 (rounded down to a power of two)", cfg.MSAA)
	}
	// Absent keys keep their defaults.
	if !cfg.FlipY || cfg.ScreenshotDir != "screenshots" {
		t.Errorf("FlipY/ScreenshotDir = %v/%q, want defaults", cfg.FlipY, cfg.ScreenshotDir)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", `width = `},
		{"wrong type", `width = "wide"`},
		{"zero width", `width = 0`},
		{"negative height", `height = -1`},
		{"bad log level", `log_level = "loud"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.toml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canopy.toml")
	if err := os.WriteFile(path, []byte("width = 320\nheight = 240\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Errorf("resolution = %dx%d, want 320x240", cfg.Width, cfg.Height)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canopy.toml")
	if err := os.WriteFile(path, []byte("msaa = [1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestConfigApply(t *testing.T) {
	prev := logger.GetLevel()
	t.Cleanup(func() { logger.SetLevel(prev) })

	cfg := DefaultConfig()
	cfg.LogLevel = "warn"
	cfg.Apply()
	if logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", logger.GetLevel())
	}
}

func TestFloorPow2(t *testing.T) {
	tests := []struct{ in, want int }{
		{-3, 0}, {0, 0}, {1, 0}, {2, 2}, {3, 2}, {4, 4}, {7, 4}, {8, 8}, {16, 16}, {17, 16},
	}
	for _, tt := range tests {
		if got := floorPow2(tt.in); got != tt.want {
			t.Errorf("floorPow2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
