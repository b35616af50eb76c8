// Package config loads the mirror-balls settings from an optional JSON file
// and applies command-line overrides and defaults on top.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

const (
	ModeWindow  = "window"
	ModeCapture = "capture"

	VariantMany   = "many"
	VariantSingle = "single"

	// MinFPS and MaxFPS bound the capture frame rate.
	MinFPS = 1
	MaxFPS = 120
)

// Config holds all configurable paths and render settings.
type Config struct {
	Mode    string `json:"mode"`
	Variant string `json:"variant"`

	// Assets
	AssetsDir string `json:"assets_dir"`
	Matcap    string `json:"matcap"`

	// Scene
	Balls int    `json:"balls"`
	Seed  uint64 `json:"seed"`

	// Output size in logical pixels
	Width   int  `json:"width"`
	Height  int  `json:"height"`
	ShowFPS bool `json:"show_fps"`

	// Capture settings
	Frames      int     `json:"frames"`
	FPS         float64 `json:"fps"`
	Supersample int     `json:"supersample"`
	Workers     int     `json:"workers"`
	Output      string  `json:"output"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Mode        string
	Variant     string
	AssetsDir   string
	Matcap      string
	Balls       int
	Seed        uint64
	Width       int
	Height      int
	ShowFPS     bool
	Frames      int
	FPS         float64
	Supersample int
	Workers     int
	Output      string
}

// Resolve fills in any empty fields with auto-detected defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Variant != "" {
		c.Variant = flags.Variant
	}
	if flags.AssetsDir != "" {
		c.AssetsDir = flags.AssetsDir
	}
	if flags.Matcap != "" {
		c.Matcap = flags.Matcap
	}
	if flags.Balls > 0 {
		c.Balls = flags.Balls
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.ShowFPS {
		c.ShowFPS = true
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}

	if c.Mode == "" {
		c.Mode = ModeWindow
	}
	if c.Variant == "" {
		c.Variant = VariantMany
	}

	// Auto-detect assets dir if still empty
	if c.AssetsDir == "" {
		c.AssetsDir = detectAssetsDir()
	}
	if c.Matcap == "" {
		c.Matcap = "matcap-crystal"
	}

	// Defaults for scene and render settings
	if c.Balls <= 0 {
		c.Balls = 6
	}
	if c.Seed == 0 {
		c.Seed = uint64(time.Now().UnixNano())
	}
	if c.Width <= 0 {
		c.Width = 960
	}
	if c.Height <= 0 {
		c.Height = 640
	}
	if c.Frames <= 0 {
		c.Frames = 120
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Output == "" {
		c.Output = "mirror-balls.webp"
	}
}

// Validate reports settings Resolve cannot repair.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeWindow, ModeCapture:
	default:
		return fmt.Errorf("config: unknown mode %q (want %s or %s)", c.Mode, ModeWindow, ModeCapture)
	}
	switch c.Variant {
	case VariantMany, VariantSingle:
	default:
		return fmt.Errorf("config: unknown variant %q (want %s or %s)", c.Variant, VariantMany, VariantSingle)
	}
	if c.Mode == ModeCapture && !(c.FPS >= MinFPS && c.FPS <= MaxFPS) {
		return fmt.Errorf("config: fps %v out of range [%d, %d]", c.FPS, MinFPS, MaxFPS)
	}
	if c.Supersample > 4 {
		return fmt.Errorf("config: supersample %d too large (max 4)", c.Supersample)
	}
	return nil
}

func detectAssetsDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir)} {
			if isDir(filepath.Join(base, "assets")) {
				return filepath.Join(base, "assets")
			}
		}
	}

	// Try current working directory
	cwd, _ := os.Getwd()
	if isDir(filepath.Join(cwd, "assets")) {
		return filepath.Join(cwd, "assets")
	}

	return "assets"
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
