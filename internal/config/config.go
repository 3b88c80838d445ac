package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProjectFile is the name of the per-directory overlay searched upward from
// the working directory.
const ProjectFile = ".chainmap.toml"

// Config holds chainmap configuration.
type Config struct {
	UI       UIConfig       `toml:"ui"`
	Canvas   CanvasConfig   `toml:"canvas"`
	Panel    PanelConfig    `toml:"panel"`
	Reveal   RevealConfig   `toml:"reveal"`
	Serve    ServeConfig    `toml:"serve"`
	Log      LogConfig      `toml:"log"`
	Parallel ParallelConfig `toml:"parallel"`
}

// UIConfig controls display options.
type UIConfig struct {
	Emoji bool `toml:"emoji"`
	Color bool `toml:"color"`
}

// CanvasConfig sizes the mind-map canvas.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// PanelConfig controls the detail panel.
type PanelConfig struct {
	ExitTransitionMS int `toml:"exit_transition_ms"` // length of the close animation
}

// RevealConfig controls scroll reveal in the article.
type RevealConfig struct {
	Threshold float64 `toml:"threshold"`
}

// ServeConfig controls the preview server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "text", "json"
}

// ParallelConfig controls concurrent exports.
type ParallelConfig struct {
	Concurrency int `toml:"concurrency"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		UI:       UIConfig{Emoji: true, Color: true},
		Canvas:   CanvasConfig{Width: 1400, Height: 900},
		Panel:    PanelConfig{ExitTransitionMS: 350},
		Reveal:   RevealConfig{Threshold: 0.15},
		Serve:    ServeConfig{Addr: "127.0.0.1:7420"},
		Log:      LogConfig{Level: "info", Format: "text"},
		Parallel: ParallelConfig{Concurrency: 4},
	}
}

// ConfigDir returns the chainmap config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "chainmap")
}

// Path returns the user config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the user config and overlays the nearest project file found from
// the working directory up. Missing or unreadable files leave defaults.
func Load() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	return LoadAt(cwd)
}

// LoadAt is Load with an explicit starting directory for the project overlay.
func LoadAt(cwd string) *Config {
	cfg := Default()
	overlay(cfg, Path())
	if cwd != "" {
		if p := FindProjectFile(cwd); p != "" {
			overlay(cfg, p)
		}
	}
	cfg.normalize()
	return cfg
}

// overlay decodes path over cfg. A file that fails to parse is ignored as a
// whole so a typo never leaves half-applied settings behind.
func overlay(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	next := *cfg
	if err := toml.Unmarshal(data, &next); err != nil {
		return
	}
	*cfg = next
}

func (c *Config) normalize() {
	d := Default()
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		c.Canvas = d.Canvas
	}
	if c.Panel.ExitTransitionMS < 0 {
		c.Panel.ExitTransitionMS = 0
	}
	if c.Reveal.Threshold <= 0 || c.Reveal.Threshold > 1 {
		c.Reveal.Threshold = d.Reveal.Threshold
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = d.Serve.Addr
	}
	if c.Parallel.Concurrency < 1 {
		c.Parallel.Concurrency = d.Parallel.Concurrency
	}
}

// FindProjectFile returns the nearest ProjectFile in dir or its parents, or "".
func FindProjectFile(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		p := filepath.Join(dir, ProjectFile)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	if _, err := os.Stat(Path()); err == nil {
		return nil // already exists
	}
	return Save(Default())
}
