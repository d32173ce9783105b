// Package config loads cubesim settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the top-level TOML structure.
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Play    PlayConfig    `toml:"play"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	Mirror  MirrorConfig  `toml:"mirror"`
}

// EngineConfig tunes the simulator.
type EngineConfig struct {
	Rate          float64 `toml:"rate"`           // rad/s
	ShuffleLength int     `toml:"shuffle_length"` // turns per shuffle
	Seed          uint64  `toml:"seed"`           // 0 picks a random seed
}

// PlayConfig tunes the terminal renderer.
type PlayConfig struct {
	FPS int `toml:"fps"`
}

// StorageConfig controls the session log.
type StorageConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // empty uses ~/.cubesim/cubesim.db
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `toml:"level"`  // trace, debug, info, warn, error, off
	Format string `toml:"format"` // console or json
	File   string `toml:"file"`   // empty writes to stderr
}

// MirrorConfig controls the physical cube bridge.
type MirrorConfig struct {
	ScanTimeout string `toml:"scan_timeout"`
	Buffer      int    `toml:"buffer"` // pending device moves
}

// ScanTimeoutDuration parses ScanTimeout.
func (m MirrorConfig) ScanTimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(m.ScanTimeout))
	if err != nil {
		return 0, fmt.Errorf("parse scan_timeout: %w", err)
	}
	return d, nil
}

// DefaultTOML is written by WriteDefault.
const DefaultTOML = `# cubesim configuration

[engine]
rate = 5.0            # animation speed in rad/s
shuffle_length = 20
seed = 0              # 0 picks a random seed per run

[play]
fps = 60

[storage]
enabled = true
path = ""             # defaults to ~/.cubesim/cubesim.db

[log]
level = "info"
format = "console"
file = ""             # play and mirror log to ~/.cubesim/cubesim.log when empty

[mirror]
scan_timeout = "30s"
buffer = 64
`

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			Rate:          5.0,
			ShuffleLength: 20,
		},
		Play: PlayConfig{
			FPS: 60,
		},
		Storage: StorageConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Mirror: MirrorConfig{
			ScanTimeout: "30s",
			Buffer:      64,
		},
	}
}

// Dir returns ~/.cubesim.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubesim"), nil
}

// DefaultPath returns ~/.cubesim/config.toml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file at path on top of the defaults. A missing
// file is not an error. An empty path uses DefaultPath.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML bytes on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Default(), fmt.Errorf("parse config: unknown keys %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Engine.Rate <= 0 {
		return fmt.Errorf("config: engine.rate must be positive, got %v", c.Engine.Rate)
	}
	if c.Engine.ShuffleLength <= 0 {
		return fmt.Errorf("config: engine.shuffle_length must be positive, got %d", c.Engine.ShuffleLength)
	}
	if c.Play.FPS <= 0 || c.Play.FPS > 240 {
		return fmt.Errorf("config: play.fps must be in 1..240, got %d", c.Play.FPS)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("config: log.format must be console or json, got %q", c.Log.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "disabled", "disable", "off", "none":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	if _, err := c.Mirror.ScanTimeoutDuration(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Mirror.Buffer <= 0 {
		return fmt.Errorf("config: mirror.buffer must be positive, got %d", c.Mirror.Buffer)
	}
	return nil
}

// FrameInterval returns the duration of one rendered frame.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Play.FPS)
}

// Encode renders the config as TOML.
func (c Config) Encode() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return buf.String(), nil
}

// WriteDefault writes DefaultTOML to path unless a file already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultTOML), 0644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}
