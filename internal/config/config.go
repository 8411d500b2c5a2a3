package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/depeter/jellygrid/internal/layout"
	"github.com/depeter/jellygrid/internal/touch"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Touch    TouchConfig    `toml:"touch"`
	Playback PlaybackConfig `toml:"playback"`
	UI       UIConfig       `toml:"ui"`
	Source   SourceConfig   `toml:"source"`
}

type ServerConfig struct {
	URL      string `toml:"url"`
	Username string `toml:"username"`
	Token    string `toml:"token"`
	UserID   string `toml:"user_id"`
	// LibraryID limits the grid to one library; empty means all items.
	LibraryID string `toml:"library_id"`
}

type TouchConfig struct {
	SlopPx           int `toml:"slop_px"`
	MaxFlingVelocity int `toml:"max_fling_velocity"`
	LongPressMs      int `toml:"long_press_ms"`
}

type PlaybackConfig struct {
	HWAccel string `toml:"hwdec"`
	Volume  int    `toml:"volume"`
}

type UIConfig struct {
	Fullscreen bool `toml:"fullscreen"`
	Width      int  `toml:"width"`
	Height     int  `toml:"height"`
}

type SourceConfig struct {
	// PlaceholderCount is the number of generated items shown when no server
	// is configured.
	PlaceholderCount  int `toml:"placeholder_count"`
	PosterConcurrency int `toml:"poster_concurrency"`
}

func DefaultConfig() *Config {
	def := touch.DefaultConfig()
	ref := layout.Default()
	return &Config{
		Touch: TouchConfig{
			SlopPx:           def.Slop,
			MaxFlingVelocity: def.MaxFlingVelocity,
			LongPressMs:      int(def.LongPressTimeout.Milliseconds()),
		},
		Playback: PlaybackConfig{
			HWAccel: "auto-safe",
			Volume:  100,
		},
		UI: UIConfig{
			Fullscreen: false,
			Width:      ref.ScreenWidthPx,
			Height:     ref.ScreenHeightPx,
		},
		Source: SourceConfig{
			PlaceholderCount:  40,
			PosterConcurrency: 6,
		},
	}
}

// TouchSettings returns the state machine thresholds, falling back to the
// defaults for unset or invalid values.
func (c *Config) TouchSettings() touch.Config {
	tc := touch.DefaultConfig()
	if c.Touch.SlopPx > 0 {
		tc.Slop = c.Touch.SlopPx
	}
	if c.Touch.MaxFlingVelocity > 0 {
		tc.MaxFlingVelocity = c.Touch.MaxFlingVelocity
	}
	if c.Touch.LongPressMs > 0 {
		tc.LongPressTimeout = time.Duration(c.Touch.LongPressMs) * time.Millisecond
	}
	return tc
}

// HasServer reports whether enough is configured to talk to Jellyfin.
func (c *Config) HasServer() bool {
	return c.Server.URL != "" && c.Server.Token != "" && c.Server.UserID != ""
}

func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "jellygrid"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir is where downloaded posters are kept.
func CacheDir() (string, error) {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "jellygrid", "images"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path over the defaults. A missing file is not
// an error.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
