package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.UI.Width != 480 || cfg.UI.Height != 854 {
		t.Errorf("size = %dx%d, want 480x854", cfg.UI.Width, cfg.UI.Height)
	}
	if cfg.HasServer() {
		t.Error("default config has a server")
	}
}

func TestLoadFromOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[server]
url = "http://media:8096"
token = "abc"
user_id = "u1"

[touch]
slop_px = 24
long_press_ms = 800
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !cfg.HasServer() {
		t.Error("server not picked up")
	}
	tc := cfg.TouchSettings()
	if tc.Slop != 24 {
		t.Errorf("Slop = %d, want 24", tc.Slop)
	}
	if tc.LongPressTimeout != 800*time.Millisecond {
		t.Errorf("LongPressTimeout = %v, want 800ms", tc.LongPressTimeout)
	}
	if tc.MaxFlingVelocity != 4000 {
		t.Errorf("MaxFlingVelocity = %d, want default 4000", tc.MaxFlingVelocity)
	}
	if cfg.Source.PlaceholderCount != 40 {
		t.Errorf("PlaceholderCount = %d, want default 40", cfg.Source.PlaceholderCount)
	}
}

func TestTouchSettingsIgnoresInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Touch = TouchConfig{SlopPx: -1, MaxFlingVelocity: 0, LongPressMs: -5}
	tc := cfg.TouchSettings()
	if tc.Slop != 16 || tc.MaxFlingVelocity != 4000 || tc.LongPressTimeout != 500*time.Millisecond {
		t.Errorf("got %+v, want defaults", tc)
	}
}

func TestLoadFromBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[ui\nwidth ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := DefaultConfig()
	cfg.Server.LibraryID = "lib-7"
	cfg.UI.Fullscreen = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Server.LibraryID != "lib-7" || !got.UI.Fullscreen {
		t.Errorf("round trip lost fields: %+v", got)
	}
}

func TestConfigDirUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "jellygrid") {
		t.Errorf("ConfigDir = %q", dir)
	}
}
