package player

import (
	"testing"

	"github.com/depeter/jellygrid/internal/config"
)

func TestOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Playback.Volume = 70
	got := map[string]string{}
	for _, o := range options(cfg) {
		got[o.name] = o.value
	}
	if got["hwdec"] != "auto-safe" {
		t.Errorf("hwdec = %q", got["hwdec"])
	}
	if got["volume"] != "70" {
		t.Errorf("volume = %q", got["volume"])
	}
	if _, ok := got["fullscreen"]; ok {
		t.Error("fullscreen set for a windowed config")
	}

	cfg.UI.Fullscreen = true
	found := false
	for _, o := range options(cfg) {
		if o.name == "fullscreen" && o.value == "yes" {
			found = true
		}
	}
	if !found {
		t.Error("fullscreen not passed to mpv")
	}
}
