package player

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/gen2brain/go-mpv"

	"github.com/depeter/jellygrid/internal/config"
)

// Player wraps libmpv to play items activated in the grid. mpv opens its own
// window; the grid stays up underneath.
type Player struct {
	m        *mpv.Mpv
	mu       sync.Mutex
	playing  bool
	position float64
	itemID   string

	// OnPlaybackEnd is called from the event goroutine with the item that
	// stopped and its last position in seconds.
	OnPlaybackEnd func(itemID string, position float64)
}

type option struct {
	name, value string
}

// options lists the mpv options derived from cfg.
func options(cfg *config.Config) []option {
	opts := []option{
		{"hwdec", cfg.Playback.HWAccel},
		{"vo", "gpu"},
		{"osc", "yes"},
		{"force-window", "yes"},
		{"keep-open", "no"},
		{"idle", "yes"},
		{"volume", fmt.Sprintf("%d", cfg.Playback.Volume)},
	}
	if cfg.UI.Fullscreen {
		opts = append(opts, option{"fullscreen", "yes"})
	}
	return opts
}

// New creates and initializes a new mpv player instance.
func New(cfg *config.Config) (*Player, error) {
	m := mpv.New()
	for _, o := range options(cfg) {
		must(m.SetOptionString(o.name, o.value))
	}

	if err := m.Initialize(); err != nil {
		return nil, fmt.Errorf("mpv init: %w", err)
	}

	p := &Player{m: m}
	m.ObserveProperty(0, "time-pos", mpv.FormatDouble)

	go p.eventLoop()

	return p, nil
}

func must(err error) {
	if err != nil {
		log.Printf("mpv option warning: %v", err)
	}
}

// Play starts playback of url, replacing anything already playing.
func (p *Player) Play(url, itemID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.itemID = itemID
	p.playing = true
	p.position = 0
	if err := p.m.Command([]string{"loadfile", url}); err != nil {
		p.playing = false
		return fmt.Errorf("loadfile: %w", err)
	}
	return nil
}

// Stop stops playback.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	return p.m.Command([]string{"stop"})
}

// Destroy cleans up the mpv instance.
func (p *Player) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m.TerminateDestroy()
}

// Playing returns whether media is currently loaded.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// ItemID returns the currently playing item ID.
func (p *Player) ItemID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.itemID
}

func (p *Player) eventLoop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	for {
		ev := p.m.WaitEvent(1.0)
		if ev == nil {
			continue
		}

		switch ev.EventID {
		case mpv.EventPropertyChange:
			if ev.Data == nil {
				continue
			}
			prop := ev.Property()
			if v, ok := prop.Data.(float64); ok && prop.Name == "time-pos" {
				p.mu.Lock()
				p.position = v
				p.mu.Unlock()
			}

		case mpv.EventEnd:
			p.mu.Lock()
			wasPlaying := p.playing
			p.playing = false
			itemID, pos := p.itemID, p.position
			p.mu.Unlock()
			if ev.Data != nil {
				log.Printf("mpv end-file: reason=%s wasPlaying=%v", ev.EndFile().Reason, wasPlaying)
			}
			// Stop clears playing first, so its end event is not reported.
			if wasPlaying && p.OnPlaybackEnd != nil {
				p.OnPlaybackEnd(itemID, pos)
			}

		case mpv.EventShutdown:
			return
		}
	}
}
