package app

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/depeter/jellygrid/internal/config"
	"github.com/depeter/jellygrid/internal/grid"
	"github.com/depeter/jellygrid/internal/input"
	"github.com/depeter/jellygrid/internal/render"
	"github.com/depeter/jellygrid/internal/source"
	"github.com/depeter/jellygrid/internal/touch"
)

// Launcher plays an activated item.
type Launcher interface {
	Play(url, itemID string) error
}

// Reporter tells the media server about playback started from the grid.
type Reporter interface {
	ReportPlaybackStart(ctx context.Context, itemID string) error
}

type loadResult struct {
	items []grid.Item
	err   error
}

// Game implements ebiten.Game and ties the grid controller to the window.
type Game struct {
	Config *config.Config
	Grid   *grid.Controller
	Engine *render.Engine
	Source source.Source

	// NewLauncher creates the player on first activation. Nil disables
	// playback.
	NewLauncher func() (Launcher, error)
	Reporter    Reporter
	// Back is an optional hardware Back key source.
	Back *input.BackWatcher

	ctx      context.Context
	now      func() int64
	pointer  input.Poller
	launcher Launcher

	width, height int
	loaded        chan loadResult
	loading       bool
	status        string
	statusFace    statusFace

	drag *dragGhost
}

// NewGame creates the Game with all dependencies. now must be the clock the
// touch machine and engine use.
func NewGame(ctx context.Context, cfg *config.Config, ctrl *grid.Controller, engine *render.Engine, src source.Source, now func() int64) *Game {
	g := &Game{
		Config: cfg,
		Grid:   ctrl,
		Engine: engine,
		Source: src,
		ctx:    ctx,
		now:    now,
		loaded: make(chan loadResult, 1),
	}
	ctrl.OnActivate = g.activate
	ctrl.OnDragRequested = g.startDrag
	return g
}

// Load fetches the item list in the background. The result is applied on
// the next Update.
func (g *Game) Load() {
	if g.loading {
		return
	}
	g.loading = true
	g.status = "Loading…"
	go func() {
		items, err := g.Source.Items(g.ctx)
		g.loaded <- loadResult{items: items, err: err}
	}()
}

// applyLoaded hands a finished load to the grid, if there is one.
func (g *Game) applyLoaded() {
	select {
	case res := <-g.loaded:
		g.loading = false
		if res.err != nil {
			log.Printf("Failed to load items: %v", res.err)
			g.status = fmt.Sprintf("Could not load items: %v", res.err)
			return
		}
		g.status = ""
		if len(res.items) == 0 {
			g.status = "No items"
		}
		g.Grid.SetItems(res.items)
	default:
	}
}

func (g *Game) activate(item grid.Item) {
	p, ok := item.Payload.(source.Playable)
	if !ok {
		log.Printf("Activated %q, nothing to play", item.Title)
		return
	}
	if g.launcher == nil {
		if g.NewLauncher == nil {
			log.Printf("Playback disabled, not playing %q", item.Title)
			return
		}
		l, err := g.NewLauncher()
		if err != nil {
			log.Printf("Failed to init player: %v", err)
			return
		}
		g.launcher = l
	}
	if err := g.launcher.Play(p.URL, p.ItemID); err != nil {
		log.Printf("Failed to play %q: %v", item.Title, err)
		return
	}
	if g.Reporter != nil {
		go func() {
			if err := g.Reporter.ReportPlaybackStart(g.ctx, p.ItemID); err != nil {
				log.Printf("Playback report: %v", err)
			}
		}()
	}
}

// startDrag hides the grid and lets the icon follow the pointer until it is
// released.
func (g *Game) startDrag(item grid.Item, icon image.Image, anchor grid.DragAnchor) {
	x, y := g.pointer.Position()
	ox, oy := ebiten.WindowPosition()
	g.beginDrag(item, icon, anchor, x, y, ox, oy)
}

func (g *Game) beginDrag(item grid.Item, icon image.Image, anchor grid.DragAnchor, x, y, ox, oy int) {
	g.drag = newDragGhost(item, icon, anchor, x, y, ox, oy)
	g.Grid.Hide()
}

// endDrag drops the ghost and brings the grid back.
func (g *Game) endDrag(dropped bool) {
	if g.drag == nil {
		return
	}
	if dropped {
		x, y := g.drag.position()
		log.Printf("Dropped %q at %d,%d", g.drag.item.Title, x, y)
	}
	g.drag.dispose()
	g.drag = nil
	g.Grid.Show()
}

func (g *Game) Update() error {
	if fullscreenToggled() {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if reloadPressed() {
		g.Load()
	}
	g.applyLoaded()

	back := backPressed()
	if g.Back.JustPressed() {
		back = true
	}

	now := g.now()
	ev, ok := g.pointer.Poll(g.width, g.height, now)
	if g.drag != nil {
		g.updateDrag(ev, ok, back)
	} else {
		if ok {
			g.Grid.OnPointerEvent(ev)
		}
		g.Grid.Tick(now)
	}

	g.Engine.Update()
	return nil
}

func (g *Game) updateDrag(ev touch.Event, ok, back bool) {
	if back {
		g.endDrag(false)
		return
	}
	if ok {
		g.updateDragEvent(ev)
	}
}

func (g *Game) updateDragEvent(ev touch.Event) {
	switch ev.Action {
	case touch.ActionMove, touch.ActionOutside:
		g.drag.move(ev.X, ev.Y)
	case touch.ActionUp:
		g.drag.move(ev.X, ev.Y)
		g.endDrag(true)
	case touch.ActionCancel:
		g.endDrag(false)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Engine.Draw(screen)
	if g.drag != nil {
		g.drag.draw(screen)
	}
	if g.status != "" {
		g.statusFace.draw(screen, g.status)
	}
}

// Layout attaches the grid to the first viewport and resizes it after that.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if !g.Grid.Attached() {
			g.Grid.Attach(g.Engine, outsideWidth, outsideHeight)
			g.Grid.Show()
		} else {
			g.Grid.OnResize(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}
