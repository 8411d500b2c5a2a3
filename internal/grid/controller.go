package grid

import (
	"image"
	"log"

	"github.com/depeter/jellygrid/internal/bitmap"
	"github.com/depeter/jellygrid/internal/layout"
	"github.com/depeter/jellygrid/internal/state"
	"github.com/depeter/jellygrid/internal/touch"
)

// Item is one selectable cell of the grid.
type Item struct {
	ID    string
	Title string
	// Icon and TitleImage are the prepared bitmaps for the icon and its label.
	Icon       image.Image
	TitleImage image.Image
	// Payload says what to do when the item is activated.
	Payload any
}

// DragAnchor positions the ghost image of a long-pressed item.
type DragAnchor struct {
	// ScreenX and ScreenY are the top-left corner of the ghost in screen
	// coordinates.
	ScreenX, ScreenY int
	// Source is the part of the icon texture to drag.
	Source image.Rectangle
}

// Engine is the rendering side of the grid. It pulls snapshots from the bound
// buffer on its own schedule.
type Engine interface {
	// Bind hands over the state buffer and the layout parameters. It is
	// called once per attach.
	Bind(buf *state.Buffer, params state.Params)
	// Upload registers an image and returns its handle.
	Upload(img image.Image) state.TextureID
	// SetItems replaces every per-item texture.
	SetItems(items []Item)
	SetGeometry(g *layout.Geometry)
}

// Controller connects the item list, the touch state machine and the
// rendering engine.
type Controller struct {
	defs *layout.Defines
	cfg  touch.Config

	engine  Engine
	buf     *state.Buffer
	shared  *state.Shared
	geom    *layout.Geometry
	machine *touch.Machine

	items []Item
	pages int

	OnActivate      func(item Item)
	OnDragRequested func(item Item, icon image.Image, anchor DragAnchor)
}

// NewController returns a controller that is not yet attached to an engine.
func NewController(defs *layout.Defines, cfg touch.Config) *Controller {
	return &Controller{
		defs: defs,
		cfg:  cfg,
	}
}

// Attach binds the controller to an engine for a width x height viewport. It
// creates fresh shared state, pushes the layout parameters and the current
// items. Attaching again replaces the previous engine binding.
func (c *Controller) Attach(engine Engine, width, height int) {
	c.engine = engine
	c.buf = state.NewBuffer()
	c.shared = state.NewShared(c.buf)
	c.geom = layout.NewGeometry(c.defs, width, height)

	d := c.defs
	handle := d.ScrollHandleTexturePx
	params := state.Params{
		BubbleWidth:               d.LabelWidthPx,
		BubbleHeight:              d.LabelHeightPx,
		BubbleBitmapWidth:         d.LabelTextureWidthPx,
		BubbleBitmapHeight:        d.LabelTextureHeightPx,
		ScrollHandleID:            engine.Upload(bitmap.ScrollHandle(handle, handle)),
		ScrollHandleTextureWidth:  handle,
		ScrollHandleTextureHeight: handle,
	}
	selection := engine.Upload(bitmap.Highlight(d.IconWidthPx, d.IconHeightPx))

	c.shared.Read()
	c.shared.SelectedIconTexture = selection
	c.shared.IconCount = len(c.items)
	c.shared.SelectedIconIndex = -1
	c.shared.Save()

	engine.Bind(c.buf, params)
	engine.SetGeometry(c.geom)
	engine.SetItems(c.items)

	c.machine = touch.NewMachine(c.cfg, c.defs, c.shared, c)
	c.machine.SetPageWidth(width)
	log.Printf("grid: attached %dx%d, %d items on %d pages", width, height, len(c.items), c.pages)
}

// Attached reports whether an engine is bound.
func (c *Controller) Attached() bool {
	return c.engine != nil
}

// SetItems replaces the item list and clears the selection. Before Attach
// the list is kept and handed to the engine when it binds.
func (c *Controller) SetItems(items []Item) {
	c.items = items
	c.pages = c.defs.PageCount(len(items))
	if !c.Attached() {
		return
	}
	c.engine.SetItems(items)
	c.machine.ClearSelection()
	c.shared.Read()
	c.shared.IconCount = len(items)
	c.shared.SelectedIconIndex = -1
	c.shared.Save()
}

// Items returns the current item list.
func (c *Controller) Items() []Item {
	return c.items
}

// Pages returns the page count for the current items.
func (c *Controller) Pages() int {
	return c.pages
}

// Geometry returns the current hit-test geometry, nil before the first
// Attach or OnResize.
func (c *Controller) Geometry() *layout.Geometry {
	return c.geom
}

// Snapshot returns the latest published state.
func (c *Controller) Snapshot() state.State {
	if !c.Attached() {
		return state.Initial()
	}
	s, _ := c.buf.Load()
	return s
}

// OnResize recomputes the hit-test borders for a new viewport. Pages are one
// viewport wide, so published scroll offsets are rescaled to stay on the same
// page and any gesture in progress is dropped.
func (c *Controller) OnResize(width, height int) {
	if c.geom != nil && c.geom.Width == width && c.geom.Height == height {
		return
	}
	old := c.geom
	c.geom = layout.NewGeometry(c.defs, width, height)
	if !c.Attached() {
		return
	}
	c.machine.Reset()
	c.machine.SetPageWidth(width)
	if old != nil && old.Width > 0 && old.Width != width {
		c.buf.Update(func(s *state.State) {
			rescale := func(x int) int { return x * width / old.Width }
			s.ScrollX = rescale(s.ScrollX)
			s.CurrentScrollX = rescale(s.CurrentScrollX)
			s.StartScrollX = rescale(s.StartScrollX)
			s.FlingEndPos = rescale(s.FlingEndPos)
		})
	}
	c.engine.SetGeometry(c.geom)
}

// Show makes the grid visible and lets pointer events through.
func (c *Controller) Show() {
	c.setVisible(true)
}

// Hide hides the grid and drops any gesture in progress.
func (c *Controller) Hide() {
	c.setVisible(false)
	if c.machine != nil {
		c.machine.Reset()
	}
}

func (c *Controller) setVisible(v bool) {
	if !c.Attached() {
		log.Printf("grid: visibility change before attach ignored")
		return
	}
	c.shared.Read()
	c.shared.Visible = v
	c.shared.Save()
}

// Visible reports the published visibility.
func (c *Controller) Visible() bool {
	return c.Attached() && c.Snapshot().Visible
}

// OnPointerEvent feeds one pointer event to the state machine. It returns
// false when the event was not consumed because the grid is hidden.
func (c *Controller) OnPointerEvent(ev touch.Event) bool {
	if !c.Visible() {
		return false
	}
	c.dispatch(c.machine.Handle(ev))
	return true
}

// Tick lets the state machine confirm a long-press. Call it once per
// interaction frame.
func (c *Controller) Tick(nowMs int64) {
	if !c.Visible() {
		return
	}
	c.dispatch(c.machine.Tick(nowMs))
}

// Phase returns the touch phase, Idle when detached.
func (c *Controller) Phase() touch.Phase {
	if c.machine == nil {
		return touch.Idle
	}
	return c.machine.Phase()
}

func (c *Controller) dispatch(res touch.Result) {
	switch res.Gesture {
	case touch.GestureTap:
		c.Click(res.Index)
	case touch.GestureLongPress:
		c.LongClick(res.Index)
	}
}

// Select resolves a press against the current geometry and items.
func (c *Controller) Select(x, y, scrollX, page int) int {
	if c.geom == nil {
		return -1
	}
	return c.geom.Resolve(x, y, scrollX, page, len(c.items))
}

// confirm returns the item at index if it may still be acted on: no fling is
// running and the list has not shrunk below it.
func (c *Controller) confirm(index int) (Item, bool) {
	if !c.Attached() {
		return Item{}, false
	}
	if c.Snapshot().Flinging() || index < 0 || index >= len(c.items) {
		return Item{}, false
	}
	return c.items[index], true
}

// Click activates the item at index.
func (c *Controller) Click(index int) {
	item, ok := c.confirm(index)
	if !ok {
		return
	}
	if c.OnActivate != nil {
		c.OnActivate(item)
	}
}

// LongClick starts dragging the item at index from the last press position.
func (c *Controller) LongClick(index int) {
	item, ok := c.confirm(index)
	if !ok {
		return
	}
	if c.OnDragRequested != nil {
		c.OnDragRequested(item, item.Icon, c.dragAnchor())
	}
}

// dragAnchor places the ghost just above and centered on the press. There is
// no exact icon position to start from, so this is an approximation.
func (c *Controller) dragAnchor() DragAnchor {
	d := c.defs
	rawX, rawY := c.machine.DownRaw()
	left := (d.IconTextureWidthPx - d.IconWidthPx) / 2
	top := (d.IconTextureHeightPx - d.IconHeightPx) / 2
	return DragAnchor{
		ScreenX: rawX - d.IconWidthPx/2,
		ScreenY: rawY - d.IconHeightPx,
		Source:  image.Rect(left, top, left+d.IconWidthPx, top+d.IconHeightPx),
	}
}
