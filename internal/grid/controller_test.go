package grid

import (
	"image"
	"testing"
	"time"

	"github.com/depeter/jellygrid/internal/layout"
	"github.com/depeter/jellygrid/internal/state"
	"github.com/depeter/jellygrid/internal/touch"
)

type fakeEngine struct {
	buf      *state.Buffer
	params   state.Params
	uploads  int
	items    [][]Item
	geoms    []*layout.Geometry
	bindings int
}

func (e *fakeEngine) Bind(buf *state.Buffer, params state.Params) {
	e.buf = buf
	e.params = params
	e.bindings++
}

func (e *fakeEngine) Upload(img image.Image) state.TextureID {
	e.uploads++
	return state.TextureID(e.uploads)
}

func (e *fakeEngine) SetItems(items []Item) {
	e.items = append(e.items, items)
}

func (e *fakeEngine) SetGeometry(g *layout.Geometry) {
	e.geoms = append(e.geoms, g)
}

func makeItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{
			ID:   string(rune('a' + i%26)),
			Icon: image.NewRGBA(image.Rect(0, 0, 128, 128)),
		}
	}
	return items
}

func newController() *Controller {
	cfg := touch.Config{
		Slop:             16,
		MaxFlingVelocity: 4000,
		LongPressTimeout: 500 * time.Millisecond,
		Now:              func() int64 { return 1 },
	}
	return NewController(layout.Default(), cfg)
}

func attached(t *testing.T, items int) (*Controller, *fakeEngine) {
	t.Helper()
	c := newController()
	c.SetItems(makeItems(items))
	e := &fakeEngine{}
	c.Attach(e, 480, 854)
	c.Show()
	return c, e
}

func pointer(a touch.Action, x, y int, tMs int64) touch.Event {
	return touch.Event{Action: a, X: x, Y: y, RawX: x + 100, RawY: y + 200, TimeMs: tMs}
}

func TestSetItemsBeforeAttachIsReplayed(t *testing.T) {
	c := newController()
	c.SetItems(makeItems(20))
	if c.Pages() != 2 {
		t.Errorf("Pages = %d, want 2", c.Pages())
	}

	e := &fakeEngine{}
	c.Attach(e, 480, 854)
	if len(e.items) != 1 || len(e.items[0]) != 20 {
		t.Fatalf("engine got items %v, want one list of 20", len(e.items))
	}
	if e.bindings != 1 || e.buf == nil {
		t.Fatalf("engine not bound")
	}
	s, _ := e.buf.Load()
	if s.IconCount != 20 {
		t.Errorf("IconCount = %d, want 20", s.IconCount)
	}
	if s.SelectedIconIndex != -1 {
		t.Errorf("SelectedIconIndex = %d, want -1", s.SelectedIconIndex)
	}
	if s.SelectedIconTexture == state.NoTexture {
		t.Error("selection texture not uploaded")
	}
	if e.params.ScrollHandleID == state.NoTexture || e.params.ScrollHandleID == s.SelectedIconTexture {
		t.Errorf("scroll handle id = %d, selection id = %d", e.params.ScrollHandleID, s.SelectedIconTexture)
	}
	if e.params.BubbleBitmapWidth != 128 {
		t.Errorf("BubbleBitmapWidth = %d, want 128", e.params.BubbleBitmapWidth)
	}
}

func TestMutationsBeforeAttachAreNoOps(t *testing.T) {
	c := newController()
	c.Show()
	if c.Visible() {
		t.Error("visible before attach")
	}
	if c.OnPointerEvent(pointer(touch.ActionDown, 10, 100, 0)) {
		t.Error("pointer event consumed before attach")
	}
	c.Tick(1000)
	c.Click(0)
	c.LongClick(0)
	c.Hide()
	if got := c.Snapshot().SelectedIconIndex; got != -1 {
		t.Errorf("snapshot selection = %d, want -1", got)
	}
}

func TestShowHide(t *testing.T) {
	c, e := attached(t, 4)
	s, _ := e.buf.Load()
	if !s.Visible {
		t.Fatal("not visible after Show")
	}
	c.Hide()
	s, _ = e.buf.Load()
	if s.Visible {
		t.Fatal("visible after Hide")
	}
	if c.OnPointerEvent(pointer(touch.ActionDown, 10, 100, 0)) {
		t.Error("hidden grid consumed a pointer event")
	}
}

func TestTapActivatesItem(t *testing.T) {
	c, _ := attached(t, 20)
	var got []Item
	c.OnActivate = func(item Item) { got = append(got, item) }

	c.OnPointerEvent(pointer(touch.ActionDown, 10, 100, 0))
	if sel := c.Snapshot().SelectedIconIndex; sel != 0 {
		t.Fatalf("selected = %d, want 0", sel)
	}
	c.OnPointerEvent(pointer(touch.ActionUp, 10, 100, 50))

	if len(got) != 1 || got[0].ID != c.Items()[0].ID {
		t.Errorf("activated %v, want item 0", got)
	}
	if sel := c.Snapshot().SelectedIconIndex; sel != -1 {
		t.Errorf("selected after release = %d, want -1", sel)
	}
}

func TestScrollCancelsActivation(t *testing.T) {
	c, _ := attached(t, 20)
	activated := 0
	c.OnActivate = func(Item) { activated++ }

	c.OnPointerEvent(pointer(touch.ActionDown, 100, 100, 0))
	c.OnPointerEvent(pointer(touch.ActionMove, 150, 100, 10))
	s := c.Snapshot()
	if s.SelectedIconIndex != -1 {
		t.Errorf("selected = %d, want -1", s.SelectedIconIndex)
	}
	if s.ScrollX != 50 {
		t.Errorf("ScrollX = %d, want 50", s.ScrollX)
	}
	c.OnPointerEvent(pointer(touch.ActionUp, 150, 100, 20))
	if activated != 0 {
		t.Errorf("activated %d times after a scroll", activated)
	}
}

func TestActivationCheckedAgainstCurrentList(t *testing.T) {
	c, e := attached(t, 20)
	activated := 0
	c.OnActivate = func(Item) { activated++ }

	// Press on item 5 (row 1, column 1), then shrink the list before release.
	c.OnPointerEvent(pointer(touch.ActionDown, 150, 250, 0))
	if sel := c.Snapshot().SelectedIconIndex; sel != 5 {
		t.Fatalf("selected = %d, want 5", sel)
	}
	c.SetItems(makeItems(3))
	if c.Pages() != 1 {
		t.Errorf("Pages = %d, want 1", c.Pages())
	}
	if got := len(e.items); got != 2 {
		t.Errorf("engine received %d item lists, want 2", got)
	}
	if sel := c.Snapshot().SelectedIconIndex; sel != -1 {
		t.Errorf("selection not cleared by SetItems: %d", sel)
	}
	c.OnPointerEvent(pointer(touch.ActionUp, 150, 250, 30))
	if activated != 0 {
		t.Error("stale index was activated")
	}
}

func TestClickSuppressedWhileFlinging(t *testing.T) {
	c, e := attached(t, 20)
	activated := 0
	c.OnActivate = func(Item) { activated++ }

	e.buf.Update(func(s *state.State) { s.FlingVelocityX = 900 })
	c.Click(0)
	c.LongClick(0)
	if activated != 0 {
		t.Error("activated during a fling")
	}

	e.buf.Update(func(s *state.State) { s.FlingVelocityX = 0 })
	c.Click(0)
	c.Click(-1)
	c.Click(20)
	if activated != 1 {
		t.Errorf("activated %d times, want 1", activated)
	}
}

func TestLongPressRequestsDrag(t *testing.T) {
	c, _ := attached(t, 20)
	var (
		dragged Item
		anchor  DragAnchor
		icon    image.Image
		calls   int
	)
	c.OnDragRequested = func(item Item, img image.Image, a DragAnchor) {
		dragged, icon, anchor = item, img, a
		calls++
	}
	activated := 0
	c.OnActivate = func(Item) { activated++ }

	c.OnPointerEvent(pointer(touch.ActionDown, 150, 100, 1000))
	c.Tick(1200)
	if calls != 0 {
		t.Fatal("drag requested before the timeout")
	}
	c.Tick(1500)
	if calls != 1 {
		t.Fatalf("drag requested %d times, want 1", calls)
	}
	if dragged.ID != c.Items()[1].ID || icon != c.Items()[1].Icon {
		t.Errorf("dragged %q, want item 1", dragged.ID)
	}
	// Raw press at (250, 300); icons are 64x64 inside 128x128 textures.
	if anchor.ScreenX != 250-32 || anchor.ScreenY != 300-64 {
		t.Errorf("anchor at %d,%d, want %d,%d", anchor.ScreenX, anchor.ScreenY, 250-32, 300-64)
	}
	if anchor.Source != image.Rect(32, 32, 96, 96) {
		t.Errorf("source = %v", anchor.Source)
	}

	c.OnPointerEvent(pointer(touch.ActionUp, 150, 100, 1600))
	if activated != 0 {
		t.Error("release after a long-press activated the item")
	}
}

func TestOnResizeRecomputesGeometry(t *testing.T) {
	c, e := attached(t, 20)
	before := len(e.geoms)
	c.OnResize(480, 854)
	if len(e.geoms) != before {
		t.Error("same size pushed a new geometry")
	}
	c.OnResize(800, 480)
	if len(e.geoms) != before+1 {
		t.Fatal("resize did not push a geometry")
	}
	g := c.Geometry()
	if g.Width != 800 || g.XBorders[0] != 160 {
		t.Errorf("geometry = %dx%d borders %v", g.Width, g.Height, g.XBorders)
	}
	// (170, 100) is row 1, column 0 in the landscape layout.
	if idx := c.Select(170, 100, 0, 0); idx != 4 {
		t.Errorf("Select = %d, want 4", idx)
	}
}

func TestSelectWithoutGeometry(t *testing.T) {
	c := newController()
	c.SetItems(makeItems(4))
	if idx := c.Select(10, 100, 0, 0); idx != -1 {
		t.Errorf("Select = %d, want -1", idx)
	}
}

func TestEmptyGridNeverSelects(t *testing.T) {
	c, _ := attached(t, 0)
	if c.Pages() != 0 {
		t.Errorf("Pages = %d, want 0", c.Pages())
	}
	c.OnPointerEvent(pointer(touch.ActionDown, 10, 100, 0))
	if sel := c.Snapshot().SelectedIconIndex; sel != -1 {
		t.Errorf("selected = %d, want -1", sel)
	}
}

func TestDropAfterLongPressLeavesNoSelection(t *testing.T) {
	c, _ := attached(t, 20)
	c.OnDragRequested = func(Item, image.Image, DragAnchor) { c.Hide() }

	c.OnPointerEvent(pointer(touch.ActionDown, 10, 100, 0))
	c.Tick(600)
	if c.Visible() {
		t.Fatal("grid still visible during the drag")
	}
	c.Show()
	s := c.Snapshot()
	if s.SelectedIconIndex != -1 {
		t.Errorf("selected after drop = %d, want -1", s.SelectedIconIndex)
	}
	if c.Phase() != touch.Idle {
		t.Errorf("phase = %v, want idle", c.Phase())
	}
}

func TestSetItemsMidPressActivatesNothing(t *testing.T) {
	c, _ := attached(t, 20)
	var got []Item
	c.OnActivate = func(item Item) { got = append(got, item) }

	c.OnPointerEvent(pointer(touch.ActionDown, 10, 100, 0))
	fresh := makeItems(20)
	fresh[0].ID = "new"
	c.SetItems(fresh)
	c.OnPointerEvent(pointer(touch.ActionUp, 10, 100, 50))

	if len(got) != 0 {
		t.Errorf("activated %q after the list was replaced", got[0].ID)
	}
	if sel := c.Snapshot().SelectedIconIndex; sel != -1 {
		t.Errorf("selected = %d, want -1", sel)
	}
}

func TestPagesAreOneViewportWide(t *testing.T) {
	c, e := attached(t, 40)
	c.OnResize(960, 854)
	g := c.Geometry()
	x := (g.XBorders[0] + g.XBorders[1]) / 2
	y := (g.YBorders[0] + g.YBorders[1]) / 2

	e.buf.Update(func(s *state.State) {
		s.ScrollX = -960
		s.CurrentScrollX = -960
	})
	c.OnPointerEvent(pointer(touch.ActionDown, x, y, 0))
	if sel := c.Snapshot().SelectedIconIndex; sel != 16 {
		t.Errorf("selected = %d, want 16 (first item of page 1)", sel)
	}
}

func TestResizeKeepsScrollOnPage(t *testing.T) {
	c, e := attached(t, 40)
	e.buf.Update(func(s *state.State) {
		s.ScrollX = -480
		s.CurrentScrollX = -480
		s.FlingEndPos = -480
	})
	c.OnResize(960, 854)
	s := c.Snapshot()
	if s.ScrollX != -960 || s.CurrentScrollX != -960 || s.FlingEndPos != -960 {
		t.Errorf("offsets %d/%d/%d after resize, want -960", s.ScrollX, s.CurrentScrollX, s.FlingEndPos)
	}
}
