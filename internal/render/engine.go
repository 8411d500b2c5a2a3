// Package render draws the paged grid with ebiten and runs the settle
// animation after a release.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/depeter/jellygrid/internal/bitmap"
	"github.com/depeter/jellygrid/internal/grid"
	"github.com/depeter/jellygrid/internal/layout"
	"github.com/depeter/jellygrid/internal/state"
)

var (
	colorBackground = color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xFF}
	colorPageDot    = color.RGBA{R: 0x60, G: 0x60, B: 0x6C, A: 0xFF}
)

const (
	// highlightGrow is how much larger than the icon the selection is drawn.
	highlightGrow = 1.25
	// handleHeight and handleMargin are in layout pixels.
	handleHeight = 16
	handleMargin = 8
)

// Engine renders snapshots from the shared state buffer. All methods run on
// the ebiten goroutine.
type Engine struct {
	defs *layout.Defines
	now  func() int64

	buf    *state.Buffer
	params state.Params
	geom   *layout.Geometry
	tex    *textures

	icons  []state.TextureID
	labels []state.TextureID

	// release is the FlingTimeMs of the last release the settle animation
	// planned for.
	release int64
	frame   state.State
}

// NewEngine returns an engine that reads time from now, in monotonic
// milliseconds on the same clock as the touch machine.
func NewEngine(defs *layout.Defines, now func() int64) *Engine {
	return &Engine{
		defs:  defs,
		now:   now,
		tex:   newTextures(),
		frame: state.Initial(),
	}
}

// Bind implements grid.Engine.
func (e *Engine) Bind(buf *state.Buffer, params state.Params) {
	e.buf = buf
	e.params = params
	e.release = 0
	e.frame, _ = buf.Load()
}

// Upload implements grid.Engine.
func (e *Engine) Upload(img image.Image) state.TextureID {
	return e.tex.add(img)
}

// SetItems implements grid.Engine. Items without an icon get a placeholder
// tile.
func (e *Engine) SetItems(items []grid.Item) {
	for _, id := range e.icons {
		e.tex.remove(id)
	}
	for _, id := range e.labels {
		e.tex.remove(id)
	}

	d := e.defs
	e.icons = make([]state.TextureID, len(items))
	e.labels = make([]state.TextureID, len(items))
	for i, item := range items {
		icon := item.Icon
		if icon == nil {
			icon = bitmap.IconTile(d.IconTextureWidthPx, d.IconTextureHeightPx, d.IconWidthPx, d.IconHeightPx, i)
		}
		e.icons[i] = e.tex.add(icon)
		e.labels[i] = e.tex.add(item.TitleImage)
	}
}

// SetGeometry implements grid.Engine.
func (e *Engine) SetGeometry(g *layout.Geometry) {
	e.geom = g
}

// pageWidth is the scroll distance between pages: one viewport.
func (e *Engine) pageWidth() int {
	if e.geom == nil {
		return e.defs.ScreenWidthPx
	}
	return e.geom.Width
}

// Frame returns the snapshot the next Draw will render.
func (e *Engine) Frame() state.State {
	return e.frame
}

// Update advances the settle animation and takes the latest snapshot. Call it
// once per tick after input has been delivered.
func (e *Engine) Update() {
	if e.buf == nil {
		return
	}
	now := e.now()
	width := e.pageWidth()
	release := e.release
	s, _ := e.buf.Update(func(s *state.State) {
		release = settle(s, now, e.release, width, e.defs.PageCount(s.IconCount))
	})
	e.release = release
	e.frame = s
}

// Draw renders the last snapshot taken by Update.
func (e *Engine) Draw(dst *ebiten.Image) {
	dst.Fill(colorBackground)
	s := e.frame
	if !s.Visible || e.geom == nil {
		return
	}

	g := e.geom
	d := e.defs
	// unit converts layout pixels to view pixels.
	unit := float64(g.CellWidth) * float64(d.ColumnsPerPage) / float64(d.ScreenWidthPx)
	scroll := float64(s.CurrentScrollX)
	count := min(s.IconCount, len(e.icons))

	for i := 0; i < count; i++ {
		page, row, col := d.Cell(i)
		cx := float64(g.XBorders[col]+g.XBorders[col+1])/2 + float64(page*g.Width) + scroll
		cy := float64(g.YBorders[row]+g.YBorders[row+1]) / 2
		if cx < -float64(g.CellWidth) || cx > float64(g.Width+g.CellWidth) {
			continue
		}
		depth := e.depthScale(cx)
		iconY := cy - float64(d.IconHeightPx)*unit*d.IconTopOffset

		if i == s.SelectedIconIndex {
			e.drawCentered(dst, s.SelectedIconTexture, cx, iconY, float64(d.IconWidthPx)*unit*depth*highlightGrow)
		}
		e.drawCentered(dst, e.icons[i], cx, iconY, float64(d.IconTextureWidthPx)*unit*depth)

		labelY := iconY + float64(d.IconHeightPx+e.params.BubbleHeight)*unit*depth/2
		e.drawCentered(dst, e.labels[i], cx, labelY, float64(e.params.BubbleBitmapWidth)*unit*depth)
	}

	e.drawHandle(dst, s, unit)
}

// depthScale shrinks items as they move away from the view center, down to
// the size they would have at the far side of the cylinder.
func (e *Engine) depthScale(cx float64) float64 {
	d := e.defs
	far := d.FarScale()
	t := math.Min(1, math.Abs(cx-float64(e.geom.Width)/2)/float64(e.geom.Width))
	return lerp(1, far, t*t)
}

// drawCentered draws texture id at (cx, cy) scaled to width, keeping its
// aspect ratio.
func (e *Engine) drawCentered(dst *ebiten.Image, id state.TextureID, cx, cy, width float64) {
	img := e.tex.image(id)
	if img == nil {
		return
	}
	b := img.Bounds()
	scale := width / float64(b.Dx())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-float64(b.Dx())*scale/2, cy-float64(b.Dy())*scale/2)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

// drawHandle draws the scroll handle along the bottom edge, positioned by the
// animated scroll offset.
func (e *Engine) drawHandle(dst *ebiten.Image, s state.State, unit float64) {
	pages := e.defs.PageCount(s.IconCount)
	if pages < 2 {
		return
	}
	img := e.tex.image(e.params.ScrollHandleID)
	if img == nil {
		return
	}
	g := e.geom
	span := float64((pages - 1) * e.pageWidth())
	progress := math.Min(1, math.Max(0, -float64(s.CurrentScrollX)/span))

	w := float64(g.Width) / float64(pages)
	h := handleHeight * unit
	x := progress * (float64(g.Width) - w)
	y := float64(g.Height) - h - handleMargin*unit

	for p := 0; p < pages; p++ {
		dotX := (float64(p) + 0.5) * w
		vector.DrawFilledCircle(dst, float32(dotX), float32(y+h/2), float32(2*unit), colorPageDot, true)
	}

	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
