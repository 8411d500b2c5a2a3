package app

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/depeter/jellygrid/internal/grid"
)

// dragGhost is the icon that follows the pointer after a long-press.
type dragGhost struct {
	item grid.Item
	src  image.Image
	// offX and offY place the ghost's top-left corner relative to the
	// pointer.
	offX, offY int
	x, y       int

	img *ebiten.Image
}

// newDragGhost cuts the icon area out of icon. pointerX and pointerY are the
// view position of the pointer; originX and originY convert the anchor from
// screen to view coordinates.
func newDragGhost(item grid.Item, icon image.Image, anchor grid.DragAnchor, pointerX, pointerY, originX, originY int) *dragGhost {
	g := &dragGhost{item: item}
	if icon != nil {
		if sub, ok := icon.(interface {
			SubImage(r image.Rectangle) image.Image
		}); ok {
			g.src = sub.SubImage(anchor.Source.Add(icon.Bounds().Min))
		} else {
			g.src = icon
		}
	}
	g.offX = anchor.ScreenX - originX - pointerX
	g.offY = anchor.ScreenY - originY - pointerY
	g.move(pointerX, pointerY)
	return g
}

func (g *dragGhost) move(pointerX, pointerY int) {
	g.x = pointerX + g.offX
	g.y = pointerY + g.offY
}

// position returns the top-left corner of the ghost in view coordinates.
func (g *dragGhost) position() (int, int) {
	return g.x, g.y
}

func (g *dragGhost) draw(dst *ebiten.Image) {
	if g.src == nil {
		return
	}
	if g.img == nil {
		g.img = ebiten.NewImageFromImage(g.src)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.x), float64(g.y))
	op.ColorScale.ScaleAlpha(0.8)
	dst.DrawImage(g.img, op)
}

func (g *dragGhost) dispose() {
	if g.img != nil {
		g.img.Deallocate()
		g.img = nil
	}
}
