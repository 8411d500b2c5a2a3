// Package bitmap draws the small generated images the grid needs: the
// selection highlight, the scroll handle, placeholder tiles and the window
// icon.
package bitmap

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

var (
	ColorHighlight = color.RGBA{R: 0x00, G: 0xA4, B: 0xDC, A: 0xFF}
	colorGlow      = color.RGBA{R: 0x00, G: 0xA4, B: 0xDC, A: 0x60}
	colorHandle    = color.RGBA{R: 0x28, G: 0x28, B: 0x34, A: 0xFF}
	colorHandleBar = color.RGBA{R: 0x90, G: 0x90, B: 0x9C, A: 0xFF}
	colorDarkBG    = color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xFF}
)

// Palette for placeholder tiles.
var tileColors = []color.RGBA{
	{R: 0x00, G: 0xA4, B: 0xDC, A: 0xFF},
	{R: 0xAA, G: 0x5C, B: 0xC3, A: 0xFF},
	{R: 0x40, G: 0xC0, B: 0x60, A: 0xFF},
	{R: 0xE0, G: 0x90, B: 0x30, A: 0xFF},
	{R: 0xE0, G: 0x40, B: 0x40, A: 0xFF},
	{R: 0x00, G: 0x78, B: 0xA8, A: 0xFF},
}

// Highlight returns the selection highlight drawn behind a selected icon.
func Highlight(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	s := float64(min(w, h))
	FillRoundedRect(img, 0, 0, float64(w), float64(h), s*0.18, colorGlow)
	inset := s * 0.08
	FillRoundedRect(img, inset, inset, float64(w)-2*inset, float64(h)-2*inset, s*0.14, ColorHighlight)
	return img
}

// ScrollHandle returns the page indicator texture.
func ScrollHandle(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fw, fh := float64(w), float64(h)
	FillRoundedRect(img, 0, fh*0.3, fw, fh*0.4, fh*0.2, colorHandle)
	FillRoundedRect(img, fw*0.3, fh*0.45, fw*0.4, fh*0.1, fh*0.05, colorHandleBar)
	return img
}

// Placeholder returns a tile used when an item has no artwork. seed picks the
// color so neighbouring items differ.
func Placeholder(w, h, seed int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if seed < 0 {
		seed = -seed
	}
	c := tileColors[seed%len(tileColors)]
	s := float64(min(w, h))
	FillRoundedRect(img, 0, 0, float64(w), float64(h), s*0.15, c)
	FillCircle(img, float64(w)/2, float64(h)/2, s*0.22, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x50})
	return img
}

// Framed centers src in a texW x texH transparent texture, scaled to w x h.
// Grid icons are stored this way so a long-press can drag the icon area out
// of the texture.
func Framed(src image.Image, texW, texH, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, texW, texH))
	x0, y0 := (texW-w)/2, (texH-h)/2
	draw.CatmullRom.Scale(img, image.Rect(x0, y0, x0+w, y0+h), src, src.Bounds(), draw.Over, nil)
	return img
}

// IconTile is a framed placeholder for an item without artwork.
func IconTile(texW, texH, w, h, seed int) *image.RGBA {
	return Framed(Placeholder(w, h, seed), texW, texH, w, h)
}

// WindowIcon returns 64x64 and 32x32 icons showing a 2x2 grid of tiles.
func WindowIcon() []image.Image {
	return []image.Image{windowIcon(64), windowIcon(32)}
}

func windowIcon(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	FillRect(img, 0, 0, size, size, colorDarkBG)
	tile := s * 0.36
	gap := s * 0.08
	origin := (s - 2*tile - gap) / 2
	for i := 0; i < 4; i++ {
		x := origin + float64(i%2)*(tile+gap)
		y := origin + float64(i/2)*(tile+gap)
		FillRoundedRect(img, x, y, tile, tile, s*0.06, tileColors[i])
	}
	return img
}

// FillRect blends a solid rectangle onto img.
func FillRect(img *image.RGBA, x0, y0, w, h int, c color.Color) {
	bounds := img.Bounds()
	for y := max(y0, bounds.Min.Y); y < y0+h && y < bounds.Max.Y; y++ {
		for x := max(x0, bounds.Min.X); x < x0+w && x < bounds.Max.X; x++ {
			blendPixel(img, x, y, c)
		}
	}
}

// FillRoundedRect blends a rectangle with corners of radius r onto img.
func FillRoundedRect(img *image.RGBA, xf, yf, wf, hf, r float64, c color.Color) {
	bounds := img.Bounds()
	x0, y0 := max(int(xf), bounds.Min.X), max(int(yf), bounds.Min.Y)
	x1, y1 := int(xf+wf), int(yf+hf)

	for y := y0; y < y1 && y < bounds.Max.Y; y++ {
		for x := x0; x < x1 && x < bounds.Max.X; x++ {
			// Sample pixel centers.
			fx, fy := float64(x)+0.5, float64(y)+0.5
			cx := clampF(fx, xf+r, xf+wf-r)
			cy := clampF(fy, yf+r, yf+hf-r)
			dx, dy := fx-cx, fy-cy
			if dx*dx+dy*dy <= r*r {
				blendPixel(img, x, y, c)
			}
		}
	}
}

// FillCircle blends a disc onto img.
func FillCircle(img *image.RGBA, cx, cy, r float64, c color.Color) {
	bounds := img.Bounds()
	r2 := r * r
	for y := max(int(cy-r), bounds.Min.Y); y <= int(cy+r+1) && y < bounds.Max.Y; y++ {
		for x := max(int(cx-r), bounds.Min.X); x <= int(cx+r+1) && x < bounds.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r2 {
				blendPixel(img, x, y, c)
			}
		}
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// blendPixel composites c over the pixel at (x, y), source-over.
func blendPixel(img *image.RGBA, x, y int, c color.Color) {
	sr, sg, sb, sa := c.RGBA()
	if sa == 0 {
		return
	}
	if sa == 0xFFFF {
		img.Set(x, y, c)
		return
	}
	dst := img.RGBAAt(x, y)
	inv := 0xFFFF - sa
	mix := func(s uint32, d uint8) uint8 {
		return uint8((s + uint32(d)*257*inv/0xFFFF) >> 8)
	}
	img.SetRGBA(x, y, color.RGBA{
		R: mix(sr, dst.R),
		G: mix(sg, dst.G),
		B: mix(sb, dst.B),
		A: mix(sa, dst.A),
	})
}
