package source

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/depeter/jellygrid/internal/bitmap"
	"github.com/depeter/jellygrid/internal/layout"
)

var (
	colorBubble = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xA0}
	colorLabel  = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
)

const ellipsis = "…"

// Labeler rasterizes item titles into label textures: a rounded bubble of
// the label size centered in a texture of the label texture size.
type Labeler struct {
	defs *layout.Defines
	face font.Face
}

// NewLabeler parses the bundled Go font at size points.
func NewLabeler(defs *layout.Defines, size float64) (*Labeler, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	return &Labeler{defs: defs, face: face}, nil
}

// Render returns the label texture for title.
func (l *Labeler) Render(title string) *image.RGBA {
	d := l.defs
	img := image.NewRGBA(image.Rect(0, 0, d.LabelTextureWidthPx, d.LabelTextureHeightPx))
	bx := float64(d.LabelTextureWidthPx-d.LabelWidthPx) / 2
	by := float64(d.LabelTextureHeightPx-d.LabelHeightPx) / 2
	bitmap.FillRoundedRect(img, bx, by, float64(d.LabelWidthPx), float64(d.LabelHeightPx),
		float64(d.LabelHeightPx)/2, colorBubble)

	pad := d.LabelHeightPx / 4
	text := l.fit(title, d.LabelWidthPx-2*pad)
	if text == "" {
		return img
	}

	m := l.face.Metrics()
	width := font.MeasureString(l.face, text)
	x := fixed.I(d.LabelTextureWidthPx)/2 - width/2
	// Center the line box vertically in the texture.
	y := fixed.I(d.LabelTextureHeightPx)/2 + (m.Ascent-m.Descent)/2
	dr := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colorLabel),
		Face: l.face,
		Dot:  fixed.Point26_6{X: x, Y: y},
	}
	dr.DrawString(text)
	return img
}

// fit shortens s with an ellipsis until it is at most maxWidth pixels wide.
func (l *Labeler) fit(s string, maxWidth int) string {
	limit := fixed.I(maxWidth)
	if font.MeasureString(l.face, s) <= limit {
		return s
	}
	runes := []rune(s)
	for i := len(runes) - 1; i > 0; i-- {
		candidate := string(runes[:i]) + ellipsis
		if font.MeasureString(l.face, candidate) <= limit {
			return candidate
		}
	}
	return ellipsis
}
