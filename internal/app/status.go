package app

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const statusFontSize = 16

var (
	statusBackground = color.RGBA{0x10, 0x10, 0x18, 0xC0}
	statusText       = color.RGBA{0xE8, 0xE8, 0xF0, 0xFF}
)

// statusFace is built on first use. A nil face means the font failed to load.
type statusFace struct {
	face   *text.GoTextFace
	loaded bool
}

func (s *statusFace) get() *text.GoTextFace {
	if s.loaded {
		return s.face
	}
	s.loaded = true
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("Failed to load status font: %v", err)
		return nil
	}
	s.face = &text.GoTextFace{Source: src, Size: statusFontSize}
	return s.face
}

// draw shows msg in a banner across the top of the view.
func (s *statusFace) draw(dst *ebiten.Image, msg string) {
	face := s.get()
	if face == nil {
		return
	}
	w, h := text.Measure(msg, face, 0)
	bw := float64(dst.Bounds().Dx())
	bh := h + 16
	vector.DrawFilledRect(dst, 0, 0, float32(bw), float32(bh), statusBackground, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate((bw-w)/2, 8)
	op.ColorScale.ScaleWithColor(statusText)
	text.Draw(dst, msg, face, op)
}
