package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/depeter/jellygrid/internal/state"
)

// textures maps handles to uploaded images. GPU images are created on first
// draw so handles can be issued before the game loop runs.
type textures struct {
	next    state.TextureID
	sources map[state.TextureID]image.Image
	gpu     map[state.TextureID]*ebiten.Image
}

func newTextures() *textures {
	return &textures{
		sources: make(map[state.TextureID]image.Image),
		gpu:     make(map[state.TextureID]*ebiten.Image),
	}
}

// add registers img and returns its handle. A nil image gets NoTexture.
func (t *textures) add(img image.Image) state.TextureID {
	if img == nil {
		return state.NoTexture
	}
	t.next++
	t.sources[t.next] = img
	return t.next
}

// remove releases the handle and its GPU image, if any.
func (t *textures) remove(id state.TextureID) {
	delete(t.sources, id)
	if img, ok := t.gpu[id]; ok {
		img.Deallocate()
		delete(t.gpu, id)
	}
}

func (t *textures) has(id state.TextureID) bool {
	_, ok := t.sources[id]
	return ok
}

// image returns the GPU image for id, nil for unknown handles.
func (t *textures) image(id state.TextureID) *ebiten.Image {
	if img, ok := t.gpu[id]; ok {
		return img
	}
	src, ok := t.sources[id]
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	t.gpu[id] = img
	return img
}

func (t *textures) count() int {
	return len(t.sources)
}
