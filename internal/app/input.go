package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// fullscreenToggled reports Alt+Enter or F11.
func fullscreenToggled() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return true
	}
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) && ebiten.IsKeyPressed(ebiten.KeyAlt)
}

// backPressed reports the keys and buttons that abandon a drag.
func backPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyBackspace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButton3) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
}

// reloadPressed reports Ctrl+R.
func reloadPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR) && ebiten.IsKeyPressed(ebiten.KeyControl)
}
