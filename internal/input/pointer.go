// Package input turns ebiten mouse and touch state into grid pointer events.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/depeter/jellygrid/internal/touch"
)

// Sample is the primary pointer as seen in one frame.
type Sample struct {
	Pressed bool
	X, Y    int
	// Focused is false when the window lost focus, which cancels a press.
	Focused bool
}

// Tracker follows one pointer across frames and reports the transitions as
// touch events. Only one pointer is tracked; the grid is single-touch.
type Tracker struct {
	down         bool
	lastX, lastY int
	rawDX, rawDY int
}

// Next compares s with the previous frame. width and height bound the view so
// moves outside it are reported as ActionOutside. originX and originY are
// added to produce raw screen coordinates.
func (t *Tracker) Next(s Sample, width, height, originX, originY int, nowMs int64) (touch.Event, bool) {
	t.rawDX, t.rawDY = originX, originY
	switch {
	case !t.down && s.Pressed && s.Focused:
		t.down = true
		t.lastX, t.lastY = s.X, s.Y
		return t.event(touch.ActionDown, s.X, s.Y, nowMs), true

	case t.down && !s.Focused:
		t.down = false
		return t.event(touch.ActionCancel, t.lastX, t.lastY, nowMs), true

	case t.down && !s.Pressed:
		t.down = false
		return t.event(touch.ActionUp, t.lastX, t.lastY, nowMs), true

	case t.down && (s.X != t.lastX || s.Y != t.lastY):
		t.lastX, t.lastY = s.X, s.Y
		action := touch.ActionMove
		if s.X < 0 || s.Y < 0 || s.X >= width || s.Y >= height {
			action = touch.ActionOutside
		}
		return t.event(action, s.X, s.Y, nowMs), true
	}
	return touch.Event{}, false
}

// Down reports whether the tracked pointer is pressed.
func (t *Tracker) Down() bool {
	return t.down
}

// Position returns the last known view position of the pointer.
func (t *Tracker) Position() (x, y int) {
	return t.lastX, t.lastY
}

func (t *Tracker) event(a touch.Action, x, y int, nowMs int64) touch.Event {
	return touch.Event{
		Action: a,
		X:      x,
		Y:      y,
		RawX:   x + t.rawDX,
		RawY:   y + t.rawDY,
		TimeMs: nowMs,
	}
}

// Poller reads the primary pointer from ebiten. A touch wins over the mouse;
// the first touch stays primary until it lifts.
type Poller struct {
	Tracker

	touchIDs []ebiten.TouchID
	primary  ebiten.TouchID
	touching bool
}

// Poll samples ebiten input. Call it from Game.Update.
func (p *Poller) Poll(width, height int, nowMs int64) (touch.Event, bool) {
	wx, wy := ebiten.WindowPosition()
	return p.Next(p.sample(), width, height, wx, wy, nowMs)
}

func (p *Poller) sample() Sample {
	s := Sample{Focused: ebiten.IsFocused()}

	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if p.touching && !containsTouch(p.touchIDs, p.primary) {
		// Report the lift at the last position before falling back to the
		// mouse.
		p.touching = false
		s.X, s.Y = p.Position()
		return s
	}
	if !p.touching && len(p.touchIDs) > 0 && !p.Down() {
		p.primary = p.touchIDs[0]
		p.touching = true
	}
	if p.touching {
		s.Pressed = true
		s.X, s.Y = ebiten.TouchPosition(p.primary)
		return s
	}

	s.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.X, s.Y = ebiten.CursorPosition()
	return s
}

func containsTouch(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, t := range ids {
		if t == id {
			return true
		}
	}
	return false
}
