package touch

import "time"

// Action is the kind of pointer event.
type Action int

const (
	ActionDown Action = iota
	ActionMove
	ActionUp
	ActionCancel
	// ActionOutside is a move reported while the pointer is outside the view.
	ActionOutside
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionCancel:
		return "cancel"
	case ActionOutside:
		return "outside"
	}
	return "unknown"
}

// Event is one pointer event. X and Y are view coordinates, RawX and RawY
// are screen coordinates.
type Event struct {
	Action     Action
	X, Y       int
	RawX, RawY int
	// TimeMs is the monotonic time of the event in milliseconds.
	TimeMs int64
}

var clockStart = time.Now()

// Uptime returns milliseconds on a monotonic clock.
func Uptime() int64 {
	return time.Since(clockStart).Milliseconds()
}
