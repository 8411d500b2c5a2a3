package touch

import (
	"time"

	"github.com/depeter/jellygrid/internal/layout"
	"github.com/depeter/jellygrid/internal/state"
)

// Phase is the state of the gesture in progress.
type Phase int

const (
	Idle Phase = iota
	// Pressed is a pointer that is down but has not moved past the slop.
	Pressed
	Scrolling
	// Settling is reported by a release that started a fling. The renderer
	// owns the fling, so the machine itself rests in Idle.
	Settling
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Scrolling:
		return "scrolling"
	case Settling:
		return "settling"
	}
	return "unknown"
}

// Gesture is a confirmed tap or long-press.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureTap
	GestureLongPress
)

// lostMotionX is stored after a release so a stray move cannot produce a
// real-looking delta.
const lostMotionX = -10000

// Selector picks the item under a press, or -1.
type Selector interface {
	Select(x, y, scrollX, page int) int
}

// Config holds the platform thresholds.
type Config struct {
	// Slop is the distance in pixels a press may travel before it scrolls.
	Slop int
	// MaxFlingVelocity caps the release velocity, in px/s.
	MaxFlingVelocity int
	LongPressTimeout time.Duration
	// Now returns monotonic milliseconds. Defaults to Uptime.
	Now func() int64
}

// DefaultConfig mirrors common touch-screen defaults.
func DefaultConfig() Config {
	return Config{
		Slop:             16,
		MaxFlingVelocity: 4000,
		LongPressTimeout: 500 * time.Millisecond,
		Now:              Uptime,
	}
}

// Result describes what a single event did.
type Result struct {
	// Phase is the phase after the event, Settling for a release that flings.
	Phase   Phase
	Gesture Gesture
	// Index is the item of a tap or long-press.
	Index int
}

type transition func(m *Machine, ev Event) Result

// Machine turns pointer events into scroll, fling and selection updates on
// the shared state. It runs on the interaction goroutine only.
type Machine struct {
	cfg    Config
	defs   *layout.Defines
	shared *state.Shared
	sel    Selector

	table map[Phase]map[Action]transition
	phase Phase

	velocity *VelocityTracker

	lastMotionX int
	lastScrollX int
	// pageWidth is the viewport width, the stride between pages.
	pageWidth   int
	downRawX    int
	downRawY    int
	downTimeMs  int64

	// pending is the selection made at press time while it is still a tap
	// candidate, -1 otherwise.
	pending     int
	longPressed bool
}

// NewMachine builds a machine that publishes through shared.
func NewMachine(cfg Config, defs *layout.Defines, shared *state.Shared, sel Selector) *Machine {
	if cfg.Now == nil {
		cfg.Now = Uptime
	}
	m := &Machine{
		cfg:         cfg,
		defs:        defs,
		shared:      shared,
		sel:         sel,
		phase:       Idle,
		lastMotionX: lostMotionX,
		pageWidth:   defs.ScreenWidthPx,
		pending:     -1,
	}
	tracking := map[Action]transition{
		ActionDown:    (*Machine).press,
		ActionMove:    (*Machine).move,
		ActionOutside: (*Machine).move,
		ActionUp:      (*Machine).release,
		ActionCancel:  (*Machine).release,
	}
	m.table = map[Phase]map[Action]transition{
		Idle:      {ActionDown: (*Machine).press},
		Pressed:   tracking,
		Scrolling: tracking,
	}
	return m
}

// Handle processes one event. Events without a transition from the current
// phase are ignored.
func (m *Machine) Handle(ev Event) Result {
	fn, ok := m.table[m.phase][ev.Action]
	if !ok {
		return Result{Phase: m.phase, Index: -1}
	}
	return fn(m, ev)
}

// Tick reports a long-press once the pointer has stayed within the slop for
// the long-press timeout.
func (m *Machine) Tick(nowMs int64) Result {
	if m.phase != Pressed || m.longPressed {
		return Result{Phase: m.phase, Index: -1}
	}
	if nowMs-m.downTimeMs < m.cfg.LongPressTimeout.Milliseconds() {
		return Result{Phase: m.phase, Index: -1}
	}
	m.longPressed = true
	if m.pending < 0 {
		return Result{Phase: m.phase, Index: -1}
	}
	return Result{Phase: m.phase, Gesture: GestureLongPress, Index: m.pending}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// DownRaw returns the screen coordinates of the last press.
func (m *Machine) DownRaw() (x, y int) {
	return m.downRawX, m.downRawY
}

// SetPageWidth sets the viewport width used to find the page under a press.
func (m *Machine) SetPageWidth(width int) {
	m.pageWidth = width
}

// ClearSelection drops the tap candidate of the gesture in progress, so its
// release activates nothing.
func (m *Machine) ClearSelection() {
	m.pending = -1
}

// Reset abandons any gesture. If one was in progress its selection is
// cleared in the shared state.
func (m *Machine) Reset() {
	if m.phase != Idle {
		sh := m.shared
		sh.Read()
		sh.SelectedIconIndex = -1
		sh.Save()
	}
	m.phase = Idle
	m.velocity = nil
	m.lastMotionX = lostMotionX
	m.pending = -1
	m.longPressed = false
}

func (m *Machine) press(ev Event) Result {
	sh := m.shared
	m.downRawX, m.downRawY = ev.RawX, ev.RawY
	m.downTimeMs = ev.TimeMs
	m.lastMotionX = ev.X

	sh.Read()
	sh.StartScrollX = sh.CurrentScrollX
	sh.ScrollX = sh.CurrentScrollX
	m.lastScrollX = sh.CurrentScrollX
	if sh.Flinging() {
		// A press during a fling only stops it.
		sh.SelectedIconIndex = -1
	} else {
		page := layout.PageForScroll(sh.StartScrollX, m.pageWidth)
		sh.SelectedIconIndex = m.sel.Select(ev.X, ev.Y, sh.StartScrollX, page)
	}
	sh.FlingVelocityX = 0
	sh.AdjustedDeceleration = 0
	sh.Save()

	m.velocity = &VelocityTracker{}
	m.velocity.Add(ev)
	m.pending = sh.SelectedIconIndex
	m.longPressed = false
	m.phase = Pressed
	return Result{Phase: m.phase, Index: -1}
}

func (m *Machine) move(ev Event) Result {
	slop := abs(ev.X - m.lastMotionX)
	if m.phase == Pressed && slop < m.cfg.Slop {
		// lastMotionX stays put so the slop is measured from the press and
		// the first scroll delta includes the distance already travelled.
		return Result{Phase: m.phase, Index: -1}
	}

	sh := m.shared
	sh.Read()
	sh.SelectedIconIndex = -1
	m.pending = -1
	m.velocity.Add(ev)
	delta := ev.X - m.lastMotionX
	sh.CurrentScrollX = m.lastScrollX
	m.lastScrollX += delta
	sh.ScrollX = m.lastScrollX
	sh.Save()
	m.lastMotionX = ev.X

	m.phase = Scrolling
	return Result{Phase: m.phase, Index: -1}
}

func (m *Machine) release(ev Event) Result {
	vx, _ := m.velocity.Compute(1000, m.cfg.MaxFlingVelocity)

	sh := m.shared
	sh.Read()
	sh.FlingTimeMs = m.cfg.Now()
	sh.FlingVelocityX = vx
	sh.SelectedIconIndex = -1
	sh.Save()

	tap := ev.Action == ActionUp && m.phase == Pressed && m.pending >= 0 &&
		!m.longPressed && vx == 0
	index := m.pending

	m.velocity = nil
	m.lastMotionX = lostMotionX
	m.pending = -1
	m.phase = Idle

	res := Result{Phase: Idle, Index: -1}
	if vx != 0 {
		res.Phase = Settling
	}
	if tap {
		res.Gesture = GestureTap
		res.Index = index
	}
	return res
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
