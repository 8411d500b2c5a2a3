package input

import (
	"encoding/binary"
	"sync/atomic"
)

const (
	evKey   = 0x01
	keyBack = 158 // KEY_BACK
)

// rawEventSize is a 64-bit Linux input_event: timeval, type, code, value.
const rawEventSize = 24

// BackWatcher latches hardware Back key presses that never reach the window,
// such as the dedicated key on kiosk touch panels.
type BackWatcher struct {
	pressed atomic.Bool
}

// JustPressed reports a Back press once, then clears it.
func (w *BackWatcher) JustPressed() bool {
	if w == nil {
		return false
	}
	return w.pressed.CompareAndSwap(true, false)
}

// feed records one raw input_event.
func (w *BackWatcher) feed(buf []byte) {
	if len(buf) < rawEventSize {
		return
	}
	typ := binary.LittleEndian.Uint16(buf[16:18])
	code := binary.LittleEndian.Uint16(buf[18:20])
	value := int32(binary.LittleEndian.Uint32(buf[20:24]))
	if typ == evKey && code == keyBack && value == 1 {
		w.pressed.Store(true)
	}
}
