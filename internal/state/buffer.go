package state

import "sync/atomic"

type snapshot struct {
	state   State
	version uint64
}

// Buffer holds the authoritative snapshot exchanged between the interaction
// side and the renderer. Every publish replaces the whole snapshot, so a
// reader never sees a mix of two publishes. Readers may skip intermediate
// snapshots.
type Buffer struct {
	cur atomic.Pointer[snapshot]
}

// NewBuffer returns a buffer holding Initial().
func NewBuffer() *Buffer {
	b := &Buffer{}
	b.cur.Store(&snapshot{state: Initial()})
	return b
}

// Load returns the latest snapshot and its version.
func (b *Buffer) Load() (State, uint64) {
	s := b.cur.Load()
	return s.state, s.version
}

// Store publishes s as the new snapshot and returns its version.
func (b *Buffer) Store(s State) uint64 {
	for {
		old := b.cur.Load()
		next := &snapshot{state: s, version: old.version + 1}
		if b.cur.CompareAndSwap(old, next) {
			return next.version
		}
	}
}

// Update applies fn to the latest snapshot and publishes the result. If
// another publish lands first, fn runs again on the newer snapshot, so fn
// must be free of side effects.
func (b *Buffer) Update(fn func(*State)) (State, uint64) {
	for {
		old := b.cur.Load()
		s := old.state
		fn(&s)
		next := &snapshot{state: s, version: old.version + 1}
		if b.cur.CompareAndSwap(old, next) {
			return s, next.version
		}
	}
}

// Version returns the version of the latest snapshot.
func (b *Buffer) Version() uint64 {
	return b.cur.Load().version
}

// Shared is a working copy of the state bound to a buffer. Call Read before a
// logical update and Save exactly once after it; field writes in between are
// published together. Writes not followed by Save are lost on the next Read.
//
// A Shared is owned by one goroutine.
type Shared struct {
	State
	buf *Buffer
}

// NewShared returns a working copy of buf, already read.
func NewShared(buf *Buffer) *Shared {
	sh := &Shared{buf: buf}
	sh.Read()
	return sh
}

// Read replaces the working copy with the authoritative snapshot.
func (sh *Shared) Read() {
	sh.State, _ = sh.buf.Load()
}

// Save publishes the working copy.
func (sh *Shared) Save() {
	sh.buf.Store(sh.State)
}
