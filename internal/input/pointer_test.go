package input

import (
	"testing"

	"github.com/depeter/jellygrid/internal/touch"
)

func TestTrackerSequence(t *testing.T) {
	var tr Tracker
	steps := []struct {
		name   string
		sample Sample
		want   touch.Action
		emit   bool
	}{
		{"hover", Sample{X: 5, Y: 5, Focused: true}, 0, false},
		{"press", Sample{Pressed: true, X: 10, Y: 20, Focused: true}, touch.ActionDown, true},
		{"hold still", Sample{Pressed: true, X: 10, Y: 20, Focused: true}, 0, false},
		{"drag", Sample{Pressed: true, X: 40, Y: 20, Focused: true}, touch.ActionMove, true},
		{"drag out", Sample{Pressed: true, X: 500, Y: 20, Focused: true}, touch.ActionOutside, true},
		{"lift", Sample{X: 510, Y: 20, Focused: true}, touch.ActionUp, true},
		{"idle", Sample{X: 510, Y: 20, Focused: true}, 0, false},
	}
	for i, st := range steps {
		ev, ok := tr.Next(st.sample, 480, 854, 100, 200, int64(i*16))
		if ok != st.emit {
			t.Fatalf("%s: emitted = %v, want %v", st.name, ok, st.emit)
		}
		if ok && ev.Action != st.want {
			t.Errorf("%s: action = %v, want %v", st.name, ev.Action, st.want)
		}
		if ok && ev.TimeMs != int64(i*16) {
			t.Errorf("%s: time = %d", st.name, ev.TimeMs)
		}
	}
}

func TestTrackerUpUsesLastPosition(t *testing.T) {
	var tr Tracker
	tr.Next(Sample{Pressed: true, X: 10, Y: 20, Focused: true}, 480, 854, 0, 0, 0)
	tr.Next(Sample{Pressed: true, X: 60, Y: 25, Focused: true}, 480, 854, 0, 0, 16)
	ev, ok := tr.Next(Sample{X: 0, Y: 0, Focused: true}, 480, 854, 30, 40, 32)
	if !ok || ev.Action != touch.ActionUp {
		t.Fatalf("got %v %v, want up", ev.Action, ok)
	}
	if ev.X != 60 || ev.Y != 25 {
		t.Errorf("up at %d,%d, want 60,25", ev.X, ev.Y)
	}
	if ev.RawX != 90 || ev.RawY != 65 {
		t.Errorf("raw = %d,%d, want 90,65", ev.RawX, ev.RawY)
	}
	if tr.Down() {
		t.Error("still down after up")
	}
}

func TestTrackerFocusLossCancels(t *testing.T) {
	var tr Tracker
	tr.Next(Sample{Pressed: true, X: 10, Y: 20, Focused: true}, 480, 854, 0, 0, 0)
	ev, ok := tr.Next(Sample{Pressed: true, X: 10, Y: 20}, 480, 854, 0, 0, 16)
	if !ok || ev.Action != touch.ActionCancel {
		t.Fatalf("got %v %v, want cancel", ev.Action, ok)
	}
	// A press while unfocused does not start a gesture.
	if _, ok := tr.Next(Sample{Pressed: true, X: 10, Y: 20}, 480, 854, 0, 0, 32); ok {
		t.Error("unfocused press emitted an event")
	}
}
