package touch

const (
	velocityHistory = 10
	// Samples older than this relative to the newest are ignored.
	velocityHorizonMs = 200
)

type sample struct {
	x, y int
	t    int64
}

// VelocityTracker estimates pointer velocity from recent samples.
type VelocityTracker struct {
	samples [velocityHistory]sample
	n       int
	next    int
}

// Add records the position of ev.
func (vt *VelocityTracker) Add(ev Event) {
	vt.samples[vt.next] = sample{x: ev.X, y: ev.Y, t: ev.TimeMs}
	vt.next = (vt.next + 1) % velocityHistory
	if vt.n < velocityHistory {
		vt.n++
	}
}

// Clear drops all samples.
func (vt *VelocityTracker) Clear() {
	vt.n = 0
	vt.next = 0
}

// ordered returns the samples oldest first.
func (vt *VelocityTracker) ordered() []sample {
	out := make([]sample, 0, vt.n)
	start := (vt.next - vt.n + velocityHistory) % velocityHistory
	for i := 0; i < vt.n; i++ {
		out = append(out, vt.samples[(start+i)%velocityHistory])
	}
	return out
}

// Compute returns the velocity in pixels per unitsMs milliseconds, clamped to
// [-maxVelocity, maxVelocity]. Fewer than two usable samples yield zero.
func (vt *VelocityTracker) Compute(unitsMs int, maxVelocity int) (vx, vy int) {
	s := vt.ordered()
	if len(s) < 2 {
		return 0, 0
	}
	newest := s[len(s)-1].t
	first := 0
	for first < len(s)-1 && newest-s[first].t > velocityHorizonMs {
		first++
	}
	oldest := s[first]

	var accX, accY float64
	started := false
	for _, cur := range s[first+1:] {
		dur := cur.t - oldest.t
		if dur <= 0 {
			continue
		}
		x := float64(cur.x-oldest.x) / float64(dur) * float64(unitsMs)
		y := float64(cur.y-oldest.y) / float64(dur) * float64(unitsMs)
		if !started {
			accX, accY = x, y
			started = true
		} else {
			accX = (accX + x) * 0.5
			accY = (accY + y) * 0.5
		}
	}
	return clamp(int(accX), maxVelocity), clamp(int(accY), maxVelocity)
}

func clamp(v, limit int) int {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
