package render

import (
	"math"

	"github.com/depeter/jellygrid/internal/state"
)

const (
	// flingDecel is the deceleration, in px/s², used to estimate how far a
	// release would carry before it is snapped to a page.
	flingDecel = 6000

	minSettleMs  = 120
	maxSettleMs  = 700
	snapSettleMs = 250
)

// settle advances the scroll animation of s to nowMs. release is the
// FlingTimeMs of the last release a settle was already planned for; the
// returned value replaces it. settle only touches s, so it is safe to run
// inside Buffer.Update.
func settle(s *state.State, nowMs, release int64, pageWidth, pages int) int64 {
	if s.AdjustedDeceleration == 0 {
		if s.FlingTimeMs == 0 || s.FlingTimeMs == release {
			s.CurrentScrollX = s.ScrollX
			return release
		}
		release = s.FlingTimeMs
		if !plan(s, pageWidth, pages) {
			s.CurrentScrollX = s.ScrollX
			s.FlingVelocityX = 0
			return release
		}
	}

	elapsed := max(nowMs-s.FlingTimeMs, 0)
	if elapsed >= int64(s.FlingDuration) {
		s.ScrollX = s.FlingEndPos
		s.CurrentScrollX = s.FlingEndPos
		s.FlingVelocityX = 0
		s.AdjustedDeceleration = 0
		return release
	}

	u := float64(elapsed) / float64(s.FlingDuration)
	eased := 1 - (1-u)*(1-u)
	dist := s.FlingEndPos - s.ScrollX
	s.CurrentScrollX = s.ScrollX + int(math.Round(float64(dist)*eased))
	return release
}

// plan fills in the settle target for a fresh release. It reports false when
// the scroll is already resting on a page.
func plan(s *state.State, pageWidth, pages int) bool {
	start := s.ScrollX
	v := s.FlingVelocityX
	travel := v * abs(v) / (2 * flingDecel)
	end := snapToPage(start+travel, pageWidth, pages)
	dist := end - start
	if dist == 0 {
		return false
	}

	ms := snapSettleMs
	if v != 0 && (dist > 0) == (v > 0) {
		// Time to cover dist while slowing uniformly from v to rest.
		ms = 2 * abs(dist) * 1000 / abs(v)
	}
	ms = min(max(ms, minSettleMs), maxSettleMs)

	s.FlingEndPos = end
	s.FlingDuration = ms
	s.AdjustedDeceleration = max(1, 2*abs(dist)*1_000_000/(ms*ms))
	return true
}

// snapToPage returns the scroll offset of the page nearest to x. Pages run
// towards negative offsets.
func snapToPage(x, pageWidth, pages int) int {
	if pages <= 1 || pageWidth <= 0 {
		return 0
	}
	page := int(math.Round(float64(-x) / float64(pageWidth)))
	page = min(max(page, 0), pages-1)
	return -page * pageWidth
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
