package game

import "github.com/pthm-cable/metaball/contour"

// History keeps the contours of the most recent frames, newest last.
type History struct {
	layers [][]contour.Polyline
	next   int
	n      int
	pushed int
}

// NewHistory creates a history holding up to size frames. size <= 0 keeps nothing.
func NewHistory(size int) *History {
	if size < 0 {
		size = 0
	}
	return &History{layers: make([][]contour.Polyline, size)}
}

// Push records a frame, evicting the oldest when full.
func (h *History) Push(polylines []contour.Polyline) {
	if len(h.layers) == 0 {
		return
	}
	h.pushed++
	h.layers[h.next] = polylines
	h.next = (h.next + 1) % len(h.layers)
	if h.n < len(h.layers) {
		h.n++
	}
}

// Len returns the number of stored frames.
func (h *History) Len() int {
	return h.n
}

// Layer returns frame i, where 0 is the oldest stored frame.
func (h *History) Layer(i int) []contour.Polyline {
	if i < 0 || i >= h.n {
		return nil
	}
	start := (h.next - h.n + len(h.layers)) % len(h.layers)
	return h.layers[(start+i)%len(h.layers)]
}

// Seq returns how many frames had been pushed when layer i was recorded.
// It does not restart after Clear, so neighbouring layers always differ in parity.
func (h *History) Seq(i int) int {
	return h.pushed - h.n + i + 1
}

// Clear drops every stored frame.
func (h *History) Clear() {
	for i := range h.layers {
		h.layers[i] = nil
	}
	h.next, h.n = 0, 0
}
