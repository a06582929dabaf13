package trainer

import "fmt"

// History keeps the most recent cost samples in a fixed-capacity ring.
type History struct {
	data []float32
	idx  int
	size int
}

// NewHistory allocates a ring holding up to capacity samples.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		panic(fmt.Sprintf("trainer.NewHistory: capacity %d", capacity))
	}
	return &History{data: make([]float32, capacity)}
}

// Push appends v, dropping the oldest sample once the ring is full.
func (h *History) Push(v float32) {
	h.data[h.idx] = v
	h.idx = (h.idx + 1) % len(h.data)
	if h.size < len(h.data) {
		h.size++
	}
}

// Len returns the number of samples held.
func (h *History) Len() int { return h.size }

// Cap returns the ring capacity.
func (h *History) Cap() int { return len(h.data) }

// At returns sample i, oldest first.
func (h *History) At(i int) float32 {
	if i < 0 || i >= h.size {
		panic(fmt.Sprintf("trainer.History.At: index %d out of range [0, %d)", i, h.size))
	}
	if h.size == len(h.data) {
		return h.data[(h.idx+i)%len(h.data)]
	}
	return h.data[i]
}

// Values returns a copy of the samples, oldest first.
func (h *History) Values() []float32 {
	out := make([]float32, h.size)
	for i := range out {
		out[i] = h.At(i)
	}
	return out
}

// Last returns the newest sample.
func (h *History) Last() (float32, bool) {
	if h.size == 0 {
		return 0, false
	}
	return h.At(h.size - 1), true
}

// Reset drops every sample.
func (h *History) Reset() {
	h.idx = 0
	h.size = 0
}

// Min returns the smallest sample, or 0 when empty.
func (h *History) Min() float32 {
	if h.size == 0 {
		return 0
	}
	lo := h.At(0)
	for i := 1; i < h.size; i++ {
		lo = min(lo, h.At(i))
	}
	return lo
}

// Max returns the largest sample, or 0 when empty.
func (h *History) Max() float32 {
	if h.size == 0 {
		return 0
	}
	hi := h.At(0)
	for i := 1; i < h.size; i++ {
		hi = max(hi, h.At(i))
	}
	return hi
}
