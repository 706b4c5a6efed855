package heap

import (
	"fmt"

	"github.com/rileyhilliard/bleconsole/internal/errors"
)

// DefaultCapacity is the sample slot count: graph width plus one.
const DefaultCapacity = 61

// Ring is a fixed-size circular buffer of free-memory samples. It is owned by
// a single goroutine (the graph loop) and is not synchronized.
type Ring struct {
	data   []uint32
	cursor int
}

// NewRing creates an all-zero ring. Capacities below 2 fall back to DefaultCapacity.
func NewRing(capacity int) *Ring {
	if capacity < 2 {
		capacity = DefaultCapacity
	}
	return &Ring{data: make([]uint32, capacity)}
}

// Record overwrites the slot at the cursor and advances it.
func (r *Ring) Record(sample uint32) {
	r.data[r.cursor] = sample
	r.cursor = (r.cursor + 1) % len(r.data)
}

// Window returns the most recent width samples, oldest first. Asking for more
// than the capacity is a programming error and panics.
func (r *Ring) Window(width int) []uint32 {
	size := len(r.data)
	if width < 0 || width > size {
		panic(errors.NewGeometry(fmt.Sprintf("window of %d samples exceeds ring capacity %d", width, size)))
	}
	out := make([]uint32, width)
	for i := 0; i < width; i++ {
		out[i] = r.data[(r.cursor-width+i+size)%size]
	}
	return out
}

// Capacity returns the number of slots.
func (r *Ring) Capacity() int {
	return len(r.data)
}

// Cursor returns the next slot to be written.
func (r *Ring) Cursor() int {
	return r.cursor
}

// Clear zeroes every slot and rewinds the cursor.
func (r *Ring) Clear() {
	for i := range r.data {
		r.data[i] = 0
	}
	r.cursor = 0
}
