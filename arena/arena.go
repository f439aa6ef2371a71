// Package arena implements a dense slot arena addressed by small integer
// handles.
//
// Slots are tracked by an occupancy bitmap (1 - occupied, 0 - free):
//
//	word:   0                                1
//	bits:   [ 1 1 1 0 1 1 0 0 ... ]          [ 0 0 ... ]
//	slots:    0 1 2 3 4 5 6 7 ...   63         64 65 ...
//
// Obtain always hands out the lowest free slot (first fit from index 0)
// which keeps the live slots packed near the beginning of the backing
// slice. Release only clears a bit: the slot value and its memory stay
// around until the slot is obtained again.
package arena

import (
	"math/bits"

	"github.com/hideo55/go-popcount"
)

const wordWidth = 64

// Handle addresses a slot of an Arena.
type Handle int32

// Nil is a handle that never addresses a slot.
const Nil Handle = -1

// Arena is a pool of T values addressed by Handle.
//
// A pointer returned by Get is only valid until the next Obtain since the
// backing slice may be reallocated when it grows.
type Arena[T any] struct {
	slots  []T
	bitmap []uint64
}

// New returns an Arena with room for preAlloc slots.
func New[T any](preAlloc int) *Arena[T] {
	if preAlloc < 0 {
		preAlloc = 0
	}
	return &Arena[T]{
		slots:  make([]T, 0, preAlloc),
		bitmap: make([]uint64, 0, (preAlloc+wordWidth-1)/wordWidth),
	}
}

// Obtain marks the lowest free slot as occupied and returns its handle.
// The backing slice grows by one element when every slot is taken.
// The slot keeps whatever value it held when it was released.
func (a *Arena[T]) Obtain() Handle {
	for w, word := range a.bitmap {
		if word == ^uint64(0) {
			continue
		}
		idx := w*wordWidth + bits.TrailingZeros64(^word)
		if idx >= len(a.slots) {
			break
		}
		a.bitmap[w] = word | 1<<(idx%wordWidth)
		return Handle(idx)
	}

	// no free slot - grow
	var zero T

	idx := len(a.slots)
	a.slots = append(a.slots, zero)

	if w := idx / wordWidth; w == len(a.bitmap) {
		a.bitmap = append(a.bitmap, 0)
	}
	a.bitmap[idx/wordWidth] |= 1 << (idx % wordWidth)

	return Handle(idx)
}

// Release returns a slot to the pool. It reports false if the handle does
// not address an occupied slot (a double release).
func (a *Arena[T]) Release(h Handle) bool {
	if !a.Occupied(h) {
		return false
	}
	a.bitmap[h/wordWidth] &^= 1 << (h % wordWidth)
	return true
}

// Occupied reports whether h addresses a live slot.
func (a *Arena[T]) Occupied(h Handle) bool {
	if h < 0 || int(h) >= len(a.slots) {
		return false
	}
	return a.bitmap[h/wordWidth]&(1<<(h%wordWidth)) != 0
}

// Get returns a pointer to the slot value. Released handles must never be
// dereferenced.
func (a *Arena[T]) Get(h Handle) *T {
	return &a.slots[h]
}

// Reset releases every slot at once. The backing storage is kept.
func (a *Arena[T]) Reset() {
	for i := range a.bitmap {
		a.bitmap[i] = 0
	}
}

// Len returns the number of occupied slots.
func (a *Arena[T]) Len() int {
	var n uint64
	for _, word := range a.bitmap {
		n += popcount.Count(word)
	}
	return int(n)
}

// Cap returns the number of slots ever allocated (live and free).
func (a *Arena[T]) Cap() int {
	return len(a.slots)
}

// Each calls a handler for every occupied slot in handle order.
// The handler can continue the process by returning true or abort with false.
func (a *Arena[T]) Each(handler func(Handle, *T) bool) bool {
	for w, word := range a.bitmap {
		for word != 0 {
			idx := w*wordWidth + bits.TrailingZeros64(word)
			word &= word - 1
			if !handler(Handle(idx), &a.slots[idx]) {
				return false
			}
		}
	}
	return true
}
