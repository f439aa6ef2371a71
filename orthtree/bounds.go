package orthtree

import (
	"fmt"
	"strings"
)

// Bounds is an axis-aligned box. Min, Max and Mid always have the same
// length (the number of dimensions) and Max[i] >= Min[i].
type Bounds struct {
	Min []float32
	Max []float32
	Mid []float32
}

// NewBounds returns a Bounds copying the given corners.
// A max coordinate below its min is clamped to the min.
func NewBounds(min, max []float32) Bounds {
	if len(min) != len(max) {
		panic(fmt.Sprintf("orthtree: corner length mismatch %d != %d", len(min), len(max)))
	}

	var b Bounds

	b.Set(min, max)

	return b
}

// Set overwrites the corners reusing the underlying storage when possible.
func (b *Bounds) Set(min, max []float32) {
	b.resize(len(min))

	copy(b.Min, min)
	copy(b.Max, max)
	b.update()
}

// Dims returns the number of dimensions.
func (b *Bounds) Dims() int {
	return len(b.Min)
}

// Contains reports whether o lies strictly inside b on every dimension.
func (b *Bounds) Contains(o *Bounds) bool {
	return contains(b.Min, b.Max, o.Min, o.Max)
}

// Overlaps reports whether the open boxes intersect.
// Boxes only touching at an edge do not overlap.
func (b *Bounds) Overlaps(o *Bounds) bool {
	return overlaps(b.Min, b.Max, o.Min, o.Max)
}

// Degenerate reports whether the box has no volume.
func (b *Bounds) Degenerate() bool {
	return degenerate(b.Min, b.Max)
}

// Clone returns a deep copy of the Bounds.
func (b *Bounds) Clone() Bounds {
	return Bounds{
		Min: append([]float32(nil), b.Min...),
		Max: append([]float32(nil), b.Max...),
		Mid: append([]float32(nil), b.Mid...),
	}
}

func (b *Bounds) String() string {
	var s strings.Builder

	s.WriteString("[")
	for i := range b.Min {
		if i > 0 {
			s.WriteString(" ")
		}
		fmt.Fprintf(&s, "%g..%g", b.Min[i], b.Max[i])
	}
	s.WriteString("]")

	return s.String()
}

// resize makes sure all three slices have exactly n elements.
func (b *Bounds) resize(n int) {
	if cap(b.Min) < n || cap(b.Max) < n || cap(b.Mid) < n {
		b.Min = make([]float32, n)
		b.Max = make([]float32, n)
		b.Mid = make([]float32, n)
		return
	}
	b.Min = b.Min[:n]
	b.Max = b.Max[:n]
	b.Mid = b.Mid[:n]
}

// update clamps inverted extents and recalculates the middle point.
func (b *Bounds) update() {
	for i := range b.Min {
		if b.Max[i] < b.Min[i] {
			b.Max[i] = b.Min[i]
		}
		b.Mid[i] = (b.Min[i] + b.Max[i]) / 2
	}
}

func contains(min, max, omin, omax []float32) bool {
	for i := range min {
		if !(omin[i] > min[i] && omax[i] < max[i]) {
			return false
		}
	}
	return true
}

func overlaps(min, max, omin, omax []float32) bool {
	for i := range min {
		if !(omin[i] < max[i] && omax[i] > min[i]) {
			return false
		}
	}
	return true
}

func degenerate(min, max []float32) bool {
	for i := range min {
		if !(max[i] > min[i]) {
			return true
		}
	}
	return false
}
