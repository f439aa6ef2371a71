package quadtree

import "fmt"

// Rect is an axis-aligned rectangle given by its minimum corner and extents.
type Rect struct {
	MinX, MinY    float32
	Width, Height float32
}

// MaxX returns the right edge.
func (r Rect) MaxX() float32 {
	return r.MinX + r.Width
}

// MaxY returns the top edge.
func (r Rect) MaxY() float32 {
	return r.MinY + r.Height
}

// Contains reports whether o lies strictly inside r.
func (r Rect) Contains(o Rect) bool {
	return o.MinX > r.MinX &&
		o.MaxX() < r.MaxX() &&
		o.MinY > r.MinY &&
		o.MaxY() < r.MaxY()
}

// Overlaps reports whether the open rectangles intersect.
func (r Rect) Overlaps(o Rect) bool {
	return o.MinX < r.MaxX() &&
		o.MaxX() > r.MinX &&
		o.MinY < r.MaxY() &&
		o.MaxY() > r.MinY
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.MinX, r.MinY, r.Width, r.Height)
}

func (r Rect) corners(min, max []float32) {
	min[0], min[1] = r.MinX, r.MinY
	max[0], max[1] = r.MaxX(), r.MaxY()
}

func rectOf(min, max []float32) Rect {
	return Rect{
		MinX:   min[0],
		MinY:   min[1],
		Width:  max[0] - min[0],
		Height: max[1] - min[1],
	}
}
