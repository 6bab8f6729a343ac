package geom

import "errors"

// ErrInvalidBounds is returned when a shape with zero or negative width or
// height is compiled.
var ErrInvalidBounds = errors.New("shape bounds must be positive")

// Box is a shape's bounding box in device pixels.
type Box struct {
	W, H float64
}

// Valid reports whether both extents are positive.
func (b Box) Valid() bool {
	return b.W > 0 && b.H > 0
}

// Cursor is the running pen state threaded through compilation. Positions are
// rounded percentages of the bounding box.
type Cursor struct {
	X, Y         float64
	MoveX, MoveY float64
	// Knot is the last spline knot seen, -1 before any spline.
	Knot float64
}

// NewCursor returns the initial cursor of a shape.
func NewCursor() Cursor {
	return Cursor{Knot: -1}
}

func (c Cursor) moveTo(x, y float64) Cursor {
	c.X, c.Y = x, y
	c.MoveX, c.MoveY = x, y
	return c
}

func (c Cursor) lineTo(x, y float64) Cursor {
	c.X, c.Y = x, y
	return c
}

// device returns the cursor position in device pixels, y still measured from
// the top edge.
func (c Cursor) device(box Box) (float64, float64) {
	return c.X * box.W / 100.0, c.Y * box.H / 100.0
}
