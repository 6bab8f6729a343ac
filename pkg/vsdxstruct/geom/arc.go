package geom

import (
	"math"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/units"
	"go.uber.org/zap"
)

// arcTo reconstructs a circular arc from the current point to (X, Y) with
// bulge A, the distance from the chord midpoint to the arc.
func (c *Compiler) arcTo(p Primitive, box Box, cur Cursor) ([]Command, Cursor) {
	v, ok := c.params(p, "X", "Y", "A")
	if !ok {
		return nil, cur
	}

	x0, y0 := cur.device(box)
	x := units.ToPixels(v[0])
	y := box.H - units.ToPixels(v[1])
	a := units.ToPixels(v[2])

	px, py := units.Round2(units.PercentX(x, box.W)), units.Round2(y*100.0/box.H)

	// A zero bulge is a straight segment.
	if a == 0 {
		c.tracer.Segment(x0, y0, x, y, "")
		return []Command{Line(px, py)}, cur.lineTo(px, py)
	}

	dx := math.Abs(x - x0)
	dy := math.Abs(y - y0)
	r := a*0.5 + (dx*dx+dy*dy)/(8.0*a)
	r0 := math.Abs(r)

	cmd := Command{
		Op:       OpArc,
		RX:       math.Abs(units.Round2(r * 100.0 / box.W)),
		RY:       math.Abs(units.Round2(r * 100.0 / box.H)),
		X:        px,
		Y:        py,
		Sweep:    a < 0,
		LargeArc: r0 < math.Abs(units.Round2(a)),
	}

	c.tracer.Segment(x0, y0, x, y, "")

	return []Command{cmd}, cur.lineTo(px, py)
}

// ellipse emits the axis-aligned bounding box of the ellipse centred on (X, Y)
// whose semi-axes end at (A, B) and (C, D). The ellipse's rotation is not
// represented.
func (c *Compiler) ellipse(p Primitive, box Box, cur Cursor) ([]Command, Cursor) {
	v, ok := c.params(p, "X", "Y", "A", "B", "C", "D")
	if !ok {
		return nil, cur
	}

	x := units.ToPixels(v[0])
	y := box.H - units.ToPixels(v[1])
	a := units.ToPixels(v[2])
	b := box.H - units.ToPixels(v[3])
	cx := units.ToPixels(v[4])
	d := box.H - units.ToPixels(v[5])

	r1 := units.Distance(x, y, a, b)
	r2 := units.Distance(x, y, cx, d)

	cmd := Command{
		Op: OpEllipse,
		X:  units.Round2((x - r1) * 100.0 / box.W),
		Y:  units.Round2((y - r2) * 100.0 / box.H),
		W:  units.Round2(2 * r1 * 100.0 / box.W),
		H:  units.Round2(2 * r2 * 100.0 / box.H),
	}
	return []Command{cmd}, cur
}

// ellipticalArcTo reconstructs an elliptical arc from the current point to
// (X, Y) passing through (A, B) on an ellipse rotated by C radians with axis
// ratio D.
//
// The three known points are rotated into the ellipse's frame, where the
// centre has a closed-form solution. The large-arc flag is set when the centre
// lies inside the triangle of the three points and the arc through the control
// point is reflex; the sweep flag follows the orientation of the triple.
func (c *Compiler) ellipticalArcTo(p Primitive, box Box, cur Cursor) ([]Command, Cursor) {
	v, ok := c.params(p, "X", "Y", "A", "B", "C", "D")
	if !ok {
		return nil, cur
	}

	w, h := box.W, box.H
	x2 := units.ToPixels(v[0])
	y2 := h - units.ToPixels(v[1])
	x3 := units.ToPixels(v[2])
	y3 := h - units.ToPixels(v[3])
	ang := -v[4]
	d := v[5]

	px, py := units.Round2(x2*100.0/w), units.Round2(y2*100.0/h)

	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		c.logger.Debug("Skipping elliptical arc with degenerate axis ratio",
			zap.Int("index", p.Index), zap.Float64("d", d))
		return nil, cur
	}

	x1, y1 := cur.device(box)

	p1x, p1y := units.Rotate(x1, y1, -ang)
	p2x, p2y := units.Rotate(x2, y2, -ang)
	p3x, p3y := units.Rotate(x3, y3, -ang)

	den := 2 * ((p1x-p2x)*(p2y-p3y) - (p2x-p3x)*(p1y-p2y))
	if den == 0 {
		// Collinear points lie on no ellipse; draw the chord.
		c.tracer.Segment(x1, y1, x2, y2, "")
		return []Command{Line(px, py)}, cur.lineTo(px, py)
	}

	dd := d * d
	p0x := ((p1x-p2x)*(p1x+p2x)*(p2y-p3y) -
		(p2x-p3x)*(p2x+p3x)*(p1y-p2y) +
		dd*(p1y-p2y)*(p2y-p3y)*(p1y-p3y)) / den
	p0y := ((p1x-p2x)*(p2x-p3x)*(p1x-p3x)/dd +
		(p2x-p3x)*(p1y-p2y)*(p1y+p2y) -
		(p1x-p2x)*(p2y-p3y)*(p2y+p3y)) / -den

	dx := p1x - p0x
	dy := p1y - p0y
	rx := math.Sqrt(dx*dx + dy*dy*dd)
	ry := rx / d

	cmd := Command{
		Op:       OpArc,
		RX:       units.Round2(rx * 100.0 / w),
		RY:       units.Round2(ry * 100.0 / h),
		X:        px,
		Y:        py,
		Rotation: units.Round2(units.Degrees(ang)),
		Sweep:    units.Cross(x1, y1, x2, y2, x3, y3) <= 0,
		LargeArc: units.IsInsideTriangle(p0x, p0y, p1x, p1y, p2x, p2y, p3x, p3y) &&
			units.IsReflexAngle(p0x, p0y, p1x, p1y, p2x, p2y, p3x, p3y),
	}

	if math.IsNaN(cmd.RX) || math.IsNaN(cmd.RY) || math.IsInf(cmd.RX, 0) || math.IsInf(cmd.RY, 0) {
		c.logger.Debug("Skipping elliptical arc with unresolvable radii", zap.Int("index", p.Index))
		return nil, cur
	}

	cx, cy := units.Rotate(p0x, p0y, ang)
	c.tracer.Point(p0x, p0y, "P0")
	c.tracer.Point(p1x, p1y, "P1")
	c.tracer.Point(p2x, p2y, "P2")
	c.tracer.Point(p3x, p3y, "P3")
	c.tracer.Point(cx, cy, "X")
	c.tracer.Point(x3, y3, "CP")
	c.tracer.Segment(x1, y1, x2, y2, "")

	return []Command{cmd}, cur.lineTo(px, py)
}
