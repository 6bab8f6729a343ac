// Package units provides the numeric helpers shared by the geometry compiler
// and the style resolver.
package units

import "math"

// ConversionFactor is the number of device pixels per drawing inch.
// Visio stores lengths in inches; shapes are rendered at 40 px per centimetre,
// so 1 inch = 40 * 2.54 = 101.6 px.
const ConversionFactor = 101.6

// ToPixels converts a drawing length (inches) to device pixels.
func ToPixels(inches float64) float64 {
	return inches * ConversionFactor
}

// Round2 rounds v to two decimal digits, half up, and never returns negative zero.
func Round2(v float64) float64 {
	r := math.Floor(v*100.0+0.5) / 100.0
	if r == 0 {
		return 0
	}
	return r
}

// PercentX expresses a device x coordinate as a percentage of width w.
func PercentX(px, w float64) float64 {
	return px * 100.0 / w
}

// PercentY expresses a device y coordinate as a percentage of height h with
// the axis inverted: the drawing origin is bottom-left, the output top-left.
func PercentY(py, h float64) float64 {
	return 100.0 - py*100.0/h
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Rotate turns the point (x, y) around the origin by theta radians.
func Rotate(x, y, theta float64) (float64, float64) {
	if theta == 0 {
		return x, y
	}
	r := math.Hypot(x, y)
	a := math.Atan2(y, x) + theta
	return r * math.Cos(a), r * math.Sin(a)
}

// Cross returns the z component of (b-a) x (c-a). Positive when a, b, c turn
// counter-clockwise in a y-up frame.
func Cross(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

// IsInsideTriangle reports whether (x, y) lies inside or on the triangle
// (ax, ay), (bx, by), (cx, cy). The point is inside when it is on the same
// side of every edge.
func IsInsideTriangle(x, y, ax, ay, bx, by, cx, cy float64) bool {
	d1 := Cross(x, y, ax, ay, bx, by)
	d2 := Cross(x, y, bx, by, cx, cy)
	d3 := Cross(x, y, cx, cy, ax, ay)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0

	return !(hasNeg && hasPos)
}

// IsReflexAngle reports whether the angle from (x1, y1) to (x2, y2) around the
// centre (x0, y0) that contains the control point (x3, y3) exceeds 180 degrees.
//
// Start and end angles are measured relative to the control point angle and
// normalized into [-180, 180]; the arc through the control point is reflex when
// the two lie on opposite sides of it and more than 180 degrees apart.
func IsReflexAngle(x0, y0, x1, y1, x2, y2, x3, y3 float64) bool {
	x1, y1 = x1-x0, y1-y0
	x2, y2 = x2-x0, y2-y0
	x3, y3 = x3-x0, y3-y0

	aStart := Degrees(math.Atan2(y1, x1))
	aEnd := Degrees(math.Atan2(y2, x2))
	aCP := Degrees(math.Atan2(y3, x3))

	aStart = NormalizeDegrees(math.Mod(aStart-aCP, 360))
	aEnd = NormalizeDegrees(math.Mod(aEnd-aCP, 360))

	if (aStart > 0 && aEnd < 0) || (aStart < 0 && aEnd > 0) {
		return math.Abs(aStart-aEnd) > 180
	}
	return false
}

// NormalizeDegrees folds an angle in (-360, 360) into [-180, 180].
func NormalizeDegrees(a float64) float64 {
	if a > 180 {
		return a - 360
	}
	if a < -180 {
		return a + 360
	}
	return a
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
