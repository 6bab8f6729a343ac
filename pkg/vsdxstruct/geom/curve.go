package geom

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/units"
	"go.uber.org/zap"
)

var (
	nurbsSeparator = regexp.MustCompile(`\s*,\s*`)
	whitespace     = regexp.MustCompile(`\s`)
)

// nurbsTo supports the degree-3, two-control-point subset of NURBS rows: the
// packed E value must hold at least ten entries, of which 4-5 and 8-9 are the
// control points as fractions of the box.
func (c *Compiler) nurbsTo(p Primitive, box Box, cur Cursor) ([]Command, Cursor) {
	v, ok := c.params(p, "X", "Y")
	if !ok {
		return nil, cur
	}
	e, ok := p.Text("E", false)
	if !ok {
		return nil, cur
	}

	e = strings.ReplaceAll(e, "NURBS(", "")
	e = strings.ReplaceAll(e, ")", "")
	entries := nurbsSeparator.Split(strings.TrimSpace(e), -1)
	if len(entries) < 10 {
		return nil, cur
	}

	ctrl, err := parseFloats(entries[4], entries[5], entries[8], entries[9])
	if err != nil {
		c.logger.Debug("Skipping NURBS row with unparseable control points",
			zap.Int("index", p.Index), zap.Error(err))
		return nil, cur
	}

	x, y := point(v[0], v[1], box)
	x1, y1 := relPoint(ctrl[0], ctrl[1])
	x2, y2 := relPoint(ctrl[2], ctrl[3])

	c.tracer.Point(x, y, "")
	c.tracer.Segment(cur.X, cur.Y, x, y, "")

	cmd := Command{Op: OpCurve, X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y}
	return []Command{cmd}, cur.lineTo(x, y)
}

// polylineTo expands a POLYLINE(xType, yType, x1, y1, ...) formula into one
// line command per coordinate pair. A type of 0 means the coordinates are fractions
// of the box, 1 means drawing units.
//
// The path is closed when the row's (X, Y) equals the last move point
// exactly, compared after rounding.
func (c *Compiler) polylineTo(p Primitive, box Box, cur Cursor) ([]Command, Cursor) {
	v, ok := c.params(p, "X", "Y")
	if !ok {
		return nil, cur
	}
	formula, ok := p.Text("A", true)
	if !ok {
		return nil, cur
	}

	entries, err := polylineEntries(formula)
	if err != nil {
		c.logger.Debug("Skipping malformed polyline", zap.Int("index", p.Index), zap.Error(err))
		return nil, cur
	}

	xRel, yRel := entries[0] == 0, entries[1] == 0
	pairs := entries[2:]

	var cmds []Command
	for i := 0; i+1 < len(pairs); i += 2 {
		var x, y float64
		if xRel {
			x = units.Round2(pairs[i] * 100.0)
		} else {
			x = units.Round2(units.PercentX(units.ToPixels(pairs[i]), box.W))
		}
		if yRel {
			y = units.Round2(100.0 - pairs[i+1]*100.0)
		} else {
			y = units.Round2(units.PercentY(units.ToPixels(pairs[i+1]), box.H))
		}
		cmds = append(cmds, Line(x, y))
		cur = cur.lineTo(x, y)
	}

	// The row's own X/Y only decides closure; the last pair is the end point.
	x, y := point(v[0], v[1], box)
	if cur.MoveX == x && cur.MoveY == y {
		cmds = append(cmds, Close())
	}

	return cmds, cur
}

// polylineEntries parses the numbers of a POLYLINE formula. The result holds
// the two type markers followed by an even number of coordinates.
func polylineEntries(formula string) ([]float64, error) {
	s := strings.ToLower(whitespace.ReplaceAllString(formula, ""))
	s = strings.ReplaceAll(s, "polyline(", "")
	s = strings.ReplaceAll(s, ")", "")

	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts)%2 != 0 {
		return nil, errMalformedPolyline
	}
	return parseFloats(parts...)
}

// splineStart only tracks the cursor and the last knot: spline rows emit no
// drawing command.
func (c *Compiler) splineStart(p Primitive, box Box, cur Cursor) ([]Command, Cursor) {
	v, ok := c.params(p, "X", "Y", "A", "B", "C", "D")
	if !ok {
		return nil, cur
	}

	x, y := point(v[0], v[1], box)
	knot := units.Round2(v[4])
	degree := int(v[5])

	x0, y0 := cur.device(box)
	c.tracer.Point(x0, y0, "0, "+strconv.Itoa(degree))
	c.tracer.Point(x, y, strconv.FormatFloat(knot, 'f', -1, 64))
	c.tracer.Segment(x0, y0, x, y, "")

	cur = cur.lineTo(x, y)
	cur.Knot = v[4]
	return nil, cur
}

// splineKnot only tracks the cursor and the knot value.
func (c *Compiler) splineKnot(p Primitive, box Box, cur Cursor) ([]Command, Cursor) {
	v, ok := c.params(p, "X", "Y", "A")
	if !ok {
		return nil, cur
	}

	x, y := point(v[0], v[1], box)
	knot := units.Round2(v[2])

	c.tracer.Point(x, y, strconv.FormatFloat(knot, 'f', -1, 64))
	c.tracer.Segment(cur.X, cur.Y, x, y, "")

	cur = cur.lineTo(x, y)
	cur.Knot = v[2]
	return nil, cur
}

func parseFloats(values ...string) ([]float64, error) {
	out := make([]float64, len(values))
	for i, s := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
