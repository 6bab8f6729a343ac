// Package geom compiles geometry-section primitives into normalized path
// descriptions.
//
// Coordinates arrive in drawing inches with a bottom-left origin. They leave as
// percentages (0-100) of the shape's width and height with a top-left origin,
// rounded to two decimals.
package geom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a geometry row type.
type Kind string

// Geometry row types understood by the compiler.
const (
	KindMoveTo          Kind = "MoveTo"
	KindRelMoveTo       Kind = "RelMoveTo"
	KindLineTo          Kind = "LineTo"
	KindRelLineTo       Kind = "RelLineTo"
	KindArcTo           Kind = "ArcTo"
	KindEllipse         Kind = "Ellipse"
	KindEllipticalArcTo Kind = "EllipticalArcTo"
	KindSplineStart     Kind = "SplineStart"
	KindSplineKnot      Kind = "SplineKnot"
	KindPolylineTo      Kind = "PolylineTo"
	KindNURBSTo         Kind = "NURBSTo"
	KindInfiniteLine    Kind = "InfiniteLine"
)

// ErrMissingParam indicates a primitive lacks a required named parameter.
var ErrMissingParam = errors.New("missing parameter")

var errMalformedPolyline = errors.New("malformed polyline formula")

// Param is one named cell of a geometry row.
type Param struct {
	// Value is the cell's V attribute.
	Value string
	// Formula is the cell's F attribute, if any.
	Formula string
}

// Primitive is one geometry row: a drawing instruction with named parameters.
type Primitive struct {
	// Kind is the row type (the T attribute of the row).
	Kind Kind
	// Index is the row's IX attribute.
	Index int
	// Params maps cell names (X, Y, A, B, C, D, E) to their values.
	Params map[string]Param
}

// NewPrimitive builds a primitive from name/value pairs.
func NewPrimitive(kind Kind, values map[string]string) Primitive {
	params := make(map[string]Param, len(values))
	for k, v := range values {
		params[k] = Param{Value: v}
	}
	return Primitive{Kind: kind, Params: params}
}

// Float parses the named parameter as a float64.
func (p Primitive) Float(name string) (float64, error) {
	param, ok := p.Params[name]
	if !ok || param.Value == "" {
		return 0, fmt.Errorf("%s.%s: %w", p.Kind, name, ErrMissingParam)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(param.Value), 64)
	if err != nil {
		return 0, fmt.Errorf("%s.%s: %w", p.Kind, name, err)
	}
	return v, nil
}

// Floats parses every named parameter, stopping at the first failure.
func (p Primitive) Floats(names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := p.Float(name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Text returns the named parameter's value, or its formula when preferFormula
// is set and a formula exists.
func (p Primitive) Text(name string, preferFormula bool) (string, bool) {
	param, ok := p.Params[name]
	if !ok {
		return "", false
	}
	if preferFormula && param.Formula != "" {
		return param.Formula, true
	}
	if param.Value == "" {
		return "", false
	}
	return param.Value, true
}

// Section is one Geometry section: primitives in document order plus the
// section-wide flags.
type Section struct {
	Primitives []Primitive
	NoFill     bool
	NoLine     bool
	NoShow     bool
	NoSnap     bool
}

// Terminal returns the drawing instruction that ends this section's sub-path.
func (s Section) Terminal() Terminal {
	switch {
	case s.NoFill && s.NoLine:
		return TerminalNone
	case s.NoFill:
		return TerminalStroke
	case s.NoLine:
		return TerminalFill
	default:
		return TerminalFillStroke
	}
}

// SetFlag applies a section flag cell (NoFill, NoLine, NoShow, NoSnap).
// It reports whether name was a flag.
func (s *Section) SetFlag(name, value string) bool {
	on := value == "1"
	switch name {
	case "NoFill":
		s.NoFill = on
	case "NoLine":
		s.NoLine = on
	case "NoShow":
		s.NoShow = on
	case "NoSnap":
		s.NoSnap = on
	default:
		return false
	}
	return true
}
