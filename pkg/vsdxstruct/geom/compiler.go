package geom

import (
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/units"
	"go.uber.org/zap"
)

// Compiler turns geometry sections into paths. A Compiler holds no per-shape
// state and may be shared between goroutines.
type Compiler struct {
	logger *zap.Logger
	tracer Tracer
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used for skipped primitives.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer attaches a trace collector.
func WithTracer(t Tracer) Option {
	return func(c *Compiler) {
		if t != nil {
			c.tracer = t
		}
	}
}

// NewCompiler creates a Compiler.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		logger: zap.NewNop(),
		tracer: nopTracer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile folds every primitive of every section, in document order, over the
// cursor. Sections flagged NoShow still advance the cursor but contribute no
// sub-path. The returned cursor is the pen state after the last primitive.
func (c *Compiler) Compile(sections []Section, box Box, cur Cursor) (Path, Cursor, error) {
	if !box.Valid() {
		return Path{}, cur, ErrInvalidBounds
	}

	var path Path
	for _, sect := range sections {
		var cmds []Command
		for _, p := range sect.Primitives {
			var out []Command
			out, cur = c.Step(p, box, cur)
			cmds = append(cmds, out...)
		}

		if sect.NoShow || len(cmds) == 0 {
			continue
		}
		path.SubPaths = append(path.SubPaths, SubPath{
			Commands: cmds,
			Terminal: sect.Terminal(),
		})
	}

	return path, cur, nil
}

// Step compiles one primitive against the cursor and returns the emitted
// commands with the advanced cursor. A primitive that cannot be compiled
// returns no commands and the cursor unchanged.
func (c *Compiler) Step(p Primitive, box Box, cur Cursor) ([]Command, Cursor) {
	switch p.Kind {
	case KindMoveTo:
		return c.moveTo(p, box, cur)
	case KindRelMoveTo:
		return c.relMoveTo(p, cur)
	case KindLineTo:
		return c.lineTo(p, box, cur)
	case KindRelLineTo:
		return c.relLineTo(p, cur)
	case KindArcTo:
		return c.arcTo(p, box, cur)
	case KindEllipse:
		return c.ellipse(p, box, cur)
	case KindEllipticalArcTo:
		return c.ellipticalArcTo(p, box, cur)
	case KindNURBSTo:
		return c.nurbsTo(p, box, cur)
	case KindPolylineTo:
		return c.polylineTo(p, box, cur)
	case KindSplineStart:
		return c.splineStart(p, box, cur)
	case KindSplineKnot:
		return c.splineKnot(p, box, cur)
	case KindInfiniteLine:
		return nil, cur
	default:
		c.logger.Warn("Skipping unsupported geometry primitive",
			zap.String("kind", string(p.Kind)), zap.Int("index", p.Index))
		return nil, cur
	}
}

// params parses the named parameters, logging and reporting false when one is
// missing or unparseable.
func (c *Compiler) params(p Primitive, names ...string) ([]float64, bool) {
	v, err := p.Floats(names...)
	if err != nil {
		c.logger.Debug("Skipping incomplete geometry primitive",
			zap.String("kind", string(p.Kind)), zap.Int("index", p.Index), zap.Error(err))
		return nil, false
	}
	return v, true
}

// point converts a drawing coordinate (inches, bottom-left origin) to a rounded
// percentage of the box (top-left origin).
func point(x, y float64, box Box) (float64, float64) {
	return units.Round2(units.PercentX(units.ToPixels(x), box.W)),
		units.Round2(units.PercentY(units.ToPixels(y), box.H))
}

// relPoint converts a coordinate expressed as a fraction of the box.
func relPoint(x, y float64) (float64, float64) {
	return units.Round2(x * 100.0), units.Round2(100.0 - y*100.0)
}

func (c *Compiler) moveTo(p Primitive, box Box, cur Cursor) ([]Command, Cursor) {
	v, ok := c.params(p, "X", "Y")
	if !ok {
		return nil, cur
	}
	x, y := point(v[0], v[1], box)
	return []Command{Move(x, y)}, cur.moveTo(x, y)
}

func (c *Compiler) relMoveTo(p Primitive, cur Cursor) ([]Command, Cursor) {
	v, ok := c.params(p, "X", "Y")
	if !ok {
		return nil, cur
	}
	x, y := relPoint(v[0], v[1])
	return []Command{Move(x, y)}, cur.moveTo(x, y)
}

func (c *Compiler) lineTo(p Primitive, box Box, cur Cursor) ([]Command, Cursor) {
	v, ok := c.params(p, "X", "Y")
	if !ok {
		return nil, cur
	}
	x, y := point(v[0], v[1], box)
	return []Command{Line(x, y)}, cur.lineTo(x, y)
}

func (c *Compiler) relLineTo(p Primitive, cur Cursor) ([]Command, Cursor) {
	v, ok := c.params(p, "X", "Y")
	if !ok {
		return nil, cur
	}
	x, y := relPoint(v[0], v[1])
	return []Command{Line(x, y)}, cur.lineTo(x, y)
}
