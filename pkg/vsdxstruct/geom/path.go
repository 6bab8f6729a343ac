package geom

import (
	"strconv"
	"strings"
)

// Op is a path command name in the output vocabulary.
type Op string

// Output commands.
const (
	OpMove    Op = "move"
	OpLine    Op = "line"
	OpCurve   Op = "curve"
	OpArc     Op = "arc"
	OpEllipse Op = "ellipse"
	OpClose   Op = "close"
)

// Command is one normalized drawing command. All coordinates are percentages
// of the shape's bounding box.
type Command struct {
	Op Op
	// X, Y is the end point (move, line, arc, curve) or the top-left corner (ellipse).
	X, Y float64
	// X1, Y1, X2, Y2 are the cubic control points of a curve.
	X1, Y1, X2, Y2 float64
	// RX, RY and Rotation describe an arc.
	RX, RY, Rotation float64
	LargeArc, Sweep  bool
	// W, H are the ellipse extents.
	W, H float64
}

// Move returns a move command.
func Move(x, y float64) Command { return Command{Op: OpMove, X: x, Y: y} }

// Line returns a line command.
func Line(x, y float64) Command { return Command{Op: OpLine, X: x, Y: y} }

// Close returns a close command.
func Close() Command { return Command{Op: OpClose} }

// Terminal is the instruction that ends a sub-path.
type Terminal int

const (
	TerminalFillStroke Terminal = iota
	TerminalStroke
	TerminalFill
	TerminalNone
)

func (t Terminal) String() string {
	switch t {
	case TerminalStroke:
		return "stroke"
	case TerminalFill:
		return "fill"
	case TerminalNone:
		return "none"
	default:
		return "fillstroke"
	}
}

// SubPath is the output of one geometry section.
type SubPath struct {
	Commands []Command
	Terminal Terminal
}

// Path is the compiled geometry of one shape.
type Path struct {
	SubPaths []SubPath
}

// Empty reports whether the path draws nothing.
func (p Path) Empty() bool {
	return len(p.SubPaths) == 0
}

// String renders the stencil envelope, or "" for an empty path.
func (p Path) String() string {
	if p.Empty() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<shape strokewidth="inherit"><foreground>`)
	for _, sp := range p.SubPaths {
		sb.WriteString("<path>")
		for _, cmd := range sp.Commands {
			cmd.writeTo(&sb)
		}
		sb.WriteString("</path>")
		if sp.Terminal != TerminalNone {
			sb.WriteString("<" + sp.Terminal.String() + "/>")
		}
	}
	sb.WriteString("</foreground></shape>")
	return sb.String()
}

func (c Command) String() string {
	var sb strings.Builder
	c.writeTo(&sb)
	return sb.String()
}

func (c Command) writeTo(sb *strings.Builder) {
	sb.WriteString("<" + string(c.Op))
	switch c.Op {
	case OpMove, OpLine:
		attr(sb, "x", c.X)
		attr(sb, "y", c.Y)
	case OpCurve:
		attr(sb, "x1", c.X1)
		attr(sb, "y1", c.Y1)
		attr(sb, "x2", c.X2)
		attr(sb, "y2", c.Y2)
		attr(sb, "x3", c.X)
		attr(sb, "y3", c.Y)
	case OpArc:
		attr(sb, "rx", c.RX)
		attr(sb, "ry", c.RY)
		attr(sb, "x", c.X)
		attr(sb, "y", c.Y)
		attr(sb, "x-axis-rotation", c.Rotation)
		flag(sb, "large-arc-flag", c.LargeArc)
		flag(sb, "sweep-flag", c.Sweep)
	case OpEllipse:
		attr(sb, "x", c.X)
		attr(sb, "y", c.Y)
		attr(sb, "w", c.W)
		attr(sb, "h", c.H)
	}
	sb.WriteString("/>")
}

func attr(sb *strings.Builder, name string, v float64) {
	sb.WriteString(" " + name + `="` + formatNumber(v) + `"`)
}

func flag(sb *strings.Builder, name string, on bool) {
	v := "0"
	if on {
		v = "1"
	}
	sb.WriteString(" " + name + `="` + v + `"`)
}

func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
