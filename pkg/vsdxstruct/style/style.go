package style

import (
	"strconv"
	"strings"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/units"
	"go.uber.org/zap"
)

// Style is a node bound to a resolver. Its accessors return resolved,
// display-ready values.
type Style struct {
	r    *Resolver
	node *Node
}

// Style binds n to the resolver.
func (r *Resolver) Style(n *Node) Style {
	return Style{r: r, node: n}
}

// Value resolves a shape-level cell and returns its value, or def when the
// cascade has none.
func (s Style) Value(key, def string) string {
	c, ok := s.r.Resolve(s.node, key)
	if !ok {
		return def
	}
	return c.Value
}

// IndexedValue resolves a cell of row index in section and returns its value,
// or def.
func (s Style) IndexedValue(section string, index int, key, def string) string {
	c, ok := s.r.ResolveIndexed(s.node, section, index, key)
	if !ok {
		return def
	}
	return c.Value
}

// Number resolves a shape-level cell as a number. Point-unit values are
// converted to pixels; the result is rounded to two decimals.
func (s Style) Number(key string, def float64) float64 {
	c, ok := s.r.Resolve(s.node, key)
	return s.r.number(c, ok, def)
}

// ScreenNumber resolves a shape-level length and converts it to pixels
// regardless of its unit.
func (s Style) ScreenNumber(key string, def float64) float64 {
	c, ok := s.r.Resolve(s.node, key)
	return s.r.screenNumber(c, ok, def)
}

// Color resolves a color cell: literal "#RRGGBB" values are returned as is,
// anything else is looked up in the palette.
func (s Style) Color(key string) string {
	return s.r.color(s.Value(key, ""))
}

// HasLocal reports whether the node itself defines key.
func (s Style) HasLocal(key string) bool {
	_, ok := s.node.Local(key)
	return ok
}

// StrokeColor returns the line color, or "none" when the line pattern is off.
func (s Style) StrokeColor() string {
	if s.Value("LinePattern", "1") == "0" {
		return "none"
	}
	return s.Color("LineColor")
}

// FillColor returns the fill foreground color, or "none" when the fill
// pattern is off.
func (s Style) FillColor() string {
	if s.Value("FillPattern", "0") == "0" {
		return "none"
	}
	return s.Color("FillForegnd")
}

// TextBackgroundColor returns the text background color. Index 0 and 255 both
// mean a transparent background.
func (s Style) TextBackgroundColor() string {
	v := s.Value("TextBkgnd", "")
	if !strings.HasPrefix(v, "#") && (v == "0" || v == "255") {
		return "none"
	}
	return s.r.color(v)
}

// HasLineWeight reports whether the line weight is set on the node itself.
func (s Style) HasLineWeight() bool {
	return s.HasLocal("LineWeight")
}

// LineWeight returns the line weight in pixels.
func (s Style) LineWeight() float64 {
	return s.Number("LineWeight", 0)
}

// StrokeTransparency returns the line transparency, 0 (opaque) to 1.
func (s Style) StrokeTransparency() float64 {
	return s.Number("LineColorTrans", 0)
}

// FillTransparency returns the fill foreground transparency, 0 (opaque) to 1.
func (s Style) FillTransparency() float64 {
	return s.Number("FillForegndTrans", 0)
}

// StrokeOpacity returns the line opacity, 1 minus the transparency, and
// whether the line is translucent at all.
func (s Style) StrokeOpacity() (float64, bool) {
	return opacity(s.StrokeTransparency())
}

// FillOpacity returns the fill opacity and whether the fill is translucent.
func (s Style) FillOpacity() (float64, bool) {
	return opacity(s.FillTransparency())
}

func opacity(transparency float64) (float64, bool) {
	if transparency <= 0 {
		return 1, false
	}
	if transparency > 1 {
		transparency = 1
	}
	return units.Round2(1 - transparency), true
}

// Rounding returns the corner rounding radius.
func (s Style) Rounding() float64 {
	return s.Number("Rounding", 0)
}

// TextTopMargin returns the top text margin in pixels.
func (s Style) TextTopMargin() float64 { return s.ScreenNumber("TopMargin", 0) }

// TextBottomMargin returns the bottom text margin in pixels.
func (s Style) TextBottomMargin() float64 { return s.ScreenNumber("BottomMargin", 0) }

// TextLeftMargin returns the left text margin in pixels.
func (s Style) TextLeftMargin() float64 { return s.ScreenNumber("LeftMargin", 0) }

// TextRightMargin returns the right text margin in pixels.
func (s Style) TextRightMargin() float64 { return s.ScreenNumber("RightMargin", 0) }

// TextColor returns the color of character run index.
func (s Style) TextColor(index int) string {
	v := s.IndexedValue(SectionCharacter, index, "Color", "#000000")
	if c := s.r.color(v); c != "" {
		return c
	}
	return "#000000"
}

// TextStyle returns the packed style bits of character run index.
func (s Style) TextStyle(index int) int {
	v := s.IndexedValue(SectionCharacter, index, "Style", "")
	return s.r.integer(v, 0)
}

// TextFont returns the font of character run index.
func (s Style) TextFont(index int) string {
	return s.IndexedValue(SectionCharacter, index, "Font", "")
}

// TextSize returns the font size of character run index in pixels.
func (s Style) TextSize(index int) float64 {
	c, ok := s.r.ResolveIndexed(s.node, SectionCharacter, index, "Size")
	return s.r.number(c, ok, 0)
}

// TextPos returns the baseline position of character run index: 0 normal,
// 1 superscript, 2 subscript.
func (s Style) TextPos(index int) int {
	return s.r.integer(s.IndexedValue(SectionCharacter, index, "Pos", ""), 0)
}

// TextCase returns the case of character run index: 0 as typed, 1 all caps,
// 2 initial caps.
func (s Style) TextCase(index int) int {
	return s.r.integer(s.IndexedValue(SectionCharacter, index, "Case", ""), 0)
}

// TextStrike reports whether character run index is struck through.
func (s Style) TextStrike(index int) bool {
	return s.IndexedValue(SectionCharacter, index, "Strikethru", "") == "1"
}

// LetterSpace returns the letter spacing of character run index in pixels.
func (s Style) LetterSpace(index int) float64 {
	c, ok := s.r.ResolveIndexed(s.node, SectionCharacter, index, "Letterspace")
	return s.r.screenNumber(c, ok, 0)
}

// HorizontalAlign returns the CSS alignment of paragraph index.
func (s Style) HorizontalAlign(index int) string {
	switch s.IndexedValue(SectionParagraph, index, "HorzAlign", "") {
	case "0":
		return "left"
	case "2":
		return "right"
	case "3", "4":
		return "justify"
	default:
		return "center"
	}
}

// IndentFirst returns the first-line indent of paragraph index in pixels.
func (s Style) IndentFirst(index int) float64 {
	return s.paragraphLength(index, "IndFirst")
}

// IndentLeft returns the left indent of paragraph index in pixels.
func (s Style) IndentLeft(index int) float64 {
	return s.paragraphLength(index, "IndLeft")
}

// IndentRight returns the right indent of paragraph index in pixels.
func (s Style) IndentRight(index int) float64 {
	return s.paragraphLength(index, "IndRight")
}

// SpaceBefore returns the space above paragraph index in pixels.
func (s Style) SpaceBefore(index int) float64 {
	return s.paragraphLength(index, "SpBefore")
}

// SpaceAfter returns the space below paragraph index in pixels.
func (s Style) SpaceAfter(index int) float64 {
	return s.paragraphLength(index, "SpAfter")
}

// SpaceLine returns the raw line spacing of paragraph index. Negative values
// are percentages of the font size, positive values absolute lengths.
func (s Style) SpaceLine(index int) float64 {
	v := s.IndexedValue(SectionParagraph, index, "SpLine", "")
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		s.r.logger.Debug("Ignoring unparseable line spacing", zap.String("value", v), zap.Error(err))
		return 0
	}
	return f
}

// Flags returns the paragraph flags of paragraph index.
func (s Style) Flags(index int) string {
	return s.IndexedValue(SectionParagraph, index, "Flags", "0")
}

// Direction returns "rtl" when paragraph index is right-to-left, "ltr"
// otherwise.
func (s Style) Direction(index int) string {
	if s.Flags(index) == "1" {
		return "rtl"
	}
	return "ltr"
}

// Bullet returns the bullet style of paragraph index, "0" for none.
func (s Style) Bullet(index int) string {
	return s.IndexedValue(SectionParagraph, index, "Bullet", "0")
}

func (s Style) paragraphLength(index int, key string) float64 {
	c, ok := s.r.ResolveIndexed(s.node, SectionParagraph, index, key)
	return s.r.screenNumber(c, ok, 0)
}

// number applies the numeric policy: Themed reads as 0, point-unit values
// are scaled to pixels, everything is rounded to two decimals.
func (r *Resolver) number(c Cell, found bool, def float64) float64 {
	if !found {
		return def
	}
	if c.Value == ValueThemed {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
	if err != nil {
		r.logger.Debug("Ignoring unparseable numeric cell",
			zap.String("cell", c.Name), zap.String("value", c.Value), zap.Error(err))
		return def
	}
	if c.Unit == UnitPoint {
		v = units.ToPixels(v)
	}
	return units.Round2(v)
}

// screenNumber converts a length to pixels whatever its unit.
func (r *Resolver) screenNumber(c Cell, found bool, def float64) float64 {
	if !found {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
	if err != nil {
		r.logger.Debug("Ignoring unparseable length cell",
			zap.String("cell", c.Name), zap.String("value", c.Value), zap.Error(err))
		return def
	}
	return units.Round2(units.ToPixels(v))
}

func (r *Resolver) integer(v string, def int) int {
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		r.logger.Debug("Ignoring unparseable integer cell", zap.String("value", v), zap.Error(err))
		return def
	}
	return i
}

func (r *Resolver) color(v string) string {
	if strings.HasPrefix(v, "#") {
		return v
	}
	c, ok := r.palette.Color(v)
	if !ok {
		return ""
	}
	return c
}
