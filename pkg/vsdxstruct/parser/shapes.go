package parser

import (
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/geom"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/style"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/textfmt"
	"go.uber.org/zap"
)

// ShapeTypeMap maps the Type attribute of a shape to a type label.
var ShapeTypeMap = map[string]string{
	"Shape":   "Shape",
	"Group":   "Group",
	"Foreign": "Picture",
	"Guide":   "Guide",
}

// imageSubtypes maps ForeignType values other than Bitmap to image subtypes.
// Bitmaps use their lowercased CompressionType.
var imageSubtypes = map[string]string{
	"MetaFile":          "x-wmf",
	"Enhanced Metafile": "x-emf",
}

// Shape is a page or master shape with its master inheritance applied.
type Shape struct {
	ID       int
	UniqueID string
	Name     string
	NameU    string
	Type     string
	// MasterName is the name of the master the shape is an instance of.
	MasterName string
	// Node holds the shape's own cells, including inherited master cells.
	Node *style.Node
	// Geometry holds the compiler input, sections in IX order.
	Geometry []geom.Section
	Runs     []textfmt.Run
	Data     []Property
	Image    *Image
	Children []*Shape
	// Begin and End are the ids of the shapes glued to a connector's ends,
	// zero when unconnected.
	Begin int
	End   int

	geometry []*geometrySection
}

// Image is the picture of a foreign-data shape.
type Image struct {
	ContentType string
	Target      string
	Data        []byte
}

// newShape starts a shape as a copy of its master shape, if any.
func newShape(id int, base *Shape) *Shape {
	s := &Shape{ID: id}
	if base == nil {
		s.Node = style.NewNode(style.ID(id), "")
		return s
	}

	s.Type = base.Type
	s.MasterName = base.MasterName
	s.Node = cloneNode(base.Node, style.ID(id))
	for _, g := range base.geometry {
		s.geometry = append(s.geometry, g.clone())
	}
	s.Runs = base.Runs
	s.Data = base.Data
	s.Image = base.Image
	return s
}

func cloneNode(src *style.Node, id style.ID) *style.Node {
	n := style.NewNode(id, src.Name)
	for k, c := range src.Cells {
		n.Cells[k] = c
	}
	for name, sec := range src.Sections {
		dst := n.Section(name)
		for ix, row := range sec.Rows {
			for _, c := range row {
				dst.Set(ix, c)
			}
		}
	}
	for cat, p := range src.Parents {
		n.Parents[cat] = p
	}
	return n
}

// Text returns the shape's plain text.
func (s *Shape) Text() string {
	return plainText(s.Runs)
}

// Inches returns a numeric shape cell, reporting false when it is missing
// or not a number.
func (s *Shape) Inches(name string) (float64, bool) {
	c, ok := s.Node.Local(name)
	if !ok {
		return 0, false
	}
	return parseFloat(c.Value)
}

func (s *Shape) inches(name string) float64 {
	v, _ := s.Inches(name)
	return v
}

// Label returns a human-readable type label: the master name, the shape's
// universal name without its instance suffix, or its type.
func (s *Shape) Label() string {
	if s.MasterName != "" {
		return s.MasterName
	}
	if name := trimInstanceSuffix(s.NameU); name != "" {
		return name
	}
	if label, ok := ShapeTypeMap[s.Type]; ok {
		return label
	}
	return "Shape"
}

// OneDimensional reports whether the shape has begin and end points.
func (s *Shape) OneDimensional() bool {
	_, begin := s.Node.Local("BeginX")
	_, end := s.Node.Local("EndX")
	return begin && end
}

// IsConnector reports whether the shape is a connector or line.
func (s *Shape) IsConnector() bool {
	objType, _ := s.Node.Local("ObjType")
	return isConnectorShape(objType.Value, s.OneDimensional(), s.Label())
}

// Direction returns the compass heading from the begin point to the end
// point of a one-dimensional shape.
func (s *Shape) Direction() string {
	if !s.OneDimensional() {
		return ""
	}
	return computeDirection(s.inches("EndX")-s.inches("BeginX"), s.inches("EndY")-s.inches("BeginY"))
}

// Rotation returns the shape angle in degrees, false when the shape is not
// rotated.
func (s *Shape) Rotation() (float64, bool) {
	rad, ok := s.Inches("Angle")
	if !ok {
		return 0, false
	}
	deg := rad * 180 / math.Pi
	if math.Abs(deg) < 1e-6 {
		return 0, false
	}
	return deg, true
}

// Bounds returns the left and top offsets of the shape inside a container
// of the given height, and its width and height, all in inches. The drawing
// y axis points up; the returned top is measured down from the container
// top.
func (s *Shape) Bounds(containerHeight float64) (left, top, width, height float64) {
	width = s.inches("Width")
	height = s.inches("Height")
	left = s.inches("PinX") - s.inches("LocPinX")
	bottom := s.inches("PinY") - s.inches("LocPinY")
	top = containerHeight - bottom - height
	return left, top, width, height
}

// ShouldInclude reports whether the shape is extracted in mode.
func ShouldInclude(s *Shape, mode string) bool {
	if s.Type == "Guide" {
		return false
	}
	return shouldIncludeShape(s.Text(), s.Label(), s.IsConnector(), len(s.Geometry) > 0, mode)
}

// shapeContext carries what a shape needs from the part it is read from.
type shapeContext struct {
	reader *reader
	part   string
	rels   map[string]relationship
	master *master
}

func (c *shapeContext) parseShapes(el *etree.Element) []*Shape {
	if el == nil {
		return nil
	}
	var shapes []*Shape
	for _, child := range el.SelectElements("Shape") {
		shapes = append(shapes, c.parseShape(child))
	}
	return shapes
}

func (c *shapeContext) parseShape(el *etree.Element) *Shape {
	id := atoi(el.SelectAttrValue("ID", ""), 0)
	logger := c.reader.logger.With(zap.String("part", c.part), zap.Int("shape", id))

	m := c.master
	if v := el.SelectAttrValue("Master", ""); v != "" {
		var ok bool
		m, ok = c.reader.masters[atoi(v, -1)]
		if !ok {
			logger.Warn("Unknown master", zap.String("master", v))
		}
	}

	var base *Shape
	if m != nil {
		if v := el.SelectAttrValue("MasterShape", ""); v != "" {
			base = m.shapes[atoi(v, -1)]
		} else if el.SelectAttrValue("Master", "") != "" {
			base = m.top
		}
	}

	s := newShape(id, base)
	if base != nil && base == m.top {
		s.MasterName = m.name
	}
	s.Name = el.SelectAttrValue("Name", "")
	s.NameU = el.SelectAttrValue("NameU", s.Name)
	s.Node.Name = s.NameU
	if t := el.SelectAttrValue("Type", ""); t != "" {
		s.Type = t
	}
	if s.Type == "" {
		s.Type = "Shape"
	}
	if v := el.SelectAttrValue("UniqueID", ""); v != "" {
		if u, err := uuid.Parse(v); err == nil {
			s.UniqueID = u.String()
		} else {
			logger.Debug("Ignoring malformed unique id", zap.String("unique_id", v))
		}
	}
	parseParents(el, s.Node)

	geometryPosition := 0
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "Cell":
			s.Node.SetCell(parseCell(child))
		case "Section":
			switch child.SelectAttrValue("N", "") {
			case sectionGeometry:
				s.geometry = mergeGeometry(s.geometry, parseGeometry(child, geometryPosition))
				geometryPosition++
			case sectionProperty:
				s.Data = mergeProperties(s.Data, parseProperties(child))
			default:
				parseSectionRows(child, s.Node.Section(child.SelectAttrValue("N", "")))
			}
		case "Text":
			s.Runs = parseText(child)
		case "ForeignData":
			if img := c.image(child, logger); img != nil {
				s.Image = img
			}
		case "Shapes":
			sub := *c
			sub.master = m
			s.Children = sub.parseShapes(child)
		}
	}

	s.Geometry = compileInput(s.geometry)
	return s
}

// image resolves the picture of a ForeignData element through the part's
// relationships.
func (c *shapeContext) image(el *etree.Element, logger *zap.Logger) *Image {
	foreignType := el.SelectAttrValue("ForeignType", "")
	subtype, ok := imageSubtypes[foreignType]
	if foreignType == "Bitmap" {
		subtype, ok = strings.ToLower(el.SelectAttrValue("CompressionType", "")), true
	}
	if !ok {
		logger.Debug("Skipping unsupported foreign data", zap.String("foreign_type", foreignType))
		return nil
	}

	rel := el.SelectElement("Rel")
	if rel == nil {
		return nil
	}
	r, ok := c.rels[rel.SelectAttrValue("r:id", "")]
	if !ok || !strings.HasSuffix(r.Type, "image") {
		logger.Debug("Foreign data has no image relationship")
		return nil
	}

	target := path.Join(mediaDir, path.Base(r.Target))
	data, err := c.reader.archive.read(target)
	if err != nil {
		logger.Warn("Failed to read image", zap.String("target", target), zap.Error(err))
		return nil
	}
	return &Image{ContentType: "image/" + subtype, Target: target, Data: data}
}

// trimInstanceSuffix removes the ".<id>" Visio appends to the universal name
// of every copy of a shape.
func trimInstanceSuffix(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name
	}
	if _, err := strconv.Atoi(name[i+1:]); err != nil {
		return name
	}
	return name[:i]
}

// computeDirection computes the compass heading of a vector in drawing
// coordinates (y up).
func computeDirection(dx, dy float64) string {
	if dx == 0 && dy == 0 {
		return ""
	}

	angle := math.Atan2(dy, dx) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}

	switch {
	case angle >= 337.5 || angle < 22.5:
		return "E"
	case angle >= 22.5 && angle < 67.5:
		return "NE"
	case angle >= 67.5 && angle < 112.5:
		return "N"
	case angle >= 112.5 && angle < 157.5:
		return "NW"
	case angle >= 157.5 && angle < 202.5:
		return "W"
	case angle >= 202.5 && angle < 247.5:
		return "SW"
	case angle >= 247.5 && angle < 292.5:
		return "S"
	default:
		return "SE"
	}
}

// isConnectorShape checks if a shape is a connector or line. ObjType 2 marks
// a connector explicitly.
func isConnectorShape(objType string, oneD bool, typeLabel string) bool {
	if objType == "2" || oneD {
		return true
	}
	lower := strings.ToLower(typeLabel)
	for _, kw := range []string{"connector", "line"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// shouldIncludeShape determines if a shape should be included based on mode.
func shouldIncludeShape(text, typeLabel string, isConnector, hasGeometry bool, mode string) bool {
	if mode == "verbose" {
		return true
	}
	if text != "" {
		return true
	}
	if mode == "light" {
		return false
	}
	// standard mode: include drawn shapes, connectors and arrows
	if hasGeometry || isConnector {
		return true
	}
	return strings.Contains(typeLabel, "Arrow")
}
