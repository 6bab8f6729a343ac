package parser

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/beevik/etree"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/style"
	"go.uber.org/zap"
)

// Package part locations.
const (
	documentPart = "visio/document.xml"
	pagesPart    = "visio/pages/pages.xml"
	mastersPart  = "visio/masters/masters.xml"
	mediaDir     = "visio/media"
)

// ErrMissingPart indicates a required part is absent from the package.
var ErrMissingPart = errors.New("missing package part")

// Package is the parsed content of a drawing.
type Package struct {
	// Palette is the default palette overridden by the document's colors.
	Palette style.ColorTable
	// Styles holds the document stylesheets; id 0 is the theme root.
	Styles *style.Graph
	// Pages in document order.
	Pages []*Page
}

// Page is one drawing page.
type Page struct {
	ID         int
	Name       string
	NameU      string
	Background bool
	// Width and Height are in inches.
	Width  float64
	Height float64
	Shapes []*Shape
}

// ReadPackage opens the .vsdx file at path and parses it.
func ReadPackage(path string, logger *zap.Logger) (*Package, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return Read(&r.Reader, logger)
}

// Read parses an opened .vsdx archive.
func Read(zr *zip.Reader, logger *zap.Logger) (*Package, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rd := &reader{
		archive: newArchive(zr),
		logger:  logger,
		masters: make(map[int]*master),
	}
	return rd.read()
}

type reader struct {
	archive *archive
	logger  *zap.Logger
	masters map[int]*master
}

func (rd *reader) read() (*Package, error) {
	doc, err := rd.archive.readXML(documentPart)
	if err != nil {
		return nil, err
	}

	pkg := &Package{
		Palette: style.DefaultPalette.With(parseColors(doc)),
		Styles:  rd.parseStyleSheets(doc),
	}

	if err := rd.parseMasters(); err != nil {
		return nil, err
	}

	pages, err := rd.archive.readXML(pagesPart)
	if err != nil {
		return nil, err
	}
	rels, err := rd.archive.rels(pagesPart)
	if err != nil {
		return nil, err
	}
	for _, el := range pages.SelectElements("Page") {
		page, err := rd.parsePage(el, rels)
		if err != nil {
			return nil, err
		}
		pkg.Pages = append(pkg.Pages, page)
	}
	return pkg, nil
}

// parseColors reads the document color table.
func parseColors(doc *etree.Element) map[int]string {
	colors := make(map[int]string)
	table := doc.SelectElement("Colors")
	if table == nil {
		return colors
	}
	for _, entry := range table.SelectElements("ColorEntry") {
		ix := atoi(entry.SelectAttrValue("IX", ""), -1)
		rgb := entry.SelectAttrValue("RGB", "")
		if ix < 0 || rgb == "" {
			continue
		}
		colors[ix] = rgb
	}
	return colors
}

func (rd *reader) parseStyleSheets(doc *etree.Element) *style.Graph {
	g := style.NewGraph()
	sheets := doc.SelectElement("StyleSheets")
	if sheets == nil {
		return g
	}
	for _, el := range sheets.SelectElements("StyleSheet") {
		id := atoi(el.SelectAttrValue("ID", ""), -1)
		if id < 0 {
			rd.logger.Warn("Skipping stylesheet without id")
			continue
		}
		name := el.SelectAttrValue("NameU", el.SelectAttrValue("Name", ""))
		node := style.NewNode(style.ID(id), name)
		parseParents(el, node)
		parseCells(el, node)
		if err := g.Add(node); err != nil {
			rd.logger.Warn("Skipping stylesheet", zap.Error(err))
		}
	}
	return g
}

// master is a reusable shape template. Page shapes refer to it by id and
// to its sub-shapes by MasterShape id.
type master struct {
	id     int
	name   string
	top    *Shape
	shapes map[int]*Shape
}

func (rd *reader) parseMasters() error {
	masters, err := rd.archive.readXML(mastersPart)
	if errors.Is(err, ErrMissingPart) {
		return nil
	}
	if err != nil {
		return err
	}
	rels, err := rd.archive.rels(mastersPart)
	if err != nil {
		return err
	}

	for _, el := range masters.SelectElements("Master") {
		m := &master{
			id:     atoi(el.SelectAttrValue("ID", ""), -1),
			name:   el.SelectAttrValue("NameU", el.SelectAttrValue("Name", "")),
			shapes: make(map[int]*Shape),
		}
		part, ok := rd.relTarget(el, rels, path.Dir(mastersPart))
		if !ok {
			rd.logger.Warn("Skipping master without contents", zap.Int("master", m.id))
			continue
		}
		contents, err := rd.archive.readXML(part)
		if err != nil {
			return err
		}
		partRels, err := rd.archive.rels(part)
		if err != nil {
			return err
		}

		ctx := &shapeContext{reader: rd, part: part, rels: partRels}
		for _, s := range ctx.parseShapes(contents.SelectElement("Shapes")) {
			if m.top == nil {
				m.top = s
			}
			m.index(s)
		}
		rd.masters[m.id] = m
	}
	return nil
}

func (m *master) index(s *Shape) {
	m.shapes[s.ID] = s
	for _, c := range s.Children {
		m.index(c)
	}
}

func (rd *reader) parsePage(el *etree.Element, rels map[string]relationship) (*Page, error) {
	page := &Page{
		ID:         atoi(el.SelectAttrValue("ID", ""), 0),
		Name:       el.SelectAttrValue("Name", ""),
		NameU:      el.SelectAttrValue("NameU", ""),
		Background: el.SelectAttrValue("Background", "") == "1",
	}
	if sheet := el.SelectElement("PageSheet"); sheet != nil {
		for _, c := range sheet.SelectElements("Cell") {
			switch c.SelectAttrValue("N", "") {
			case "PageWidth":
				page.Width, _ = parseFloat(c.SelectAttrValue("V", ""))
			case "PageHeight":
				page.Height, _ = parseFloat(c.SelectAttrValue("V", ""))
			}
		}
	}

	part, ok := rd.relTarget(el, rels, path.Dir(pagesPart))
	if !ok {
		return nil, fmt.Errorf("page %q contents: %w", page.Name, ErrMissingPart)
	}
	contents, err := rd.archive.readXML(part)
	if err != nil {
		return nil, err
	}
	partRels, err := rd.archive.rels(part)
	if err != nil {
		return nil, err
	}

	ctx := &shapeContext{reader: rd, part: part, rels: partRels}
	page.Shapes = ctx.parseShapes(contents.SelectElement("Shapes"))
	applyConnects(page.Shapes, contents.SelectElement("Connects"))
	return page, nil
}

// relTarget follows the Rel child of el to the part it names.
func (rd *reader) relTarget(el *etree.Element, rels map[string]relationship, baseDir string) (string, bool) {
	rel := el.SelectElement("Rel")
	if rel == nil {
		return "", false
	}
	r, ok := rels[rel.SelectAttrValue("r:id", "")]
	if !ok {
		return "", false
	}
	return resolveRelativePath(r.Target, baseDir), true
}

// applyConnects records the glued shape of each connector end.
func applyConnects(shapes []*Shape, connects *etree.Element) {
	if connects == nil {
		return
	}
	byID := make(map[int]*Shape)
	var index func([]*Shape)
	index = func(list []*Shape) {
		for _, s := range list {
			byID[s.ID] = s
			index(s.Children)
		}
	}
	index(shapes)

	for _, c := range connects.SelectElements("Connect") {
		from, ok := byID[atoi(c.SelectAttrValue("FromSheet", ""), -1)]
		if !ok {
			continue
		}
		to := atoi(c.SelectAttrValue("ToSheet", ""), 0)
		switch c.SelectAttrValue("FromCell", "") {
		case "BeginX":
			from.Begin = to
		case "EndX":
			from.End = to
		}
	}
}

// relationship is one entry of a .rels part.
type relationship struct {
	ID     string
	Type   string
	Target string
}

// archive indexes the files of a zip by name.
type archive struct {
	files map[string]*zip.File
}

func newArchive(zr *zip.Reader) *archive {
	a := &archive{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		a.files[f.Name] = f
	}
	return a
}

func (a *archive) read(name string) ([]byte, error) {
	f, ok := a.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingPart)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// readXML returns the root element of an XML part.
func (a *archive) readXML(name string) (*etree.Element, error) {
	data, err := a.read(name)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%s has no root element: %w", name, ErrMissingPart)
	}
	return root, nil
}

// rels reads the relationships of part. A part without a .rels file has no
// relationships.
func (a *archive) rels(part string) (map[string]relationship, error) {
	result := make(map[string]relationship)
	root, err := a.readXML(relsPath(part))
	if errors.Is(err, ErrMissingPart) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	for _, el := range root.SelectElements("Relationship") {
		r := relationship{
			ID:     el.SelectAttrValue("Id", ""),
			Type:   el.SelectAttrValue("Type", ""),
			Target: el.SelectAttrValue("Target", ""),
		}
		if r.ID != "" {
			result[r.ID] = r
		}
	}
	return result, nil
}

// relsPath returns the relationships part of part:
// visio/pages/page1.xml -> visio/pages/_rels/page1.xml.rels.
func relsPath(part string) string {
	return path.Dir(part) + "/_rels/" + path.Base(part) + ".rels"
}

// resolveRelativePath resolves a relationship target against the directory
// of its source part.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(baseDir, target)
}
