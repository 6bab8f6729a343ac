package vsdxstruct

import (
	"archive/zip"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/geom"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/parser"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/style"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/textfmt"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/units"
	"go.uber.org/zap"
)

// Extract extracts structured data from a Visio (.vsdx) file.
func Extract(ctx context.Context, path string, opts Options) (*models.DocumentData, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return nil, err
	}

	logger := opts.logger()
	pkg, err := parser.ReadPackage(path, logger)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) || errors.Is(err, parser.ErrMissingPart) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
		return nil, err
	}

	doc, err := ExtractPackage(ctx, pkg, opts)
	if err != nil {
		return nil, err
	}
	doc.FileName = filepath.Base(path)
	return doc, nil
}

// ExtractPackage converts an already parsed package.
func ExtractPackage(ctx context.Context, pkg *parser.Package, opts Options) (*models.DocumentData, error) {
	logger := opts.logger()
	e := &extractor{
		opts:     opts,
		logger:   logger,
		resolver: style.NewResolver(pkg.Styles, style.WithPalette(pkg.Palette), style.WithLogger(logger)),
		compiler: geom.NewCompiler(geom.WithLogger(logger)),
	}

	doc := &models.DocumentData{Pages: make([]models.PageData, 0, len(pkg.Pages))}
	for _, page := range pkg.Pages {
		data, err := e.page(ctx, page)
		if err != nil {
			return nil, err
		}
		doc.Pages = append(doc.Pages, data)
	}
	return doc, nil
}

type extractor struct {
	opts     Options
	logger   *zap.Logger
	resolver *style.Resolver
	compiler *geom.Compiler
}

// page compiles the paths of every included shape of a page concurrently,
// then assembles the shape tree.
func (e *extractor) page(ctx context.Context, page *parser.Page) (models.PageData, error) {
	included := make(map[*parser.Shape]bool)
	var jobs []geom.Job
	var owners []*parser.Shape

	var collect func(shapes []*parser.Shape) bool
	collect = func(shapes []*parser.Shape) bool {
		kept := false
		for _, s := range shapes {
			keep := collect(s.Children) || parser.ShouldInclude(s, string(e.opts.Mode))
			if !keep {
				continue
			}
			included[s] = true
			kept = true
			if e.opts.Mode != ModeLight && len(s.Geometry) > 0 {
				_, _, w, h := s.Bounds(0)
				jobs = append(jobs, geom.Job{
					Sections: s.Geometry,
					Box:      geom.Box{W: units.ToPixels(w), H: units.ToPixels(h)},
					Cursor:   geom.NewCursor(),
				})
				owners = append(owners, s)
			}
		}
		return kept
	}
	collect(page.Shapes)

	results, err := e.compiler.CompileAll(ctx, jobs, e.opts.workers())
	if err != nil {
		return models.PageData{}, NewExtractionError(page.Name, "geometry", err)
	}
	paths := make(map[*parser.Shape]string, len(results))
	for i, res := range results {
		if res.Err != nil {
			e.logger.Debug("Emitting shape without path",
				zap.Int("shape", owners[i].ID),
				zap.Error(NewExtractionError(page.Name, "geometry", res.Err)))
			continue
		}
		if !res.Path.Empty() {
			paths[owners[i]] = res.Path.String()
		}
	}

	return models.PageData{
		ID:         page.ID,
		Name:       page.Name,
		Background: page.Background,
		W:          parser.InchesToPixels(page.Width),
		H:          parser.InchesToPixels(page.Height),
		Shapes:     e.shapes(page.Shapes, page.Height, included, paths),
	}, nil
}

func (e *extractor) shapes(shapes []*parser.Shape, containerHeight float64, included map[*parser.Shape]bool, paths map[*parser.Shape]string) []models.Shape {
	var out []models.Shape
	for _, s := range shapes {
		if !included[s] {
			continue
		}
		m := e.shape(s, containerHeight)
		m.Path = paths[s]
		_, _, _, h := s.Bounds(0)
		m.Children = e.shapes(s.Children, h, included, paths)
		out = append(out, m)
	}
	return out
}

func (e *extractor) shape(s *parser.Shape, containerHeight float64) models.Shape {
	left, top, width, height := s.Bounds(containerHeight)
	m := models.Shape{
		ID:       s.ID,
		UniqueID: s.UniqueID,
		Text:     s.Text(),
		L:        parser.InchesToPixels(left),
		T:        parser.InchesToPixels(top),
		Type:     s.Label(),
	}

	if rot, ok := s.Rotation(); ok {
		m.Rotation = &rot
	}

	if e.opts.Mode == ModeVerbose {
		w := parser.InchesToPixels(width)
		h := parser.InchesToPixels(height)
		m.W = &w
		m.H = &h
	}

	st := e.resolver.Style(s.Node)
	if e.opts.Mode != ModeLight {
		m.Fill = st.FillColor()
		m.Stroke = st.StrokeColor()
		if v, ok := st.FillOpacity(); ok {
			m.FillOpacity = &v
		}
		if v, ok := st.StrokeOpacity(); ok {
			m.StrokeOpacity = &v
		}
		if st.HasLineWeight() {
			weight := st.LineWeight()
			m.StrokeWidth = &weight
		}
	}

	if s.IsConnector() {
		m.Direction = s.Direction()
		m.BeginArrowStyle = arrowStyle(st, "BeginArrow")
		m.EndArrowStyle = arrowStyle(st, "EndArrow")
		if s.Begin != 0 {
			begin := s.Begin
			m.BeginID = &begin
		}
		if s.End != 0 {
			end := s.End
			m.EndID = &end
		}
	}

	if e.opts.ShouldIncludeMarkup() && len(s.Runs) > 0 {
		m.Markup = textfmt.Format(st, s.Runs)
	}

	if e.opts.ShouldIncludeData() {
		for _, p := range s.Data {
			m.Data = append(m.Data, models.Property{Name: p.Name, Label: p.Label, Value: parser.ParseValue(p.Value)})
		}
	}

	if s.Image != nil {
		m.Image = &models.Image{
			ContentType: s.Image.ContentType,
			Target:      s.Image.Target,
			Size:        len(s.Image.Data),
		}
		if e.opts.Mode == ModeVerbose {
			m.Image.Data = base64.StdEncoding.EncodeToString(s.Image.Data)
		}
	}

	return m
}

// arrowStyle returns the arrowhead number of a line end, nil when the end
// has no arrowhead.
func arrowStyle(st style.Style, key string) *int {
	v, err := strconv.Atoi(st.Value(key, "0"))
	if err != nil || v == 0 {
		return nil
	}
	return &v
}
