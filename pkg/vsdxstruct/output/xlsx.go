package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
	"github.com/xuri/excelize/v2"
)

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

// defaultSheet is the sheet excelize creates with every new file.
const defaultSheet = "Sheet1"

// ShapeColumns is the header row of every page sheet.
var ShapeColumns = []string{
	"id", "parent_id", "type", "text", "l", "t", "w", "h",
	"rotation", "fill", "stroke", "stroke_width",
	"begin_id", "end_id", "direction", "path",
}

// ToXLSX writes a workbook with one sheet per page and one row per shape.
// Group members follow their group, with parent_id set.
func ToXLSX(doc *models.DocumentData, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	// The first page takes over the workbook's default sheet.
	used := make(map[string]bool)
	for i, page := range doc.Pages {
		sheet := sheetName(page.Name, i, used)
		if i == 0 {
			if sheet != defaultSheet {
				if err := f.SetSheetName(defaultSheet, sheet); err != nil {
					return fmt.Errorf("renaming sheet %q: %w", sheet, err)
				}
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %q: %w", sheet, err)
		}
		if err := writePage(f, sheet, page, header); err != nil {
			return fmt.Errorf("writing sheet %q: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)

	_, err = f.WriteTo(w)
	return err
}

func writePage(f *excelize.File, sheet string, page models.PageData, header int) error {
	row := 1
	if err := f.SetSheetRow(sheet, "A1", &ShapeColumns); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
		return err
	}

	var walk func(shapes []models.Shape, parent *int) error
	walk = func(shapes []models.Shape, parent *int) error {
		for _, s := range shapes {
			row++
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := shapeRow(s, parent)
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return err
			}
			id := s.ID
			if err := walk(s.Children, &id); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(page.Shapes, nil)
}

func shapeRow(s models.Shape, parent *int) []interface{} {
	return []interface{}{
		s.ID, intOrEmpty(parent), s.Type, s.Text, s.L, s.T, intOrEmpty(s.W), intOrEmpty(s.H),
		floatOrEmpty(s.Rotation), s.Fill, s.Stroke, floatOrEmpty(s.StrokeWidth),
		intOrEmpty(s.BeginID), intOrEmpty(s.EndID), s.Direction, s.Path,
	}
}

func intOrEmpty(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func floatOrEmpty(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

// sheetName derives a unique, valid sheet name from a page name.
func sheetName(name string, index int, used map[string]bool) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "Page " + strconv.Itoa(index+1)
	}
	name = truncate(name, maxSheetName)

	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := " (" + strconv.Itoa(n) + ")"
		candidate = truncate(name, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
