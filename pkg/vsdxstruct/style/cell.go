// Package style resolves shape style cells through the stylesheet cascade.
//
// A cell is looked up on the shape itself first. A local cell whose formula is
// Inh and whose value is Themed defers to the parent stylesheet for the cell's
// category (fill, line or text). A local THEMEVAL() cell defers to the theme
// root, stylesheet 0, which also terminates every parent chain.
package style

// Sentinel cell markers.
const (
	ValueThemed     = "Themed"
	FormulaInherit  = "Inh"
	FormulaThemeVal = "THEMEVAL()"
	UnitPoint       = "PT"
)

// Cell is one ShapeSheet cell.
type Cell struct {
	Name    string
	Value   string
	Formula string
	Unit    string
}

// Inherits reports whether the cell only defers to its parent stylesheet.
func (c Cell) Inherits() bool {
	return c.Formula == FormulaInherit && c.Value == ValueThemed
}

// ThemeDeferred reports whether the cell takes its value from the theme root.
func (c Cell) ThemeDeferred() bool {
	return c.Formula == FormulaThemeVal && c.Value == ValueThemed
}

// Row is one indexed row of a section, keyed by cell name.
type Row map[string]Cell

// Section is a named group of indexed rows, such as Character or Paragraph.
type Section struct {
	Name string
	Rows map[int]Row
}

// NewSection creates an empty section.
func NewSection(name string) *Section {
	return &Section{Name: name, Rows: make(map[int]Row)}
}

// Set stores a cell in row index.
func (s *Section) Set(index int, c Cell) {
	row, ok := s.Rows[index]
	if !ok {
		row = make(Row)
		s.Rows[index] = row
	}
	row[c.Name] = c
}

// Cell returns the named cell of row index.
func (s *Section) Cell(index int, name string) (Cell, bool) {
	if s == nil {
		return Cell{}, false
	}
	c, ok := s.Rows[index][name]
	return c, ok
}
