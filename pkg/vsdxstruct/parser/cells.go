package parser

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/style"
)

const sectionProperty = "Property"

// parentAttrs maps the stylesheet reference attributes of a StyleSheet or
// Shape element to the cascade category they feed.
var parentAttrs = map[string]style.Category{
	"LineStyle": style.CategoryLine,
	"FillStyle": style.CategoryFill,
	"TextStyle": style.CategoryText,
}

// Property is one row of a shape's data section.
type Property struct {
	Name  string
	Label string
	Value string
}

// parseCell reads a Cell element.
func parseCell(el *etree.Element) style.Cell {
	return style.Cell{
		Name:    el.SelectAttrValue("N", ""),
		Value:   el.SelectAttrValue("V", ""),
		Formula: el.SelectAttrValue("F", ""),
		Unit:    el.SelectAttrValue("U", ""),
	}
}

// parseParents records the LineStyle, FillStyle and TextStyle references of
// el on node.
func parseParents(el *etree.Element, node *style.Node) {
	for attr, cat := range parentAttrs {
		v := el.SelectAttrValue(attr, "")
		if v == "" {
			continue
		}
		if id, err := strconv.Atoi(v); err == nil {
			node.Parents[cat] = style.ID(id)
		}
	}
}

// parseCells copies the Cell and indexed Section children of el onto node.
// Geometry and Property sections are left to the caller.
func parseCells(el *etree.Element, node *style.Node) {
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "Cell":
			node.SetCell(parseCell(child))
		case "Section":
			name := child.SelectAttrValue("N", "")
			if name == sectionGeometry || name == sectionProperty {
				continue
			}
			parseSectionRows(child, node.Section(name))
		}
	}
}

// parseSectionRows stores every row of a section element. Rows without an IX
// attribute are indexed by position.
func parseSectionRows(el *etree.Element, sec *style.Section) {
	for i, row := range el.SelectElements("Row") {
		ix := atoi(row.SelectAttrValue("IX", ""), i)
		for _, c := range row.SelectElements("Cell") {
			sec.Set(ix, parseCell(c))
		}
	}
}

// parseProperties reads the named rows of a shape data section.
func parseProperties(el *etree.Element) []Property {
	var props []Property
	for _, row := range el.SelectElements("Row") {
		if row.SelectAttrValue("Del", "") == "1" {
			continue
		}
		p := Property{Name: row.SelectAttrValue("N", "")}
		for _, c := range row.SelectElements("Cell") {
			switch c.SelectAttrValue("N", "") {
			case "Label":
				p.Label = c.SelectAttrValue("V", "")
			case "Value":
				p.Value = c.SelectAttrValue("V", "")
			}
		}
		props = append(props, p)
	}
	return props
}

// mergeProperties overlays local rows onto inherited ones by name.
func mergeProperties(base, local []Property) []Property {
	out := make([]Property, len(base), len(base)+len(local))
	copy(out, base)
	for _, p := range local {
		replaced := false
		for i := range out {
			if out[i].Name == p.Name {
				if p.Label == "" {
					p.Label = out[i].Label
				}
				out[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, p)
		}
	}
	return out
}

// ParseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func ParseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
