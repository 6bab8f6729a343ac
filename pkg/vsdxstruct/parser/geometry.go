package parser

import (
	"sort"

	"github.com/beevik/etree"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/geom"
)

const sectionGeometry = "Geometry"

// geometryRow is one raw Geometry row. An empty kind keeps the kind of the
// inherited row it overrides.
type geometryRow struct {
	kind    geom.Kind
	deleted bool
	params  map[string]geom.Param
}

// geometrySection is a Geometry section before master inheritance is applied.
type geometrySection struct {
	index   int
	deleted bool
	flags   map[string]string
	rows    map[int]*geometryRow
}

func parseGeometry(el *etree.Element, position int) *geometrySection {
	g := &geometrySection{
		index:   atoi(el.SelectAttrValue("IX", ""), position),
		deleted: el.SelectAttrValue("Del", "") == "1",
		flags:   make(map[string]string),
		rows:    make(map[int]*geometryRow),
	}
	for _, c := range el.SelectElements("Cell") {
		g.flags[c.SelectAttrValue("N", "")] = c.SelectAttrValue("V", "")
	}
	for i, row := range el.SelectElements("Row") {
		r := &geometryRow{
			kind:    geom.Kind(row.SelectAttrValue("T", "")),
			deleted: row.SelectAttrValue("Del", "") == "1",
			params:  make(map[string]geom.Param),
		}
		for _, c := range row.SelectElements("Cell") {
			r.params[c.SelectAttrValue("N", "")] = geom.Param{
				Value:   c.SelectAttrValue("V", ""),
				Formula: c.SelectAttrValue("F", ""),
			}
		}
		g.rows[atoi(row.SelectAttrValue("IX", ""), i+1)] = r
	}
	return g
}

func (g *geometrySection) clone() *geometrySection {
	c := &geometrySection{
		index: g.index,
		flags: make(map[string]string, len(g.flags)),
		rows:  make(map[int]*geometryRow, len(g.rows)),
	}
	for k, v := range g.flags {
		c.flags[k] = v
	}
	for ix, r := range g.rows {
		if r.deleted {
			continue
		}
		params := make(map[string]geom.Param, len(r.params))
		for k, v := range r.params {
			params[k] = v
		}
		c.rows[ix] = &geometryRow{kind: r.kind, params: params}
	}
	return c
}

// overlay applies a local section on top of an inherited copy.
func (g *geometrySection) overlay(local *geometrySection) {
	for k, v := range local.flags {
		g.flags[k] = v
	}
	for ix, r := range local.rows {
		if r.deleted {
			delete(g.rows, ix)
			continue
		}
		base, ok := g.rows[ix]
		if !ok {
			g.rows[ix] = &geometryRow{kind: r.kind, params: r.params}
			continue
		}
		if r.kind != "" {
			base.kind = r.kind
		}
		for k, v := range r.params {
			base.params[k] = v
		}
	}
}

// mergeGeometry adds a locally defined section to the sections inherited
// from a master, matching them by IX.
func mergeGeometry(sections []*geometrySection, local *geometrySection) []*geometrySection {
	for i, g := range sections {
		if g.index != local.index {
			continue
		}
		if local.deleted {
			return append(sections[:i], sections[i+1:]...)
		}
		g.overlay(local)
		return sections
	}
	if local.deleted {
		return sections
	}
	return append(sections, local.clone())
}

// section converts the merged rows into compiler input, rows in IX order.
func (g *geometrySection) section() geom.Section {
	indexes := make([]int, 0, len(g.rows))
	for ix := range g.rows {
		indexes = append(indexes, ix)
	}
	sort.Ints(indexes)

	var s geom.Section
	for name, v := range g.flags {
		s.SetFlag(name, v)
	}
	for _, ix := range indexes {
		r := g.rows[ix]
		s.Primitives = append(s.Primitives, geom.Primitive{Kind: r.kind, Index: ix, Params: r.params})
	}
	return s
}

func compileInput(sections []*geometrySection) []geom.Section {
	if len(sections) == 0 {
		return nil
	}
	sorted := make([]*geometrySection, len(sections))
	copy(sorted, sections)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].index < sorted[j].index })

	out := make([]geom.Section, len(sorted))
	for i, g := range sorted {
		out[i] = g.section()
	}
	return out
}
