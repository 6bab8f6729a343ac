package style

import (
	"errors"
	"fmt"
)

// ID addresses a stylesheet in a Graph.
type ID int

// ThemeID is the id of the theme root stylesheet ("No Style").
const ThemeID ID = 0

// ErrDuplicateNode is returned when two stylesheets share an id.
var ErrDuplicateNode = errors.New("duplicate stylesheet id")

// Node is a style holder: a stylesheet, a master shape or a page shape.
// Nodes are built once by the parser and never mutated afterwards.
type Node struct {
	ID       ID
	Name     string
	Cells    map[string]Cell
	Sections map[string]*Section
	// Parents maps a category to the stylesheet it inherits from.
	Parents map[Category]ID
}

// NewNode creates an empty node.
func NewNode(id ID, name string) *Node {
	return &Node{
		ID:       id,
		Name:     name,
		Cells:    make(map[string]Cell),
		Sections: make(map[string]*Section),
		Parents:  make(map[Category]ID),
	}
}

// SetCell stores a shape-level cell.
func (n *Node) SetCell(c Cell) {
	n.Cells[c.Name] = c
}

// Section returns the named section, creating it when absent.
func (n *Node) Section(name string) *Section {
	s, ok := n.Sections[name]
	if !ok {
		s = NewSection(name)
		n.Sections[name] = s
	}
	return s
}

// Local returns a shape-level cell defined on this node only.
func (n *Node) Local(key string) (Cell, bool) {
	c, ok := n.Cells[key]
	return c, ok
}

// LocalIndexed returns an indexed section cell defined on this node only.
func (n *Node) LocalIndexed(section string, index int, key string) (Cell, bool) {
	return n.Sections[section].Cell(index, key)
}

// Graph holds the stylesheets of one document, addressed by id.
type Graph struct {
	nodes map[ID]*Node
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[ID]*Node)}
}

// Add registers a stylesheet.
func (g *Graph) Add(n *Node) error {
	if _, ok := g.nodes[n.ID]; ok {
		return fmt.Errorf("stylesheet %d: %w", n.ID, ErrDuplicateNode)
	}
	g.nodes[n.ID] = n
	return nil
}

// Node returns the stylesheet with the given id.
func (g *Graph) Node(id ID) (*Node, bool) {
	if g == nil {
		return nil, false
	}
	n, ok := g.nodes[id]
	return n, ok
}

// Theme returns the theme root, if the document defines one.
func (g *Graph) Theme() (*Node, bool) {
	return g.Node(ThemeID)
}

// Len returns the number of stylesheets.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}
