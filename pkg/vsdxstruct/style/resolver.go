package style

import "go.uber.org/zap"

// Resolver walks the stylesheet cascade. It only reads the graph and may be
// shared between goroutines.
type Resolver struct {
	graph   *Graph
	palette Palette
	logger  *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for unparseable values and broken chains.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPalette sets the palette used for indexed colors.
func WithPalette(p Palette) Option {
	return func(r *Resolver) {
		if p != nil {
			r.palette = p
		}
	}
}

// NewResolver creates a Resolver over g.
func NewResolver(g *Graph, opts ...Option) *Resolver {
	if g == nil {
		g = NewGraph()
	}
	r := &Resolver{
		graph:   g,
		palette: DefaultPalette,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Graph returns the stylesheet graph.
func (r *Resolver) Graph() *Graph {
	return r.graph
}

// Resolve finds the first definition of a shape-level cell, starting at n.
// It never returns a cell that only inherits.
func (r *Resolver) Resolve(n *Node, key string) (Cell, bool) {
	return r.walk(n, CategoryOf(key), func(n *Node) (Cell, bool) {
		return n.Local(key)
	})
}

// ResolveIndexed finds the first definition of cell key in row index of the
// named section. The section name selects the parent chain.
func (r *Resolver) ResolveIndexed(n *Node, section string, index int, key string) (Cell, bool) {
	return r.walk(n, CategoryOf(section), func(n *Node) (Cell, bool) {
		return n.LocalIndexed(section, index, key)
	})
}

// walk visits n and its ancestors for cat until lookup yields a usable cell.
// A node without a parent for cat continues at the theme root; the theme root
// ends the chain.
func (r *Resolver) walk(n *Node, cat Category, lookup func(*Node) (Cell, bool)) (Cell, bool) {
	theme, _ := r.graph.Theme()
	visited := make(map[*Node]struct{})

	for n != nil {
		if _, seen := visited[n]; seen {
			r.logger.Debug("Stylesheet cycle detected",
				zap.Int("id", int(n.ID)), zap.Stringer("category", cat))
			return Cell{}, false
		}
		visited[n] = struct{}{}

		if c, ok := lookup(n); ok && !c.Inherits() {
			if c.ThemeDeferred() && theme != nil && n != theme {
				if tc, ok := r.walk(theme, cat, lookup); ok {
					return tc, true
				}
			}
			return c, true
		}

		n = r.parent(n, cat, theme)
	}
	return Cell{}, false
}

func (r *Resolver) parent(n *Node, cat Category, theme *Node) *Node {
	if n == theme {
		return nil
	}
	if id, ok := n.Parents[cat]; ok && cat != CategoryNone {
		if p, ok := r.graph.Node(id); ok {
			return p
		}
		r.logger.Debug("Unknown parent stylesheet",
			zap.Int("id", int(n.ID)), zap.Int("parent", int(id)), zap.Stringer("category", cat))
	}
	return theme
}
