package pathfind

import "context"

// Expander is the traversal policy: given the path walked so far, it yields
// the candidate edges to follow from the path's end node. Implementations
// must be pure functions of the path and the graph; the finder calls them
// for both search sides and in any order.
//
// Reverse returns the policy the end side of a bidirectional search uses.
// The end side walks from the target towards the source, so a
// direction-sensitive policy must be mirrored for the reversed end-side
// paths to read as valid forward paths. The finder relies on Reverse and
// never inverts directions on its own.
type Expander interface {
	Expand(ctx context.Context, path *Path) (EdgeIterator, error)
	Reverse() Expander
}

// rule allows one relationship type in one direction. An empty typ matches
// every type.
type rule struct {
	typ string
	dir Direction
}

// StandardExpander follows relationships by type and direction. Without
// rules it follows every type in its default direction; with rules it
// follows only the listed types, each in its own direction.
type StandardExpander struct {
	graph Graph
	dir   Direction
	rules []rule
}

// AllTypesAndDirections follows every relationship of every node.
func AllTypesAndDirections(g Graph) *StandardExpander {
	return &StandardExpander{graph: g, dir: Both}
}

// ForDirection follows every relationship type in direction d.
func ForDirection(g Graph, d Direction) *StandardExpander {
	return &StandardExpander{graph: g, dir: d}
}

// ForType follows relationships of type typ in both directions.
func ForType(g Graph, typ string) *StandardExpander {
	return ForTypeAndDirection(g, typ, Both)
}

// ForTypeAndDirection follows relationships of type typ in direction d.
func ForTypeAndDirection(g Graph, typ string, d Direction) *StandardExpander {
	return &StandardExpander{graph: g, dir: d, rules: []rule{{typ: typ, dir: d}}}
}

// Add returns a copy of e that additionally follows typ in direction d. On
// an expander without rules the every-type policy is kept alongside typ.
func (e *StandardExpander) Add(typ string, d Direction) *StandardExpander {
	rules := make([]rule, len(e.rules), len(e.rules)+2)
	copy(rules, e.rules)

	if len(rules) == 0 {
		rules = append(rules, rule{dir: e.dir})
	}

	return &StandardExpander{graph: e.graph, dir: e.dir, rules: append(rules, rule{typ: typ, dir: d})}
}

// Reverse mirrors every direction of the policy.
func (e *StandardExpander) Reverse() Expander {
	rules := make([]rule, len(e.rules))
	for i, r := range e.rules {
		rules[i] = rule{typ: r.typ, dir: r.dir.Reverse()}
	}

	return &StandardExpander{graph: e.graph, dir: e.dir.Reverse(), rules: rules}
}

// Expand implements Expander.
func (e *StandardExpander) Expand(ctx context.Context, path *Path) (EdgeIterator, error) {
	node := path.End()

	if len(e.rules) == 0 {
		return e.graph.Relationships(ctx, node, e.dir, nil)
	}

	// Ask the graph for the widest direction any rule needs, then narrow
	// per type.
	dir := e.rules[0].dir
	types := make([]string, 0, len(e.rules))
	byType := make(map[string][]Direction, len(e.rules))
	wildcard := false

	for _, r := range e.rules {
		if r.dir != dir {
			dir = Both
		}

		if r.typ == "" {
			wildcard = true
		} else if _, seen := byType[r.typ]; !seen {
			types = append(types, r.typ)
		}

		byType[r.typ] = append(byType[r.typ], r.dir)
	}

	if wildcard {
		types = nil
	}

	it, err := e.graph.Relationships(ctx, node, dir, types)
	if err != nil {
		return nil, err
	}

	return &filterIterator{EdgeIterator: it, keep: func(edge Edge) bool {
		for _, d := range byType[edge.Type] {
			if d.matches(edge, node) {
				return true
			}
		}

		for _, d := range byType[""] {
			if d.matches(edge, node) {
				return true
			}
		}

		return false
	}}, nil
}

// EdgePredicate decides whether an edge may extend path.
type EdgePredicate func(path *Path, e Edge) bool

// filteredExpander narrows another expander with a predicate.
type filteredExpander struct {
	inner Expander
	keep  EdgePredicate
}

// Filter wraps inner so that only edges accepted by keep are followed. The
// predicate is kept as-is on Reverse, so it must not depend on which side of
// the search is asking.
func Filter(inner Expander, keep EdgePredicate) Expander {
	return &filteredExpander{inner: inner, keep: keep}
}

func (f *filteredExpander) Expand(ctx context.Context, path *Path) (EdgeIterator, error) {
	it, err := f.inner.Expand(ctx, path)
	if err != nil {
		return nil, err
	}

	return &filterIterator{EdgeIterator: it, keep: func(e Edge) bool { return f.keep(path, e) }}, nil
}

func (f *filteredExpander) Reverse() Expander {
	return &filteredExpander{inner: f.inner.Reverse(), keep: f.keep}
}
