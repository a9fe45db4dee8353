package pathfind

import "strings"

// Path is an immutable sequence of alternating nodes and edges. Paths share
// their prefixes: extending a path allocates one link and leaves the
// original untouched, so a frontier of partial paths costs one link per
// partial rather than one slice per partial.
type Path struct {
	parent *Path
	edge   Edge
	node   string
	length int
}

// NewPath returns the zero-length path consisting of node alone.
func NewPath(node string) *Path {
	return &Path{node: node}
}

// Extend returns a new path that follows e from p's end node.
func (p *Path) Extend(e Edge) *Path {
	return &Path{
		parent: p,
		edge:   e,
		node:   e.Other(p.node),
		length: p.length + 1,
	}
}

// Len returns the number of edges in the path.
func (p *Path) Len() int { return p.length }

// End returns the last node of the path.
func (p *Path) End() string { return p.node }

// Start returns the first node of the path.
func (p *Path) Start() string {
	cur := p
	for cur.parent != nil {
		cur = cur.parent
	}

	return cur.node
}

// LastEdge returns the edge leading to End. ok is false for a zero-length path.
func (p *Path) LastEdge() (e Edge, ok bool) {
	if p.parent == nil {
		return Edge{}, false
	}

	return p.edge, true
}

// Nodes returns the nodes of the path in order, starting at Start.
func (p *Path) Nodes() []string {
	nodes := make([]string, p.length+1)
	for cur, i := p, p.length; cur != nil; cur, i = cur.parent, i-1 {
		nodes[i] = cur.node
	}

	return nodes
}

// Edges returns the edges of the path in traversal order.
func (p *Path) Edges() []Edge {
	edges := make([]Edge, p.length)
	for cur := p; cur.parent != nil; cur = cur.parent {
		edges[cur.length-1] = cur.edge
	}

	return edges
}

// String renders the node IDs joined by commas, e.g. "a,b,c".
func (p *Path) String() string {
	return strings.Join(p.Nodes(), ",")
}

// contains reports whether node occurs anywhere in the path.
func (p *Path) contains(node string) bool {
	for cur := p; cur != nil; cur = cur.parent {
		if cur.node == node {
			return true
		}
	}

	return false
}

// hasRepeatedNode reports whether any node occurs more than once.
func (p *Path) hasRepeatedNode() bool {
	seen := make(map[string]struct{}, p.length+1)
	for cur := p; cur != nil; cur = cur.parent {
		if _, dup := seen[cur.node]; dup {
			return true
		}

		seen[cur.node] = struct{}{}
	}

	return false
}

// join appends the reverse of tail to head. tail must start where the
// assembled path should end and finish at head's end node.
func join(head, tail *Path) *Path {
	full := head
	for _, e := range reversed(tail.Edges()) {
		full = full.Extend(e)
	}

	return full
}

func reversed(edges []Edge) []Edge {
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	return edges
}
