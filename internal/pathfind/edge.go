package pathfind

import "context"

// Edge is a relationship as the traversal sees it. Edges are immutable and
// compared by ID; two parallel relationships between the same nodes are two
// distinct edges.
type Edge struct {
	ID   string
	Type string
	From string
	To   string
}

// Other returns the endpoint of e opposite to node. For a self-loop it
// returns node itself.
func (e Edge) Other(node string) string {
	if e.From == node {
		return e.To
	}

	return e.From
}

// EdgeIterator is a forward-only cursor over edges. Callers must call Close
// once they are done with it, including after Next has returned false.
type EdgeIterator interface {
	// Next advances the iterator. It returns false when the iterator is
	// exhausted or an error occurred.
	Next() bool

	// Edge returns the edge at the current position.
	Edge() Edge

	// Err returns the first error encountered while iterating.
	Err() error

	// Close releases any resources held by the iterator.
	Close() error
}

// Graph is the read capability the finder traverses. Relationships returns
// the edges attached to node in direction dir; a nil or empty types slice
// means every relationship type. Implementations must tolerate repeated,
// interleaved calls for different nodes within one search.
type Graph interface {
	Relationships(ctx context.Context, node string, dir Direction, types []string) (EdgeIterator, error)
}

// sliceIterator serves edges from memory.
type sliceIterator struct {
	edges []Edge
	pos   int
}

// NewSliceIterator returns an EdgeIterator over a fixed slice of edges.
func NewSliceIterator(edges []Edge) EdgeIterator {
	return &sliceIterator{edges: edges, pos: -1}
}

func (it *sliceIterator) Next() bool {
	if it.pos+1 >= len(it.edges) {
		it.pos = len(it.edges)

		return false
	}

	it.pos++

	return true
}

func (it *sliceIterator) Edge() Edge {
	if it.pos < 0 || it.pos >= len(it.edges) {
		return Edge{}
	}

	return it.edges[it.pos]
}

func (it *sliceIterator) Err() error   { return nil }
func (it *sliceIterator) Close() error { return nil }

// filterIterator drops edges rejected by keep.
type filterIterator struct {
	EdgeIterator
	keep func(Edge) bool
}

func (it *filterIterator) Next() bool {
	for it.EdgeIterator.Next() {
		if it.keep(it.EdgeIterator.Edge()) {
			return true
		}
	}

	return false
}
