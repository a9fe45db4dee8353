package models

// NeighborResult holds nodes directly connected to a given node plus their edges.
type NeighborResult struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// PathQuery describes an exact-depth path search between two nodes.
type PathQuery struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Depth      int      `json:"depth"`
	Bound      *int     `json:"bound,omitempty"`
	AllowLoops bool     `json:"allow_loops"`
	Direction  string   `json:"direction,omitempty"`
	Types      []string `json:"types,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}

// Validate checks the parts of a PathQuery that need no configuration.
func (q *PathQuery) Validate() error {
	if q.From == "" {
		return ErrMissingSource
	}

	if err := validateID("from", q.From); err != nil {
		return err
	}

	if q.To == "" {
		return ErrMissingTarget
	}

	if err := validateID("to", q.To); err != nil {
		return err
	}

	if q.Depth < 0 {
		return ErrInvalidDepth
	}

	if q.Bound != nil && *q.Bound < 0 {
		return ErrInvalidBound
	}

	if q.Limit < 0 {
		return ErrInvalidLimit
	}

	return nil
}

// PathEdge is one hop of a Path.
type PathEdge struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Path is a walk through the graph: Nodes has Length+1 entries and Edges
// has Length, with Edges[i] joining Nodes[i] and Nodes[i+1].
type Path struct {
	Length int        `json:"length"`
	Nodes  []string   `json:"nodes"`
	Edges  []PathEdge `json:"edges"`
}

// PathStats reports the work a path search performed.
type PathStats struct {
	StartPartials int   `json:"start_partials"`
	EndPartials   int   `json:"end_partials"`
	EdgesScanned  int   `json:"edges_scanned"`
	Pruned        int   `json:"pruned"`
	DurationMS    int64 `json:"duration_ms"`
}

// PathResult is the response of a path search.
type PathResult struct {
	Paths     []Path    `json:"paths"`
	Count     int       `json:"count"`
	Truncated bool      `json:"truncated"`
	Stats     PathStats `json:"stats"`
}

// GraphStats holds aggregate counts.
type GraphStats struct {
	Nodes int64 `json:"nodes"`
	Edges int64 `json:"edges"`
}
