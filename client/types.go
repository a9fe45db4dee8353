package client

import "time"

// Node represents a vertex in the graph.
type Node struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Edge represents a directed, typed relationship between two nodes.
type Edge struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"created_at"`
}

// CreateNodeRequest is the payload for creating a node. The server
// generates an ID when it is empty.
type CreateNodeRequest struct {
	ID         string         `json:"id,omitempty"`
	Labels     []string       `json:"labels,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// CreateEdgeRequest is the payload for creating an edge.
type CreateEdgeRequest struct {
	ID         string         `json:"id,omitempty"`
	Type       string         `json:"type"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Properties map[string]any `json:"properties,omitempty"`
}

// NeighborResult holds nodes and edges directly connected to a node.
type NeighborResult struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// PathEdge is one hop of a Path.
type PathEdge struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Path is a walk of Length edges; Nodes has Length+1 entries.
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

// PathResult is returned by the path search endpoint.
type PathResult struct {
	Paths     []Path    `json:"paths"`
	Count     int       `json:"count"`
	Truncated bool      `json:"truncated"`
	Stats     PathStats `json:"stats"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Backend       string  `json:"backend"`
	Storage       string  `json:"storage"`
	ActiveStreams int     `json:"active_streams"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadyResponse is returned by the readiness endpoint.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// StatsResponse is returned by the stats endpoint.
type StatsResponse struct {
	Nodes int64 `json:"nodes"`
	Edges int64 `json:"edges"`
}

// NodeListOptions filters and pages node listings.
type NodeListOptions struct {
	Label  string
	Limit  int
	Offset int
}

// EdgeListOptions filters and pages edge listings. NodeID matches either end.
type EdgeListOptions struct {
	NodeID string
	Type   string
	Limit  int
	Offset int
}

// NeighborOptions narrows a neighbor query. Direction is "both" (default),
// "out" or "in".
type NeighborOptions struct {
	Direction string
	Types     []string
	Limit     int
}

// PathOptions describes an exact-depth path search. Depth is always sent;
// Bound is omitted when nil.
type PathOptions struct {
	Depth      int
	Bound      *int
	AllowLoops bool
	Direction  string
	Types      []string
	Limit      int
}
