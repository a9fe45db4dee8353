// Package domain defines the canonical service and storage interfaces shared
// across layers (REST, websocket, client). Consumers should depend on these
// interfaces rather than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/persistorai/graphkernel/internal/models"
	"github.com/persistorai/graphkernel/internal/pathfind"
)

// NodeService defines all node operations.
type NodeService interface {
	ListNodes(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error)
	GetNode(ctx context.Context, nodeID string) (*models.Node, error)
	CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error)
	DeleteNode(ctx context.Context, nodeID string) error
}

// EdgeService defines all edge operations.
type EdgeService interface {
	ListEdges(ctx context.Context, filter models.EdgeFilter, limit, offset int) ([]models.Edge, bool, error)
	GetEdge(ctx context.Context, edgeID string) (*models.Edge, error)
	CreateEdge(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error)
	DeleteEdge(ctx context.Context, edgeID string) error
}

// BulkService defines bulk upsert operations. Both return the number of
// records written.
type BulkService interface {
	BulkUpsertNodes(ctx context.Context, nodes []models.CreateNodeRequest) (int, error)
	BulkUpsertEdges(ctx context.Context, edges []models.CreateEdgeRequest) (int, error)
}

// StatsService reports aggregate graph counts.
type StatsService interface {
	Stats(ctx context.Context) (*models.GraphStats, error)
}

// GraphService defines graph query operations.
type GraphService interface {
	Neighbors(ctx context.Context, nodeID, direction string, types []string, limit int) (*models.NeighborResult, error)
	FindPaths(ctx context.Context, q models.PathQuery) (*models.PathResult, error)
	FindSinglePath(ctx context.Context, q models.PathQuery) (*models.Path, error)
	StreamPaths(ctx context.Context, q models.PathQuery, fn func(models.Path) error) (*models.PathStats, error)
}

// GraphReader is a consistent, read-only view of the graph for one search.
// Relationships may be called many times and interleaved; implementations
// allow at most one open iterator at a time unless documented otherwise.
type GraphReader interface {
	pathfind.Graph
	NodeExists(ctx context.Context, nodeID string) (bool, error)
	Close(ctx context.Context) error
}

// GraphReaderSource opens GraphReaders.
type GraphReaderSource interface {
	OpenReader(ctx context.Context) (GraphReader, error)
}

// Pinger reports backend health for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}
