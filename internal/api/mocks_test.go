package api_test

import (
	"context"
	"errors"

	"github.com/persistorai/graphkernel/internal/models"
)

var errBoom = errors.New("boom")

// mockNodeService implements api.NodeService for testing.
type mockNodeService struct {
	listFn   func(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error)
	getFn    func(ctx context.Context, nodeID string) (*models.Node, error)
	createFn func(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error)
	deleteFn func(ctx context.Context, nodeID string) error
}

func (m *mockNodeService) ListNodes(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error) {
	return m.listFn(ctx, label, limit, offset)
}

func (m *mockNodeService) GetNode(ctx context.Context, nodeID string) (*models.Node, error) {
	return m.getFn(ctx, nodeID)
}

func (m *mockNodeService) CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error) {
	return m.createFn(ctx, req)
}

func (m *mockNodeService) DeleteNode(ctx context.Context, nodeID string) error {
	return m.deleteFn(ctx, nodeID)
}

// mockEdgeService implements api.EdgeService for testing.
type mockEdgeService struct {
	listFn   func(ctx context.Context, filter models.EdgeFilter, limit, offset int) ([]models.Edge, bool, error)
	getFn    func(ctx context.Context, edgeID string) (*models.Edge, error)
	createFn func(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error)
	deleteFn func(ctx context.Context, edgeID string) error
}

func (m *mockEdgeService) ListEdges(ctx context.Context, filter models.EdgeFilter, limit, offset int) ([]models.Edge, bool, error) {
	return m.listFn(ctx, filter, limit, offset)
}

func (m *mockEdgeService) GetEdge(ctx context.Context, edgeID string) (*models.Edge, error) {
	return m.getFn(ctx, edgeID)
}

func (m *mockEdgeService) CreateEdge(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error) {
	return m.createFn(ctx, req)
}

func (m *mockEdgeService) DeleteEdge(ctx context.Context, edgeID string) error {
	return m.deleteFn(ctx, edgeID)
}

// mockBulkService implements api.BulkService for testing.
type mockBulkService struct {
	nodesFn func(ctx context.Context, nodes []models.CreateNodeRequest) (int, error)
	edgesFn func(ctx context.Context, edges []models.CreateEdgeRequest) (int, error)
}

func (m *mockBulkService) BulkUpsertNodes(ctx context.Context, nodes []models.CreateNodeRequest) (int, error) {
	return m.nodesFn(ctx, nodes)
}

func (m *mockBulkService) BulkUpsertEdges(ctx context.Context, edges []models.CreateEdgeRequest) (int, error) {
	return m.edgesFn(ctx, edges)
}

// mockStatsService implements api.StatsService for testing.
type mockStatsService struct {
	stats *models.GraphStats
	err   error
}

func (m *mockStatsService) Stats(context.Context) (*models.GraphStats, error) {
	return m.stats, m.err
}

// mockGraphService implements api.GraphService for testing. It records the
// last query it was given.
type mockGraphService struct {
	neighborsFn func(ctx context.Context, nodeID, direction string, types []string, limit int) (*models.NeighborResult, error)
	pathsFn     func(ctx context.Context, q models.PathQuery) (*models.PathResult, error)
	singleFn    func(ctx context.Context, q models.PathQuery) (*models.Path, error)
	streamFn    func(ctx context.Context, q models.PathQuery, fn func(models.Path) error) (*models.PathStats, error)

	lastQuery models.PathQuery
}

func (m *mockGraphService) Neighbors(
	ctx context.Context, nodeID, direction string, types []string, limit int,
) (*models.NeighborResult, error) {
	return m.neighborsFn(ctx, nodeID, direction, types, limit)
}

func (m *mockGraphService) FindPaths(ctx context.Context, q models.PathQuery) (*models.PathResult, error) {
	m.lastQuery = q

	return m.pathsFn(ctx, q)
}

func (m *mockGraphService) FindSinglePath(ctx context.Context, q models.PathQuery) (*models.Path, error) {
	m.lastQuery = q

	return m.singleFn(ctx, q)
}

func (m *mockGraphService) StreamPaths(
	ctx context.Context, q models.PathQuery, fn func(models.Path) error,
) (*models.PathStats, error) {
	m.lastQuery = q

	return m.streamFn(ctx, q, fn)
}

// mockPinger implements api.Pinger for testing.
type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

func chainPath(nodes ...string) models.Path {
	p := models.Path{Length: len(nodes) - 1, Nodes: nodes, Edges: make([]models.PathEdge, 0, len(nodes)-1)}
	for i := 0; i+1 < len(nodes); i++ {
		p.Edges = append(p.Edges, models.PathEdge{
			ID: nodes[i] + "-" + nodes[i+1], Type: "R1", Source: nodes[i], Target: nodes[i+1],
		})
	}

	return p
}
