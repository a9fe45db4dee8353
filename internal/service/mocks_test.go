package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/persistorai/graphkernel/internal/domain"
	"github.com/persistorai/graphkernel/internal/models"
	"github.com/persistorai/graphkernel/internal/pathfind"
)

// mockNodeStore records calls and returns configured responses.
type mockNodeStore struct {
	mu    sync.Mutex
	calls []string

	listNodes  func(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error)
	getNode    func(ctx context.Context, nodeID string) (*models.Node, error)
	createNode func(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error)
	deleteNode func(ctx context.Context, nodeID string) error
}

func (m *mockNodeStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockNodeStore) ListNodes(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error) {
	m.record("ListNodes")
	return m.listNodes(ctx, label, limit, offset)
}

func (m *mockNodeStore) GetNode(ctx context.Context, nodeID string) (*models.Node, error) {
	m.record("GetNode")
	return m.getNode(ctx, nodeID)
}

func (m *mockNodeStore) CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error) {
	m.record("CreateNode")
	return m.createNode(ctx, req)
}

func (m *mockNodeStore) DeleteNode(ctx context.Context, nodeID string) error {
	m.record("DeleteNode")
	return m.deleteNode(ctx, nodeID)
}

// mockEdgeStore records calls and returns configured responses.
type mockEdgeStore struct {
	mu    sync.Mutex
	calls []string

	listEdges  func(ctx context.Context, filter models.EdgeFilter, limit, offset int) ([]models.Edge, bool, error)
	getEdge    func(ctx context.Context, edgeID string) (*models.Edge, error)
	createEdge func(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error)
	deleteEdge func(ctx context.Context, edgeID string) error
}

func (m *mockEdgeStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockEdgeStore) ListEdges(ctx context.Context, filter models.EdgeFilter, limit, offset int) ([]models.Edge, bool, error) {
	m.record("ListEdges")
	return m.listEdges(ctx, filter, limit, offset)
}

func (m *mockEdgeStore) GetEdge(ctx context.Context, edgeID string) (*models.Edge, error) {
	m.record("GetEdge")
	return m.getEdge(ctx, edgeID)
}

func (m *mockEdgeStore) CreateEdge(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error) {
	m.record("CreateEdge")
	return m.createEdge(ctx, req)
}

func (m *mockEdgeStore) DeleteEdge(ctx context.Context, edgeID string) error {
	m.record("DeleteEdge")
	return m.deleteEdge(ctx, edgeID)
}

// mockBulkStore keeps the last batch it received.
type mockBulkStore struct {
	nodes []models.CreateNodeRequest
	edges []models.CreateEdgeRequest
	err   error
}

func (m *mockBulkStore) BulkUpsertNodes(_ context.Context, nodes []models.CreateNodeRequest) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	m.nodes = nodes

	return len(nodes), nil
}

func (m *mockBulkStore) BulkUpsertEdges(_ context.Context, edges []models.CreateEdgeRequest) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	m.edges = edges

	return len(edges), nil
}

// mockStatsStore counts calls. When gate is set, Stats blocks until it is
// closed.
type mockStatsStore struct {
	mu    sync.Mutex
	calls int
	gate  chan struct{}
	stats models.GraphStats
	err   error
}

func (m *mockStatsStore) Stats(_ context.Context) (*models.GraphStats, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.gate != nil {
		<-m.gate
	}

	if m.err != nil {
		return nil, m.err
	}

	st := m.stats

	return &st, nil
}

func (m *mockStatsStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls
}

// memGraph is an in-memory GraphStore. Every reader shares the same edges
// and reports when it is closed.
type memGraph struct {
	nodes map[string]bool
	edges []pathfind.Edge

	openErr   error
	readErr   error
	opened    int
	closed    int
	neighbors func(nodeID string, dir pathfind.Direction, types []string, limit int) (*models.NeighborResult, error)
}

// newMemGraph builds a graph from chains like "R1: a,b,c".
func newMemGraph(chains ...string) *memGraph {
	g := &memGraph{nodes: map[string]bool{}}

	for _, chain := range chains {
		typ := "R1"
		if before, after, ok := strings.Cut(chain, ":"); ok {
			typ, chain = strings.TrimSpace(before), after
		}

		ids := strings.Split(strings.TrimSpace(chain), ",")
		for _, id := range ids {
			g.nodes[id] = true
		}

		for i := 0; i+1 < len(ids); i++ {
			g.edges = append(g.edges, pathfind.Edge{
				ID:   "r" + strconv.Itoa(len(g.edges)+1),
				Type: typ,
				From: ids[i],
				To:   ids[i+1],
			})
		}
	}

	return g
}

func (g *memGraph) Neighbors(_ context.Context, nodeID string, dir pathfind.Direction, types []string, limit int) (*models.NeighborResult, error) {
	return g.neighbors(nodeID, dir, types, limit)
}

func (g *memGraph) OpenReader(_ context.Context) (domain.GraphReader, error) {
	if g.openErr != nil {
		return nil, g.openErr
	}

	g.opened++

	return &memReader{g: g}, nil
}

type memReader struct {
	g *memGraph
}

func (r *memReader) Relationships(ctx context.Context, node string, dir pathfind.Direction, types []string) (pathfind.EdgeIterator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.g.readErr != nil {
		return nil, r.g.readErr
	}

	var out []pathfind.Edge

	for _, e := range r.g.edges {
		if len(types) > 0 && !contains(types, e.Type) {
			continue
		}

		switch {
		case dir != pathfind.Incoming && e.From == node:
			out = append(out, e)
		case dir != pathfind.Outgoing && e.To == node:
			out = append(out, e)
		}
	}

	return pathfind.NewSliceIterator(out), nil
}

func (r *memReader) NodeExists(_ context.Context, nodeID string) (bool, error) {
	return r.g.nodes[nodeID], nil
}

func (r *memReader) Close(_ context.Context) error {
	r.g.closed++

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}

var errDB = errors.New("db down")
