package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/persistorai/graphkernel/internal/models"
	"github.com/persistorai/graphkernel/internal/store"
)

func TestCreateEdge_ParallelEdges(t *testing.T) {
	base, p := setupTestBase(t)
	ns := store.NewNodeStore(base)
	es := store.NewEdgeStore(base)
	ctx := context.Background()

	createTestNode(t, ns, p+"a")
	createTestNode(t, ns, p+"b")
	createTestEdge(t, es, p+"e1", "KNOWS", p+"a", p+"b")
	createTestEdge(t, es, p+"e2", "KNOWS", p+"a", p+"b")

	edges, hasMore, err := es.ListEdges(ctx, models.EdgeFilter{NodeID: p + "a"}, 10, 0)
	if err != nil {
		t.Fatalf("ListEdges: %v", err)
	}

	if len(edges) != 2 || hasMore {
		t.Errorf("ListEdges = %d edges (hasMore=%v), want 2", len(edges), hasMore)
	}
}

func TestCreateEdge_MissingEndpoint(t *testing.T) {
	base, p := setupTestBase(t)
	ns := store.NewNodeStore(base)
	es := store.NewEdgeStore(base)

	createTestNode(t, ns, p+"a")

	_, err := es.CreateEdge(context.Background(), models.CreateEdgeRequest{
		ID: p + "e", Type: "KNOWS", Source: p + "a", Target: p + "ghost",
	})
	if !errors.Is(err, models.ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestDeleteEdge(t *testing.T) {
	base, p := setupTestBase(t)
	ns := store.NewNodeStore(base)
	es := store.NewEdgeStore(base)
	ctx := context.Background()

	createTestNode(t, ns, p+"a")
	createTestNode(t, ns, p+"b")
	createTestEdge(t, es, p+"e", "KNOWS", p+"a", p+"b")

	if err := es.DeleteEdge(ctx, p+"e"); err != nil {
		t.Fatalf("DeleteEdge: %v", err)
	}

	if err := es.DeleteEdge(ctx, p+"e"); !errors.Is(err, models.ErrEdgeNotFound) {
		t.Errorf("expected ErrEdgeNotFound, got %v", err)
	}
}

func TestBulkUpsert(t *testing.T) {
	base, p := setupTestBase(t)
	bs := store.NewBulkStore(base)
	es := store.NewEdgeStore(base)
	ctx := context.Background()

	n, err := bs.BulkUpsertNodes(ctx, []models.CreateNodeRequest{
		{ID: p + "a"}, {ID: p + "b"}, {ID: p + "a", Labels: []string{"Again"}},
	})
	if err != nil {
		t.Fatalf("BulkUpsertNodes: %v", err)
	}
	if n != 2 {
		t.Errorf("BulkUpsertNodes = %d, want 2", n)
	}

	n, err = bs.BulkUpsertEdges(ctx, []models.CreateEdgeRequest{
		{ID: p + "ab", Type: "R1", Source: p + "a", Target: p + "b"},
	})
	if err != nil {
		t.Fatalf("BulkUpsertEdges: %v", err)
	}
	if n != 1 {
		t.Errorf("BulkUpsertEdges = %d, want 1", n)
	}

	_, err = bs.BulkUpsertEdges(ctx, []models.CreateEdgeRequest{
		{ID: p + "ax", Type: "R1", Source: p + "a", Target: p + "ghost"},
	})
	if !errors.Is(err, models.ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}

	if _, err := es.GetEdge(ctx, p+"ax"); !errors.Is(err, models.ErrEdgeNotFound) {
		t.Errorf("expected failed batch to leave no edge, got %v", err)
	}
}
