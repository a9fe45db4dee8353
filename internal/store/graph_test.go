package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/persistorai/graphkernel/internal/pathfind"
	"github.com/persistorai/graphkernel/internal/store"
)

func TestNeighbors(t *testing.T) {
	base, p := setupTestBase(t)
	ns := store.NewNodeStore(base)
	es := store.NewEdgeStore(base)
	gs := store.NewGraphStore(base)
	ctx := context.Background()

	createTestNode(t, ns, p+"center")
	createTestNode(t, ns, p+"n1")
	createTestNode(t, ns, p+"n2")
	createTestEdge(t, es, p+"e1", "CONNECTS", p+"center", p+"n1")
	createTestEdge(t, es, p+"e2", "CONNECTS", p+"n2", p+"center")

	result, err := gs.Neighbors(ctx, p+"center", pathfind.Both, nil, 100)
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	if len(result.Nodes) != 2 || len(result.Edges) != 2 {
		t.Errorf("Neighbors = %d nodes, %d edges, want 2 and 2", len(result.Nodes), len(result.Edges))
	}

	result, err = gs.Neighbors(ctx, p+"center", pathfind.Outgoing, nil, 100)
	if err != nil {
		t.Fatalf("Neighbors outgoing: %v", err)
	}
	if len(result.Edges) != 1 || result.Edges[0].ID != p+"e1" {
		t.Errorf("outgoing Neighbors = %+v, want only e1", result.Edges)
	}
}

func TestExactDepthSearchOverReader(t *testing.T) {
	base, p := setupTestBase(t)
	ns := store.NewNodeStore(base)
	es := store.NewEdgeStore(base)
	gs := store.NewGraphStore(base)
	ctx := context.Background()

	// a->b->c->g, a->d->e->f->g
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		createTestNode(t, ns, p+id)
	}

	for i, chain := range [][]string{{"a", "b", "c", "g"}, {"a", "d", "e", "f", "g"}} {
		for j := 0; j+1 < len(chain); j++ {
			createTestEdge(t, es, p+"r"+string(rune('0'+i))+string(rune('0'+j)), "R1", p+chain[j], p+chain[j+1])
		}
	}

	reader, err := gs.OpenReader(ctx)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer reader.Close(ctx) //nolint:errcheck // test cleanup.

	ok, err := reader.NodeExists(ctx, p+"a")
	if err != nil || !ok {
		t.Fatalf("NodeExists = %v, %v", ok, err)
	}

	finder, err := pathfind.NewExactDepthFinder(pathfind.ForDirection(reader, pathfind.Outgoing), 4)
	if err != nil {
		t.Fatalf("NewExactDepthFinder: %v", err)
	}

	paths := finder.FindAllPaths(ctx, p+"a", p+"g")
	defer paths.Close()

	var got []string
	for paths.Next() {
		got = append(got, strings.ReplaceAll(paths.Path().String(), p, ""))
	}

	if err := paths.Err(); err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(got) != 1 || got[0] != "a,d,e,f,g" {
		t.Errorf("paths = %v, want [a,d,e,f,g]", got)
	}
}

func TestStats(t *testing.T) {
	base, p := setupTestBase(t)
	ns := store.NewNodeStore(base)
	ss := store.NewStatsStore(base)

	before, err := ss.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	createTestNode(t, ns, p+"x")

	after, err := ss.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if after.Nodes != before.Nodes+1 {
		t.Errorf("Nodes = %d, want %d", after.Nodes, before.Nodes+1)
	}
}
