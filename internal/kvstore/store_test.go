package kvstore_test

import (
	"context"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persistorai/graphkernel/internal/kvstore"
	"github.com/persistorai/graphkernel/internal/models"
	"github.com/persistorai/graphkernel/internal/pathfind"
)

func newTestStore(t *testing.T) *kvstore.Store {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	s, err := kvstore.Open(kvstore.InMemoryConfig(), log)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, s.Close()) })

	return s
}

func createNode(t *testing.T, s *kvstore.Store, id string, labels ...string) {
	t.Helper()

	_, err := s.CreateNode(context.Background(), models.CreateNodeRequest{ID: id, Labels: labels})
	require.NoError(t, err)
}

func createEdge(t *testing.T, s *kvstore.Store, id, typ, source, target string) {
	t.Helper()

	_, err := s.CreateEdge(context.Background(), models.CreateEdgeRequest{
		ID: id, Type: typ, Source: source, Target: target,
	})
	require.NoError(t, err)
}

// loadChains creates nodes and edges for lines like "R1: a,b,c". Edge IDs
// are sequential so parallel edges stay distinct.
func loadChains(t *testing.T, s *kvstore.Store, chains ...string) {
	t.Helper()

	seen := map[string]bool{}
	n := 0

	for _, chain := range chains {
		typ := "R1"
		if before, after, ok := strings.Cut(chain, ":"); ok {
			typ, chain = strings.TrimSpace(before), after
		}

		ids := strings.Split(strings.TrimSpace(chain), ",")
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				createNode(t, s, id)
			}
		}

		for i := 0; i+1 < len(ids); i++ {
			n++
			createEdge(t, s, "r"+strconv.Itoa(n), typ, ids[i], ids[i+1])
		}
	}
}

func TestNodeCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateNode(ctx, models.CreateNodeRequest{
		ID:         "alice",
		Labels:     []string{"Person"},
		Properties: map[string]any{"age": 30},
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetNode(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Person"}, got.Labels)
	assert.InDelta(t, 30, got.Properties["age"], 0)

	_, err = s.CreateNode(ctx, models.CreateNodeRequest{ID: "alice"})
	require.ErrorIs(t, err, models.ErrDuplicateKey)

	require.NoError(t, s.DeleteNode(ctx, "alice"))

	_, err = s.GetNode(ctx, "alice")
	require.ErrorIs(t, err, models.ErrNodeNotFound)
	require.ErrorIs(t, s.DeleteNode(ctx, "alice"), models.ErrNodeNotFound)
}

func TestListNodes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createNode(t, s, "a", "Person")
	createNode(t, s, "b")
	createNode(t, s, "c", "Person")
	createNode(t, s, "d", "Person")

	nodes, hasMore, err := s.ListNodes(ctx, "", 2, 0)
	require.NoError(t, err)
	assert.True(t, hasMore)
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[0].ID)
	assert.Equal(t, "b", nodes[1].ID)

	nodes, hasMore, err = s.ListNodes(ctx, "Person", 10, 1)
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, nodes, 2)
	assert.Equal(t, "c", nodes[0].ID)
	assert.Equal(t, "d", nodes[1].ID)
}

func TestNodePrefixIsolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	loadChains(t, s, "a,b", "ab,c")

	edges, _, err := s.ListEdges(ctx, models.EdgeFilter{NodeID: "a"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "b", edges[0].Target)
}

func TestEdgeCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createNode(t, s, "a")
	createNode(t, s, "b")

	_, err := s.CreateEdge(ctx, models.CreateEdgeRequest{ID: "e", Type: "KNOWS", Source: "a", Target: "ghost"})
	require.ErrorIs(t, err, models.ErrNodeNotFound)

	createEdge(t, s, "e", "KNOWS", "a", "b")

	_, err = s.CreateEdge(ctx, models.CreateEdgeRequest{ID: "e", Type: "KNOWS", Source: "b", Target: "a"})
	require.ErrorIs(t, err, models.ErrDuplicateKey)

	got, err := s.GetEdge(ctx, "e")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Source)
	assert.Equal(t, "b", got.Target)
	assert.Equal(t, "KNOWS", got.Type)

	require.NoError(t, s.DeleteEdge(ctx, "e"))
	require.ErrorIs(t, s.DeleteEdge(ctx, "e"), models.ErrEdgeNotFound)

	res, err := s.Neighbors(ctx, "a", pathfind.Both, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, res.Edges)
}

func TestParallelEdges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	loadChains(t, s, "a,b", "a,b", "a,c")

	edges, hasMore, err := s.ListEdges(ctx, models.EdgeFilter{NodeID: "a"}, 10, 0)
	require.NoError(t, err)
	assert.False(t, hasMore)
	assert.Len(t, edges, 3)

	edges, _, err = s.ListEdges(ctx, models.EdgeFilter{NodeID: "b"}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, edges, 2)
}

func TestListEdges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	loadChains(t, s, "R1: a,b,c", "R2: c,d")

	edges, hasMore, err := s.ListEdges(ctx, models.EdgeFilter{}, 2, 0)
	require.NoError(t, err)
	assert.True(t, hasMore)
	assert.Equal(t, []string{"r1", "r2"}, edgeIDs(edges))

	edges, hasMore, err = s.ListEdges(ctx, models.EdgeFilter{Type: "R2"}, 10, 0)
	require.NoError(t, err)
	assert.False(t, hasMore)
	assert.Equal(t, []string{"r3"}, edgeIDs(edges))

	edges, _, err = s.ListEdges(ctx, models.EdgeFilter{NodeID: "c", Type: "R1"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, edgeIDs(edges))

	edges, _, err = s.ListEdges(ctx, models.EdgeFilter{NodeID: "b"}, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestDeleteNodeCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	loadChains(t, s, "a,b,c", "c,b")
	createEdge(t, s, "self", "R1", "b", "b")

	require.NoError(t, s.DeleteNode(ctx, "b"))

	for _, id := range []string{"r1", "r2", "r3", "self"} {
		_, err := s.GetEdge(ctx, id)
		require.ErrorIs(t, err, models.ErrEdgeNotFound, id)
	}

	for _, id := range []string{"a", "c"} {
		res, err := s.Neighbors(ctx, id, pathfind.Both, nil, 10)
		require.NoError(t, err)
		assert.Empty(t, res.Edges, id)
	}

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Nodes)
	assert.Equal(t, int64(0), st.Edges)
}

func TestBulkUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.BulkUpsertNodes(ctx, []models.CreateNodeRequest{
		{ID: "a"}, {ID: "b"}, {ID: "a", Labels: []string{"Again"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	a, err := s.GetNode(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"Again"}, a.Labels)

	n, err = s.BulkUpsertEdges(ctx, []models.CreateEdgeRequest{
		{ID: "ab", Type: "R1", Source: "a", Target: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Re-pointing an edge moves its index entries.
	_, err = s.BulkUpsertEdges(ctx, []models.CreateEdgeRequest{
		{ID: "ab", Type: "R2", Source: "b", Target: "a"},
	})
	require.NoError(t, err)

	out, err := s.Neighbors(ctx, "a", pathfind.Outgoing, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, out.Edges)

	out, err = s.Neighbors(ctx, "b", pathfind.Outgoing, []string{"R2"}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab"}, edgeIDs(out.Edges))

	_, err = s.BulkUpsertEdges(ctx, []models.CreateEdgeRequest{
		{ID: "ok", Type: "R1", Source: "a", Target: "b"},
		{ID: "ax", Type: "R1", Source: "a", Target: "ghost"},
	})
	require.ErrorIs(t, err, models.ErrNodeNotFound)

	_, err = s.GetEdge(ctx, "ok")
	require.ErrorIs(t, err, models.ErrEdgeNotFound, "a failed batch writes nothing")
}

func TestCancelledContext(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.CreateNode(ctx, models.CreateNodeRequest{ID: "a"})
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.OpenReader(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPingAfterClose(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	s, err := kvstore.Open(kvstore.InMemoryConfig(), log)
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
	require.Error(t, s.Ping(context.Background()))
}

func TestPersistentStoreReopens(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := kvstore.DefaultConfig(t.TempDir())
	cfg.GCInterval = 0

	s, err := kvstore.Open(cfg, log)
	require.NoError(t, err)
	createNode(t, s, "kept")
	require.NoError(t, s.Close())

	s, err = kvstore.Open(cfg, log)
	require.NoError(t, err)

	defer s.Close() //nolint:errcheck // test cleanup.

	_, err = s.GetNode(context.Background(), "kept")
	require.NoError(t, err)
}

func edgeIDs(edges []models.Edge) []string {
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.ID)
	}

	return ids
}
