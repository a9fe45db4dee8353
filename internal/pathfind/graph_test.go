package pathfind_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/persistorai/graphkernel/internal/pathfind"
)

const defaultType = "R1"

// testGraph is an in-memory pathfind.Graph that counts open iterators and
// can be told to fail.
type testGraph struct {
	edges   []pathfind.Edge
	open    int
	opened  int
	calls   int
	failOn  string
	failErr error
}

func newTestGraph() *testGraph {
	return &testGraph{}
}

// makeEdgeChain adds edges between consecutive nodes of a comma separated
// list. A "TYPE:" prefix overrides the relationship type.
func (g *testGraph) makeEdgeChain(chain string) {
	typ := defaultType
	if before, after, ok := strings.Cut(chain, ":"); ok {
		typ, chain = before, after
	}

	nodes := strings.Split(chain, ",")
	for i := 0; i+1 < len(nodes); i++ {
		g.makeEdge(nodes[i], nodes[i+1], typ)
	}
}

func (g *testGraph) makeEdge(from, to, typ string) {
	g.edges = append(g.edges, pathfind.Edge{
		ID:   fmt.Sprintf("r%d", len(g.edges)+1),
		Type: typ,
		From: from,
		To:   to,
	})
}

func (g *testGraph) Relationships(_ context.Context, node string, dir pathfind.Direction, types []string) (pathfind.EdgeIterator, error) {
	g.calls++

	if g.failOn != "" && node == g.failOn {
		return nil, g.failErr
	}

	var out []pathfind.Edge

	for _, e := range g.edges {
		if len(types) > 0 && !contains(types, e.Type) {
			continue
		}

		switch dir {
		case pathfind.Outgoing:
			if e.From != node {
				continue
			}
		case pathfind.Incoming:
			if e.To != node {
				continue
			}
		default:
			if e.From != node && e.To != node {
				continue
			}
		}

		out = append(out, e)
	}

	g.open++
	g.opened++

	return &countingIterator{EdgeIterator: pathfind.NewSliceIterator(out), g: g}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}

type countingIterator struct {
	pathfind.EdgeIterator
	g      *testGraph
	closed bool
}

func (it *countingIterator) Close() error {
	if !it.closed {
		it.closed = true
		it.g.open--
	}

	return nil
}

// failingIterator yields its edges and then fails.
type failingIterator struct {
	pathfind.EdgeIterator
	err error
}

func (it *failingIterator) Err() error { return it.err }

// brokenGraph serves the edges of inner but every iterator ends in err.
type brokenGraph struct {
	inner *testGraph
	err   error
}

func (g *brokenGraph) Relationships(ctx context.Context, node string, dir pathfind.Direction, types []string) (pathfind.EdgeIterator, error) {
	it, err := g.inner.Relationships(ctx, node, dir, types)
	if err != nil {
		return nil, err
	}

	return &failingIterator{EdgeIterator: it, err: g.err}, nil
}

var errDisk = errors.New("disk on fire")

// collect drains paths and returns their string forms.
func collect(t *testing.T, paths *pathfind.Paths) []string {
	t.Helper()

	defer paths.Close()

	var out []string
	for paths.Next() {
		out = append(out, paths.Path().String())
	}

	require.NoError(t, paths.Err())

	return out
}

// assertPaths checks the found paths against expected as a multiset.
func assertPaths(t *testing.T, paths *pathfind.Paths, expected ...string) {
	t.Helper()

	got := collect(t, paths)
	if len(expected) == 0 {
		require.Empty(t, got)

		return
	}

	require.ElementsMatch(t, expected, got)
}

func mustFinder(t *testing.T, exp pathfind.Expander, depth int, opts ...pathfind.Option) *pathfind.ExactDepthFinder {
	t.Helper()

	f, err := pathfind.NewExactDepthFinder(exp, depth, opts...)
	require.NoError(t, err)

	return f
}
