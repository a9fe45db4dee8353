package kvstore

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/persistorai/graphkernel/internal/domain"
	"github.com/persistorai/graphkernel/internal/models"
	"github.com/persistorai/graphkernel/internal/pathfind"
)

const (
	defaultEdgesPerQuery = 100
	maxEdgesPerQuery     = 1000
)

var errReaderClosed = errors.New("graph reader is closed")

// Neighbors returns the edges attached to nodeID in direction dir, optionally
// narrowed to types, plus the nodes at their other ends.
func (s *Store) Neighbors(
	ctx context.Context,
	nodeID string,
	dir pathfind.Direction,
	types []string,
	limit int,
) (*models.NeighborResult, error) {
	if limit <= 0 {
		limit = defaultEdgesPerQuery
	}

	limit = min(limit, maxEdgesPerQuery)

	var result models.NeighborResult

	err := s.view(ctx, func(txn *badger.Txn) error {
		found, err := exists(txn, nodeKey(nodeID))
		if err != nil {
			return err
		}

		if !found {
			return models.ErrNodeNotFound
		}

		adjs, err := collectAdjacency(txn, nodeID, dir, types)
		if err != nil {
			return err
		}

		slices.SortFunc(adjs, func(a, b adjacency) int {
			switch {
			case a.edge < b.edge:
				return -1
			case a.edge > b.edge:
				return 1
			default:
				return 0
			}
		})

		if len(adjs) > limit {
			adjs = adjs[:limit]
		}

		ids := make([]string, 0, len(adjs))
		others := make([]string, 0, len(adjs))
		seen := make(map[string]bool, len(adjs))

		for _, a := range adjs {
			ids = append(ids, a.edge)

			if !seen[a.other] {
				seen[a.other] = true
				others = append(others, a.other)
			}
		}

		if result.Edges, err = getEdges(txn, ids); err != nil {
			return err
		}

		slices.Sort(others)
		result.Nodes = make([]models.Node, 0, len(others))

		for _, id := range others {
			var n models.Node
			if err := getJSON(txn, nodeKey(id), &n); err != nil {
				return fmt.Errorf("reading node %q: %w", id, err)
			}

			result.Nodes = append(result.Nodes, n)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrNodeNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("getting neighbors: %w", err)
	}

	return &result, nil
}

// OpenReader starts a read-only snapshot for one path search. The caller
// must Close the reader.
func (s *Store) OpenReader(ctx context.Context) (domain.GraphReader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &graphReader{
		txn:  s.db.NewTransaction(false),
		open: make(map[*adjacencyIterator]struct{}),
	}, nil
}

// graphReader serves relationship scans from one badger read transaction.
// Badger panics when a transaction is discarded with iterators still open,
// so the reader tracks every iterator it hands out and closes leftovers.
type graphReader struct {
	txn    *badger.Txn
	open   map[*adjacencyIterator]struct{}
	closed bool
}

// Relationships implements pathfind.Graph.
func (r *graphReader) Relationships(
	ctx context.Context,
	node string,
	dir pathfind.Direction,
	types []string,
) (pathfind.EdgeIterator, error) {
	if r.closed {
		return nil, errReaderClosed
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	it := newAdjacencyIterator(r.txn, node, dir, types)
	it.onClose = func(done *adjacencyIterator) { delete(r.open, done) }
	r.open[it] = struct{}{}

	return it, nil
}

// NodeExists reports whether nodeID is in the snapshot.
func (r *graphReader) NodeExists(ctx context.Context, nodeID string) (bool, error) {
	if r.closed {
		return false, errReaderClosed
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}

	return exists(r.txn, nodeKey(nodeID))
}

// Close discards the snapshot. It is safe to call more than once.
func (r *graphReader) Close(_ context.Context) error {
	if r.closed {
		return nil
	}

	r.closed = true

	for it := range r.open {
		it.Close() //nolint:errcheck // Close never fails.
	}

	r.txn.Discard()

	return nil
}
