package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/persistorai/graphkernel/internal/models"
	"github.com/persistorai/graphkernel/internal/pathfind"
)

// CreateEdge stores a new edge. Both endpoints must exist.
func (s *Store) CreateEdge(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error) {
	e := &models.Edge{
		ID:         req.ID,
		Type:       req.Type,
		Source:     req.Source,
		Target:     req.Target,
		Properties: propsOrEmpty(req.Properties),
		CreatedAt:  time.Now().UTC(),
	}

	err := s.update(ctx, func(txn *badger.Txn) error {
		if err := checkEndpoints(txn, e.Source, e.Target); err != nil {
			return err
		}

		found, err := exists(txn, edgeKey(e.ID))
		if err != nil {
			return err
		}

		if found {
			return models.ErrDuplicateKey
		}

		return putEdge(txn, e)
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateKey) || errors.Is(err, models.ErrNodeNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("creating edge: %w", err)
	}

	return e, nil
}

// GetEdge returns one edge.
func (s *Store) GetEdge(ctx context.Context, edgeID string) (*models.Edge, error) {
	var e models.Edge

	err := s.view(ctx, func(txn *badger.Txn) error {
		return getJSON(txn, edgeKey(edgeID), &e)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, models.ErrEdgeNotFound
		}

		return nil, fmt.Errorf("getting edge: %w", err)
	}

	return &e, nil
}

// DeleteEdge removes one edge and its index entries.
func (s *Store) DeleteEdge(ctx context.Context, edgeID string) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		var e models.Edge
		if err := getJSON(txn, edgeKey(edgeID), &e); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return models.ErrEdgeNotFound
			}

			return err
		}

		return deleteEdgeKeys(txn, pathfind.Edge{ID: e.ID, Type: e.Type, From: e.Source, To: e.Target})
	})
	if err != nil {
		if errors.Is(err, models.ErrEdgeNotFound) {
			return err
		}

		return fmt.Errorf("deleting edge: %w", err)
	}

	return nil
}

// ListEdges returns edges in ID order, narrowed by filter.
func (s *Store) ListEdges(ctx context.Context, filter models.EdgeFilter, limit, offset int) ([]models.Edge, bool, error) {
	limit, offset = clampPage(limit, offset)

	var edges []models.Edge

	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error

		if filter.NodeID != "" {
			edges, err = listNodeEdges(txn, filter, limit, offset)
		} else {
			edges, err = listAllEdges(txn, filter.Type, limit, offset)
		}

		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("listing edges: %w", err)
	}

	hasMore := len(edges) > limit
	if hasMore {
		edges = edges[:limit]
	}

	return edges, hasMore, nil
}

// listNodeEdges reads up to limit+1 edges of one node through the indexes.
func listNodeEdges(txn *badger.Txn, filter models.EdgeFilter, limit, offset int) ([]models.Edge, error) {
	var types []string
	if filter.Type != "" {
		types = []string{filter.Type}
	}

	adjs, err := collectAdjacency(txn, filter.NodeID, pathfind.Both, types)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(adjs))
	for _, a := range adjs {
		ids = append(ids, a.edge)
	}

	slices.Sort(ids)

	if offset >= len(ids) {
		return []models.Edge{}, nil
	}

	ids = ids[offset:min(len(ids), offset+limit+1)]

	return getEdges(txn, ids)
}

func listAllEdges(txn *badger.Txn, typ string, limit, offset int) ([]models.Edge, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix(tagEdge)

	it := txn.NewIterator(opts)
	defer it.Close()

	edges := make([]models.Edge, 0, limit+1)
	skipped := 0

	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix) && len(edges) <= limit; it.Next() {
		var e models.Edge
		if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &e) }); err != nil {
			return nil, err
		}

		if typ != "" && e.Type != typ {
			continue
		}

		if skipped < offset {
			skipped++

			continue
		}

		edges = append(edges, e)
	}

	return edges, nil
}

func getEdges(txn *badger.Txn, ids []string) ([]models.Edge, error) {
	edges := make([]models.Edge, 0, len(ids))

	for _, id := range ids {
		var e models.Edge
		if err := getJSON(txn, edgeKey(id), &e); err != nil {
			return nil, fmt.Errorf("reading edge %q: %w", id, err)
		}

		edges = append(edges, e)
	}

	return edges, nil
}

func checkEndpoints(txn *badger.Txn, source, target string) error {
	for _, end := range []struct{ role, id string }{{"source", source}, {"target", target}} {
		found, err := exists(txn, nodeKey(end.id))
		if err != nil {
			return err
		}

		if !found {
			return fmt.Errorf("%s node %q: %w", end.role, end.id, models.ErrNodeNotFound)
		}
	}

	return nil
}

// putEdge writes an edge record and both index entries.
func putEdge(txn *badger.Txn, e *models.Edge) error {
	if err := setJSON(txn, edgeKey(e.ID), e); err != nil {
		return err
	}

	if err := txn.Set(outKey(e.Source, e.Type, e.ID), []byte(e.Target)); err != nil {
		return err
	}

	return txn.Set(inKey(e.Target, e.Type, e.ID), []byte(e.Source))
}

func deleteEdgeKeys(txn *badger.Txn, e pathfind.Edge) error {
	for _, k := range [][]byte{edgeKey(e.ID), outKey(e.From, e.Type, e.ID), inKey(e.To, e.Type, e.ID)} {
		if err := txn.Delete(k); err != nil {
			return err
		}
	}

	return nil
}
