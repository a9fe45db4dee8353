package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/persistorai/graphkernel/internal/models"
	"github.com/persistorai/graphkernel/internal/pathfind"
)

// CreateNode stores a new node.
func (s *Store) CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error) {
	now := time.Now().UTC()
	n := &models.Node{
		ID:         req.ID,
		Labels:     labelsOrEmpty(req.Labels),
		Properties: propsOrEmpty(req.Properties),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.update(ctx, func(txn *badger.Txn) error {
		found, err := exists(txn, nodeKey(n.ID))
		if err != nil {
			return err
		}

		if found {
			return models.ErrDuplicateKey
		}

		return setJSON(txn, nodeKey(n.ID), n)
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			return nil, err
		}

		return nil, fmt.Errorf("creating node: %w", err)
	}

	return n, nil
}

// GetNode returns one node.
func (s *Store) GetNode(ctx context.Context, nodeID string) (*models.Node, error) {
	var n models.Node

	err := s.view(ctx, func(txn *badger.Txn) error {
		return getJSON(txn, nodeKey(nodeID), &n)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, models.ErrNodeNotFound
		}

		return nil, fmt.Errorf("getting node: %w", err)
	}

	return &n, nil
}

// ListNodes returns nodes in ID order, optionally only those carrying label.
func (s *Store) ListNodes(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error) {
	limit, offset = clampPage(limit, offset)
	nodes := make([]models.Node, 0, limit+1)

	err := s.view(ctx, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix(tagNode)

		it := txn.NewIterator(opts)
		defer it.Close()

		skipped := 0

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix) && len(nodes) <= limit; it.Next() {
			var n models.Node
			if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &n) }); err != nil {
				return err
			}

			if label != "" && !n.HasLabel(label) {
				continue
			}

			if skipped < offset {
				skipped++

				continue
			}

			nodes = append(nodes, n)
		}

		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("listing nodes: %w", err)
	}

	hasMore := len(nodes) > limit
	if hasMore {
		nodes = nodes[:limit]
	}

	return nodes, hasMore, nil
}

// DeleteNode removes a node and every edge attached to it.
func (s *Store) DeleteNode(ctx context.Context, nodeID string) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		found, err := exists(txn, nodeKey(nodeID))
		if err != nil {
			return err
		}

		if !found {
			return models.ErrNodeNotFound
		}

		// Read-write transactions allow one iterator; finish the scan
		// before deleting.
		adjs, err := collectAdjacency(txn, nodeID, pathfind.Both, nil)
		if err != nil {
			return err
		}

		for _, a := range adjs {
			if err := deleteEdgeKeys(txn, a.toEdge()); err != nil {
				return err
			}
		}

		return txn.Delete(nodeKey(nodeID))
	})
	if err != nil {
		if errors.Is(err, models.ErrNodeNotFound) {
			return err
		}

		return fmt.Errorf("deleting node: %w", err)
	}

	return nil
}
