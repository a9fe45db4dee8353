package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/persistorai/graphkernel/internal/models"
	"github.com/persistorai/graphkernel/internal/pathfind"
)

// BulkUpsertNodes inserts or replaces nodes in one transaction and returns
// the number of distinct nodes written. Replaced nodes keep their creation
// time.
func (s *Store) BulkUpsertNodes(ctx context.Context, nodes []models.CreateNodeRequest) (int, error) {
	if len(nodes) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	written := make(map[string]struct{}, len(nodes))

	err := s.update(ctx, func(txn *badger.Txn) error {
		for _, req := range nodes {
			n := models.Node{
				ID:         req.ID,
				Labels:     labelsOrEmpty(req.Labels),
				Properties: propsOrEmpty(req.Properties),
				CreatedAt:  now,
				UpdatedAt:  now,
			}

			var old models.Node

			err := getJSON(txn, nodeKey(req.ID), &old)
			switch {
			case err == nil:
				n.CreatedAt = old.CreatedAt
			case !errors.Is(err, badger.ErrKeyNotFound):
				return err
			}

			if err := setJSON(txn, nodeKey(n.ID), &n); err != nil {
				return err
			}

			written[n.ID] = struct{}{}
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("bulk upserting nodes: %w", err)
	}

	s.log.WithField("count", len(written)).Debug("bulk upserted nodes")

	return len(written), nil
}

// BulkUpsertEdges inserts or replaces edges in one transaction. Every
// endpoint must already exist; otherwise nothing is written and the error
// wraps models.ErrNodeNotFound.
func (s *Store) BulkUpsertEdges(ctx context.Context, edges []models.CreateEdgeRequest) (int, error) {
	if len(edges) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	written := make(map[string]struct{}, len(edges))

	err := s.update(ctx, func(txn *badger.Txn) error {
		for _, req := range edges {
			if err := checkEndpoints(txn, req.Source, req.Target); err != nil {
				return err
			}

			e := &models.Edge{
				ID:         req.ID,
				Type:       req.Type,
				Source:     req.Source,
				Target:     req.Target,
				Properties: propsOrEmpty(req.Properties),
				CreatedAt:  now,
			}

			var old models.Edge

			err := getJSON(txn, edgeKey(req.ID), &old)
			switch {
			case err == nil:
				e.CreatedAt = old.CreatedAt

				// The type or endpoints may change; drop the old index entries.
				if err := deleteEdgeKeys(txn, pathfind.Edge{ID: old.ID, Type: old.Type, From: old.Source, To: old.Target}); err != nil {
					return err
				}
			case !errors.Is(err, badger.ErrKeyNotFound):
				return err
			}

			if err := putEdge(txn, e); err != nil {
				return err
			}

			written[e.ID] = struct{}{}
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("bulk upserting edges: %w", err)
	}

	s.log.WithField("count", len(written)).Debug("bulk upserted edges")

	return len(written), nil
}
