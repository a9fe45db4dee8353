package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/persistorai/graphkernel/internal/models"
)

// NodeStore handles node CRUD operations.
type NodeStore struct {
	Base
}

// NewNodeStore creates a new NodeStore.
func NewNodeStore(base Base) *NodeStore {
	return &NodeStore{Base: base}
}

// CreateNode inserts a new node and returns the created record.
func (s *NodeStore) CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	propsJSON, err := json.Marshal(propsOrEmpty(req.Properties))
	if err != nil {
		return nil, fmt.Errorf("encoding node properties: %w", err)
	}

	row := s.Pool.QueryRow(ctx,
		`INSERT INTO kg_nodes (id, labels, properties) VALUES ($1, $2, $3)
		RETURNING `+nodeColumns,
		req.ID, emptyIfNil(req.Labels), propsJSON,
	)

	n, err := scanNode(row.Scan)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, models.ErrDuplicateKey
		}

		return nil, fmt.Errorf("scanning created node: %w", err)
	}

	return n, nil
}

// DeleteNode removes a node. Its edges go with it.
func (s *NodeStore) DeleteNode(ctx context.Context, nodeID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, `DELETE FROM kg_nodes WHERE id = $1`, nodeID)
	if err != nil {
		return fmt.Errorf("deleting node: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrNodeNotFound
	}

	return nil
}
