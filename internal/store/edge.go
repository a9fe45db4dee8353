package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/persistorai/graphkernel/internal/models"
)

// EdgeStore provides edge CRUD operations.
type EdgeStore struct {
	Base
}

// NewEdgeStore creates a new EdgeStore.
func NewEdgeStore(base Base) *EdgeStore {
	return &EdgeStore{Base: base}
}

// CreateEdge inserts a new edge and returns the created record. Both
// endpoints must exist.
func (s *EdgeStore) CreateEdge(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating edge: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var sourceExists, targetExists bool

	err = tx.QueryRow(ctx,
		`SELECT
			EXISTS(SELECT 1 FROM kg_nodes WHERE id = $1),
			EXISTS(SELECT 1 FROM kg_nodes WHERE id = $2)`,
		req.Source, req.Target).Scan(&sourceExists, &targetExists)
	if err != nil {
		return nil, fmt.Errorf("checking source/target nodes: %w", err)
	}

	if !sourceExists {
		return nil, fmt.Errorf("source node %q: %w", req.Source, models.ErrNodeNotFound)
	}

	if !targetExists {
		return nil, fmt.Errorf("target node %q: %w", req.Target, models.ErrNodeNotFound)
	}

	propsJSON, err := json.Marshal(propsOrEmpty(req.Properties))
	if err != nil {
		return nil, fmt.Errorf("encoding edge properties: %w", err)
	}

	row := tx.QueryRow(ctx,
		`INSERT INTO kg_edges (id, type, source, target, properties)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+edgeColumns,
		req.ID, req.Type, req.Source, req.Target, propsJSON,
	)

	e, err := scanEdge(row.Scan)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return nil, models.ErrDuplicateKey
		case pgForeignKeyViolation:
			return nil, models.ErrNodeNotFound
		}

		return nil, fmt.Errorf("scanning created edge: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create edge: %w", err)
	}

	return e, nil
}

// DeleteEdge removes one edge by ID.
func (s *EdgeStore) DeleteEdge(ctx context.Context, edgeID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, `DELETE FROM kg_edges WHERE id = $1`, edgeID)
	if err != nil {
		return fmt.Errorf("deleting edge: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrEdgeNotFound
	}

	return nil
}
