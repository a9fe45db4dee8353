package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/persistorai/graphkernel/internal/models"
)

// GetNode returns a single node by ID.
func (s *NodeStore) GetNode(ctx context.Context, nodeID string) (*models.Node, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, `SELECT `+nodeColumns+` FROM kg_nodes WHERE id = $1`, nodeID)

	n, err := scanNode(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNodeNotFound
		}

		return nil, fmt.Errorf("getting node: %w", err)
	}

	return n, nil
}

// ListNodes returns nodes ordered by ID, optionally only those carrying
// label. The boolean reports whether more rows follow.
func (s *NodeStore) ListNodes(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error) {
	limit, offset = clampPage(limit, offset)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + nodeColumns + ` FROM kg_nodes`
	args := make([]any, 0, 3)

	if label != "" {
		query += ` WHERE $1 = ANY(labels)`
		args = append(args, label)
	}

	query += fmt.Sprintf(` ORDER BY id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit+1, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	nodes, err := collectNodes(rows)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(nodes) > limit
	if hasMore {
		nodes = nodes[:limit]
	}

	return nodes, hasMore, nil
}

// getNodes fetches the nodes with the given IDs inside tx.
func getNodes(ctx context.Context, tx pgx.Tx, ids []string) ([]models.Node, error) {
	if len(ids) == 0 {
		return []models.Node{}, nil
	}

	rows, err := tx.Query(ctx, `SELECT `+nodeColumns+` FROM kg_nodes WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("querying nodes by id: %w", err)
	}
	defer rows.Close()

	return collectNodes(rows)
}
