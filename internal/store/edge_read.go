package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/persistorai/graphkernel/internal/models"
)

// GetEdge returns a single edge by ID.
func (s *EdgeStore) GetEdge(ctx context.Context, edgeID string) (*models.Edge, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, `SELECT `+edgeColumns+` FROM kg_edges WHERE id = $1`, edgeID)

	e, err := scanEdge(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrEdgeNotFound
		}

		return nil, fmt.Errorf("getting edge: %w", err)
	}

	return e, nil
}

// ListEdges returns edges ordered by ID, narrowed by filter.
func (s *EdgeStore) ListEdges(ctx context.Context, filter models.EdgeFilter, limit, offset int) ([]models.Edge, bool, error) {
	limit, offset = clampPage(limit, offset)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	where := " WHERE TRUE"
	args := make([]any, 0, 4)

	if filter.NodeID != "" {
		args = append(args, filter.NodeID)
		where += fmt.Sprintf(" AND (source = $%d OR target = $%d)", len(args), len(args))
	}

	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}

	query := `SELECT ` + edgeColumns + ` FROM kg_edges` + where +
		fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit+1, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	edges, err := collectEdges(rows)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(edges) > limit
	if hasMore {
		edges = edges[:limit]
	}

	return edges, hasMore, nil
}
