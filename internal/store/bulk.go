package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/persistorai/graphkernel/internal/models"
)

// maxBulkBatchSize limits the number of rows per INSERT statement to avoid
// exceeding PostgreSQL's parameter limit (65535 params).
const maxBulkBatchSize = 500

// BulkStore handles bulk upsert operations for nodes and edges.
type BulkStore struct {
	Base
}

// NewBulkStore creates a BulkStore with the given shared base.
func NewBulkStore(base Base) *BulkStore {
	return &BulkStore{Base: base}
}

// BulkUpsertNodes inserts or replaces nodes in a single transaction using
// multi-row INSERT ... ON CONFLICT. Returns the number of upserted rows.
func (s *BulkStore) BulkUpsertNodes(ctx context.Context, nodes []models.CreateNodeRequest) (int, error) {
	nodes = lastByID(nodes, func(n models.CreateNodeRequest) string { return n.ID })
	if len(nodes) == 0 {
		return 0, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("bulk upsert nodes: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	total := 0

	for i := 0; i < len(nodes); i += maxBulkBatchSize {
		batch := nodes[i:min(i+maxBulkBatchSize, len(nodes))]

		valueParts := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*3)

		for j, node := range batch {
			propsJSON, err := json.Marshal(propsOrEmpty(node.Properties))
			if err != nil {
				return 0, fmt.Errorf("encoding node %s properties: %w", node.ID, err)
			}

			base := j*3 + 1
			valueParts = append(valueParts, fmt.Sprintf("($%d, $%d, $%d)", base, base+1, base+2))
			args = append(args, node.ID, emptyIfNil(node.Labels), propsJSON)
		}

		sql := `INSERT INTO kg_nodes (id, labels, properties)
			VALUES ` + strings.Join(valueParts, ", ") + `
			ON CONFLICT (id) DO UPDATE
			SET labels = EXCLUDED.labels,
				properties = EXCLUDED.properties,
				updated_at = NOW()`

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return 0, fmt.Errorf("bulk upserting nodes batch: %w", err)
		}

		total += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing bulk upsert nodes: %w", err)
	}

	s.Log.WithField("count", total).Debug("bulk upserted nodes")

	return total, nil
}

// BulkUpsertEdges inserts or replaces edges in a single transaction. Every
// endpoint must already exist; otherwise nothing is written and the error
// wraps models.ErrNodeNotFound.
func (s *BulkStore) BulkUpsertEdges(ctx context.Context, edges []models.CreateEdgeRequest) (int, error) {
	edges = lastByID(edges, func(e models.CreateEdgeRequest) string { return e.ID })
	if len(edges) == 0 {
		return 0, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("bulk upsert edges: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	total := 0

	for i := 0; i < len(edges); i += maxBulkBatchSize {
		batch := edges[i:min(i+maxBulkBatchSize, len(edges))]

		valueParts := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*5)

		for j, edge := range batch {
			propsJSON, err := json.Marshal(propsOrEmpty(edge.Properties))
			if err != nil {
				return 0, fmt.Errorf("encoding edge %s properties: %w", edge.ID, err)
			}

			base := j*5 + 1
			valueParts = append(valueParts, fmt.Sprintf(
				"($%d, $%d, $%d, $%d, $%d)",
				base, base+1, base+2, base+3, base+4,
			))
			args = append(args, edge.ID, edge.Type, edge.Source, edge.Target, propsJSON)
		}

		sql := `INSERT INTO kg_edges (id, type, source, target, properties)
			VALUES ` + strings.Join(valueParts, ", ") + `
			ON CONFLICT (id) DO UPDATE
			SET type = EXCLUDED.type,
				source = EXCLUDED.source,
				target = EXCLUDED.target,
				properties = EXCLUDED.properties`

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			if pgErrorCode(err) == pgForeignKeyViolation {
				return 0, fmt.Errorf("bulk upserting edges: %w", models.ErrNodeNotFound)
			}

			return 0, fmt.Errorf("bulk upserting edges batch: %w", err)
		}

		total += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing bulk upsert edges: %w", err)
	}

	s.Log.WithField("count", total).Debug("bulk upserted edges")

	return total, nil
}
