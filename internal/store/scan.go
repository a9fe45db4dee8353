package store

import (
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/persistorai/graphkernel/internal/models"
)

const (
	nodeColumns = `id, labels, properties, created_at, updated_at`
	edgeColumns = `id, type, source, target, properties, created_at`
)

type scanFunc func(dest ...any) error

func scanNode(scan scanFunc) (*models.Node, error) {
	var (
		n     models.Node
		props []byte
	)

	if err := scan(&n.ID, &n.Labels, &props, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}

	if err := decodeProps(props, &n.Properties); err != nil {
		return nil, fmt.Errorf("node %q: %w", n.ID, err)
	}

	return &n, nil
}

func scanEdge(scan scanFunc) (*models.Edge, error) {
	var (
		e     models.Edge
		props []byte
	)

	if err := scan(&e.ID, &e.Type, &e.Source, &e.Target, &props, &e.CreatedAt); err != nil {
		return nil, err
	}

	if err := decodeProps(props, &e.Properties); err != nil {
		return nil, fmt.Errorf("edge %q: %w", e.ID, err)
	}

	return &e, nil
}

// decodeProps unmarshals a JSONB properties column. NULL decodes to an
// empty map.
func decodeProps(raw []byte, dst *map[string]any) error {
	if len(raw) == 0 {
		*dst = map[string]any{}

		return nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshalling properties: %w", err)
	}

	if *dst == nil {
		*dst = map[string]any{}
	}

	return nil
}

// collectRows drains rows through scan. kind names the record type in errors.
func collectRows[T any](rows pgx.Rows, kind string, scan func(scanFunc) (*T, error)) ([]T, error) {
	out := make([]T, 0, 16)

	for rows.Next() {
		v, err := scan(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", kind, err)
		}

		out = append(out, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", kind, err)
	}

	return out, nil
}

func collectNodes(rows pgx.Rows) ([]models.Node, error) { return collectRows(rows, "node", scanNode) }

func collectEdges(rows pgx.Rows) ([]models.Edge, error) { return collectRows(rows, "edge", scanEdge) }
