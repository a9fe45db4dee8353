package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/persistorai/graphkernel/internal/domain"
	"github.com/persistorai/graphkernel/internal/models"
	"github.com/persistorai/graphkernel/internal/pathfind"
)

// Graph query limits.
const (
	defaultEdgesPerQuery = 100  // default edges in neighbor queries
	maxEdgesPerQuery     = 1000 // caps edges in neighbor queries
)

// GraphStore serves graph reads: neighborhoods and the read views path
// searches traverse.
type GraphStore struct {
	Base
}

// NewGraphStore creates a GraphStore with the given shared base.
func NewGraphStore(base Base) *GraphStore {
	return &GraphStore{Base: base}
}

// traversalColumns is all a path search needs of an edge.
const traversalColumns = `id, type, source, target`

// relationshipsSQL builds the adjacency query for one node. $1 is the node
// and $2, when types is true, the type list. Results are ordered by edge ID
// so searches are repeatable.
func relationshipsSQL(columns string, dir pathfind.Direction, types bool, limit int) string {
	cols := `SELECT ` + columns + ` FROM kg_edges WHERE `

	typeFilter := ""
	if types {
		typeFilter = ` AND type = ANY($2)`
	}

	var sql string

	switch dir {
	case pathfind.Outgoing:
		sql = cols + `source = $1` + typeFilter
	case pathfind.Incoming:
		sql = cols + `target = $1` + typeFilter
	default:
		// A self-loop matches both halves; keep it in the first only.
		sql = `(` + cols + `source = $1` + typeFilter + `)
			UNION ALL
			(` + cols + `target = $1 AND source <> $1` + typeFilter + `)`
	}

	sql += ` ORDER BY id`
	if limit > 0 {
		sql += fmt.Sprintf(` LIMIT %d`, limit)
	}

	return sql
}

func relationshipsArgs(node string, types []string) []any {
	if len(types) == 0 {
		return []any{node}
	}

	return []any{node, types}
}

// Neighbors returns the edges attached to nodeID in direction dir, optionally
// narrowed to types, plus the nodes at their other ends.
func (s *GraphStore) Neighbors(
	ctx context.Context,
	nodeID string,
	dir pathfind.Direction,
	types []string,
	limit int,
) (*models.NeighborResult, error) {
	if limit <= 0 {
		limit = defaultEdgesPerQuery
	}

	if limit > maxEdgesPerQuery {
		limit = maxEdgesPerQuery
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting neighbors: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	exists, err := nodeExists(ctx, tx, nodeID)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, models.ErrNodeNotFound
	}

	rows, err := tx.Query(ctx, relationshipsSQL(edgeColumns, dir, len(types) > 0, limit), relationshipsArgs(nodeID, types)...)
	if err != nil {
		return nil, fmt.Errorf("querying neighbor edges: %w", err)
	}

	edges, err := collectEdges(rows)
	rows.Close()

	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(edges))
	ids := make([]string, 0, len(edges))

	for _, e := range edges {
		other := e.Target
		if other == nodeID {
			other = e.Source
		}

		if !seen[other] {
			seen[other] = true
			ids = append(ids, other)
		}
	}

	nodes, err := getNodes(ctx, tx, ids)
	if err != nil {
		return nil, fmt.Errorf("collecting neighbor nodes: %w", err)
	}

	return &models.NeighborResult{Nodes: nodes, Edges: edges}, nil
}

func nodeExists(ctx context.Context, tx pgx.Tx, nodeID string) (bool, error) {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM kg_nodes WHERE id = $1)`, nodeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking node existence: %w", err)
	}

	return exists, nil
}

// OpenReader starts a read-only snapshot for one path search. The caller
// must Close the reader.
func (s *GraphStore) OpenReader(ctx context.Context) (domain.GraphReader, error) {
	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening graph reader: %w", err)
	}

	return &graphReader{tx: tx, log: s.Log}, nil
}
