package store

import (
	"context"
	"fmt"

	"github.com/persistorai/graphkernel/internal/models"
)

// StatsStore computes aggregate counts.
type StatsStore struct {
	Base
}

// NewStatsStore creates a StatsStore.
func NewStatsStore(base Base) *StatsStore {
	return &StatsStore{Base: base}
}

// Stats returns node and edge counts.
func (s *StatsStore) Stats(ctx context.Context) (*models.GraphStats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var st models.GraphStats

	err := s.Pool.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM kg_nodes), (SELECT COUNT(*) FROM kg_edges)`,
	).Scan(&st.Nodes, &st.Edges)
	if err != nil {
		return nil, fmt.Errorf("counting graph: %w", err)
	}

	return &st, nil
}
