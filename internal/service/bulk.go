package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/graphkernel/internal/domain"
	"github.com/persistorai/graphkernel/internal/models"
)

// BulkStore is the data-access interface BulkService depends on.
type BulkStore = domain.BulkService

// Compile-time check: *BulkService must satisfy domain.BulkService.
var _ domain.BulkService = (*BulkService)(nil)

// BulkService wraps BulkStore. Requests that repeat an ID are collapsed to
// the last occurrence before they reach the store.
type BulkService struct {
	store BulkStore
	stats *StatsService
	log   *logrus.Logger
}

// NewBulkService creates a BulkService. stats may be nil.
func NewBulkService(store BulkStore, stats *StatsService, log *logrus.Logger) *BulkService {
	return &BulkService{store: store, stats: stats, log: log}
}

// BulkUpsertNodes upserts nodes in one transaction.
func (s *BulkService) BulkUpsertNodes(ctx context.Context, nodes []models.CreateNodeRequest) (int, error) {
	nodes = lastOfEach(nodes, func(r models.CreateNodeRequest) string { return r.ID })

	count, err := s.store.BulkUpsertNodes(ctx, nodes)
	if err != nil {
		return 0, err
	}

	s.log.WithField("count", count).Debug("bulk.nodes")
	s.stats.invalidate()

	return count, nil
}

// BulkUpsertEdges upserts edges in one transaction.
func (s *BulkService) BulkUpsertEdges(ctx context.Context, edges []models.CreateEdgeRequest) (int, error) {
	edges = lastOfEach(edges, func(r models.CreateEdgeRequest) string { return r.ID })

	count, err := s.store.BulkUpsertEdges(ctx, edges)
	if err != nil {
		return 0, err
	}

	s.log.WithField("count", count).Debug("bulk.edges")
	s.stats.invalidate()

	return count, nil
}

// lastOfEach keeps the last item per key, in order of first appearance.
func lastOfEach[T any](items []T, key func(T) string) []T {
	pos := make(map[string]int, len(items))
	out := make([]T, 0, len(items))

	for _, item := range items {
		k := key(item)
		if i, ok := pos[k]; ok {
			out[i] = item

			continue
		}

		pos[k] = len(out)
		out = append(out, item)
	}

	return out
}
