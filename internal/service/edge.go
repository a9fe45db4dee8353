package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/graphkernel/internal/domain"
	"github.com/persistorai/graphkernel/internal/models"
)

// EdgeStore is the data-access interface EdgeService depends on.
// It reuses domain.EdgeService since the method sets are identical, avoiding duplication.
type EdgeStore = domain.EdgeService

// Compile-time check: *EdgeService must satisfy domain.EdgeService.
var _ domain.EdgeService = (*EdgeService)(nil)

// EdgeService wraps EdgeStore with logging.
type EdgeService struct {
	store EdgeStore
	stats *StatsService
	log   *logrus.Logger
}

// NewEdgeService creates an EdgeService. stats may be nil.
func NewEdgeService(store EdgeStore, stats *StatsService, log *logrus.Logger) *EdgeService {
	return &EdgeService{store: store, stats: stats, log: log}
}

// ListEdges returns a paginated list of edges (pass-through).
func (s *EdgeService) ListEdges(
	ctx context.Context, filter models.EdgeFilter, limit, offset int,
) ([]models.Edge, bool, error) {
	return s.store.ListEdges(ctx, filter, limit, offset)
}

// GetEdge returns a single edge by ID (pass-through).
func (s *EdgeService) GetEdge(ctx context.Context, edgeID string) (*models.Edge, error) {
	return s.store.GetEdge(ctx, edgeID)
}

// CreateEdge creates an edge between two existing nodes.
func (s *EdgeService) CreateEdge(ctx context.Context, req models.CreateEdgeRequest) (*models.Edge, error) {
	edge, err := s.store.CreateEdge(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"edge_id": edge.ID,
		"type":    edge.Type,
		"source":  edge.Source,
		"target":  edge.Target,
	}).Debug("edge.create")
	s.stats.invalidate()

	return edge, nil
}

// DeleteEdge removes one edge.
func (s *EdgeService) DeleteEdge(ctx context.Context, edgeID string) error {
	if err := s.store.DeleteEdge(ctx, edgeID); err != nil {
		return err
	}

	s.log.WithField("edge_id", edgeID).Debug("edge.delete")
	s.stats.invalidate()

	return nil
}
