package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/graphkernel/internal/domain"
	"github.com/persistorai/graphkernel/internal/models"
)

// NodeStore is the data-access interface NodeService depends on.
// It reuses domain.NodeService since the method sets are identical, avoiding duplication.
type NodeStore = domain.NodeService

// Compile-time check: *NodeService must satisfy domain.NodeService.
var _ domain.NodeService = (*NodeService)(nil)

// NodeService wraps NodeStore with logging and keeps the node gauge current.
type NodeService struct {
	store NodeStore
	stats *StatsService
	log   *logrus.Logger
}

// NewNodeService creates a NodeService. stats may be nil.
func NewNodeService(store NodeStore, stats *StatsService, log *logrus.Logger) *NodeService {
	return &NodeService{store: store, stats: stats, log: log}
}

// ListNodes returns a paginated list of nodes (pass-through).
func (s *NodeService) ListNodes(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error) {
	return s.store.ListNodes(ctx, label, limit, offset)
}

// GetNode returns a single node by ID (pass-through).
func (s *NodeService) GetNode(ctx context.Context, nodeID string) (*models.Node, error) {
	return s.store.GetNode(ctx, nodeID)
}

// CreateNode creates a node.
func (s *NodeService) CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error) {
	node, err := s.store.CreateNode(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"node_id": node.ID, "labels": node.Labels}).Debug("node.create")
	s.stats.invalidate()

	return node, nil
}

// DeleteNode removes a node and its edges.
func (s *NodeService) DeleteNode(ctx context.Context, nodeID string) error {
	if err := s.store.DeleteNode(ctx, nodeID); err != nil {
		return err
	}

	s.log.WithField("node_id", nodeID).Debug("node.delete")
	s.stats.invalidate()

	return nil
}
