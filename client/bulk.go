package client

import "context"

// MaxBulkItems is the most records the server accepts in one bulk request.
const MaxBulkItems = 1000

// BulkService handles batch upserts.
type BulkService struct {
	c *Client
}

type bulkResponse struct {
	Upserted int `json:"upserted"`
}

// Nodes upserts up to MaxBulkItems nodes in one transaction.
func (s *BulkService) Nodes(ctx context.Context, nodes []CreateNodeRequest) (int, error) {
	var resp bulkResponse
	if err := s.c.post(ctx, "/api/v1/bulk/nodes", nodes, &resp); err != nil {
		return 0, err
	}
	return resp.Upserted, nil
}

// Edges upserts up to MaxBulkItems edges in one transaction.
func (s *BulkService) Edges(ctx context.Context, edges []CreateEdgeRequest) (int, error) {
	var resp bulkResponse
	if err := s.c.post(ctx, "/api/v1/bulk/edges", edges, &resp); err != nil {
		return 0, err
	}
	return resp.Upserted, nil
}
