package client

import (
	"context"
	"net/url"
)

// EdgeService handles edge CRUD operations.
type EdgeService struct {
	c *Client
}

// List returns edges with optional filtering and pagination.
func (s *EdgeService) List(ctx context.Context, opts *EdgeListOptions) ([]Edge, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.NodeID != "" {
			params.Set("node", opts.NodeID)
		}
		if opts.Type != "" {
			params.Set("type", opts.Type)
		}
		setPaging(params, opts.Limit, opts.Offset)
	}
	var resp struct {
		Edges   []Edge `json:"edges"`
		HasMore bool   `json:"has_more"`
	}
	if err := s.c.get(ctx, "/api/v1/edges", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Edges, resp.HasMore, nil
}

// Get returns a single edge by ID.
func (s *EdgeService) Get(ctx context.Context, id string) (*Edge, error) {
	var edge Edge
	if err := s.c.get(ctx, "/api/v1/edges/"+url.PathEscape(id), nil, &edge); err != nil {
		return nil, err
	}
	return &edge, nil
}

// Create creates a new edge. Both endpoints must already exist.
func (s *EdgeService) Create(ctx context.Context, req *CreateEdgeRequest) (*Edge, error) {
	var edge Edge
	if err := s.c.post(ctx, "/api/v1/edges", req, &edge); err != nil {
		return nil, err
	}
	return &edge, nil
}

// Delete removes an edge by ID.
func (s *EdgeService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/edges/"+url.PathEscape(id))
}
