package client

import (
	"context"
	"net/url"
	"strconv"
)

// NodeService handles node CRUD operations.
type NodeService struct {
	c *Client
}

// nodeListResponse wraps the paginated node list response.
type nodeListResponse struct {
	Nodes   []Node `json:"nodes"`
	HasMore bool   `json:"has_more"`
}

// List returns nodes with optional label filtering and pagination.
func (s *NodeService) List(ctx context.Context, opts *NodeListOptions) ([]Node, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Label != "" {
			params.Set("label", opts.Label)
		}
		setPaging(params, opts.Limit, opts.Offset)
	}
	var resp nodeListResponse
	if err := s.c.get(ctx, "/api/v1/nodes", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Nodes, resp.HasMore, nil
}

// Get returns a single node by ID.
func (s *NodeService) Get(ctx context.Context, id string) (*Node, error) {
	var node Node
	if err := s.c.get(ctx, "/api/v1/nodes/"+url.PathEscape(id), nil, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Create creates a new node.
func (s *NodeService) Create(ctx context.Context, req *CreateNodeRequest) (*Node, error) {
	var node Node
	if err := s.c.post(ctx, "/api/v1/nodes", req, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Delete removes a node and every edge attached to it.
func (s *NodeService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/nodes/"+url.PathEscape(id))
}

func setPaging(params url.Values, limit, offset int) {
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
}
