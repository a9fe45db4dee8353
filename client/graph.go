package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GraphService handles graph queries.
type GraphService struct {
	c *Client
}

// Neighbors returns the edges around a node and the nodes at their far ends.
func (s *GraphService) Neighbors(ctx context.Context, id string, opts *NeighborOptions) (*NeighborResult, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Direction != "" {
			params.Set("direction", opts.Direction)
		}
		for _, t := range opts.Types {
			params.Add("type", t)
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
	}
	var resp NeighborResult
	if err := s.c.get(ctx, "/api/v1/graph/neighbors/"+url.PathEscape(id), params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Paths returns the paths of exactly opts.Depth edges between two nodes.
func (s *GraphService) Paths(ctx context.Context, fromID, toID string, opts PathOptions) (*PathResult, error) {
	var resp PathResult
	if err := s.c.get(ctx, pathURL("paths", fromID, toID), opts.values(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Path returns one path of exactly opts.Depth edges. When none exists the
// error satisfies IsNotFound.
func (s *GraphService) Path(ctx context.Context, fromID, toID string, opts PathOptions) (*Path, error) {
	var resp Path
	if err := s.c.get(ctx, pathURL("path", fromID, toID), opts.values(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func pathURL(kind, fromID, toID string) string {
	return fmt.Sprintf("/api/v1/graph/%s/%s/%s", kind, url.PathEscape(fromID), url.PathEscape(toID))
}

func (o PathOptions) values() url.Values {
	params := url.Values{}
	params.Set("depth", strconv.Itoa(o.Depth))
	if o.Bound != nil {
		params.Set("bound", strconv.Itoa(*o.Bound))
	}
	if o.AllowLoops {
		params.Set("loops", "true")
	}
	if o.Direction != "" {
		params.Set("direction", o.Direction)
	}
	for _, t := range o.Types {
		params.Add("type", t)
	}
	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}
	return params
}
