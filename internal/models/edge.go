package models

import (
	"time"

	"github.com/google/uuid"
)

// Edge represents a directed, typed relationship between two nodes. Two
// edges between the same pair of nodes are distinct records.
type Edge struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"created_at"`
}

// CreateEdgeRequest is the payload for creating a new edge.
type CreateEdgeRequest struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Validate checks that required fields are present and within limits on CreateEdgeRequest.
// If ID is empty, a UUID is auto-generated.
func (r *CreateEdgeRequest) Validate() error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	if err := validateID("id", r.ID); err != nil {
		return err
	}

	if r.Source == "" {
		return ErrMissingSource
	}

	if err := validateID("source", r.Source); err != nil {
		return err
	}

	if r.Target == "" {
		return ErrMissingTarget
	}

	if err := validateID("target", r.Target); err != nil {
		return err
	}

	if r.Type == "" {
		return ErrMissingType
	}

	if err := validateID("type", r.Type); err != nil {
		return err
	}

	return validateProperties(r.Properties)
}

// EdgeFilter narrows ListEdges. NodeID matches either endpoint.
type EdgeFilter struct {
	NodeID string
	Type   string
}
