// Package models defines data types for the graph kernel.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Node represents a vertex in the graph.
type Node struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// HasLabel reports whether the node carries label.
func (n *Node) HasLabel(label string) bool {
	for _, l := range n.Labels {
		if l == label {
			return true
		}
	}

	return false
}

// CreateNodeRequest is the payload for creating a new node.
type CreateNodeRequest struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Validate checks that fields are within limits on CreateNodeRequest.
// If ID is empty, a UUID is auto-generated.
func (r *CreateNodeRequest) Validate() error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	if err := validateID("id", r.ID); err != nil {
		return err
	}

	if len(r.Labels) > 32 {
		return ErrTooManyLabels
	}

	for _, l := range r.Labels {
		if l == "" {
			return ErrEmptyLabel
		}

		if len(l) > 100 {
			return ErrFieldTooLong("label", 100)
		}
	}

	return validateProperties(r.Properties)
}

// validateID rejects identifiers that are too long or contain NUL, which the
// embedded store uses as its key separator.
func validateID(field, id string) error {
	if len(id) > 255 {
		return ErrFieldTooLong(field, 255)
	}

	if strings.ContainsRune(id, 0) {
		return fmt.Errorf("%s: %w", field, ErrInvalidID)
	}

	return nil
}

func validateProperties(props map[string]any) error {
	if props == nil {
		return nil
	}

	data, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("invalid properties: %w", err)
	}

	if len(data) > 65536 {
		return ErrFieldTooLong("properties", 65536)
	}

	return nil
}
