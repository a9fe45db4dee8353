package ws

import "github.com/persistorai/graphkernel/internal/models"

// Message types sent on a path stream.
const (
	TypePath  = "path"
	TypeDone  = "done"
	TypeError = "error"
)

// PathMsg carries one path.
type PathMsg struct {
	Type string      `json:"type"`
	Seq  int         `json:"seq"`
	Path models.Path `json:"path"`
}

// DoneMsg ends a successful stream.
type DoneMsg struct {
	Type  string            `json:"type"`
	Count int               `json:"count"`
	Stats *models.PathStats `json:"stats,omitempty"`
}

// ErrorMsg ends a failed stream.
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
