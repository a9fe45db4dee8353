package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/persistorai/graphkernel/internal/api"
	"github.com/persistorai/graphkernel/internal/models"
)

func edgeRouter(repo api.EdgeService) *gin.Engine {
	r := gin.New()
	h := api.NewEdgeHandler(repo, testLogger())
	r.GET("/edges", h.List)
	r.POST("/edges", h.Create)
	r.GET("/edges/:id", h.Get)
	r.DELETE("/edges/:id", h.Delete)

	return r
}

func TestEdgeCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		createFn func(context.Context, models.CreateEdgeRequest) (*models.Edge, error)
		want     int
	}{
		{
			name: "valid",
			body: `{"id":"e1","type":"KNOWS","source":"a","target":"b"}`,
			createFn: func(_ context.Context, req models.CreateEdgeRequest) (*models.Edge, error) {
				return &models.Edge{ID: req.ID, Type: req.Type, Source: req.Source, Target: req.Target}, nil
			},
			want: http.StatusCreated,
		},
		{name: "missing type", body: `{"source":"a","target":"b"}`, want: http.StatusBadRequest},
		{name: "missing target", body: `{"type":"KNOWS","source":"a"}`, want: http.StatusBadRequest},
		{
			name: "missing endpoint",
			body: `{"type":"KNOWS","source":"a","target":"ghost"}`,
			createFn: func(context.Context, models.CreateEdgeRequest) (*models.Edge, error) {
				return nil, fmt.Errorf("target node %q: %w", "ghost", models.ErrNodeNotFound)
			},
			want: http.StatusBadRequest,
		},
		{
			name: "duplicate",
			body: `{"id":"e1","type":"KNOWS","source":"a","target":"b"}`,
			createFn: func(context.Context, models.CreateEdgeRequest) (*models.Edge, error) {
				return nil, models.ErrDuplicateKey
			},
			want: http.StatusConflict,
		},
		{
			name: "store failure",
			body: `{"type":"KNOWS","source":"a","target":"b"}`,
			createFn: func(context.Context, models.CreateEdgeRequest) (*models.Edge, error) {
				return nil, errBoom
			},
			want: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := doRequest(edgeRouter(&mockEdgeService{createFn: tc.createFn}), http.MethodPost, "/edges", tc.body)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestEdgeList_Filter(t *testing.T) {
	t.Parallel()

	var got models.EdgeFilter

	repo := &mockEdgeService{
		listFn: func(_ context.Context, filter models.EdgeFilter, _, _ int) ([]models.Edge, bool, error) {
			got = filter

			return nil, false, nil
		},
	}

	w := doRequest(edgeRouter(repo), http.MethodGet, "/edges?node=a&type=KNOWS", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if got.NodeID != "a" || got.Type != "KNOWS" {
		t.Errorf("filter = %+v, want node a and type KNOWS", got)
	}
}

func TestEdgeGetAndDelete(t *testing.T) {
	t.Parallel()

	repo := &mockEdgeService{
		getFn: func(_ context.Context, edgeID string) (*models.Edge, error) {
			if edgeID == "e1" {
				return &models.Edge{ID: edgeID}, nil
			}

			return nil, models.ErrEdgeNotFound
		},
		deleteFn: func(_ context.Context, edgeID string) error {
			if edgeID == "e1" {
				return nil
			}

			return models.ErrEdgeNotFound
		},
	}
	r := edgeRouter(repo)

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/edges/e1", http.StatusOK},
		{http.MethodGet, "/edges/ghost", http.StatusNotFound},
		{http.MethodDelete, "/edges/e1", http.StatusNoContent},
		{http.MethodDelete, "/edges/ghost", http.StatusNotFound},
	}

	for _, tc := range tests {
		if w := doRequest(r, tc.method, tc.path, ""); w.Code != tc.want {
			t.Errorf("%s %s: expected %d, got %d", tc.method, tc.path, tc.want, w.Code)
		}
	}
}
