package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/graphkernel/internal/models"
)

// GraphHandler serves graph query endpoints.
type GraphHandler struct {
	repo GraphService
	log  *logrus.Logger
}

// NewGraphHandler creates a GraphHandler with the given service and logger.
func NewGraphHandler(repo GraphService, log *logrus.Logger) *GraphHandler {
	return &GraphHandler{repo: repo, log: log}
}

// Neighbors handles GET /api/v1/graph/neighbors/:id?direction=&type=&limit=.
func (h *GraphHandler) Neighbors(c *gin.Context) {
	nodeID := c.Param("id")
	if err := validatePathID(nodeID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	limit := parseInt(c.DefaultQuery("limit", "100"), 100)

	result, err := h.repo.Neighbors(c.Request.Context(), nodeID, c.Query("direction"), queryTypes(c), limit)
	if err != nil {
		h.searchError(c, err, "getting neighbors")

		return
	}

	c.JSON(http.StatusOK, result)
}

// Paths handles GET /api/v1/graph/paths/:from/:to.
func (h *GraphHandler) Paths(c *gin.Context) {
	q, err := parsePathQuery(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	result, err := h.repo.FindPaths(c.Request.Context(), q)
	if err != nil {
		h.searchError(c, err, "finding paths")

		return
	}

	c.JSON(http.StatusOK, result)
}

// Path handles GET /api/v1/graph/path/:from/:to. It answers 404 when no
// path of the requested depth exists.
func (h *GraphHandler) Path(c *gin.Context) {
	q, err := parsePathQuery(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	path, err := h.repo.FindSinglePath(c.Request.Context(), q)
	if err != nil {
		h.searchError(c, err, "finding path")

		return
	}

	c.JSON(http.StatusOK, path)
}

func (h *GraphHandler) searchError(c *gin.Context, err error, action string) {
	status, code, message := classifySearchError(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).Error(action)
	}

	respondError(c, status, code, message)
}

// parsePathQuery reads a path query from the route and query string:
// depth (required), bound, loops, direction, type (repeatable) and limit.
func parsePathQuery(c *gin.Context) (models.PathQuery, error) {
	q := models.PathQuery{
		From:      c.Param("from"),
		To:        c.Param("to"),
		Direction: c.Query("direction"),
		Types:     queryTypes(c),
	}

	if err := validatePathID(q.From); err != nil {
		return q, fmt.Errorf("from: %w", err)
	}

	if err := validatePathID(q.To); err != nil {
		return q, fmt.Errorf("to: %w", err)
	}

	raw, ok := c.GetQuery("depth")
	if !ok {
		return q, errors.New("depth is required")
	}

	depth, err := strconv.Atoi(raw)
	if err != nil {
		return q, errors.New("depth must be an integer")
	}

	q.Depth = depth

	if raw, ok := c.GetQuery("bound"); ok {
		bound, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("bound must be an integer")
		}

		q.Bound = &bound
	}

	if raw, ok := c.GetQuery("loops"); ok {
		loops, err := strconv.ParseBool(raw)
		if err != nil {
			return q, errors.New("loops must be a boolean")
		}

		q.AllowLoops = loops
	}

	if raw, ok := c.GetQuery("limit"); ok {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("limit must be an integer")
		}

		q.Limit = limit
	}

	if err := q.Validate(); err != nil {
		return q, err
	}

	return q, nil
}
