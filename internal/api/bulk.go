package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/graphkernel/internal/models"
)

// maxBulkItems caps the number of records in one bulk request.
const maxBulkItems = 1000

// BulkHandler serves batch operation endpoints.
type BulkHandler struct {
	repo BulkService
	log  *logrus.Logger
}

// NewBulkHandler creates a BulkHandler with the given service and logger.
func NewBulkHandler(repo BulkService, log *logrus.Logger) *BulkHandler {
	return &BulkHandler{repo: repo, log: log}
}

// BulkNodes handles POST /api/v1/bulk/nodes.
func (h *BulkHandler) BulkNodes(c *gin.Context) {
	var reqs []models.CreateNodeRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if len(reqs) > maxBulkItems {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, "bulk request exceeds maximum of 1000 items")

		return
	}

	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, "item "+strconv.Itoa(i)+": "+err.Error())

			return
		}
	}

	count, err := h.repo.BulkUpsertNodes(c.Request.Context(), reqs)
	if err != nil {
		h.log.WithError(err).Error("bulk upserting nodes")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithField("upserted", count).Debug("bulk.nodes")

	c.JSON(http.StatusOK, gin.H{"upserted": count})
}

// BulkEdges handles POST /api/v1/bulk/edges.
func (h *BulkHandler) BulkEdges(c *gin.Context) {
	var reqs []models.CreateEdgeRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if len(reqs) > maxBulkItems {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, "bulk request exceeds maximum of 1000 items")

		return
	}

	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, "item "+strconv.Itoa(i)+": "+err.Error())

			return
		}
	}

	count, err := h.repo.BulkUpsertEdges(c.Request.Context(), reqs)
	if err != nil {
		if errors.Is(err, models.ErrNodeNotFound) {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

			return
		}

		h.log.WithError(err).Error("bulk upserting edges")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithField("upserted", count).Debug("bulk.edges")

	c.JSON(http.StatusOK, gin.H{"upserted": count})
}
