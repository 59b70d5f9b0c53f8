package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/victor-POL/mi-uni-api/internal/service"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
	"github.com/victor-POL/mi-uni-api/pkg/response"
)

// ProgressHandler exposes derived progress statistics.
type ProgressHandler struct {
	progress *service.ProgressService
}

// NewProgressHandler constructs handler.
func NewProgressHandler(progress *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// PlanProgress godoc
// @Summary Progress snapshot for a plan
// @Tags Progress
// @Produce json
// @Param planId path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Router /careers/{planId}/progress [get]
func (h *ProgressHandler) PlanProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	snapshot, err := h.progress.ProgressFor(c.Request.Context(), userID, c.Param("planId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot, nil)
}

// InProgressSummary godoc
// @Summary Summary of the user's active courses
// @Tags Progress
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses/summary [get]
func (h *ProgressHandler) InProgressSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	summary, err := h.progress.InProgressSummaryFor(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
