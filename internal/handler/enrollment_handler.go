package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/victor-POL/mi-uni-api/internal/service"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
	"github.com/victor-POL/mi-uni-api/pkg/response"
)

// EnrollmentHandler exposes career enrollment and ledger endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentHandler constructs handler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// List godoc
// @Summary List the user's career enrollments
// @Tags Enrollments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /careers [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	enrollments, err := h.enrollments.ListEnrollments(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, nil)
}

// Join godoc
// @Summary Join a study plan
// @Tags Enrollments
// @Produce json
// @Param planId path string true "Plan ID"
// @Success 201 {object} response.Envelope
// @Router /careers/{planId} [post]
func (h *EnrollmentHandler) Join(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	enrollment, err := h.enrollments.JoinPlan(c.Request.Context(), userID, c.Param("planId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Leave godoc
// @Summary Leave a study plan
// @Tags Enrollments
// @Param planId path string true "Plan ID"
// @Success 204
// @Router /careers/{planId} [delete]
func (h *EnrollmentHandler) Leave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.enrollments.LeavePlan(c.Request.Context(), userID, c.Param("planId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Records godoc
// @Summary List the user's subject records for a plan
// @Tags Enrollments
// @Produce json
// @Param planId path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Router /careers/{planId}/records [get]
func (h *EnrollmentHandler) Records(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	records, err := h.enrollments.ListRecords(c.Request.Context(), userID, c.Param("planId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// SetStatus godoc
// @Summary Overwrite a subject record
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param subjectId path string true "Subject ID"
// @Param payload body service.SetStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /careers/{planId}/subjects/{subjectId}/status [put]
func (h *EnrollmentHandler) SetStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.enrollments.SetStatus(c.Request.Context(), userID, c.Param("planId"), c.Param("subjectId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}
