package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/victor-POL/mi-uni-api/internal/service"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
	"github.com/victor-POL/mi-uni-api/pkg/response"
)

// AcademicYearHandler exposes the per-user academic year scope.
type AcademicYearHandler struct {
	years *service.AcademicYearService
}

// NewAcademicYearHandler constructs handler.
func NewAcademicYearHandler(years *service.AcademicYearService) *AcademicYearHandler {
	return &AcademicYearHandler{years: years}
}

type changeYearRequest struct {
	Year int `json:"year" binding:"required"`
}

// Get godoc
// @Summary Get the current academic year scope
// @Tags AcademicYear
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /academic-year [get]
func (h *AcademicYearHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	scope, err := h.years.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scope, nil)
}

// Establish godoc
// @Summary Adopt the active term's year
// @Tags AcademicYear
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /academic-year [post]
func (h *AcademicYearHandler) Establish(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	scope, err := h.years.Establish(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, scope)
}

// Change godoc
// @Summary Change the academic year, dropping active courses
// @Tags AcademicYear
// @Accept json
// @Produce json
// @Param payload body changeYearRequest true "Target year"
// @Success 200 {object} response.Envelope
// @Router /academic-year [put]
func (h *AcademicYearHandler) Change(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req changeYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	scope, err := h.years.Change(c.Request.Context(), userID, req.Year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scope, nil)
}

// Clear godoc
// @Summary Clear the academic year, dropping active courses
// @Tags AcademicYear
// @Success 204
// @Router /academic-year [delete]
func (h *AcademicYearHandler) Clear(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.years.Clear(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
