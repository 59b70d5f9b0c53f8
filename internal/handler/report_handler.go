package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/victor-POL/mi-uni-api/internal/models"
	"github.com/victor-POL/mi-uni-api/internal/service"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
	"github.com/victor-POL/mi-uni-api/pkg/response"
)

// ReportHandler serves rendered transcripts.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Transcript godoc
// @Summary Download the plan transcript
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param planId path string true "Plan ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /careers/{planId}/transcript [get]
func (h *ReportHandler) Transcript(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	raw := c.DefaultQuery("format", string(models.ReportFormatCSV))
	format, err := models.ParseReportFormat(raw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	file, err := h.reports.Transcript(c.Request.Context(), userID, c.Param("planId"), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Payload)
}
