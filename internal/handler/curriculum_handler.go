package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/victor-POL/mi-uni-api/internal/models"
	"github.com/victor-POL/mi-uni-api/internal/service"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
	"github.com/victor-POL/mi-uni-api/pkg/response"
)

// CurriculumHandler exposes the plan catalog and prerequisite graph.
type CurriculumHandler struct {
	curriculum *service.CurriculumService
	filter     *service.FilterService
}

// NewCurriculumHandler constructs handler.
func NewCurriculumHandler(curriculum *service.CurriculumService, filter *service.FilterService) *CurriculumHandler {
	return &CurriculumHandler{curriculum: curriculum, filter: filter}
}

// ListPlans godoc
// @Summary List study plans
// @Tags Curriculum
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /plans [get]
func (h *CurriculumHandler) ListPlans(c *gin.Context) {
	plans, err := h.curriculum.ListPlans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plans, nil)
}

// ListSubjects godoc
// @Summary List, filter and group a plan's subjects
// @Tags Curriculum
// @Produce json
// @Param planId path string true "Plan ID"
// @Param year query int false "Plan year"
// @Param semester query int false "Semester slot (0 annual, 1, 2)"
// @Param name query string false "Name substring"
// @Param status query string false "Subject status"
// @Param weeklyHours query int false "Weekly hours"
// @Param prerequisiteName query string false "Prerequisite name (replaces other filters)"
// @Success 200 {object} response.Envelope
// @Router /plans/{planId}/subjects [get]
func (h *CurriculumHandler) ListSubjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	criteria, err := parseFilterCriteria(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.filter.FilterSubjects(c.Request.Context(), userID, c.Param("planId"), criteria)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Prerequisites godoc
// @Summary List a subject's prerequisites
// @Tags Curriculum
// @Produce json
// @Param planId path string true "Plan ID"
// @Param subjectId path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /plans/{planId}/subjects/{subjectId}/prerequisites [get]
func (h *CurriculumHandler) Prerequisites(c *gin.Context) {
	subjects, err := h.curriculum.PrerequisitesOf(c.Request.Context(), c.Param("planId"), c.Param("subjectId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// Unlocks godoc
// @Summary List the subjects a given subject unlocks
// @Tags Curriculum
// @Produce json
// @Param planId path string true "Plan ID"
// @Param subjectId path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /plans/{planId}/subjects/{subjectId}/unlocks [get]
func (h *CurriculumHandler) Unlocks(c *gin.Context) {
	subjects, err := h.curriculum.DependentsOf(c.Request.Context(), c.Param("planId"), c.Param("subjectId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

func parseFilterCriteria(c *gin.Context) (models.SubjectFilterCriteria, error) {
	criteria := models.SubjectFilterCriteria{
		Name:             c.Query("name"),
		PrerequisiteName: c.Query("prerequisiteName"),
	}

	for _, param := range []struct {
		key  string
		dest **int
	}{
		{"year", &criteria.Year},
		{"semester", &criteria.Semester},
		{"weeklyHours", &criteria.WeeklyHours},
	} {
		raw := c.Query(param.key)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return criteria, appErrors.Clone(appErrors.ErrValidation, "invalid "+param.key)
		}
		*param.dest = &value
	}

	if raw := c.Query("status"); raw != "" {
		status := models.SubjectStatus(raw)
		if !models.ValidSubjectStatus(status) {
			return criteria, appErrors.Clone(appErrors.ErrValidation, "unknown subject status")
		}
		criteria.Status = &status
	}
	return criteria, nil
}
