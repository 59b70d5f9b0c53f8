package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/victor-POL/mi-uni-api/internal/models"
	"github.com/victor-POL/mi-uni-api/internal/service"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
	"github.com/victor-POL/mi-uni-api/pkg/response"
)

// CourseHandler exposes in-progress coursework endpoints.
type CourseHandler struct {
	courses *service.CourseService
}

// NewCourseHandler constructs handler.
func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List godoc
// @Summary List the user's active courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	courses, err := h.courses.ListCourses(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// Start godoc
// @Summary Start a course for a plan subject
// @Tags Courses
// @Produce json
// @Param planId path string true "Plan ID"
// @Param subjectId path string true "Subject ID"
// @Success 201 {object} response.Envelope
// @Router /careers/{planId}/subjects/{subjectId}/course [post]
func (h *CourseHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	course, err := h.courses.StartCourse(c.Request.Context(), userID, c.Param("planId"), c.Param("subjectId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Get godoc
// @Summary Get a single active course
// @Tags Courses
// @Produce json
// @Param planId path string true "Plan ID"
// @Param subjectId path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /careers/{planId}/subjects/{subjectId}/course [get]
func (h *CourseHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	course, err := h.courses.GetCourse(c.Request.Context(), userID, c.Param("planId"), c.Param("subjectId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Grades godoc
// @Summary Record partial or makeup grades
// @Tags Courses
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param subjectId path string true "Subject ID"
// @Param payload body models.CourseGradePatch true "Grade slots"
// @Success 200 {object} response.Envelope
// @Router /careers/{planId}/subjects/{subjectId}/course/grades [patch]
func (h *CourseHandler) Grades(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var patch models.CourseGradePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.RecordGrades(c.Request.Context(), userID, c.Param("planId"), c.Param("subjectId"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// End godoc
// @Summary End a course
// @Tags Courses
// @Param planId path string true "Plan ID"
// @Param subjectId path string true "Subject ID"
// @Success 204
// @Router /careers/{planId}/subjects/{subjectId}/course [delete]
func (h *CourseHandler) End(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.courses.EndCourse(c.Request.Context(), userID, c.Param("planId"), c.Param("subjectId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
