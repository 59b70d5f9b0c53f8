package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victor-POL/mi-uni-api/internal/models"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
)

type mockCourseRepo struct {
	courses  map[string]*models.Course
	details  []models.CourseDetail
	startErr error
}

func (m *mockCourseRepo) Find(ctx context.Context, userID int64, planID, subjectID string) (*models.Course, error) {
	course, ok := m.courses[recordKey(planID, subjectID)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return course, nil
}

func (m *mockCourseRepo) Exists(ctx context.Context, userID int64, planID, subjectID string) (bool, error) {
	_, ok := m.courses[recordKey(planID, subjectID)]
	return ok, nil
}

func (m *mockCourseRepo) Start(ctx context.Context, course *models.Course) error {
	if m.startErr != nil {
		return m.startErr
	}
	if m.courses == nil {
		m.courses = make(map[string]*models.Course)
	}
	m.courses[recordKey(course.PlanID, course.SubjectID)] = course
	return nil
}

func (m *mockCourseRepo) UpdateGrades(ctx context.Context, userID int64, planID, subjectID string, patch models.CourseGradePatch) error {
	course, ok := m.courses[recordKey(planID, subjectID)]
	if !ok {
		return sql.ErrNoRows
	}
	if patch.FirstPartial != nil {
		course.FirstPartial = patch.FirstPartial
	}
	if patch.SecondPartial != nil {
		course.SecondPartial = patch.SecondPartial
	}
	if patch.FirstMakeup != nil {
		course.FirstMakeup = patch.FirstMakeup
	}
	if patch.SecondMakeup != nil {
		course.SecondMakeup = patch.SecondMakeup
	}
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, userID int64, planID, subjectID string) error {
	key := recordKey(planID, subjectID)
	if _, ok := m.courses[key]; !ok {
		return sql.ErrNoRows
	}
	delete(m.courses, key)
	return nil
}

func (m *mockCourseRepo) ListByUser(ctx context.Context, userID int64) ([]models.CourseDetail, error) {
	return m.details, nil
}

type mockSubjectChecker struct {
	inPlan map[string]bool
}

func (m *mockSubjectChecker) SubjectInPlan(ctx context.Context, planID, subjectID string) (bool, error) {
	return m.inPlan[subjectID], nil
}

func newCourseFixture() (*CourseService, *mockCourseRepo, *mockYearRepo) {
	courses := &mockCourseRepo{}
	years := &mockYearRepo{scope: &models.AcademicYearScope{UserID: 7, Year: 2025}}
	careers := &mockCareerRepo{enrolled: map[string]bool{"plan-1": true}}
	subjects := &mockSubjectChecker{inPlan: map[string]bool{"sub-1": true}}
	return NewCourseService(courses, careers, subjects, years, nil), courses, years
}

func TestStartCourseSucceeds(t *testing.T) {
	svc, courses, _ := newCourseFixture()

	course, err := svc.StartCourse(context.Background(), 7, "plan-1", "sub-1")
	require.NoError(t, err)
	assert.Nil(t, course.FirstPartial)
	assert.Len(t, courses.courses, 1)
}

func TestStartCourseRequiresEnrollment(t *testing.T) {
	svc := NewCourseService(&mockCourseRepo{}, &mockCareerRepo{}, &mockSubjectChecker{}, &mockYearRepo{}, nil)

	_, err := svc.StartCourse(context.Background(), 7, "plan-1", "sub-1")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotEnrolledInPlan.Code, appErr.Code)
}

func TestStartCourseRejectsForeignSubject(t *testing.T) {
	svc, _, _ := newCourseFixture()

	_, err := svc.StartCourse(context.Background(), 7, "plan-1", "other-plan-subject")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrSubjectNotInPlan.Code, appErr.Code)
}

func TestStartCourseRequiresAcademicYear(t *testing.T) {
	svc, _, years := newCourseFixture()
	years.scope = nil

	_, err := svc.StartCourse(context.Background(), 7, "plan-1", "sub-1")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNoAcademicYear.Code, appErr.Code)
}

func TestStartCourseAlreadyInProgress(t *testing.T) {
	svc, _, _ := newCourseFixture()

	_, err := svc.StartCourse(context.Background(), 7, "plan-1", "sub-1")
	require.NoError(t, err)

	_, err = svc.StartCourse(context.Background(), 7, "plan-1", "sub-1")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrAlreadyInProgress.Code, appErr.Code)
}

func TestRecordGradesRoundTrip(t *testing.T) {
	svc, _, _ := newCourseFixture()
	_, err := svc.StartCourse(context.Background(), 7, "plan-1", "sub-1")
	require.NoError(t, err)

	course, err := svc.RecordGrades(context.Background(), 7, "plan-1", "sub-1", models.CourseGradePatch{
		FirstPartial:  ptrFloat(6),
		SecondPartial: ptrFloat(8),
	})
	require.NoError(t, err)
	require.NotNil(t, course.FirstPartial)
	assert.InDelta(t, 6, *course.FirstPartial, 0.001)

	// A later patch touches only one slot and preserves the rest.
	course, err = svc.RecordGrades(context.Background(), 7, "plan-1", "sub-1", models.CourseGradePatch{
		FirstMakeup: ptrFloat(7),
	})
	require.NoError(t, err)
	require.NotNil(t, course.SecondPartial)
	assert.InDelta(t, 8, *course.SecondPartial, 0.001)
	require.NotNil(t, course.Average())
	assert.InDelta(t, 7.5, *course.Average(), 0.001)
}

func TestRecordGradesRejectsEmptyPatch(t *testing.T) {
	svc, _, _ := newCourseFixture()

	_, err := svc.RecordGrades(context.Background(), 7, "plan-1", "sub-1", models.CourseGradePatch{})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestRecordGradesRejectsOutOfRange(t *testing.T) {
	svc, _, _ := newCourseFixture()

	_, err := svc.RecordGrades(context.Background(), 7, "plan-1", "sub-1", models.CourseGradePatch{
		FirstPartial: ptrFloat(0.5),
	})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidGrade.Code, appErr.Code)
}

func TestEndCourseNotFound(t *testing.T) {
	svc, _, _ := newCourseFixture()

	err := svc.EndCourse(context.Background(), 7, "plan-1", "sub-1")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
