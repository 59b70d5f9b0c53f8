package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victor-POL/mi-uni-api/internal/models"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
)

func planSubject(id, code, name string, year, semester, hours int) models.PlanSubjectDetail {
	return models.PlanSubjectDetail{
		SubjectID:   id,
		Code:        code,
		Name:        name,
		Type:        models.SubjectTypeRegular,
		WeeklyHours: hours,
		Year:        year,
		Semester:    semester,
	}
}

func samplePlan() []models.PlanSubjectDetail {
	return []models.PlanSubjectDetail{
		planSubject("s1", "MAT101", "Analisis Matematico I", 1, 1, 8),
		planSubject("s2", "ALG101", "Algebra y Geometria", 1, 1, 6),
		planSubject("s3", "FIS201", "Fisica I", 1, 2, 8),
		planSubject("s4", "MAT201", "Analisis Matematico II", 2, 1, 8),
		planSubject("s5", "LAB000", "Laboratorio Anual", 2, 0, 4),
	}
}

func fullStatusMap(status models.SubjectStatus) map[string]models.SubjectStatus {
	statuses := make(map[string]models.SubjectStatus)
	for _, subject := range samplePlan() {
		statuses[subject.SubjectID] = status
	}
	return statuses
}

func TestFilterGroupsAndOrders(t *testing.T) {
	result, err := Filter(samplePlan(), nil, models.SubjectFilterCriteria{})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Total)
	assert.False(t, result.StatusFilteringAvailable)

	require.Len(t, result.Groups, 4)
	assert.Equal(t, 1, result.Groups[0].Year)
	assert.Equal(t, 1, result.Groups[0].Semester)
	// Members within a group sort by code.
	require.Len(t, result.Groups[0].Subjects, 2)
	assert.Equal(t, "ALG101", result.Groups[0].Subjects[0].Code)
	assert.Equal(t, "MAT101", result.Groups[0].Subjects[1].Code)
	// Annual (semester 0) sorts before semester 1 within year 2.
	assert.Equal(t, 2, result.Groups[2].Year)
	assert.Equal(t, 0, result.Groups[2].Semester)
}

func TestFilterCombinesCriteria(t *testing.T) {
	criteria := models.SubjectFilterCriteria{
		Year:        ptrInt(1),
		Name:        "analisis",
		WeeklyHours: ptrInt(8),
	}
	result, err := Filter(samplePlan(), nil, criteria)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "MAT101", result.Groups[0].Subjects[0].Code)
}

func TestFilterNameIsCaseInsensitive(t *testing.T) {
	result, err := Filter(samplePlan(), nil, models.SubjectFilterCriteria{Name: "FISICA"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
}

func TestFilterByStatusWithFullCoverage(t *testing.T) {
	statuses := fullStatusMap(models.SubjectStatusPending)
	statuses["s1"] = models.SubjectStatusApproved

	result, err := Filter(samplePlan(), statuses, models.SubjectFilterCriteria{Status: ptrStatus(models.SubjectStatusApproved)})
	require.NoError(t, err)
	assert.True(t, result.StatusFilteringAvailable)
	assert.Equal(t, 1, result.Total)
	require.NotNil(t, result.Groups[0].Subjects[0].Status)
	assert.Equal(t, models.SubjectStatusApproved, *result.Groups[0].Subjects[0].Status)
}

func TestFilterByStatusUnavailableWithPartialCoverage(t *testing.T) {
	statuses := fullStatusMap(models.SubjectStatusPending)
	delete(statuses, "s3")

	_, err := Filter(samplePlan(), statuses, models.SubjectFilterCriteria{Status: ptrStatus(models.SubjectStatusPending)})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErr.Code)
}

func TestFilterHidesStatusesWithPartialCoverage(t *testing.T) {
	statuses := fullStatusMap(models.SubjectStatusPending)
	delete(statuses, "s3")

	result, err := Filter(samplePlan(), statuses, models.SubjectFilterCriteria{})
	require.NoError(t, err)
	assert.False(t, result.StatusFilteringAvailable)
	for _, group := range result.Groups {
		for _, subject := range group.Subjects {
			assert.Nil(t, subject.Status)
		}
	}
}

type mockPlanSubjects struct {
	subjects   []models.PlanSubjectDetail
	dependents map[string][]models.Subject
}

func (m *mockPlanSubjects) SubjectsOf(ctx context.Context, planID string) ([]models.PlanSubjectDetail, error) {
	return m.subjects, nil
}

func (m *mockPlanSubjects) DependentsOf(ctx context.Context, planID, subjectID string) ([]models.Subject, error) {
	return m.dependents[subjectID], nil
}

type mockStatusMap struct {
	statuses map[string]models.SubjectStatus
}

func (m *mockStatusMap) StatusMap(ctx context.Context, userID int64, planID string) (map[string]models.SubjectStatus, error) {
	return m.statuses, nil
}

func TestPrerequisiteModeReplacesOtherFilters(t *testing.T) {
	curriculum := &mockPlanSubjects{
		subjects: samplePlan(),
		dependents: map[string][]models.Subject{
			"s1": {{ID: "s4", Code: "MAT201", Name: "Analisis Matematico II"}},
		},
	}
	svc := NewFilterService(curriculum, &mockStatusMap{statuses: fullStatusMap(models.SubjectStatusPending)}, nil)

	// The year filter would exclude s4; prerequisite mode must ignore it.
	result, err := svc.FilterSubjects(context.Background(), 7, "plan-1", models.SubjectFilterCriteria{
		Year:             ptrInt(1),
		PrerequisiteName: "analisis matematico i",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "MAT201", result.Groups[0].Subjects[0].Code)
}

func TestPrerequisiteModeFirstMatchWins(t *testing.T) {
	curriculum := &mockPlanSubjects{
		subjects: samplePlan(),
		dependents: map[string][]models.Subject{
			// "analisis" matches s1 first in canonical order; s4 also matches
			// but must not be consulted.
			"s1": {{ID: "s4"}},
			"s4": {{ID: "s5"}},
		},
	}
	svc := NewFilterService(curriculum, &mockStatusMap{}, nil)

	result, err := svc.FilterSubjects(context.Background(), 7, "plan-1", models.SubjectFilterCriteria{PrerequisiteName: "analisis"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "s4", result.Groups[0].Subjects[0].SubjectID)
}

func TestPrerequisiteModeNoMatchYieldsEmptyResult(t *testing.T) {
	svc := NewFilterService(&mockPlanSubjects{subjects: samplePlan()}, &mockStatusMap{}, nil)

	result, err := svc.FilterSubjects(context.Background(), 7, "plan-1", models.SubjectFilterCriteria{PrerequisiteName: "quimica"})
	require.NoError(t, err)
	assert.Zero(t, result.Total)
	assert.Empty(t, result.Groups)
}
