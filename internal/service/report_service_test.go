package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victor-POL/mi-uni-api/internal/models"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
)

func newReportFixture() (*ReportService, *mockRecordRepo) {
	careers := &mockCareerRepo{enrolled: map[string]bool{"plan-1": true}}
	records := &mockRecordRepo{records: map[string]models.SubjectRecord{
		recordKey("plan-1", "s1"): {PlanID: "plan-1", SubjectID: "s1", Status: models.SubjectStatusApproved, Grade: ptrFloat(9)},
		recordKey("plan-1", "s2"): {PlanID: "plan-1", SubjectID: "s2", Status: models.SubjectStatusPending},
	}}
	curriculum := &mockPlanSubjects{subjects: []models.PlanSubjectDetail{
		planSubject("s1", "MAT101", "Analisis Matematico I", 1, 1, 8),
		planSubject("s2", "LAB000", "Laboratorio Anual", 2, 0, 4),
	}}
	return NewReportService(careers, records, curriculum, nil, nil, nil), records
}

func TestTranscriptCSV(t *testing.T) {
	svc, _ := newReportFixture()

	file, err := svc.Transcript(context.Background(), 7, "plan-1", models.ReportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

	body := string(file.Payload)
	assert.Contains(t, body, "Code,Subject,Year,Semester,Status,Grade")
	assert.Contains(t, body, "MAT101,Analisis Matematico I,1,1,APPROVED,9.00")
	assert.Contains(t, body, "LAB000,Laboratorio Anual,2,Annual,PENDING,")
}

func TestTranscriptPDF(t *testing.T) {
	svc, _ := newReportFixture()

	file, err := svc.Transcript(context.Background(), 7, "plan-1", models.ReportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Payload), "%PDF"))
}

func TestTranscriptRequiresEnrollment(t *testing.T) {
	svc := NewReportService(&mockCareerRepo{}, &mockRecordRepo{}, &mockPlanSubjects{}, nil, nil, nil)

	_, err := svc.Transcript(context.Background(), 7, "plan-1", models.ReportFormatCSV)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotEnrolledInPlan.Code, appErr.Code)
}

func TestParseReportFormat(t *testing.T) {
	format, err := models.ParseReportFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, models.ReportFormatPDF, format)

	_, err = models.ParseReportFormat("xlsx")
	assert.Error(t, err)
}
