package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/victor-POL/mi-uni-api/internal/models"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
	"github.com/victor-POL/mi-uni-api/pkg/export"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type recordLister interface {
	ListByPlan(ctx context.Context, userID int64, planID string) ([]models.SubjectRecord, error)
}

type subjectCatalog interface {
	SubjectsOf(ctx context.Context, planID string) ([]models.PlanSubjectDetail, error)
}

// TranscriptFile is a rendered transcript ready for HTTP delivery.
type TranscriptFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ReportService renders a user's plan ledger as a downloadable transcript.
type ReportService struct {
	careers    careerChecker
	records    recordLister
	curriculum subjectCatalog
	csv        csvRenderer
	pdf        pdfRenderer
	logger     *zap.Logger
	now        func() time.Time
}

// NewReportService constructs ReportService.
func NewReportService(careers careerChecker, records recordLister, curriculum subjectCatalog, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ReportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{careers: careers, records: records, curriculum: curriculum, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// Transcript renders the user's full ledger for a plan in the requested
// format. Rows follow the curriculum's canonical ordering.
func (s *ReportService) Transcript(ctx context.Context, userID int64, planID string, format models.ReportFormat) (*TranscriptFile, error) {
	enrolled, err := s.careers.Exists(ctx, userID, planID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if !enrolled {
		return nil, appErrors.Clone(appErrors.ErrNotEnrolledInPlan, "")
	}

	subjects, err := s.curriculum.SubjectsOf(ctx, planID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve plan subjects")
	}
	records, err := s.records.ListByPlan(ctx, userID, planID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject records")
	}

	dataset := buildTranscriptDataset(subjects, records)

	var payload []byte
	switch format {
	case models.ReportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ReportFormatPDF:
		payload, err = s.pdf.Render(dataset, "Academic Transcript")
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
	}

	file := &TranscriptFile{
		Filename:    fmt.Sprintf("transcript_%s_%s.%s", planID, s.now().Format("20060102"), format),
		ContentType: format.ContentType(),
		Payload:     payload,
	}
	s.logger.Info("transcript rendered",
		zap.Int64("user_id", userID),
		zap.String("plan_id", planID),
		zap.String("format", string(format)),
		zap.Int("rows", len(dataset.Rows)))
	return file, nil
}

func buildTranscriptDataset(subjects []models.PlanSubjectDetail, records []models.SubjectRecord) export.Dataset {
	byID := make(map[string]models.SubjectRecord, len(records))
	for i := range records {
		byID[records[i].SubjectID] = records[i]
	}

	headers := []string{"Code", "Subject", "Year", "Semester", "Status", "Grade"}
	rows := make([]map[string]string, 0, len(subjects))
	for i := range subjects {
		subject := subjects[i]
		row := map[string]string{
			"Code":     subject.Code,
			"Subject":  subject.Name,
			"Year":     strconv.Itoa(subject.Year),
			"Semester": semesterLabel(subject.Semester),
			"Status":   "",
			"Grade":    "",
		}
		if record, ok := byID[subject.SubjectID]; ok {
			row["Status"] = string(record.Status)
			if record.Grade != nil {
				row["Grade"] = strconv.FormatFloat(*record.Grade, 'f', 2, 64)
			}
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func semesterLabel(semester int) string {
	if semester == models.SemesterAnnual {
		return "Annual"
	}
	return strconv.Itoa(semester)
}
