package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/victor-POL/mi-uni-api/internal/models"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
)

type progressReader interface {
	ProgressFor(ctx context.Context, userID int64, planID string) (total, approved int, average *float64, err error)
}

type courseLister interface {
	ListByUser(ctx context.Context, userID int64) ([]models.CourseDetail, error)
}

// ProgressService derives progress statistics from the ledger and the
// in-progress store. Nothing here is persisted.
type ProgressService struct {
	careers careerChecker
	records progressReader
	courses courseLister
	metrics *MetricsService
	logger  *zap.Logger
}

// NewProgressService constructs ProgressService.
func NewProgressService(careers careerChecker, records progressReader, courses courseLister, metrics *MetricsService, logger *zap.Logger) *ProgressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{careers: careers, records: records, courses: courses, metrics: metrics, logger: logger}
}

// ProgressFor computes the plan snapshot. The underlying aggregate runs as a
// single statement, so percentage can never exceed 100 under concurrent
// status updates.
func (s *ProgressService) ProgressFor(ctx context.Context, userID int64, planID string) (*models.ProgressSnapshot, error) {
	enrolled, err := s.careers.Exists(ctx, userID, planID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if !enrolled {
		return nil, appErrors.Clone(appErrors.ErrNotEnrolledInPlan, "")
	}

	start := time.Now()
	total, approved, average, err := s.records.ProgressFor(ctx, userID, planID)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("progress_aggregate", time.Since(start))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate progress")
	}

	var percentage float64
	if total > 0 {
		percentage = round2(float64(approved) / float64(total) * 100)
	}

	return &models.ProgressSnapshot{
		PlanID:       planID,
		Total:        total,
		Approved:     approved,
		Percentage:   percentage,
		AverageGrade: average,
		Completed:    percentage == 100,
	}, nil
}

// InProgressSummaryFor aggregates the user's active courses across every
// plan: count, count by semester slot and the mean of defined course
// averages.
func (s *ProgressService) InProgressSummaryFor(ctx context.Context, userID int64) (*models.InProgressSummary, error) {
	courses, err := s.courses.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}

	summary := &models.InProgressSummary{
		Count: len(courses),
		CountBySemester: map[int]int{
			models.SemesterAnnual: 0,
			models.SemesterFirst:  0,
			models.SemesterSecond: 0,
		},
	}

	var sum float64
	var defined int
	for i := range courses {
		summary.CountBySemester[courses[i].Semester]++
		if avg := courses[i].Average(); avg != nil {
			sum += *avg
			defined++
		}
	}
	if defined > 0 {
		mean := round2(sum / float64(defined))
		summary.AverageGrade = &mean
	}
	return summary, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
