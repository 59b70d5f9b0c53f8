package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/victor-POL/mi-uni-api/internal/models"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
)

type courseRepository interface {
	Find(ctx context.Context, userID int64, planID, subjectID string) (*models.Course, error)
	Exists(ctx context.Context, userID int64, planID, subjectID string) (bool, error)
	Start(ctx context.Context, course *models.Course) error
	UpdateGrades(ctx context.Context, userID int64, planID, subjectID string, patch models.CourseGradePatch) error
	Delete(ctx context.Context, userID int64, planID, subjectID string) error
	ListByUser(ctx context.Context, userID int64) ([]models.CourseDetail, error)
}

type careerChecker interface {
	Exists(ctx context.Context, userID int64, planID string) (bool, error)
}

type subjectChecker interface {
	SubjectInPlan(ctx context.Context, planID, subjectID string) (bool, error)
}

type yearReader interface {
	Get(ctx context.Context, userID int64) (*models.AcademicYearScope, error)
}

// CourseService manages in-progress coursework: starting a cursada,
// recording partial grades and ending it.
type CourseService struct {
	courses  courseRepository
	careers  careerChecker
	subjects subjectChecker
	years    yearReader
	logger   *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(courses courseRepository, careers careerChecker, subjects subjectChecker, years yearReader, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{courses: courses, careers: careers, subjects: subjects, years: years, logger: logger}
}

// StartCourse opens a course with empty grade slots and flips the ledger to
// IN_PROGRESS. Requires an enrollment, plan membership and an academic year.
func (s *CourseService) StartCourse(ctx context.Context, userID int64, planID, subjectID string) (*models.Course, error) {
	enrolled, err := s.careers.Exists(ctx, userID, planID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if !enrolled {
		return nil, appErrors.Clone(appErrors.ErrNotEnrolledInPlan, "")
	}

	inPlan, err := s.subjects.SubjectInPlan(ctx, planID, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check plan subject")
	}
	if !inPlan {
		return nil, appErrors.Clone(appErrors.ErrSubjectNotInPlan, "")
	}

	if _, err := s.years.Get(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoAcademicYear, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic year")
	}

	active, err := s.courses.Exists(ctx, userID, planID, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course")
	}
	if active {
		return nil, appErrors.Clone(appErrors.ErrAlreadyInProgress, "")
	}

	course := &models.Course{UserID: userID, PlanID: planID, SubjectID: subjectID}
	if err := s.courses.Start(ctx, course); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to start course")
	}
	s.logger.Info("course started", zap.Int64("user_id", userID), zap.String("plan_id", planID), zap.String("subject_id", subjectID))
	return course, nil
}

// RecordGrades overwrites the touched grade slots and preserves the rest.
func (s *CourseService) RecordGrades(ctx context.Context, userID int64, planID, subjectID string, patch models.CourseGradePatch) (*models.Course, error) {
	if patch.Empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no grade slots provided")
	}
	for _, value := range []*float64{patch.FirstPartial, patch.SecondPartial, patch.FirstMakeup, patch.SecondMakeup} {
		if value != nil && (*value < 1 || *value > 10) {
			return nil, appErrors.Clone(appErrors.ErrInvalidGrade, "")
		}
	}

	if err := s.courses.UpdateGrades(ctx, userID, planID, subjectID, patch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record grades")
	}

	course, err := s.courses.Find(ctx, userID, planID, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// EndCourse removes the course row. The ledger status is left untouched;
// callers decide whether the cursada ended in REGULARIZED, APPROVED or back
// to PENDING.
func (s *CourseService) EndCourse(ctx context.Context, userID int64, planID, subjectID string) error {
	if err := s.courses.Delete(ctx, userID, planID, subjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to end course")
	}
	s.logger.Info("course ended", zap.Int64("user_id", userID), zap.String("plan_id", planID), zap.String("subject_id", subjectID))
	return nil
}

// GetCourse loads a single course.
func (s *CourseService) GetCourse(ctx context.Context, userID int64, planID, subjectID string) (*models.Course, error) {
	course, err := s.courses.Find(ctx, userID, planID, subjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// ListCourses returns the user's active courses across plans.
func (s *CourseService) ListCourses(ctx context.Context, userID int64) ([]models.CourseDetail, error) {
	courses, err := s.courses.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}
