package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/victor-POL/mi-uni-api/internal/models"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
)

type careerRepository interface {
	Exists(ctx context.Context, userID int64, planID string) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]models.CareerEnrollment, error)
	JoinPlan(ctx context.Context, enrollment *models.CareerEnrollment) error
	LeavePlan(ctx context.Context, userID int64, planID string) error
}

type planChecker interface {
	PlanExists(ctx context.Context, planID string) (bool, error)
	CountSubjects(ctx context.Context, planID string) (int, error)
}

type recordRepository interface {
	Find(ctx context.Context, userID int64, planID, subjectID string) (*models.SubjectRecord, error)
	ListByPlan(ctx context.Context, userID int64, planID string) ([]models.SubjectRecord, error)
	SetStatus(ctx context.Context, record *models.SubjectRecord) error
}

// SetStatusRequest overwrites a ledger row. Grade and taken fields are
// optional; an omitted grade clears the stored one.
type SetStatusRequest struct {
	Status        models.SubjectStatus `json:"status" validate:"required"`
	Grade         *float64             `json:"grade" validate:"omitempty,gte=1,lte=10"`
	YearTaken     *int                 `json:"year_taken" validate:"omitempty,gte=1900"`
	SemesterTaken *int                 `json:"semester_taken" validate:"omitempty,gte=0,lte=2"`
}

// EnrollmentService maintains the per-user subject ledger: joining and
// leaving plans and administrative status edits.
type EnrollmentService struct {
	careers   careerRepository
	plans     planChecker
	records   recordRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(careers careerRepository, plans planChecker, records recordRepository, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{careers: careers, plans: plans, records: records, validator: validate, logger: logger}
}

// ListEnrollments returns the user's career enrollments.
func (s *EnrollmentService) ListEnrollments(ctx context.Context, userID int64) ([]models.CareerEnrollment, error) {
	enrollments, err := s.careers.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	return enrollments, nil
}

// JoinPlan enrolls the user into a study plan and seeds one PENDING record
// per plan subject. Seeding is all-or-nothing; a duplicate join surfaces as
// ALREADY_ENROLLED even under concurrent calls.
func (s *EnrollmentService) JoinPlan(ctx context.Context, userID int64, planID string) (*models.CareerEnrollment, error) {
	exists, err := s.plans.PlanExists(ctx, planID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check plan")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "study plan not found")
	}

	enrolled, err := s.careers.Exists(ctx, userID, planID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if enrolled {
		return nil, appErrors.Clone(appErrors.ErrAlreadyEnrolled, "")
	}

	count, err := s.plans.CountSubjects(ctx, planID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count plan subjects")
	}
	if count == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptyPlan, "")
	}

	enrollment := &models.CareerEnrollment{UserID: userID, PlanID: planID}
	if err := s.careers.JoinPlan(ctx, enrollment); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to join plan")
	}
	s.logger.Info("plan joined", zap.Int64("user_id", userID), zap.String("plan_id", planID), zap.Int("subjects", count))
	return enrollment, nil
}

// LeavePlan removes the enrollment; the seeded ledger and any in-progress
// courses go with it.
func (s *EnrollmentService) LeavePlan(ctx context.Context, userID int64, planID string) error {
	if err := s.careers.LeavePlan(ctx, userID, planID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "career enrollment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to leave plan")
	}
	s.logger.Info("plan left", zap.Int64("user_id", userID), zap.String("plan_id", planID))
	return nil
}

// SetStatus overwrites the subject record in place. No transition table is
// enforced; callers sequence statuses as they see fit.
func (s *EnrollmentService) SetStatus(ctx context.Context, userID int64, planID, subjectID string, req SetStatusRequest) (*models.SubjectRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	if !models.ValidSubjectStatus(req.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown subject status")
	}
	if req.Grade != nil && (*req.Grade < 1 || *req.Grade > 10) {
		return nil, appErrors.Clone(appErrors.ErrInvalidGrade, "")
	}

	record := &models.SubjectRecord{
		UserID:        userID,
		PlanID:        planID,
		SubjectID:     subjectID,
		Status:        req.Status,
		Grade:         req.Grade,
		YearTaken:     req.YearTaken,
		SemesterTaken: req.SemesterTaken,
	}
	if err := s.records.SetStatus(ctx, record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not part of plan enrollment")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update status")
	}

	updated, err := s.records.Find(ctx, userID, planID, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject record")
	}
	return updated, nil
}

// ListRecords returns the user's full ledger for a plan.
func (s *EnrollmentService) ListRecords(ctx context.Context, userID int64, planID string) ([]models.SubjectRecord, error) {
	enrolled, err := s.careers.Exists(ctx, userID, planID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if !enrolled {
		return nil, appErrors.Clone(appErrors.ErrNotEnrolledInPlan, "")
	}
	records, err := s.records.ListByPlan(ctx, userID, planID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject records")
	}
	return records, nil
}
