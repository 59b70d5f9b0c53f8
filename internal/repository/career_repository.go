package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/victor-POL/mi-uni-api/internal/models"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
)

const pqUniqueViolation = "23505"

// CareerRepository persists career enrollments and seeds the subject ledger.
type CareerRepository struct {
	db *sqlx.DB
}

// NewCareerRepository constructs the repository.
func NewCareerRepository(db *sqlx.DB) *CareerRepository {
	return &CareerRepository{db: db}
}

// Exists checks whether the user already joined the plan.
func (r *CareerRepository) Exists(ctx context.Context, userID int64, planID string) (bool, error) {
	const query = `SELECT 1 FROM career_enrollments WHERE user_id = $1 AND plan_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, userID, planID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check career enrollment: %w", err)
	}
	return true, nil
}

// ListByUser returns the user's career enrollments.
func (r *CareerRepository) ListByUser(ctx context.Context, userID int64) ([]models.CareerEnrollment, error) {
	const query = `SELECT id, user_id, plan_id, joined_at FROM career_enrollments WHERE user_id = $1 ORDER BY joined_at`
	var enrollments []models.CareerEnrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, userID); err != nil {
		return nil, fmt.Errorf("list career enrollments: %w", err)
	}
	return enrollments, nil
}

// JoinPlan inserts the career enrollment and seeds one PENDING subject record
// per plan subject inside a single transaction. Concurrent duplicate joins
// are resolved by the unique (user_id, plan_id) constraint, not by locking.
func (r *CareerRepository) JoinPlan(ctx context.Context, enrollment *models.CareerEnrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.JoinedAt.IsZero() {
		enrollment.JoinedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin join plan: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertEnrollment = `INSERT INTO career_enrollments (id, user_id, plan_id, joined_at)
        VALUES (:id, :user_id, :plan_id, :joined_at)`
	if _, err = tx.NamedExecContext(ctx, insertEnrollment, enrollment); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			err = appErrors.Clone(appErrors.ErrAlreadyEnrolled, "")
			return err
		}
		err = fmt.Errorf("create career enrollment: %w", err)
		return err
	}

	var subjectIDs []string
	if err = tx.SelectContext(ctx, &subjectIDs, `SELECT subject_id FROM plan_subjects WHERE plan_id = $1`, enrollment.PlanID); err != nil {
		err = fmt.Errorf("load plan subjects: %w", err)
		return err
	}
	if len(subjectIDs) == 0 {
		err = appErrors.Clone(appErrors.ErrEmptyPlan, "")
		return err
	}

	now := time.Now().UTC()
	const insertRecord = `INSERT INTO subject_records (id, user_id, plan_id, subject_id, status, updated_at)
        VALUES (:id, :user_id, :plan_id, :subject_id, :status, :updated_at)`
	for _, subjectID := range subjectIDs {
		record := models.SubjectRecord{
			ID:        uuid.NewString(),
			UserID:    enrollment.UserID,
			PlanID:    enrollment.PlanID,
			SubjectID: subjectID,
			Status:    models.SubjectStatusPending,
			UpdatedAt: now,
		}
		if _, err = tx.NamedExecContext(ctx, insertRecord, &record); err != nil {
			err = fmt.Errorf("seed subject record: %w", err)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit join plan: %w", err)
		return err
	}
	return nil
}

// LeavePlan removes the career enrollment along with the seeded ledger and any
// active courses for the plan, all in one transaction.
func (r *CareerRepository) LeavePlan(ctx context.Context, userID int64, planID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin leave plan: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM courses WHERE user_id = $1 AND plan_id = $2`, userID, planID); err != nil {
		err = fmt.Errorf("delete plan courses: %w", err)
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM subject_records WHERE user_id = $1 AND plan_id = $2`, userID, planID); err != nil {
		err = fmt.Errorf("delete subject records: %w", err)
		return err
	}

	result, execErr := tx.ExecContext(ctx, `DELETE FROM career_enrollments WHERE user_id = $1 AND plan_id = $2`, userID, planID)
	if execErr != nil {
		err = fmt.Errorf("delete career enrollment: %w", execErr)
		return err
	}
	affected, raErr := result.RowsAffected()
	if raErr != nil {
		err = fmt.Errorf("leave plan rows affected: %w", raErr)
		return err
	}
	if affected == 0 {
		err = sql.ErrNoRows
		return err
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit leave plan: %w", err)
		return err
	}
	return nil
}
