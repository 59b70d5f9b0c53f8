package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/victor-POL/mi-uni-api/internal/models"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
)

// CourseRepository persists in-progress course enrollments.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Find loads a course by its natural key.
func (r *CourseRepository) Find(ctx context.Context, userID int64, planID, subjectID string) (*models.Course, error) {
	const query = `SELECT id, user_id, plan_id, subject_id, first_partial, second_partial, first_makeup, second_makeup, updated_at
        FROM courses WHERE user_id = $1 AND plan_id = $2 AND subject_id = $3`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, userID, planID, subjectID); err != nil {
		return nil, err
	}
	return &course, nil
}

// Exists checks whether a course is already in progress for the key.
func (r *CourseRepository) Exists(ctx context.Context, userID int64, planID, subjectID string) (bool, error) {
	const query = `SELECT 1 FROM courses WHERE user_id = $1 AND plan_id = $2 AND subject_id = $3 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, userID, planID, subjectID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check course: %w", err)
	}
	return true, nil
}

// Start creates the course row with empty grade slots and flips the ledger
// status to IN_PROGRESS in the same transaction, keeping the two stores in
// sync. Concurrent duplicate starts resolve through the unique constraint.
func (r *CourseRepository) Start(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	course.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin start course: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insert = `INSERT INTO courses (id, user_id, plan_id, subject_id, updated_at)
        VALUES (:id, :user_id, :plan_id, :subject_id, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, insert, course); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			err = appErrors.Clone(appErrors.ErrAlreadyInProgress, "")
			return err
		}
		err = fmt.Errorf("create course: %w", err)
		return err
	}

	const updateRecord = `UPDATE subject_records SET status = $4, updated_at = $5
        WHERE user_id = $1 AND plan_id = $2 AND subject_id = $3`
	if _, err = tx.ExecContext(ctx, updateRecord,
		course.UserID, course.PlanID, course.SubjectID,
		models.SubjectStatusInProgress, course.UpdatedAt); err != nil {
		err = fmt.Errorf("mark record in progress: %w", err)
		return err
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit start course: %w", err)
		return err
	}
	return nil
}

// UpdateGrades overwrites only the slots the patch touches.
func (r *CourseRepository) UpdateGrades(ctx context.Context, userID int64, planID, subjectID string, patch models.CourseGradePatch) error {
	sets := []string{}
	args := []interface{}{userID, planID, subjectID}

	appendSet := func(column string, value *float64) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	appendSet("first_partial", patch.FirstPartial)
	appendSet("second_partial", patch.SecondPartial)
	appendSet("first_makeup", patch.FirstMakeup)
	appendSet("second_makeup", patch.SecondMakeup)

	args = append(args, time.Now().UTC())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))

	query := fmt.Sprintf(`UPDATE courses SET %s WHERE user_id = $1 AND plan_id = $2 AND subject_id = $3`,
		strings.Join(sets, ", "))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update course grades: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update grades rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the course row.
func (r *CourseRepository) Delete(ctx context.Context, userID int64, planID, subjectID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE user_id = $1 AND plan_id = $2 AND subject_id = $3`,
		userID, planID, subjectID)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete course rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByUser returns every active course of the user across plans, joined
// with its plan placement for grouping.
func (r *CourseRepository) ListByUser(ctx context.Context, userID int64) ([]models.CourseDetail, error) {
	const query = `SELECT c.id, c.user_id, c.plan_id, c.subject_id, c.first_partial, c.second_partial, c.first_makeup, c.second_makeup, c.updated_at,
        s.code, s.name, ps.year, ps.semester
        FROM courses c
        JOIN plan_subjects ps ON ps.plan_id = c.plan_id AND ps.subject_id = c.subject_id
        JOIN subjects s ON s.id = c.subject_id
        WHERE c.user_id = $1
        ORDER BY ps.year, ps.semester, s.code`
	var courses []models.CourseDetail
	if err := r.db.SelectContext(ctx, &courses, query, userID); err != nil {
		return nil, fmt.Errorf("list user courses: %w", err)
	}
	return courses, nil
}
