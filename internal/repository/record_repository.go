package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/victor-POL/mi-uni-api/internal/models"
)

// RecordRepository persists the per-user subject ledger.
type RecordRepository struct {
	db *sqlx.DB
}

// NewRecordRepository constructs the repository.
func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Find loads a single ledger row.
func (r *RecordRepository) Find(ctx context.Context, userID int64, planID, subjectID string) (*models.SubjectRecord, error) {
	const query = `SELECT id, user_id, plan_id, subject_id, status, grade, year_taken, semester_taken, updated_at
        FROM subject_records WHERE user_id = $1 AND plan_id = $2 AND subject_id = $3`
	var record models.SubjectRecord
	if err := r.db.GetContext(ctx, &record, query, userID, planID, subjectID); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByPlan returns every ledger row for the user's plan enrollment.
func (r *RecordRepository) ListByPlan(ctx context.Context, userID int64, planID string) ([]models.SubjectRecord, error) {
	const query = `SELECT sr.id, sr.user_id, sr.plan_id, sr.subject_id, sr.status, sr.grade, sr.year_taken, sr.semester_taken, sr.updated_at
        FROM subject_records sr
        JOIN plan_subjects ps ON ps.plan_id = sr.plan_id AND ps.subject_id = sr.subject_id
        JOIN subjects s ON s.id = sr.subject_id
        WHERE sr.user_id = $1 AND sr.plan_id = $2
        ORDER BY ps.year, ps.semester, s.code`
	var records []models.SubjectRecord
	if err := r.db.SelectContext(ctx, &records, query, userID, planID); err != nil {
		return nil, fmt.Errorf("list subject records: %w", err)
	}
	return records, nil
}

// StatusMap returns subject id → status for the user's plan enrollment.
func (r *RecordRepository) StatusMap(ctx context.Context, userID int64, planID string) (map[string]models.SubjectStatus, error) {
	const query = `SELECT subject_id, status FROM subject_records WHERE user_id = $1 AND plan_id = $2`
	rows, err := r.db.QueryxContext(ctx, query, userID, planID)
	if err != nil {
		return nil, fmt.Errorf("load status map: %w", err)
	}
	defer rows.Close()

	statuses := make(map[string]models.SubjectStatus)
	for rows.Next() {
		var subjectID string
		var status models.SubjectStatus
		if err := rows.Scan(&subjectID, &status); err != nil {
			return nil, fmt.Errorf("scan status row: %w", err)
		}
		statuses[subjectID] = status
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status rows: %w", err)
	}
	return statuses, nil
}

// SetStatus overwrites the ledger row in place. When the new status is not
// IN_PROGRESS any active course row for the subject is removed in the same
// transaction so the two stores cannot drift.
func (r *RecordRepository) SetStatus(ctx context.Context, record *models.SubjectRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set status: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	record.UpdatedAt = time.Now().UTC()
	const update = `UPDATE subject_records
        SET status = $4, grade = $5, year_taken = $6, semester_taken = $7, updated_at = $8
        WHERE user_id = $1 AND plan_id = $2 AND subject_id = $3`
	result, execErr := tx.ExecContext(ctx, update,
		record.UserID, record.PlanID, record.SubjectID,
		record.Status, record.Grade, record.YearTaken, record.SemesterTaken, record.UpdatedAt,
	)
	if execErr != nil {
		err = fmt.Errorf("update subject record: %w", execErr)
		return err
	}
	affected, raErr := result.RowsAffected()
	if raErr != nil {
		err = fmt.Errorf("set status rows affected: %w", raErr)
		return err
	}
	if affected == 0 {
		err = sql.ErrNoRows
		return err
	}

	if record.Status != models.SubjectStatusInProgress {
		if _, err = tx.ExecContext(ctx, `DELETE FROM courses WHERE user_id = $1 AND plan_id = $2 AND subject_id = $3`,
			record.UserID, record.PlanID, record.SubjectID); err != nil {
			err = fmt.Errorf("drop stale course: %w", err)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit set status: %w", err)
		return err
	}
	return nil
}

// ProgressFor computes the plan aggregate in a single statement so concurrent
// status updates cannot skew the counts against each other.
func (r *RecordRepository) ProgressFor(ctx context.Context, userID int64, planID string) (total, approved int, average *float64, err error) {
	const query = `SELECT COUNT(*) AS total,
        COUNT(*) FILTER (WHERE status = $3) AS approved,
        AVG(grade) FILTER (WHERE status = $3 AND grade IS NOT NULL) AS average_grade
        FROM subject_records WHERE user_id = $1 AND plan_id = $2`
	var row struct {
		Total        int      `db:"total"`
		Approved     int      `db:"approved"`
		AverageGrade *float64 `db:"average_grade"`
	}
	if err = r.db.GetContext(ctx, &row, query, userID, planID, models.SubjectStatusApproved); err != nil {
		return 0, 0, nil, fmt.Errorf("aggregate progress: %w", err)
	}
	return row.Total, row.Approved, row.AverageGrade, nil
}
