package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/victor-POL/mi-uni-api/internal/models"
)

// AcademicYearRepository persists the single academic-year scope per user.
type AcademicYearRepository struct {
	db *sqlx.DB
}

// NewAcademicYearRepository constructs the repository.
func NewAcademicYearRepository(db *sqlx.DB) *AcademicYearRepository {
	return &AcademicYearRepository{db: db}
}

// Get loads the user's scope row.
func (r *AcademicYearRepository) Get(ctx context.Context, userID int64) (*models.AcademicYearScope, error) {
	const query = `SELECT user_id, year, updated_at FROM academic_years WHERE user_id = $1`
	var scope models.AcademicYearScope
	if err := r.db.GetContext(ctx, &scope, query, userID); err != nil {
		return nil, err
	}
	return &scope, nil
}

// Upsert sets the user's academic year. Partial grades are bound to a
// specific year's exam calendar, so when cascade is true every active course
// the user holds is deleted in the same transaction.
func (r *AcademicYearRepository) Upsert(ctx context.Context, scope *models.AcademicYearScope, cascade bool) error {
	scope.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert academic year: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const upsert = `INSERT INTO academic_years (user_id, year, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id) DO UPDATE SET year = EXCLUDED.year, updated_at = EXCLUDED.updated_at`
	if _, err = tx.ExecContext(ctx, upsert, scope.UserID, scope.Year, scope.UpdatedAt); err != nil {
		err = fmt.Errorf("upsert academic year: %w", err)
		return err
	}

	if cascade {
		if _, err = tx.ExecContext(ctx, `DELETE FROM courses WHERE user_id = $1`, scope.UserID); err != nil {
			err = fmt.Errorf("cascade delete courses: %w", err)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit upsert academic year: %w", err)
		return err
	}
	return nil
}

// Clear deletes the scope row and, transactionally, every active course it
// was gating, so a later establish starts from a clean slate.
func (r *AcademicYearRepository) Clear(ctx context.Context, userID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear academic year: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM courses WHERE user_id = $1`, userID); err != nil {
		err = fmt.Errorf("cascade delete courses: %w", err)
		return err
	}

	result, execErr := tx.ExecContext(ctx, `DELETE FROM academic_years WHERE user_id = $1`, userID)
	if execErr != nil {
		err = fmt.Errorf("delete academic year: %w", execErr)
		return err
	}
	affected, raErr := result.RowsAffected()
	if raErr != nil {
		err = fmt.Errorf("clear academic year rows affected: %w", raErr)
		return err
	}
	if affected == 0 {
		err = sql.ErrNoRows
		return err
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit clear academic year: %w", err)
		return err
	}
	return nil
}
