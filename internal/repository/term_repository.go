package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/victor-POL/mi-uni-api/internal/models"
)

// TermRepository reads the externally administered academic calendar.
type TermRepository struct {
	db *sqlx.DB
}

// NewTermRepository constructs the repository.
func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

// FindActive returns the currently active academic term, if any. The flag
// alone is not trusted; the term must also be inside its validity window.
func (r *TermRepository) FindActive(ctx context.Context) (*models.Term, error) {
	const query = `SELECT id, year, start_date, end_date, is_active FROM terms WHERE is_active = TRUE AND NOW() BETWEEN start_date AND end_date LIMIT 1`
	var term models.Term
	if err := r.db.GetContext(ctx, &term, query); err != nil {
		return nil, err
	}
	return &term, nil
}
