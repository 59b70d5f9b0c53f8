package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/victor-POL/mi-uni-api/internal/models"
)

// CurriculumRepository serves read-only queries over the immutable plan
// catalog: careers, study plans, subjects and prerequisite edges.
type CurriculumRepository struct {
	db *sqlx.DB
}

// NewCurriculumRepository constructs the repository.
func NewCurriculumRepository(db *sqlx.DB) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

// ListPlans returns every study plan with its career name.
func (r *CurriculumRepository) ListPlans(ctx context.Context) ([]models.StudyPlanDetail, error) {
	const query = `SELECT p.id, p.career_id, p.catalog_year, c.name AS career_name
        FROM study_plans p
        JOIN careers c ON c.id = p.career_id
        ORDER BY c.name, p.catalog_year`
	var plans []models.StudyPlanDetail
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// PlanExists reports whether the plan is part of the catalog.
func (r *CurriculumRepository) PlanExists(ctx context.Context, planID string) (bool, error) {
	const query = `SELECT 1 FROM study_plans WHERE id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, planID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check plan: %w", err)
	}
	return true, nil
}

// CountSubjects returns the number of subjects placed in the plan.
func (r *CurriculumRepository) CountSubjects(ctx context.Context, planID string) (int, error) {
	const query = `SELECT COUNT(*) FROM plan_subjects WHERE plan_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, planID); err != nil {
		return 0, fmt.Errorf("count plan subjects: %w", err)
	}
	return count, nil
}

// SubjectsOf returns the plan's subjects in canonical order
// (year, semester, code).
func (r *CurriculumRepository) SubjectsOf(ctx context.Context, planID string) ([]models.PlanSubjectDetail, error) {
	const query = `SELECT ps.subject_id, s.code, s.name, s.type, s.weekly_hours, ps.year, ps.semester
        FROM plan_subjects ps
        JOIN subjects s ON s.id = ps.subject_id
        WHERE ps.plan_id = $1
        ORDER BY ps.year, ps.semester, s.code`
	var subjects []models.PlanSubjectDetail
	if err := r.db.SelectContext(ctx, &subjects, query, planID); err != nil {
		return nil, fmt.Errorf("list plan subjects: %w", err)
	}
	return subjects, nil
}

// SubjectInPlan reports whether the subject is placed in the plan.
func (r *CurriculumRepository) SubjectInPlan(ctx context.Context, planID, subjectID string) (bool, error) {
	const query = `SELECT 1 FROM plan_subjects WHERE plan_id = $1 AND subject_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, planID, subjectID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check plan subject: %w", err)
	}
	return true, nil
}

// PrerequisitesOf returns the subjects that must be completed before the
// given subject may be started.
func (r *CurriculumRepository) PrerequisitesOf(ctx context.Context, planID, subjectID string) ([]models.Subject, error) {
	const query = `SELECT s.id, s.code, s.name, s.type, s.weekly_hours
        FROM prerequisites pr
        JOIN subjects s ON s.id = pr.prerequisite_id
        WHERE pr.plan_id = $1 AND pr.subject_id = $2
        ORDER BY s.code`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, planID, subjectID); err != nil {
		return nil, fmt.Errorf("list prerequisites: %w", err)
	}
	return subjects, nil
}

// DependentsOf returns the subjects the given subject unlocks, scanning the
// plan's reverse prerequisite edges.
func (r *CurriculumRepository) DependentsOf(ctx context.Context, planID, subjectID string) ([]models.Subject, error) {
	const query = `SELECT s.id, s.code, s.name, s.type, s.weekly_hours
        FROM prerequisites pr
        JOIN subjects s ON s.id = pr.subject_id
        WHERE pr.plan_id = $1 AND pr.prerequisite_id = $2
        ORDER BY s.code`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, planID, subjectID); err != nil {
		return nil, fmt.Errorf("list dependents: %w", err)
	}
	return subjects, nil
}
