package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victor-POL/mi-uni-api/internal/models"
)

func newCurriculumRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestCurriculumRepositorySubjectsOfCanonicalOrder(t *testing.T) {
	db, mock, cleanup := newCurriculumRepoMock(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	rows := sqlmock.NewRows([]string{"subject_id", "code", "name", "type", "weekly_hours", "year", "semester"}).
		AddRow("sub-1", "MAT101", "Analisis Matematico I", models.SubjectTypeRegular, 8, 1, 1).
		AddRow("sub-2", "ALG101", "Algebra", models.SubjectTypeRegular, 6, 1, 2)
	mock.ExpectQuery("SELECT ps.subject_id, s.code").
		WithArgs("plan-1").
		WillReturnRows(rows)

	subjects, err := repo.SubjectsOf(context.Background(), "plan-1")
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "MAT101", subjects[0].Code)
	assert.Equal(t, 2, subjects[1].Semester)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCurriculumRepositoryDependentsOf(t *testing.T) {
	db, mock, cleanup := newCurriculumRepoMock(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	rows := sqlmock.NewRows([]string{"id", "code", "name", "type", "weekly_hours"}).
		AddRow("sub-2", "FIS201", "Fisica II", models.SubjectTypeRegular, 6).
		AddRow("sub-3", "QUI201", "Quimica II", models.SubjectTypeRegular, 4)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE pr.plan_id = $1 AND pr.prerequisite_id = $2")).
		WithArgs("plan-1", "sub-1").
		WillReturnRows(rows)

	dependents, err := repo.DependentsOf(context.Background(), "plan-1", "sub-1")
	require.NoError(t, err)
	require.Len(t, dependents, 2)
	assert.Equal(t, "FIS201", dependents[0].Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCurriculumRepositoryDependentsOfEmpty(t *testing.T) {
	db, mock, cleanup := newCurriculumRepoMock(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	rows := sqlmock.NewRows([]string{"id", "code", "name", "type", "weekly_hours"})
	mock.ExpectQuery(regexp.QuoteMeta("WHERE pr.plan_id = $1 AND pr.prerequisite_id = $2")).
		WithArgs("plan-1", "sub-9").
		WillReturnRows(rows)

	dependents, err := repo.DependentsOf(context.Background(), "plan-1", "sub-9")
	require.NoError(t, err)
	assert.Empty(t, dependents)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCurriculumRepositorySubjectInPlanMiss(t *testing.T) {
	db, mock, cleanup := newCurriculumRepoMock(t)
	defer cleanup()
	repo := NewCurriculumRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM plan_subjects WHERE plan_id = $1 AND subject_id = $2")).
		WithArgs("plan-1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	ok, err := repo.SubjectInPlan(context.Background(), "plan-1", "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
