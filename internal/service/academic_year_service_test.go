package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victor-POL/mi-uni-api/internal/models"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
)

type mockYearRepo struct {
	scope    *models.AcademicYearScope
	cascades []bool
}

func (m *mockYearRepo) Get(ctx context.Context, userID int64) (*models.AcademicYearScope, error) {
	if m.scope == nil {
		return nil, sql.ErrNoRows
	}
	return m.scope, nil
}

func (m *mockYearRepo) Upsert(ctx context.Context, scope *models.AcademicYearScope, cascade bool) error {
	m.scope = scope
	m.cascades = append(m.cascades, cascade)
	return nil
}

func (m *mockYearRepo) Clear(ctx context.Context, userID int64) error {
	if m.scope == nil {
		return sql.ErrNoRows
	}
	m.scope = nil
	return nil
}

type mockTermReader struct {
	term *models.Term
}

func (m *mockTermReader) FindActive(ctx context.Context) (*models.Term, error) {
	if m.term == nil {
		return nil, sql.ErrNoRows
	}
	return m.term, nil
}

func TestEstablishAdoptsActiveTermYear(t *testing.T) {
	years := &mockYearRepo{}
	svc := NewAcademicYearService(years, &mockTermReader{term: &models.Term{Year: 2025}}, nil)

	scope, err := svc.Establish(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2025, scope.Year)
	assert.Equal(t, []bool{false}, years.cascades)
}

func TestEstablishWithoutActiveTerm(t *testing.T) {
	svc := NewAcademicYearService(&mockYearRepo{}, &mockTermReader{}, nil)

	_, err := svc.Establish(context.Background(), 7)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNoCurrentYear.Code, appErr.Code)
}

func TestChangeCascadesCourseCleanup(t *testing.T) {
	years := &mockYearRepo{scope: &models.AcademicYearScope{UserID: 7, Year: 2025}}
	svc := NewAcademicYearService(years, &mockTermReader{}, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	scope, err := svc.Change(context.Background(), 7, 2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, scope.Year)
	assert.Equal(t, []bool{true}, years.cascades)
}

func TestChangeRejectsYearOutOfRange(t *testing.T) {
	years := &mockYearRepo{scope: &models.AcademicYearScope{UserID: 7, Year: 2025}}
	svc := NewAcademicYearService(years, &mockTermReader{}, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	_, err := svc.Change(context.Background(), 7, 2023)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidYear.Code, appErr.Code)

	// The stored scope must be untouched by a rejected change.
	assert.Equal(t, 2025, years.scope.Year)
	assert.Empty(t, years.cascades)
}

func TestClearWhenUnset(t *testing.T) {
	svc := NewAcademicYearService(&mockYearRepo{}, &mockTermReader{}, nil)

	err := svc.Clear(context.Background(), 7)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestGetWhenUnset(t *testing.T) {
	svc := NewAcademicYearService(&mockYearRepo{}, &mockTermReader{}, nil)

	_, err := svc.Get(context.Background(), 7)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
