package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/victor-POL/mi-uni-api/internal/models"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
)

type academicYearRepository interface {
	Get(ctx context.Context, userID int64) (*models.AcademicYearScope, error)
	Upsert(ctx context.Context, scope *models.AcademicYearScope, cascade bool) error
	Clear(ctx context.Context, userID int64) error
}

type termReader interface {
	FindActive(ctx context.Context) (*models.Term, error)
}

// AcademicYearService maintains the single academic-year scope per user that
// gates in-progress coursework.
type AcademicYearService struct {
	years  academicYearRepository
	terms  termReader
	logger *zap.Logger
	now    func() time.Time
}

// NewAcademicYearService constructs AcademicYearService.
func NewAcademicYearService(years academicYearRepository, terms termReader, logger *zap.Logger) *AcademicYearService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademicYearService{years: years, terms: terms, logger: logger, now: time.Now}
}

// Get returns the user's current scope, or NOT_FOUND when unset.
func (s *AcademicYearService) Get(ctx context.Context, userID int64) (*models.AcademicYearScope, error) {
	scope, err := s.years.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no academic year set")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic year")
	}
	return scope, nil
}

// Establish adopts the active academic term's year. Re-establishing simply
// overwrites the stored value.
func (s *AcademicYearService) Establish(ctx context.Context, userID int64) (*models.AcademicYearScope, error) {
	term, err := s.terms.FindActive(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoCurrentYear, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active term")
	}

	scope := &models.AcademicYearScope{UserID: userID, Year: term.Year}
	if err := s.years.Upsert(ctx, scope, false); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to establish academic year")
	}
	s.logger.Info("academic year established", zap.Int64("user_id", userID), zap.Int("year", term.Year))
	return scope, nil
}

// Change moves the scope to another year. Partial grades are bound to a
// year's exam calendar, so every active course is dropped with the change.
func (s *AcademicYearService) Change(ctx context.Context, userID int64, year int) (*models.AcademicYearScope, error) {
	current := s.now().Year()
	if year < current-1 || year > current {
		return nil, appErrors.Clone(appErrors.ErrInvalidYear, fmt.Sprintf("year must be %d or %d", current-1, current))
	}

	scope := &models.AcademicYearScope{UserID: userID, Year: year}
	if err := s.years.Upsert(ctx, scope, true); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to change academic year")
	}
	s.logger.Info("academic year changed", zap.Int64("user_id", userID), zap.Int("year", year))
	return scope, nil
}

// Clear removes the scope and every course it was gating so a later
// establish starts from a clean slate.
func (s *AcademicYearService) Clear(ctx context.Context, userID int64) error {
	if err := s.years.Clear(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "no academic year set")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear academic year")
	}
	s.logger.Info("academic year cleared", zap.Int64("user_id", userID))
	return nil
}
