package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/victor-POL/mi-uni-api/internal/models"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
)

type curriculumRepository interface {
	ListPlans(ctx context.Context) ([]models.StudyPlanDetail, error)
	PlanExists(ctx context.Context, planID string) (bool, error)
	SubjectsOf(ctx context.Context, planID string) ([]models.PlanSubjectDetail, error)
	PrerequisitesOf(ctx context.Context, planID, subjectID string) ([]models.Subject, error)
	DependentsOf(ctx context.Context, planID, subjectID string) ([]models.Subject, error)
}

type curriculumCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CurriculumService answers read-only queries over the plan catalog. Plans
// are immutable once published, so subject lists are cached aggressively.
type CurriculumService struct {
	repo     curriculumRepository
	cache    curriculumCache
	cacheTTL time.Duration
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewCurriculumService constructs CurriculumService. A nil cache disables
// caching.
func NewCurriculumService(repo curriculumRepository, cache curriculumCache, cacheTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *CurriculumService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CurriculumService{repo: repo, cache: cache, cacheTTL: cacheTTL, metrics: metrics, logger: logger}
}

// ListPlans returns the plan catalog.
func (s *CurriculumService) ListPlans(ctx context.Context) ([]models.StudyPlanDetail, error) {
	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list plans")
	}
	return plans, nil
}

// SubjectsOf returns the plan's subjects in canonical order, consulting the
// cache first.
func (s *CurriculumService) SubjectsOf(ctx context.Context, planID string) ([]models.PlanSubjectDetail, error) {
	cacheKey := fmt.Sprintf("curriculum:plan:%s:subjects", planID)
	if s.cache != nil {
		var cached []models.PlanSubjectDetail
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheOperation(true)
			}
			return cached, nil
		}
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(false)
		}
	}

	exists, err := s.repo.PlanExists(ctx, planID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check plan")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "study plan not found")
	}

	subjects, err := s.repo.SubjectsOf(ctx, planID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list plan subjects")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, subjects, s.cacheTTL); err != nil {
			s.logger.Warn("curriculum cache write failed", zap.String("plan_id", planID), zap.Error(err))
		}
	}
	return subjects, nil
}

// PrerequisitesOf lists the subjects required before the given one.
func (s *CurriculumService) PrerequisitesOf(ctx context.Context, planID, subjectID string) ([]models.Subject, error) {
	subjects, err := s.repo.PrerequisitesOf(ctx, planID, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list prerequisites")
	}
	return subjects, nil
}

// DependentsOf lists what the given subject unlocks.
func (s *CurriculumService) DependentsOf(ctx context.Context, planID, subjectID string) ([]models.Subject, error) {
	subjects, err := s.repo.DependentsOf(ctx, planID, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list dependents")
	}
	return subjects, nil
}
