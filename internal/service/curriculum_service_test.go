package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victor-POL/mi-uni-api/internal/models"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
)

type mockCurriculumRepo struct {
	plans       []models.StudyPlanDetail
	subjects    map[string][]models.PlanSubjectDetail
	subjectHits int
}

func (m *mockCurriculumRepo) ListPlans(ctx context.Context) ([]models.StudyPlanDetail, error) {
	return m.plans, nil
}

func (m *mockCurriculumRepo) PlanExists(ctx context.Context, planID string) (bool, error) {
	_, ok := m.subjects[planID]
	return ok, nil
}

func (m *mockCurriculumRepo) SubjectsOf(ctx context.Context, planID string) ([]models.PlanSubjectDetail, error) {
	m.subjectHits++
	return m.subjects[planID], nil
}

func (m *mockCurriculumRepo) PrerequisitesOf(ctx context.Context, planID, subjectID string) ([]models.Subject, error) {
	return nil, nil
}

func (m *mockCurriculumRepo) DependentsOf(ctx context.Context, planID, subjectID string) ([]models.Subject, error) {
	return nil, nil
}

type mockCurriculumCache struct {
	values map[string][]byte
	sets   int
}

func (m *mockCurriculumCache) Get(ctx context.Context, key string, dest interface{}) error {
	if _, ok := m.values[key]; !ok {
		return appErrors.ErrCacheMiss
	}
	// The fixture only caches subject lists.
	*(dest.(*[]models.PlanSubjectDetail)) = []models.PlanSubjectDetail{planSubject("cached", "C1", "Cached", 1, 1, 4)}
	return nil
}

func (m *mockCurriculumCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	m.values[key] = nil
	m.sets++
	return nil
}

func TestSubjectsOfUnknownPlan(t *testing.T) {
	svc := NewCurriculumService(&mockCurriculumRepo{}, nil, 0, nil, nil)

	_, err := svc.SubjectsOf(context.Background(), "missing")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestSubjectsOfPopulatesCache(t *testing.T) {
	repo := &mockCurriculumRepo{subjects: map[string][]models.PlanSubjectDetail{
		"plan-1": {planSubject("s1", "MAT101", "Analisis Matematico I", 1, 1, 8)},
	}}
	cache := &mockCurriculumCache{}
	svc := NewCurriculumService(repo, cache, time.Hour, nil, nil)

	subjects, err := svc.SubjectsOf(context.Background(), "plan-1")
	require.NoError(t, err)
	assert.Len(t, subjects, 1)
	assert.Equal(t, 1, repo.subjectHits)
	assert.Equal(t, 1, cache.sets)

	// Second read is served from the cache.
	subjects, err = svc.SubjectsOf(context.Background(), "plan-1")
	require.NoError(t, err)
	assert.Equal(t, "cached", subjects[0].SubjectID)
	assert.Equal(t, 1, repo.subjectHits)
}

func TestSubjectsOfRecordsCacheMetrics(t *testing.T) {
	repo := &mockCurriculumRepo{subjects: map[string][]models.PlanSubjectDetail{
		"plan-1": {planSubject("s1", "MAT101", "Analisis Matematico I", 1, 1, 8)},
	}}
	cache := &mockCurriculumCache{}
	metrics := NewMetricsService()
	svc := NewCurriculumService(repo, cache, time.Hour, metrics, nil)

	_, err := svc.SubjectsOf(context.Background(), "plan-1")
	require.NoError(t, err)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.cacheMisses), 0.001)
	assert.Zero(t, testutil.ToFloat64(metrics.cacheHits))

	_, err = svc.SubjectsOf(context.Background(), "plan-1")
	require.NoError(t, err)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.cacheHits), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.cacheMisses), 0.001)
}

func TestListPlans(t *testing.T) {
	repo := &mockCurriculumRepo{plans: []models.StudyPlanDetail{
		{StudyPlan: models.StudyPlan{ID: "plan-1", CatalogYear: 2020}, CareerName: "Ingenieria en Sistemas"},
	}}
	svc := NewCurriculumService(repo, nil, 0, nil, nil)

	plans, err := svc.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Ingenieria en Sistemas", plans[0].CareerName)
}
