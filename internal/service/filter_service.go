package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/victor-POL/mi-uni-api/internal/models"
	appErrors "github.com/victor-POL/mi-uni-api/pkg/errors"
)

type planSubjectsReader interface {
	SubjectsOf(ctx context.Context, planID string) ([]models.PlanSubjectDetail, error)
	DependentsOf(ctx context.Context, planID, subjectID string) ([]models.Subject, error)
}

type statusMapReader interface {
	StatusMap(ctx context.Context, userID int64, planID string) (map[string]models.SubjectStatus, error)
}

// FilterService narrows and groups a plan's subject set. Filtering itself is
// a pure function over the resolved subjects and an optional status map; the
// service only resolves inputs and routes the prerequisite-name query mode.
type FilterService struct {
	curriculum planSubjectsReader
	records    statusMapReader
	logger     *zap.Logger
}

// NewFilterService constructs FilterService.
func NewFilterService(curriculum planSubjectsReader, records statusMapReader, logger *zap.Logger) *FilterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilterService{curriculum: curriculum, records: records, logger: logger}
}

// FilterSubjects resolves the plan's subjects and the user's status map, then
// applies the criteria. A userID of zero skips the status map entirely, which
// leaves status filtering unavailable.
func (s *FilterService) FilterSubjects(ctx context.Context, userID int64, planID string, criteria models.SubjectFilterCriteria) (*models.FilteredSubjects, error) {
	subjects, err := s.curriculum.SubjectsOf(ctx, planID)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve plan subjects")
	}

	var statuses map[string]models.SubjectStatus
	if userID != 0 {
		statuses, err = s.records.StatusMap(ctx, userID, planID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load status map")
		}
	}

	if criteria.PrerequisiteName != "" {
		return s.filterByPrerequisite(ctx, planID, subjects, statuses, criteria.PrerequisiteName)
	}
	return Filter(subjects, statuses, criteria)
}

// filterByPrerequisite is the "what does this subject unlock" query mode. The
// candidate set becomes exactly the matched subject's dependents and every
// other filter is discarded.
func (s *FilterService) filterByPrerequisite(ctx context.Context, planID string, subjects []models.PlanSubjectDetail, statuses map[string]models.SubjectStatus, name string) (*models.FilteredSubjects, error) {
	available := statusCoverage(subjects, statuses)

	matched := matchByName(subjects, name)
	if matched == nil {
		return &models.FilteredSubjects{Groups: []models.SubjectGroup{}, StatusFilteringAvailable: available}, nil
	}

	dependents, err := s.curriculum.DependentsOf(ctx, planID, matched.SubjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list dependents")
	}

	unlocked := make(map[string]struct{}, len(dependents))
	for i := range dependents {
		unlocked[dependents[i].ID] = struct{}{}
	}

	var candidates []models.PlanSubjectDetail
	for i := range subjects {
		if _, ok := unlocked[subjects[i].SubjectID]; ok {
			candidates = append(candidates, subjects[i])
		}
	}
	return buildResult(candidates, statuses, available), nil
}

// Filter applies the AND-combined criteria to an already resolved subject
// set. It holds no state and touches no storage.
func Filter(subjects []models.PlanSubjectDetail, statuses map[string]models.SubjectStatus, criteria models.SubjectFilterCriteria) (*models.FilteredSubjects, error) {
	available := statusCoverage(subjects, statuses)
	if criteria.Status != nil && !available {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "status filtering unavailable for this plan")
	}

	needle := strings.ToLower(criteria.Name)
	var candidates []models.PlanSubjectDetail
	for i := range subjects {
		subject := subjects[i]
		if criteria.Year != nil && subject.Year != *criteria.Year {
			continue
		}
		if criteria.Semester != nil && subject.Semester != *criteria.Semester {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(subject.Name), needle) {
			continue
		}
		if criteria.WeeklyHours != nil && subject.WeeklyHours != *criteria.WeeklyHours {
			continue
		}
		if criteria.Status != nil && statuses[subject.SubjectID] != *criteria.Status {
			continue
		}
		candidates = append(candidates, subject)
	}
	return buildResult(candidates, statuses, available), nil
}

// matchByName resolves a case-insensitive substring against the canonical
// subject ordering. First match wins.
func matchByName(subjects []models.PlanSubjectDetail, name string) *models.PlanSubjectDetail {
	needle := strings.ToLower(name)
	for i := range subjects {
		if strings.Contains(strings.ToLower(subjects[i].Name), needle) {
			return &subjects[i]
		}
	}
	return nil
}

// statusCoverage reports whether a status map was supplied and covers every
// subject of the plan.
func statusCoverage(subjects []models.PlanSubjectDetail, statuses map[string]models.SubjectStatus) bool {
	if statuses == nil {
		return false
	}
	for i := range subjects {
		if _, ok := statuses[subjects[i].SubjectID]; !ok {
			return false
		}
	}
	return true
}

// buildResult partitions candidates by (year, semester) and orders group
// members by subject code. Statuses decorate the view only when coverage is
// complete.
func buildResult(candidates []models.PlanSubjectDetail, statuses map[string]models.SubjectStatus, available bool) *models.FilteredSubjects {
	type slot struct {
		year     int
		semester int
	}

	grouped := make(map[slot][]models.PlanSubjectView)
	for i := range candidates {
		subject := candidates[i]
		view := models.PlanSubjectView{PlanSubjectDetail: subject}
		if available {
			if status, ok := statuses[subject.SubjectID]; ok {
				s := status
				view.Status = &s
			}
		}
		key := slot{year: subject.Year, semester: subject.Semester}
		grouped[key] = append(grouped[key], view)
	}

	keys := make([]slot, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].semester < keys[j].semester
	})

	groups := make([]models.SubjectGroup, 0, len(keys))
	total := 0
	for _, key := range keys {
		members := grouped[key]
		sort.Slice(members, func(i, j int) bool { return members[i].Code < members[j].Code })
		total += len(members)
		groups = append(groups, models.SubjectGroup{Year: key.year, Semester: key.semester, Subjects: members})
	}

	return &models.FilteredSubjects{Groups: groups, Total: total, StatusFilteringAvailable: available}
}
