package models

// SubjectFilterCriteria narrows a plan's subject set. Nil/empty fields are
// skipped; the remaining filters combine with AND. PrerequisiteName switches
// to a distinct query mode that replaces every other filter.
type SubjectFilterCriteria struct {
	Year             *int           `json:"year,omitempty"`
	Semester         *int           `json:"semester,omitempty"`
	Name             string         `json:"name,omitempty"`
	Status           *SubjectStatus `json:"status,omitempty"`
	WeeklyHours      *int           `json:"weekly_hours,omitempty"`
	PrerequisiteName string         `json:"prerequisite_name,omitempty"`
}

// PlanSubjectView is a plan subject decorated with the user's status when a
// status map was supplied.
type PlanSubjectView struct {
	PlanSubjectDetail
	Status *SubjectStatus `json:"status,omitempty"`
}

// SubjectGroup is one (year, semester) partition of the filtered set, members
// ordered by subject code.
type SubjectGroup struct {
	Year     int               `json:"year"`
	Semester int               `json:"semester"`
	Subjects []PlanSubjectView `json:"subjects"`
}

// FilteredSubjects is the result of a filter/group query.
// StatusFilteringAvailable is false when any subject of the plan lacks a
// status for the user, in which case status filtering and display are
// disabled rather than silently ignored.
type FilteredSubjects struct {
	Groups                   []SubjectGroup `json:"groups"`
	Total                    int            `json:"total"`
	StatusFilteringAvailable bool           `json:"status_filtering_available"`
}
