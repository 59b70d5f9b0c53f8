package models

// SubjectType distinguishes mandatory coursework from electives.
type SubjectType string

const (
	SubjectTypeRegular  SubjectType = "REGULAR"
	SubjectTypeElective SubjectType = "ELECTIVE"
)

// Semester slot within a plan year. Zero denotes an annual subject.
const (
	SemesterAnnual = 0
	SemesterFirst  = 1
	SemesterSecond = 2
)

// Subject is immutable catalog data describing a course of study.
type Subject struct {
	ID          string      `db:"id" json:"id"`
	Code        string      `db:"code" json:"code"`
	Name        string      `db:"name" json:"name"`
	Type        SubjectType `db:"type" json:"type"`
	WeeklyHours int         `db:"weekly_hours" json:"weekly_hours"`
}

// PlanSubject places a subject inside a study plan.
type PlanSubject struct {
	PlanID    string `db:"plan_id" json:"plan_id"`
	SubjectID string `db:"subject_id" json:"subject_id"`
	Year      int    `db:"year" json:"year"`
	Semester  int    `db:"semester" json:"semester"`
}

// PlanSubjectDetail joins the placement with the subject catalog row.
type PlanSubjectDetail struct {
	SubjectID   string      `db:"subject_id" json:"subject_id"`
	Code        string      `db:"code" json:"code"`
	Name        string      `db:"name" json:"name"`
	Type        SubjectType `db:"type" json:"type"`
	WeeklyHours int         `db:"weekly_hours" json:"weekly_hours"`
	Year        int         `db:"year" json:"year"`
	Semester    int         `db:"semester" json:"semester"`
}

// PrerequisiteEdge is a plan-scoped directed edge: Subject requires Prerequisite.
type PrerequisiteEdge struct {
	PlanID         string `db:"plan_id" json:"plan_id"`
	SubjectID      string `db:"subject_id" json:"subject_id"`
	PrerequisiteID string `db:"prerequisite_id" json:"prerequisite_id"`
}
