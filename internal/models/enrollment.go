package models

import "time"

// SubjectStatus is the per-user lifecycle of a plan subject.
type SubjectStatus string

const (
	SubjectStatusPending       SubjectStatus = "PENDING"
	SubjectStatusInProgress    SubjectStatus = "IN_PROGRESS"
	SubjectStatusRegularized   SubjectStatus = "REGULARIZED"
	SubjectStatusAwaitingFinal SubjectStatus = "AWAITING_FINAL"
	SubjectStatusApproved      SubjectStatus = "APPROVED"
)

// ValidSubjectStatus reports whether the value is a known status.
func ValidSubjectStatus(s SubjectStatus) bool {
	switch s {
	case SubjectStatusPending, SubjectStatusInProgress, SubjectStatusRegularized,
		SubjectStatusAwaitingFinal, SubjectStatusApproved:
		return true
	}
	return false
}

// CareerEnrollment records that a user joined a study plan.
type CareerEnrollment struct {
	ID       string    `db:"id" json:"id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	PlanID   string    `db:"plan_id" json:"plan_id"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

// SubjectRecord is the per-user ledger row for a plan subject. One row per
// (user, plan, subject), created when the user joins the plan.
type SubjectRecord struct {
	ID            string        `db:"id" json:"id"`
	UserID        int64         `db:"user_id" json:"user_id"`
	PlanID        string        `db:"plan_id" json:"plan_id"`
	SubjectID     string        `db:"subject_id" json:"subject_id"`
	Status        SubjectStatus `db:"status" json:"status"`
	Grade         *float64      `db:"grade" json:"grade,omitempty"`
	YearTaken     *int          `db:"year_taken" json:"year_taken,omitempty"`
	SemesterTaken *int          `db:"semester_taken" json:"semester_taken,omitempty"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}
