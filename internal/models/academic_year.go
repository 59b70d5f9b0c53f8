package models

import "time"

// AcademicYearScope is the single active academic year for a user. Absence of
// a row means the user has no in-progress coursework context.
type AcademicYearScope struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	Year      int       `db:"year" json:"year"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Term is the externally administered academic calendar entry consumed when
// establishing a user's academic year.
type Term struct {
	ID        string    `db:"id" json:"id"`
	Year      int       `db:"year" json:"year"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	IsActive  bool      `db:"is_active" json:"is_active"`
}
