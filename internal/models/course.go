package models

import "time"

// Course is an in-progress enrollment ("cursada") holding up to four grade
// slots bound to the user's current academic year.
type Course struct {
	ID            string    `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	PlanID        string    `db:"plan_id" json:"plan_id"`
	SubjectID     string    `db:"subject_id" json:"subject_id"`
	FirstPartial  *float64  `db:"first_partial" json:"first_partial,omitempty"`
	SecondPartial *float64  `db:"second_partial" json:"second_partial,omitempty"`
	FirstMakeup   *float64  `db:"first_makeup" json:"first_makeup,omitempty"`
	SecondMakeup  *float64  `db:"second_makeup" json:"second_makeup,omitempty"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// EffectiveFirst resolves the first partial slot, preferring the makeup grade.
func (c *Course) EffectiveFirst() *float64 {
	if c.FirstMakeup != nil {
		return c.FirstMakeup
	}
	return c.FirstPartial
}

// EffectiveSecond resolves the second partial slot, preferring the makeup grade.
func (c *Course) EffectiveSecond() *float64 {
	if c.SecondMakeup != nil {
		return c.SecondMakeup
	}
	return c.SecondPartial
}

// Average returns the course average, defined only when both effective
// partials are present.
func (c *Course) Average() *float64 {
	first := c.EffectiveFirst()
	second := c.EffectiveSecond()
	if first == nil || second == nil {
		return nil
	}
	avg := (*first + *second) / 2
	return &avg
}

// CourseDetail joins a course with its plan placement for summaries.
type CourseDetail struct {
	Course
	Code     string `db:"code" json:"code"`
	Name     string `db:"name" json:"name"`
	Year     int    `db:"year" json:"year"`
	Semester int    `db:"semester" json:"semester"`
}

// CourseGradePatch updates a subset of grade slots; nil slots are untouched.
type CourseGradePatch struct {
	FirstPartial  *float64 `json:"first_partial,omitempty"`
	SecondPartial *float64 `json:"second_partial,omitempty"`
	FirstMakeup   *float64 `json:"first_makeup,omitempty"`
	SecondMakeup  *float64 `json:"second_makeup,omitempty"`
}

// Empty reports whether the patch touches no slot.
func (p CourseGradePatch) Empty() bool {
	return p.FirstPartial == nil && p.SecondPartial == nil && p.FirstMakeup == nil && p.SecondMakeup == nil
}
