package models

// ProgressSnapshot is the derived per-plan progress summary. Percentage is
// rounded to two decimals; a plan is completed at exactly 100.
type ProgressSnapshot struct {
	PlanID       string   `json:"plan_id"`
	Total        int      `json:"total"`
	Approved     int      `json:"approved"`
	Percentage   float64  `json:"percentage"`
	AverageGrade *float64 `json:"average_grade,omitempty"`
	Completed    bool     `json:"completed"`
}

// InProgressSummary aggregates a user's active courses across plans.
type InProgressSummary struct {
	Count           int         `json:"count"`
	CountBySemester map[int]int `json:"count_by_semester"`
	AverageGrade    *float64    `json:"average_grade,omitempty"`
}
