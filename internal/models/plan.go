package models

// Career is a degree program offered by the university.
type Career struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// StudyPlan is a versioned curriculum for a career.
type StudyPlan struct {
	ID          string `db:"id" json:"id"`
	CareerID    string `db:"career_id" json:"career_id"`
	CatalogYear int    `db:"catalog_year" json:"catalog_year"`
}

// StudyPlanDetail enriches a plan with its career name for listings.
type StudyPlanDetail struct {
	StudyPlan
	CareerName string `db:"career_name" json:"career_name"`
}
