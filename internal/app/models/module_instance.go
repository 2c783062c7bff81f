package models

import "time"

// ModuleInstance is one offering of a module in a specific year and semester,
// taught by a set of professors. The (module, year, semester) triple is unique.
type ModuleInstance struct {
	ID          int64     `json:"id" db:"id"`
	ModuleCode  string    `json:"module_code" db:"module_code" example:"CS101"`
	Year        int       `json:"year" db:"year" example:"2024"`
	Semester    int       `json:"semester" db:"semester" example:"1"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`

	// Relations (populated when needed)
	Module     *Module      `json:"module,omitempty"`
	Professors []*Professor `json:"professors,omitempty"`
}
