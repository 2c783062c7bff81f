package models

import "time"

// Rating is a single user's score for a professor on one module instance.
// Exactly one rating exists per (module instance, professor, user) triple;
// every write to this table recomputes the professor's cached average.
type Rating struct {
	ID               int64     `json:"id" db:"id"`
	ModuleInstanceID int64     `json:"module_instance_id" db:"module_instance_id"`
	ProfessorID      string    `json:"professor_id" db:"professor_id" example:"P001"`
	UserID           int64     `json:"user_id" db:"user_id"`
	Rating           int       `json:"rating" db:"rating" example:"4"`
	LastUpdated      time.Time `json:"last_updated" db:"last_updated"`
}
