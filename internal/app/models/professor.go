package models

import "time"

// Professor represents a teaching professor identified by an external code
// such as "P001". AverageRating is a cached value derived from the ratings
// table; it is nil while the professor has no ratings.
type Professor struct {
	ID            string    `json:"id" db:"id" example:"P001"`
	Name          string    `json:"name" db:"name" example:"Jane Smith"`
	AverageRating *float64  `json:"average_rating" db:"average_rating" example:"4.0"`
	LastUpdated   time.Time `json:"last_updated" db:"last_updated"`
}
