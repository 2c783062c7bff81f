package models

import "time"

// Module represents a course module identified by its code, e.g. "CS101".
type Module struct {
	Code        string    `json:"code" db:"code" example:"CS101"`
	Name        string    `json:"name" db:"name" example:"Introduction to Computing"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}
