package models

import "time"

// User defines the user model based on the 'users' table. Passwords are
// stored bcrypt-hashed and never serialized.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username" example:"jdoe"`
	Email     string    `json:"email" db:"email" example:"jdoe@example.edu"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
