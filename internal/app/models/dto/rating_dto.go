package dto

// RateRequest represents a rating submission. Year is optional; when zero the
// most recent instance of (module, semester) is rated. UserName is optional
// and defaults to the authenticated caller.
type RateRequest struct {
	ProfessorID string `json:"professor_id" binding:"required"`
	UserName    string `json:"user_name" binding:"omitempty"`
	ModuleCode  string `json:"module_code" binding:"required"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Semester    int    `json:"semester" binding:"required,min=1"`
	Year        int    `json:"year" binding:"omitempty,min=1900"`
}

// AverageRatingRequest asks for a professor's average scoped to one module
type AverageRatingRequest struct {
	ProfessorID string `json:"professor_id" binding:"required"`
	ModuleCode  string `json:"module_code" binding:"required"`
}

// AverageRatingResponse carries the module-scoped average. Average is null
// when the professor has no ratings in any instance of the module.
type AverageRatingResponse struct {
	ProfessorID   string   `json:"professor_id"`
	ProfessorName string   `json:"professor_name"`
	ModuleCode    string   `json:"module_code"`
	ModuleName    string   `json:"module_name"`
	AverageRating *float64 `json:"average_rating"`
}

// RatingRequest represents the generic CRUD create/update body for ratings
type RatingRequest struct {
	ModuleInstanceID int64  `json:"module_instance_id" binding:"required"`
	ProfessorID      string `json:"professor_id" binding:"required"`
	Rating           int    `json:"rating" binding:"required,min=1,max=5"`
}

// RatingUpdateRequest updates only the rating value of an existing row
type RatingUpdateRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}
