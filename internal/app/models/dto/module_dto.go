package dto

// ProfessorRequest represents the create/update body for professors
type ProfessorRequest struct {
	ID   string `json:"id" binding:"required,max=16"`
	Name string `json:"name" binding:"required,max=128"`
}

// ProfessorUpdateRequest updates a professor's mutable fields
type ProfessorUpdateRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

// ModuleRequest represents the create/update body for modules
type ModuleRequest struct {
	Code string `json:"code" binding:"required,max=16"`
	Name string `json:"name" binding:"required,max=128"`
}

// ModuleUpdateRequest updates a module's mutable fields
type ModuleUpdateRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

// ModuleInstanceRequest represents the create/update body for module instances
type ModuleInstanceRequest struct {
	ModuleCode   string   `json:"module_code" binding:"required"`
	Year         int      `json:"year" binding:"required,min=1900"`
	Semester     int      `json:"semester" binding:"required,min=1"`
	ProfessorIDs []string `json:"professor_ids"`
}

// ModuleInstanceEntry is one row of the module listing: a module offering with
// a human-readable instructor list.
type ModuleInstanceEntry struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	Semester int    `json:"semester"`
	TaughtBy string `json:"taught_by"`
}
