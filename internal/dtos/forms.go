package dtos

// Form payloads posted by the portal's pages. Binding tags drive
// validator/v10 through gin; "worktype" is registered in main.

type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	LastName string `form:"lastName" json:"lastName" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
	Location string `form:"location" json:"location" binding:"required"`
}

type PostJobRequest struct {
	Position     string `form:"position" json:"position" binding:"required"`
	Company      string `form:"company" json:"company" binding:"required"`
	WorkLocation string `form:"workLocation" json:"workLocation" binding:"required"`
	WorkType     string `form:"workType" json:"workType" binding:"required,worktype"`
	Status       string `form:"status" json:"status"`
	Description  string `form:"description" json:"description" binding:"required,min=50"`
}

type CreateEmployeeRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	LastName string `form:"lastName" json:"lastName" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
	Location string `form:"location" json:"location" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	LastName string `form:"lastName" json:"lastName" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Location string `form:"location" json:"location"`
}

// WorkTypes are the values the post-job form accepts.
var WorkTypes = []string{"full-time", "part-time", "contract", "internship", "remote"}
