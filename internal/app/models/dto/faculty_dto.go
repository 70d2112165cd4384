package dto

import "github.com/yigit/hogwarts/internal/app/models"

// FacultyRequest represents the body of faculty create and edit requests
type FacultyRequest struct {
	ID    int64  `json:"id" example:"0"`
	Name  string `json:"name" binding:"required,notblank,max=100" example:"Gryffindor"`
	Color string `json:"color" example:"red"`
}

// ToModel converts the request into a faculty model
func (r *FacultyRequest) ToModel() *models.Faculty {
	return &models.Faculty{
		ID:    r.ID,
		Name:  r.Name,
		Color: r.Color,
	}
}

// FacultySearchQuery is the query of GET /faculty; both fields are optional
type FacultySearchQuery struct {
	Name  string `form:"name"`
	Color string `form:"color"`
}
