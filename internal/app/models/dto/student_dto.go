package dto

import "github.com/yigit/hogwarts/internal/app/models"

// FacultyRef identifies the faculty a student belongs to
type FacultyRef struct {
	ID int64 `json:"id" example:"1"`
}

// StudentRequest represents the body of student create and edit requests
type StudentRequest struct {
	ID      int64       `json:"id" example:"0"`
	Name    string      `json:"name" binding:"required,notblank,max=100" example:"Harry Potter"`
	Age     int         `json:"age" binding:"gte=0" example:"15"`
	Faculty *FacultyRef `json:"faculty,omitempty"`
}

// ToModel converts the request into a student model
func (r *StudentRequest) ToModel() *models.Student {
	student := &models.Student{
		ID:   r.ID,
		Name: r.Name,
		Age:  r.Age,
	}
	if r.Faculty != nil && r.Faculty.ID != 0 {
		student.Faculty = &models.Faculty{ID: r.Faculty.ID}
	}
	return student
}

// StudentAgeQuery is the query of GET /student/studentAge
type StudentAgeQuery struct {
	Age *int `form:"age" binding:"required"`
}

// StudentAgeBetweenQuery is the query of GET /student/studentAgeBetween
type StudentAgeBetweenQuery struct {
	Min *int `form:"min" binding:"required"`
	Max *int `form:"max" binding:"required"`
}

// ImportResult reports the outcome of a spreadsheet import
type ImportResult struct {
	Imported int      `json:"imported" example:"12"`
	Skipped  int      `json:"skipped" example:"1"`
	Errors   []string `json:"errors,omitempty"`
}
