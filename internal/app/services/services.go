// Package services holds the domain logic between the HTTP handlers and the
// repositories.
//
// Services defined in this package:
// - StudentService: student CRUD, age queries, statistics and spreadsheet import
// - FacultyService: faculty CRUD, name/color search and faculty membership
package services

import (
	"github.com/yigit/hogwarts/internal/app/repositories"
)

// Services groups every service built from one set of repositories
type Services struct {
	StudentService StudentService
	FacultyService FacultyService
}

// NewServices wires the services on top of the given repositories
func NewServices(repos *repositories.Repositories) *Services {
	return &Services{
		StudentService: NewStudentService(repos.StudentRepository, repos.FacultyRepository),
		FacultyService: NewFacultyService(repos.FacultyRepository, repos.StudentRepository),
	}
}
