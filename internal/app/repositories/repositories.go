package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yigit/hogwarts/internal/app/models"
)

var (
	// ErrNotFound is returned when no row matches the requested identifier.
	ErrNotFound = errors.New("record not found")
	// ErrFacultyReference is returned when a student points at a faculty that does not exist.
	ErrFacultyReference = errors.New("student references an unknown faculty")
)

// lastStudentsLimit is the size of the "most recently created students" window
const lastStudentsLimit = 5

// StudentRepository is the persistence gateway for students
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	// Save inserts the student when ID is zero and fully replaces it otherwise
	Save(ctx context.Context, student *models.Student) (*models.Student, error)
	// Delete is a no-op when the student does not exist
	Delete(ctx context.Context, id int64) error
	FindByAge(ctx context.Context, age int) ([]*models.Student, error)
	FindByAgeBetween(ctx context.Context, min, max int) ([]*models.Student, error)
	FindByFacultyID(ctx context.Context, facultyID int64) ([]*models.Student, error)
	Count(ctx context.Context) (int64, error)
	AverageAge(ctx context.Context) (int, error)
	LastFive(ctx context.Context) ([]*models.Student, error)
}

// FacultyRepository is the persistence gateway for faculties
type FacultyRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Faculty, error)
	Save(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	// Delete clears the faculty of every student referencing it, then removes the faculty
	Delete(ctx context.Context, id int64) error
	FindByNameOrColor(ctx context.Context, name, color string) ([]*models.Faculty, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository StudentRepository
	FacultyRepository FacultyRepository
}

// NewRepositories initializes the PostgreSQL repositories
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(db),
		FacultyRepository: NewFacultyRepository(db),
	}
}

// NewSQLiteRepositories initializes the SQLite repositories
func NewSQLiteRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		StudentRepository: NewSQLiteStudentRepository(db),
		FacultyRepository: NewSQLiteFacultyRepository(db),
	}
}
