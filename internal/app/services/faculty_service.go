package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/app/repositories"
	"github.com/yigit/hogwarts/internal/pkg/apperrors"
	"github.com/yigit/hogwarts/internal/pkg/logger"
)

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	FindFaculty(ctx context.Context, id int64) (*models.Faculty, error)
	CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	EditFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	DeleteFaculty(ctx context.Context, id int64) error
	FindByNameOrColor(ctx context.Context, name, color string) ([]*models.Faculty, error)
	StudentsOfFaculty(ctx context.Context, id int64) ([]*models.Student, error)
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	facultyRepo repositories.FacultyRepository
	studentRepo repositories.StudentRepository
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo repositories.FacultyRepository, studentRepo repositories.StudentRepository) FacultyService {
	return &facultyServiceImpl{
		facultyRepo: facultyRepo,
		studentRepo: studentRepo,
	}
}

// validateFaculty validates faculty data before database operations
func (s *facultyServiceImpl) validateFaculty(faculty *models.Faculty) error {
	if faculty == nil {
		return fmt.Errorf("%w: faculty is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(faculty.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	return nil
}

// FindFaculty returns the faculty with the given id or ErrFacultyNotFound
func (s *facultyServiceImpl) FindFaculty(ctx context.Context, id int64) (*models.Faculty, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty: %w", err)
	}
	return faculty, nil
}

// CreateFaculty stores a new faculty. Any id on the input is discarded.
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	if err := s.validateFaculty(faculty); err != nil {
		return nil, err
	}
	faculty.ID = 0

	created, err := s.facultyRepo.Save(ctx, faculty)
	if err != nil {
		return nil, fmt.Errorf("error creating faculty: %w", err)
	}

	logger.Info().Int64("facultyID", created.ID).Str("name", created.Name).Msg("Faculty created")
	return created, nil
}

// EditFaculty replaces the name and color of an existing faculty.
// An id that is missing or unknown yields ErrFacultyNotFound and nothing is written.
func (s *facultyServiceImpl) EditFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	if err := s.validateFaculty(faculty); err != nil {
		return nil, err
	}

	if _, err := s.FindFaculty(ctx, faculty.ID); err != nil {
		return nil, err
	}

	updated, err := s.facultyRepo.Save(ctx, faculty)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error updating faculty: %w", err)
	}

	logger.Info().Int64("facultyID", updated.ID).Msg("Faculty updated")
	return updated, nil
}

// DeleteFaculty removes a faculty and clears it from its students.
// A missing id is not an error.
func (s *facultyServiceImpl) DeleteFaculty(ctx context.Context, id int64) error {
	if err := s.facultyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting faculty: %w", err)
	}
	logger.Info().Int64("facultyID", id).Msg("Faculty deleted")
	return nil
}

// FindByNameOrColor returns faculties whose name or color matches.
// Blank criteria are ignored; both blank yields an empty list.
func (s *facultyServiceImpl) FindByNameOrColor(ctx context.Context, name, color string) ([]*models.Faculty, error) {
	if strings.TrimSpace(name) == "" && strings.TrimSpace(color) == "" {
		return []*models.Faculty{}, nil
	}
	return s.facultyRepo.FindByNameOrColor(ctx, name, color)
}

// StudentsOfFaculty lists the students of an existing faculty
func (s *facultyServiceImpl) StudentsOfFaculty(ctx context.Context, id int64) ([]*models.Student, error) {
	if _, err := s.FindFaculty(ctx, id); err != nil {
		return nil, err
	}

	students, err := s.studentRepo.FindByFacultyID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving faculty students: %w", err)
	}
	return students, nil
}
