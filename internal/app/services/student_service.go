package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/app/models/dto"
	"github.com/yigit/hogwarts/internal/app/repositories"
	"github.com/yigit/hogwarts/internal/pkg/apperrors"
	"github.com/yigit/hogwarts/internal/pkg/logger"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	FindStudent(ctx context.Context, id int64) (*models.Student, error)
	CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error)
	EditStudent(ctx context.Context, student *models.Student) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
	FindByAge(ctx context.Context, age int) ([]*models.Student, error)
	FindByAgeBetween(ctx context.Context, min, max int) ([]*models.Student, error)
	CountStudents(ctx context.Context) (int64, error)
	AverageAge(ctx context.Context) (int, error)
	LastFiveStudents(ctx context.Context) ([]*models.Student, error)
	FacultyOfStudent(ctx context.Context, id int64) (*models.Faculty, error)
	ImportStudents(ctx context.Context, r io.Reader) (*dto.ImportResult, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo repositories.StudentRepository
	facultyRepo repositories.FacultyRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.StudentRepository, facultyRepo repositories.FacultyRepository) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		facultyRepo: facultyRepo,
	}
}

// FindStudent returns the student with the given id or ErrStudentNotFound
func (s *studentServiceImpl) FindStudent(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// CreateStudent stores a new student. Any id on the input is discarded.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if student == nil {
		return nil, fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}
	student.ID = 0

	if err := s.checkFaculty(ctx, student); err != nil {
		return nil, err
	}

	created, err := s.studentRepo.Save(ctx, student)
	if err != nil {
		return nil, s.mapSaveError(err, "error creating student")
	}

	logger.Info().Int64("studentID", created.ID).Str("name", created.Name).Msg("Student created")
	return created, nil
}

// EditStudent replaces every field of an existing student
func (s *studentServiceImpl) EditStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if student == nil {
		return nil, fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}

	if _, err := s.FindStudent(ctx, student.ID); err != nil {
		return nil, err
	}
	if err := s.checkFaculty(ctx, student); err != nil {
		return nil, err
	}

	updated, err := s.studentRepo.Save(ctx, student)
	if err != nil {
		return nil, s.mapSaveError(err, "error updating student")
	}

	logger.Info().Int64("studentID", updated.ID).Msg("Student updated")
	return updated, nil
}

// DeleteStudent removes a student; a missing id is not an error
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}

func (s *studentServiceImpl) FindByAge(ctx context.Context, age int) ([]*models.Student, error) {
	return s.studentRepo.FindByAge(ctx, age)
}

func (s *studentServiceImpl) FindByAgeBetween(ctx context.Context, min, max int) ([]*models.Student, error) {
	return s.studentRepo.FindByAgeBetween(ctx, min, max)
}

func (s *studentServiceImpl) CountStudents(ctx context.Context) (int64, error) {
	return s.studentRepo.Count(ctx)
}

func (s *studentServiceImpl) AverageAge(ctx context.Context) (int, error) {
	return s.studentRepo.AverageAge(ctx)
}

func (s *studentServiceImpl) LastFiveStudents(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.LastFive(ctx)
}

// FacultyOfStudent returns the student's faculty, nil when it has none
func (s *studentServiceImpl) FacultyOfStudent(ctx context.Context, id int64) (*models.Faculty, error) {
	student, err := s.FindStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	return student.Faculty, nil
}

// ImportStudents creates a student for every valid row of the first sheet of
// an .xlsx workbook. Columns are name, age and an optional faculty id; the
// first row is a header.
func (s *studentServiceImpl) ImportStudents(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		logger.Warn().Err(err).Msg("Error opening student workbook")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidWorkbook, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Msg("Error closing student workbook")
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", apperrors.ErrInvalidWorkbook)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidWorkbook, err)
	}

	result := &dto.ImportResult{}
	for i, row := range rows {
		if i == 0 || isBlankRow(row) {
			continue
		}

		student, err := parseStudentRow(row)
		if err != nil {
			logger.Debug().Int("row", i+1).Err(err).Msg("Skipping unreadable student row")
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		if _, err := s.CreateStudent(ctx, student); err != nil {
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				return nil, fmt.Errorf("error importing row %d: %w", i+1, err)
			}
			logger.Debug().Int("row", i+1).Err(err).Msg("Skipping invalid student row")
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Imported++
	}

	logger.Info().
		Str("sheet", sheetName).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("Student import finished")
	return result, nil
}

// checkFaculty verifies the referenced faculty exists
func (s *studentServiceImpl) checkFaculty(ctx context.Context, student *models.Student) error {
	facultyID := student.FacultyID()
	if facultyID == nil {
		student.Faculty = nil
		return nil
	}

	if _, err := s.facultyRepo.GetByID(ctx, *facultyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrUnknownFaculty
		}
		return fmt.Errorf("error checking faculty: %w", err)
	}
	return nil
}

func (s *studentServiceImpl) mapSaveError(err error, msg string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return apperrors.ErrStudentNotFound
	case errors.Is(err, repositories.ErrFacultyReference):
		return apperrors.ErrUnknownFaculty
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseStudentRow(row []string) (*models.Student, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	name := cell(0)
	if name == "" {
		return nil, errors.New("name is required")
	}

	age, err := strconv.Atoi(cell(1))
	if err != nil {
		return nil, fmt.Errorf("invalid age %q", cell(1))
	}
	if age < 0 {
		return nil, fmt.Errorf("age must not be negative, got %d", age)
	}

	student := &models.Student{Name: name, Age: age}
	if raw := cell(2); raw != "" {
		facultyID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid faculty id %q", raw)
		}
		student.Faculty = &models.Faculty{ID: facultyID}
	}
	return student, nil
}
