package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/pkg/logger"
)

// SQLiteStudentRepository handles student database operations on SQLite
type SQLiteStudentRepository struct {
	db *sql.DB
	q  studentQueries
}

// NewSQLiteStudentRepository creates a new SQLite student repository
func NewSQLiteStudentRepository(db *sql.DB) *SQLiteStudentRepository {
	return &SQLiteStudentRepository{
		db: db,
		q:  studentQueries{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)},
	}
}

// GetByID retrieves a student, with its faculty, by ID
func (r *SQLiteStudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query, args, err := r.q.getByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return student, nil
}

// Save inserts a new student or replaces an existing one and returns the stored row
func (r *SQLiteStudentRepository) Save(ctx context.Context, student *models.Student) (*models.Student, error) {
	id := student.ID
	if id == 0 {
		query, args, err := r.q.insert(student)
		if err != nil {
			return nil, fmt.Errorf("failed to build create student query: %w", err)
		}
		if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			logger.Error().Err(err).Str("name", student.Name).Msg("Error executing create student query")
			return nil, fmt.Errorf("error creating student: %w", err)
		}
	} else {
		query, args, err := r.q.update(student)
		if err != nil {
			return nil, fmt.Errorf("failed to build update student query: %w", err)
		}
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			logger.Error().Err(err).Int64("studentID", id).Msg("Error executing update student query")
			return nil, fmt.Errorf("error updating student: %w", err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// Delete deletes a student by ID; deleting a missing student is not an error
func (r *SQLiteStudentRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.q.delete(id)
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}
	return nil
}

// FindByAge returns students of exactly the given age
func (r *SQLiteStudentRepository) FindByAge(ctx context.Context, age int) ([]*models.Student, error) {
	query, args, err := r.q.findByAge(age)
	if err != nil {
		return nil, fmt.Errorf("failed to build find students by age query: %w", err)
	}
	return r.list(ctx, query, args)
}

// FindByAgeBetween returns students with min <= age <= max
func (r *SQLiteStudentRepository) FindByAgeBetween(ctx context.Context, min, max int) ([]*models.Student, error) {
	query, args, err := r.q.findByAgeBetween(min, max)
	if err != nil {
		return nil, fmt.Errorf("failed to build find students by age range query: %w", err)
	}
	return r.list(ctx, query, args)
}

// FindByFacultyID returns the students referencing a faculty
func (r *SQLiteStudentRepository) FindByFacultyID(ctx context.Context, facultyID int64) ([]*models.Student, error) {
	query, args, err := r.q.findByFacultyID(facultyID)
	if err != nil {
		return nil, fmt.Errorf("failed to build find students by faculty query: %w", err)
	}
	return r.list(ctx, query, args)
}

// LastFive returns up to five students, newest first
func (r *SQLiteStudentRepository) LastFive(ctx context.Context) ([]*models.Student, error) {
	query, args, err := r.q.lastFive()
	if err != nil {
		return nil, fmt.Errorf("failed to build last students query: %w", err)
	}
	return r.list(ctx, query, args)
}

// Count returns the number of students
func (r *SQLiteStudentRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := r.q.count()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// AverageAge returns the truncated average student age, 0 when there are no students
func (r *SQLiteStudentRepository) AverageAge(ctx context.Context) (int, error) {
	query, args, err := r.q.averageAge()
	if err != nil {
		return 0, fmt.Errorf("failed to build average age query: %w", err)
	}

	var avg float64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&avg); err != nil {
		return 0, fmt.Errorf("error computing average age: %w", err)
	}
	return int(avg), nil
}

func (r *SQLiteStudentRepository) list(ctx context.Context, query string, args []interface{}) ([]*models.Student, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing student query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students, err := collectStudents(rows)
	if err != nil {
		return nil, fmt.Errorf("error scanning students: %w", err)
	}
	return students, nil
}
