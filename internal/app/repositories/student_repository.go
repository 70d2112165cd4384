package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/pkg/dberrors"
	"github.com/yigit/hogwarts/internal/pkg/logger"
)

// PostgresStudentRepository handles student database operations on PostgreSQL
type PostgresStudentRepository struct {
	db DBTX
	q  studentQueries
}

// NewStudentRepository creates a new PostgreSQL student repository
func NewStudentRepository(db DBTX) *PostgresStudentRepository {
	return &PostgresStudentRepository{
		db: db,
		q:  studentQueries{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)},
	}
}

// GetByID retrieves a student, with its faculty, by ID
func (r *PostgresStudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.q.getByID(id)
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// Save inserts a new student or replaces an existing one and returns the stored row
func (r *PostgresStudentRepository) Save(ctx context.Context, student *models.Student) (*models.Student, error) {
	id := student.ID
	var err error
	if id == 0 {
		id, err = r.insert(ctx, student)
	} else {
		err = r.update(ctx, student)
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresStudentRepository) insert(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.q.insert(student)
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, ErrFacultyReference
		}
		logger.Error().Err(err).Str("name", student.Name).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Int64("studentID", id).Msg("Student created successfully")
	return id, nil
}

func (r *PostgresStudentRepository) update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.q.update(student)
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return ErrFacultyReference
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a student by ID; deleting a missing student is not an error
func (r *PostgresStudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.q.delete(id)
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}
	return nil
}

// FindByAge returns students of exactly the given age
func (r *PostgresStudentRepository) FindByAge(ctx context.Context, age int) ([]*models.Student, error) {
	sql, args, err := r.q.findByAge(age)
	if err != nil {
		return nil, fmt.Errorf("failed to build find students by age query: %w", err)
	}
	return r.list(ctx, "find students by age", sql, args)
}

// FindByAgeBetween returns students with min <= age <= max
func (r *PostgresStudentRepository) FindByAgeBetween(ctx context.Context, min, max int) ([]*models.Student, error) {
	sql, args, err := r.q.findByAgeBetween(min, max)
	if err != nil {
		return nil, fmt.Errorf("failed to build find students by age range query: %w", err)
	}
	return r.list(ctx, "find students by age range", sql, args)
}

// FindByFacultyID returns the students referencing a faculty
func (r *PostgresStudentRepository) FindByFacultyID(ctx context.Context, facultyID int64) ([]*models.Student, error) {
	sql, args, err := r.q.findByFacultyID(facultyID)
	if err != nil {
		return nil, fmt.Errorf("failed to build find students by faculty query: %w", err)
	}
	return r.list(ctx, "find students by faculty", sql, args)
}

// LastFive returns up to five students, newest first
func (r *PostgresStudentRepository) LastFive(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.q.lastFive()
	if err != nil {
		return nil, fmt.Errorf("failed to build last students query: %w", err)
	}
	return r.list(ctx, "last students", sql, args)
}

// Count returns the number of students
func (r *PostgresStudentRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.q.count()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// AverageAge returns the truncated average student age, 0 when there are no students
func (r *PostgresStudentRepository) AverageAge(ctx context.Context) (int, error) {
	sql, args, err := r.q.averageAge()
	if err != nil {
		return 0, fmt.Errorf("failed to build average age query: %w", err)
	}

	var avg float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&avg); err != nil {
		logger.Error().Err(err).Msg("Error computing average student age")
		return 0, fmt.Errorf("error computing average age: %w", err)
	}
	return int(avg), nil
}

func (r *PostgresStudentRepository) list(ctx context.Context, op, sql string, args []interface{}) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing student query")
		return nil, fmt.Errorf("error querying students (%s): %w", op, err)
	}
	defer rows.Close()

	students, err := collectStudents(rows)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error scanning student rows")
		return nil, fmt.Errorf("error scanning students (%s): %w", op, err)
	}
	return students, nil
}
