package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/pkg/logger"
)

// PostgresFacultyRepository handles faculty database operations on PostgreSQL
type PostgresFacultyRepository struct {
	db DBTX
	q  facultyQueries
}

// NewFacultyRepository creates a new PostgreSQL faculty repository
func NewFacultyRepository(db DBTX) *PostgresFacultyRepository {
	return &PostgresFacultyRepository{
		db: db,
		q:  facultyQueries{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)},
	}
}

// GetByID retrieves a faculty by ID
func (r *PostgresFacultyRepository) GetByID(ctx context.Context, id int64) (*models.Faculty, error) {
	sql, args, err := r.q.getByID(id)
	if err != nil {
		logger.Error().Err(err).Msg("Error building get faculty by ID SQL")
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error getting faculty by ID: %w", err)
	}

	return faculty, nil
}

// Save inserts a new faculty or replaces an existing one
func (r *PostgresFacultyRepository) Save(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	if faculty.ID == 0 {
		sql, args, err := r.q.insert(faculty)
		if err != nil {
			logger.Error().Err(err).Msg("Error building create faculty SQL")
			return nil, fmt.Errorf("failed to build create faculty query: %w", err)
		}

		var id int64
		if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
			logger.Error().Err(err).Str("name", faculty.Name).Msg("Error executing create faculty query")
			return nil, fmt.Errorf("error creating faculty: %w", err)
		}
		return &models.Faculty{ID: id, Name: faculty.Name, Color: faculty.Color}, nil
	}

	sql, args, err := r.q.update(faculty)
	if err != nil {
		logger.Error().Err(err).Msg("Error building update faculty SQL")
		return nil, fmt.Errorf("failed to build update faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", faculty.ID).Msg("Error executing update faculty query")
		return nil, fmt.Errorf("error updating faculty: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return &models.Faculty{ID: faculty.ID, Name: faculty.Name, Color: faculty.Color}, nil
}

// Delete detaches the faculty's students and deletes the faculty in one transaction
func (r *PostgresFacultyRepository) Delete(ctx context.Context, id int64) error {
	detachSQL, detachArgs, err := r.q.detachStudents(id)
	if err != nil {
		logger.Error().Err(err).Msg("Error building detach students SQL")
		return fmt.Errorf("failed to build detach students query: %w", err)
	}
	deleteSQL, deleteArgs, err := r.q.delete(id)
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete faculty SQL")
		return fmt.Errorf("failed to build delete faculty query: %w", err)
	}

	err = withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, detachSQL, detachArgs...); err != nil {
			return fmt.Errorf("error detaching students from faculty: %w", err)
		}
		if _, err := tx.Exec(ctx, deleteSQL, deleteArgs...); err != nil {
			return fmt.Errorf("error deleting faculty: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error deleting faculty")
		return err
	}
	return nil
}

// FindByNameOrColor returns faculties matching the name or the color
func (r *PostgresFacultyRepository) FindByNameOrColor(ctx context.Context, name, color string) ([]*models.Faculty, error) {
	sql, args, ok, err := r.q.findByNameOrColor(name, color)
	if err != nil {
		logger.Error().Err(err).Msg("Error building find faculties SQL")
		return nil, fmt.Errorf("failed to build find faculties query: %w", err)
	}
	if !ok {
		return []*models.Faculty{}, nil
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("name", name).Str("color", color).Msg("Error executing find faculties query")
		return nil, fmt.Errorf("error querying faculties: %w", err)
	}
	defer rows.Close()

	faculties, err := collectFaculties(rows)
	if err != nil {
		logger.Error().Err(err).Msg("Error scanning faculty rows")
		return nil, fmt.Errorf("error scanning faculty rows: %w", err)
	}
	return faculties, nil
}
