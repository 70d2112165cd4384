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

// SQLiteFacultyRepository handles faculty database operations on SQLite
type SQLiteFacultyRepository struct {
	db *sql.DB
	q  facultyQueries
}

// NewSQLiteFacultyRepository creates a new SQLite faculty repository
func NewSQLiteFacultyRepository(db *sql.DB) *SQLiteFacultyRepository {
	return &SQLiteFacultyRepository{
		db: db,
		q:  facultyQueries{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)},
	}
}

// GetByID retrieves a faculty by ID
func (r *SQLiteFacultyRepository) GetByID(ctx context.Context, id int64) (*models.Faculty, error) {
	query, args, err := r.q.getByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty, err := scanFaculty(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error getting faculty by ID: %w", err)
	}
	return faculty, nil
}

// Save inserts a new faculty or replaces an existing one
func (r *SQLiteFacultyRepository) Save(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	if faculty.ID == 0 {
		query, args, err := r.q.insert(faculty)
		if err != nil {
			return nil, fmt.Errorf("failed to build create faculty query: %w", err)
		}

		var id int64
		if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			logger.Error().Err(err).Str("name", faculty.Name).Msg("Error executing create faculty query")
			return nil, fmt.Errorf("error creating faculty: %w", err)
		}
		return &models.Faculty{ID: id, Name: faculty.Name, Color: faculty.Color}, nil
	}

	query, args, err := r.q.update(faculty)
	if err != nil {
		return nil, fmt.Errorf("failed to build update faculty query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", faculty.ID).Msg("Error executing update faculty query")
		return nil, fmt.Errorf("error updating faculty: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrNotFound
	}
	return &models.Faculty{ID: faculty.ID, Name: faculty.Name, Color: faculty.Color}, nil
}

// Delete detaches the faculty's students and deletes the faculty in one transaction
func (r *SQLiteFacultyRepository) Delete(ctx context.Context, id int64) error {
	detachSQL, detachArgs, err := r.q.detachStudents(id)
	if err != nil {
		return fmt.Errorf("failed to build detach students query: %w", err)
	}
	deleteSQL, deleteArgs, err := r.q.delete(id)
	if err != nil {
		return fmt.Errorf("failed to build delete faculty query: %w", err)
	}

	return withSQLTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, detachSQL, detachArgs...); err != nil {
			return fmt.Errorf("error detaching students from faculty: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
			return fmt.Errorf("error deleting faculty: %w", err)
		}
		return nil
	})
}

// FindByNameOrColor returns faculties matching the name or the color
func (r *SQLiteFacultyRepository) FindByNameOrColor(ctx context.Context, name, color string) ([]*models.Faculty, error) {
	query, args, ok, err := r.q.findByNameOrColor(name, color)
	if err != nil {
		return nil, fmt.Errorf("failed to build find faculties query: %w", err)
	}
	if !ok {
		return []*models.Faculty{}, nil
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying faculties: %w", err)
	}
	defer rows.Close()

	faculties, err := collectFaculties(rows)
	if err != nil {
		return nil, fmt.Errorf("error scanning faculty rows: %w", err)
	}
	return faculties, nil
}
