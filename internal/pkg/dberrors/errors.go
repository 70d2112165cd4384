package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const codeForeignKeyViolation = "23503"

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key violation,
// e.g. a student row pointing at a faculty that does not exist.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}
