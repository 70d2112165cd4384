package helpers

import "database/sql"

// GetNullInt64 converts an int64 pointer to sql.NullInt64.
// A nil pointer yields an invalid NullInt64, which is written as NULL.
func GetNullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}
