package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE code of foreign_key_violation
const codeForeignKeyViolation = "23503"

// IsForeignKeyViolation reports whether err is a foreign_key_violation.
// An empty constraintName matches any constraint.
func IsForeignKeyViolation(err error, constraintName string) bool {
	return hasCode(err, codeForeignKeyViolation, constraintName)
}

func hasCode(err error, code, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return constraintName == "" || pgErr.ConstraintName == constraintName
}
