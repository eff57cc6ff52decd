package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUsername is returned when trying to create a user with an existing username
	ErrDuplicateUsername = errors.New("user with this username already exists")

	// ErrDuplicateEmail is returned when trying to create a user with an email already in use
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicateCategory is returned when trying to create a category with an existing name
	ErrDuplicateCategory = errors.New("category with this name already exists")

	// ErrUnknownCategory is returned when a task references a category that does not exist
	ErrUnknownCategory = errors.New("referenced category does not exist")

	// ErrUnknownProvider is returned for an identity provider without a token column
	ErrUnknownProvider = errors.New("unknown identity provider")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqInvalidTextRepr     = "22P02"

	usersEmailConstraint = "users_email_key"
)

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func pqConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// isMissing reports whether err means no row can match: either nothing was
// found or the lookup key is not a valid UUID.
func isMissing(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || pqCode(err) == pqInvalidTextRepr
}
